// Package stl decodes ASCII and binary STL buffers into cad models.
package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/philipparndt/cadstream/pkg/cad"
	"github.com/philipparndt/cadstream/pkg/format"
	"github.com/philipparndt/cadstream/pkg/geometry"
)

const (
	// HeaderSize is the binary header length and the smallest buffer
	// accepted in either encoding.
	HeaderSize = 80
	// RecordSize is the length of one binary facet record: normal, three
	// vertices and a 2-byte attribute count.
	RecordSize = 50

	countSize  = 4
	probeSize  = 1024
	asciiMagic = "solid"
)

// Encoding is the on-disk flavour of an STL buffer
type Encoding int

const (
	Binary Encoding = iota
	ASCII
)

func (e Encoding) String() string {
	if e == ASCII {
		return "ascii"
	}
	return "binary"
}

func init() {
	format.Register(format.STL, func() format.Decoder { return NewDecoder() })
}

// Decoder decodes STL buffers. It holds no state and may be shared between
// goroutines.
type Decoder struct{}

// NewDecoder creates an STL decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Name returns a human readable decoder name
func (d *Decoder) Name() string {
	return "STL decoder"
}

// Decode parses data as ASCII or binary STL and returns the model. Any
// violation aborts the whole decode; no partial model is returned.
func (d *Decoder) Decode(data []byte, name string) (*cad.Model, error) {
	return Decode(data, name)
}

// Decode parses data as ASCII or binary STL and returns the model.
func Decode(data []byte, name string) (*cad.Model, error) {
	enc, err := Detect(data)
	if err != nil {
		return nil, err
	}

	var triangles []geometry.Triangle
	if enc == ASCII {
		triangles, err = parseASCII(data)
	} else {
		triangles, err = parseBinary(data)
	}
	if err != nil {
		return nil, err
	}

	return cad.New(name, triangles, len(data)), nil
}

// Detect classifies data. A buffer is ASCII only if it starts with "solid"
// and the first 1024 bytes are all non-zero 7-bit bytes; everything else is
// binary. A binary file whose header starts with "solid" and holds only
// low bytes in that window is classified as ASCII.
func Detect(data []byte) (Encoding, error) {
	if len(data) < HeaderSize {
		return Binary, &DecodeError{
			Kind: ErrTooSmall,
			Err:  fmt.Errorf("got %d bytes, need at least %d", len(data), HeaderSize),
		}
	}

	if !bytes.HasPrefix(data, []byte(asciiMagic)) {
		return Binary, nil
	}
	for _, b := range data[:min(len(data), probeSize)] {
		if b == 0 || b >= 0x80 {
			return Binary, nil
		}
	}
	return ASCII, nil
}

// lineReader yields trimmed, non-blank lines with their 1-based numbers.
type lineReader struct {
	lines []string
	pos   int
}

func newLineReader(data []byte) *lineReader {
	return &lineReader{lines: strings.Split(string(data), "\n")}
}

func (r *lineReader) next() (string, int, bool) {
	for r.pos < len(r.lines) {
		line := strings.TrimSpace(r.lines[r.pos])
		r.pos++
		if line != "" {
			return line, r.pos, true
		}
	}
	return "", 0, false
}

// parseASCII parses the ASCII grammar. Lines between facets that are not
// "facet normal" are ignored.
func parseASCII(data []byte) ([]geometry.Triangle, error) {
	lines := newLineReader(data)
	triangles := make([]geometry.Triangle, 0)

	header, lineNo, ok := lines.next()
	if !ok || !strings.HasPrefix(header, asciiMagic) {
		return nil, lineError(ErrMalformedHeader, lineNo, header, nil)
	}

	for {
		line, lineNo, ok := lines.next()
		if !ok || strings.HasPrefix(line, "endsolid") {
			break
		}
		if !strings.HasPrefix(line, "facet normal") {
			continue
		}

		normal, err := parseNormal(line)
		if err != nil {
			return nil, lineError(ErrMalformedNormal, lineNo, line, err)
		}

		loop, loopNo, ok := lines.next()
		if !ok {
			return nil, lineError(ErrTruncatedTriangle, lineNo, line, nil)
		}
		if !strings.HasPrefix(loop, "outer loop") {
			return nil, lineError(ErrMalformedLoop, loopNo, loop, nil)
		}

		var vertices [3]geometry.Vector3
		for i := range vertices {
			vertexLine, vertexNo, ok := lines.next()
			if !ok {
				return nil, lineError(ErrTruncatedTriangle, lineNo, line,
					fmt.Errorf("facet has %d of 3 vertices", i))
			}
			vertices[i], err = parseVertex(vertexLine)
			if err != nil {
				return nil, lineError(ErrMalformedVertex, vertexNo, vertexLine, err)
			}
		}

		// endloop and endfacet are not validated
		lines.next()
		lines.next()

		triangles = append(triangles, geometry.Triangle{Normal: normal, Vertices: vertices})
	}

	return triangles, nil
}

func parseNormal(line string) (geometry.Vector3, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 || fields[0] != "facet" || fields[1] != "normal" {
		return geometry.Vector3{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}
	return parseVector(fields[2:])
}

func parseVertex(line string) (geometry.Vector3, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "vertex" {
		return geometry.Vector3{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	return parseVector(fields[1:])
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float32
	for i, field := range fields {
		f, err := parseFloat32(field)
		if err != nil {
			return geometry.Vector3{}, err
		}
		c[i] = f
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// parseFloat32 accepts decimal and exponent notation plus inf and nan.
// Values beyond the float32 range become signed infinities. Hex floats and
// digit separators are rejected.
func parseFloat32(s string) (float32, error) {
	unsigned := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") || strings.ContainsRune(s, '_') {
		return 0, fmt.Errorf("invalid number syntax %q", s)
	}

	f, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return float32(f), nil
}

// parseBinary parses the fixed-width binary layout. The header content and
// the per-record attribute count are ignored.
func parseBinary(data []byte) ([]geometry.Triangle, error) {
	if len(data) < HeaderSize+countSize {
		return nil, &DecodeError{
			Kind: ErrTruncated,
			Err:  fmt.Errorf("missing triangle count: got %d bytes", len(data)),
		}
	}

	count := binary.LittleEndian.Uint32(data[HeaderSize:])
	need := uint64(HeaderSize+countSize) + uint64(count)*RecordSize
	if uint64(len(data)) < need {
		return nil, &DecodeError{
			Kind: ErrTruncated,
			Err:  fmt.Errorf("%d triangles need %d bytes, got %d", count, need, len(data)),
		}
	}

	triangles := make([]geometry.Triangle, count)
	record := data[HeaderSize+countSize:]
	for i := range triangles {
		triangles[i] = geometry.Triangle{
			Normal: readVector(record[0:]),
			Vertices: [3]geometry.Vector3{
				readVector(record[12:]),
				readVector(record[24:]),
				readVector(record[36:]),
			},
		}
		record = record[RecordSize:]
	}

	return triangles, nil
}

func readVector(b []byte) geometry.Vector3 {
	return geometry.Vector3{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}
