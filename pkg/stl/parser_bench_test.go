package stl

import (
	"fmt"
	"testing"

	"github.com/philipparndt/cadstream/pkg/geometry"
)

var benchCounts = []int{10, 100, 1000, 10000}

// gridTriangles builds n triangles spread over a plane so that no two are
// identical.
func gridTriangles(n int) []geometry.Triangle {
	triangles := make([]geometry.Triangle, n)
	for i := range triangles {
		x, y := float32(i%100), float32(i/100)
		triangles[i] = geometry.NewTriangle(
			geometry.NewVector3(0, 0, 1),
			geometry.NewVector3(x, y, 0),
			geometry.NewVector3(x+1, y, 0),
			geometry.NewVector3(x, y+1, 0.5),
		)
	}
	return triangles
}

func benchmarkDecode(b *testing.B, encode func([]geometry.Triangle) []byte) {
	for _, n := range benchCounts {
		data := encode(gridTriangles(n))
		b.Run(fmt.Sprintf("triangles=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				if _, err := Decode(data, "bench.stl"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecodeASCII(b *testing.B) {
	benchmarkDecode(b, func(t []geometry.Triangle) []byte { return encodeASCII("bench", t) })
}

func BenchmarkDecodeBinary(b *testing.B) {
	benchmarkDecode(b, func(t []geometry.Triangle) []byte { return encodeBinary("bench", t) })
}

func BenchmarkDetect(b *testing.B) {
	ascii := encodeASCII("bench", gridTriangles(100))
	bin := encodeBinary("bench", gridTriangles(100))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Detect(ascii); err != nil {
			b.Fatal(err)
		}
		if _, err := Detect(bin); err != nil {
			b.Fatal(err)
		}
	}
}
