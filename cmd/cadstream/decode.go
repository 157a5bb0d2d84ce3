package main

import (
	"fmt"

	"github.com/philipparndt/cadstream/pkg/cad"
	"github.com/philipparndt/cadstream/pkg/format"
)

// decodeFile picks a decoder by extension and decodes the whole file
func decodeFile(filename string) (*cad.Model, error) {
	model, _, err := format.Default.DecodeFile(filename)
	return model, err
}

func formatVector(x, y, z float32) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", x, y, z)
}
