package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/polyskel/pkg/errors"
	"github.com/matzehuels/polyskel/pkg/geom"
)

// WritePolygon encodes a polygon in the canonical form and writes it to w.
// The output can be re-imported with [ReadPolygon] for round-trip processing.
func WritePolygon(p geom.Polygon, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode polygon")
	}
	return nil
}

// ExportPolygon writes a polygon to a JSON file at path.
func ExportPolygon(p geom.Polygon, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WritePolygon(p, f)
}
