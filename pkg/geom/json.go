package geom

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Polygon Serialization API
// =============================================================================

// MarshalPolygon converts a polygon to indented JSON bytes.
func MarshalPolygon(p Polygon) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// UnmarshalPolygon deserializes JSON bytes to a polygon.
func UnmarshalPolygon(data []byte) (Polygon, error) {
	var p Polygon
	if err := json.Unmarshal(data, &p); err != nil {
		return Polygon{}, err
	}
	return p, nil
}

// WritePolygonFile writes a polygon to a JSON file.
// The file is created with 0644 permissions.
func WritePolygonFile(p Polygon, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writePolygonTo(p, f)
}

// ReadPolygonFile reads a JSON file and returns the decoded polygon.
func ReadPolygonFile(path string) (Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return Polygon{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readPolygonFrom(f)
}

// WritePolygon writes a polygon as JSON to an io.Writer.
func WritePolygon(p Polygon, w io.Writer) error { return writePolygonTo(p, w) }

// ReadPolygon decodes a JSON polygon from an io.Reader.
func ReadPolygon(r io.Reader) (Polygon, error) { return readPolygonFrom(r) }

func writePolygonTo(p Polygon, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readPolygonFrom(r io.Reader) (Polygon, error) {
	var p Polygon
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Polygon{}, fmt.Errorf("decode: %w", err)
	}
	return p, nil
}
