package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/polyskel/pkg/errors"
	"github.com/matzehuels/polyskel/pkg/geom"
)

// ReadPolygon decodes a polygon from r.
//
// Three input forms are accepted: the canonical {"vertices": [...]} object,
// a bare array of {"x", "y"} points, and a bare array of [x, y] pairs.
// ReadPolygon does not validate the geometry; degenerate polygons are
// returned as-is and yield empty skeletons downstream.
func ReadPolygon(r io.Reader) (geom.Polygon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return geom.Polygon{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read polygon")
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return geom.Polygon{}, errors.New(errors.ErrCodeInvalidPolygon, "empty polygon input")
	}

	if trimmed[0] == '{' {
		var obj struct {
			Vertices []geom.Point `json:"vertices"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return geom.Polygon{}, errors.Wrap(errors.ErrCodeInvalidPolygon, err, "decode polygon")
		}
		return geom.NewPolygon(obj.Vertices...), nil
	}

	// Bare array: try {"x","y"} points first, then [x, y] pairs.
	var pts []geom.Point
	if err := json.Unmarshal(data, &pts); err == nil && pointsPopulated(data) {
		return geom.NewPolygon(pts...), nil
	}
	var pairs [][2]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return geom.Polygon{}, errors.Wrap(errors.ErrCodeInvalidPolygon, err, "decode polygon")
	}
	pts = make([]geom.Point, len(pairs))
	for i, p := range pairs {
		pts[i] = geom.Point{X: p[0], Y: p[1]}
	}
	return geom.NewPolygon(pts...), nil
}

// pointsPopulated reports whether the bare array actually contains objects.
// An array of [x, y] pairs also unmarshals into []geom.Point (as zero
// points), so the element shape has to be checked explicitly.
func pointsPopulated(data []byte) bool {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) == 0 {
		return false
	}
	elem := bytes.TrimLeft(raw[0], " \t\r\n")
	return len(elem) > 0 && elem[0] == '{'
}

// ImportPolygon reads a JSON file at path and returns the decoded polygon.
func ImportPolygon(path string) (geom.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return geom.Polygon{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return geom.Polygon{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadPolygon(f)
}
