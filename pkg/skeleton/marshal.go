package skeleton

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Skeleton Serialization API
// =============================================================================

// The persisted form is exactly the two flat collections: node coordinates
// and edge segments carrying their own endpoint coordinates. No indices and
// no event history are serialized, so import → export round-trips preserve
// every coordinate to float precision.

// Marshal converts a skeleton to indented JSON bytes.
func Marshal(s Skeleton) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes JSON bytes to a skeleton.
func Unmarshal(data []byte) (Skeleton, error) {
	var s Skeleton
	if err := json.Unmarshal(data, &s); err != nil {
		return Skeleton{}, err
	}
	return s, nil
}

// WriteFile writes a skeleton to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(s Skeleton, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(s, f)
}

// ReadFile reads a JSON file and returns the decoded skeleton.
func ReadFile(path string) (Skeleton, error) {
	f, err := os.Open(path)
	if err != nil {
		return Skeleton{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Write writes a skeleton as JSON to an io.Writer.
func Write(s Skeleton, w io.Writer) error { return writeTo(s, w) }

// Read decodes a JSON skeleton from an io.Reader.
func Read(r io.Reader) (Skeleton, error) { return readFrom(r) }

func writeTo(s Skeleton, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (Skeleton, error) {
	var s Skeleton
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Skeleton{}, fmt.Errorf("decode: %w", err)
	}
	return s, nil
}
