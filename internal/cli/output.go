package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/polyskel/pkg/pipeline"
)

// openOutput opens the output target. "-" means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that
// extension. This is used when generating multiple files
// (e.g., shape.svg, shape.dot).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	nodeCount int
	edgeCount int
	cacheHit  bool
}

// writeArtifacts writes each rendered format to its own file and prints a
// summary. A single format with an explicit output path goes exactly there;
// otherwise filenames are derived from the input path.
func (c *CLI) writeArtifacts(p artifactWriteParams) ([]string, error) {
	var written []string

	if len(p.formats) == 1 && p.output != "" {
		if err := writeArtifact(p.artifacts[p.formats[0]], p.output); err != nil {
			return nil, err
		}
		written = append(written, p.output)
	} else {
		base := basePath(p.output, p.input)
		for _, format := range p.formats {
			path := base + "." + format
			if err := writeArtifact(p.artifacts[format], path); err != nil {
				return nil, err
			}
			written = append(written, path)
		}
	}

	printSuccess("Skeleton complete")
	for _, path := range written {
		if path != "-" {
			printFile(path)
		}
	}
	printStats(p.nodeCount, p.edgeCount, p.cacheHit)

	return written, nil
}

func writeArtifact(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("open output %s: %w", path, err)
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
