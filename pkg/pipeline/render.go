package pipeline

import (
	"github.com/matzehuels/polyskel/pkg/errors"
	"github.com/matzehuels/polyskel/pkg/render"
	"github.com/matzehuels/polyskel/pkg/skeleton"
)

// renderArtifacts produces every requested format. The SVG is rendered once
// and reused as the source for PNG and PDF conversion.
func renderArtifacts(sk skeleton.Skeleton, analysis Analysis, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	needSVG := false
	for _, f := range opts.Formats {
		if f == FormatSVG || f == FormatPNG || f == FormatPDF {
			needSVG = true
			break
		}
	}
	if needSVG {
		svg = renderSVG(sk, analysis, opts)
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[FormatSVG] = svg

		case FormatPNG:
			png, err := render.ToPNG(svg, opts.PNGScale)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert to png")
			}
			artifacts[FormatPNG] = png

		case FormatPDF:
			pdf, err := render.ToPDF(svg)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert to pdf")
			}
			artifacts[FormatPDF] = pdf

		case FormatDOT:
			dot := render.ToDOT(sk, render.DOTOptions{Labels: opts.Style == StyleAnnotated})
			artifacts[FormatDOT] = []byte(dot)

		case FormatJSON:
			data, err := skeleton.Marshal(sk)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize skeleton")
			}
			artifacts[FormatJSON] = data

		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}

	return artifacts, nil
}

func renderSVG(sk skeleton.Skeleton, analysis Analysis, opts Options) []byte {
	scene := render.Scene{Polygon: opts.Polygon, Skeleton: sk}
	svgOpts := []render.SVGOption{render.WithSize(opts.Width, opts.Height)}
	if opts.Style == StyleAnnotated {
		svgOpts = append(svgOpts,
			render.WithBranches(analysis.Branches),
			render.WithLongestPath(analysis.Path),
			render.WithNodes(),
		)
	}
	return render.RenderSVG(scene, svgOpts...)
}
