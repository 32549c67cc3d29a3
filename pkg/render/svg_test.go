package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/polyskel/pkg/geom"
	"github.com/matzehuels/polyskel/pkg/skeleton"
)

func TestRenderSVG(t *testing.T) {
	square := geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: 10, Y: 0},
		geom.Point{X: 10, Y: 10},
		geom.Point{X: 0, Y: 10},
	)
	sk := skeleton.Compute(square, skeleton.StraightSkeleton)

	svg := string(RenderSVG(Scene{Polygon: square, Skeleton: sk}))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing SVG root element: %.60s", svg)
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("SVG not closed")
	}
	if !strings.Contains(svg, "<path d=\"M ") {
		t.Error("polygon outline missing")
	}
	if got := strings.Count(svg, "<line "); got != sk.EdgeCount() {
		t.Errorf("SVG has %d skeleton lines, want %d", got, sk.EdgeCount())
	}
}

func TestRenderSVG_Overlays(t *testing.T) {
	square := geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: 10, Y: 0},
		geom.Point{X: 10, Y: 10},
		geom.Point{X: 0, Y: 10},
	)
	sk := skeleton.Compute(square, skeleton.StraightSkeleton)
	scene := Scene{Polygon: square, Skeleton: sk}

	svg := string(RenderSVG(scene,
		WithLongestPath(sk.LongestPath()),
		WithBranches(sk.Branches()),
		WithNodes(),
	))

	if got := strings.Count(svg, "<polyline "); got != len(sk.Branches())+1 {
		t.Errorf("SVG has %d polylines, want %d branches + 1 path", got, len(sk.Branches()))
	}
	if got := strings.Count(svg, "<circle "); got != sk.NodeCount() {
		t.Errorf("SVG has %d node dots, want %d", got, sk.NodeCount())
	}
	// Branch overlay replaces the plain edge rendering.
	if strings.Contains(svg, "<line ") {
		t.Error("branch overlay should replace plain edge lines")
	}
}

func TestRenderSVG_EmptyScene(t *testing.T) {
	svg := string(RenderSVG(Scene{}))
	if !strings.Contains(svg, "<svg ") || !strings.Contains(svg, "</svg>") {
		t.Errorf("empty scene should render an empty frame: %s", svg)
	}
}

func TestRenderSVG_CustomSize(t *testing.T) {
	svg := string(RenderSVG(Scene{}, WithSize(400, 300)))
	if !strings.Contains(svg, `viewBox="0 0 400.0 300.0"`) {
		t.Errorf("custom size not applied: %.120s", svg)
	}
}

// Frame mapping keeps every drawn coordinate inside the frame.
func TestTransform_FitsFrame(t *testing.T) {
	poly := geom.NewPolygon(
		geom.Point{X: -5, Y: -3},
		geom.Point{X: 25, Y: -3},
		geom.Point{X: 25, Y: 14},
		geom.Point{X: -5, Y: 14},
	)
	tx := newTransform(Scene{Polygon: poly}, 800, 600, 20)
	for _, v := range poly.Vertices {
		x, y := tx.apply(v)
		if x < 0 || x > 800 || y < 0 || y > 600 {
			t.Errorf("vertex %v mapped outside frame: (%.1f, %.1f)", v, x, y)
		}
	}
}
