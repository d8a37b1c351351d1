// Package dashatree renders nested dasha period trees as diagrams.
//
// A period tree converts naturally to Graphviz DOT: one node per period,
// one edge from each period to its sub-periods. [ToDOT] produces the DOT
// text deterministically; [RenderSVG] and [RenderPNG] rasterize it.
package dashatree

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/vedanga/jyotish/pkg/astro/dasha"
)

// Options configures tree rendering.
type Options struct {
	// Detailed includes start/end dates and year lengths in node labels.
	// When false, only the ruler name is shown.
	Detailed bool

	// Title is drawn as the graph label when non-empty.
	Title string
}

// ToDOT converts a dasha tree to Graphviz DOT.
// Node IDs encode the path from the root, so output is stable for a given
// tree and safe to cache or diff.
func ToDOT(tree []dasha.Period, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dasha {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	for i, p := range tree {
		writePeriod(&buf, p, fmt.Sprintf("p%d", i), "", opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writePeriod emits one node and recurses into sub-periods.
func writePeriod(buf *bytes.Buffer, p dasha.Period, id, parent string, opts Options) {
	fmt.Fprintf(buf, "  %q [label=%q];\n", id, fmtLabel(p, opts.Detailed))
	if parent != "" {
		fmt.Fprintf(buf, "  %q -> %q;\n", parent, id)
	}
	for i, sub := range p.Sub {
		writePeriod(buf, sub, fmt.Sprintf("%s.%d", id, i), id, opts)
	}
}

func fmtLabel(p dasha.Period, detailed bool) string {
	if !detailed {
		return p.Ruler
	}
	parts := []string{
		p.Ruler,
		fmt.Sprintf("%.2fy", p.Years),
		p.Start.Format(time.DateOnly) + " - " + p.End.Format(time.DateOnly),
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders DOT to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders DOT to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
