package render

import (
	"fmt"

	"github.com/fogleman/gg"
)

// Node is a labelled point in layout space ([-1, 1] on both axes).
type Node struct {
	Label string
	X, Y  float64
}

// Link joins two nodes by index.
type Link struct {
	From, To int
	Weight   float64
}

// NetworkOptions configures the network diagram.
type NetworkOptions struct {
	Width      int
	Height     int
	Margin     float64
	NodeRadius float64
	LabelSize  int
	EdgeScale  float64 // line width per unit of weight, in points
	EdgeAlpha  float64
}

// DefaultNetworkOptions returns a 1000×800 diagram.
func DefaultNetworkOptions() NetworkOptions {
	return NetworkOptions{
		Width:      1000,
		Height:     800,
		Margin:     60,
		NodeRadius: 17,
		LabelSize:  14,
		EdgeScale:  0.1,
		EdgeAlpha:  0.6,
	}
}

const pointsToPixels = 100.0 / 72.0

// Network draws links as translucent lines and nodes as labelled light blue
// circles on a white canvas without axes. It returns PNG bytes.
func Network(nodes []Node, links []Link, opts NetworkOptions) ([]byte, error) {
	d := DefaultNetworkOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.Margin <= 0 {
		opts.Margin = d.Margin
	}
	if opts.NodeRadius <= 0 {
		opts.NodeRadius = d.NodeRadius
	}
	if opts.LabelSize <= 0 {
		opts.LabelSize = d.LabelSize
	}
	if opts.EdgeScale <= 0 {
		opts.EdgeScale = d.EdgeScale
	}
	if opts.EdgeAlpha <= 0 || opts.EdgeAlpha > 1 {
		opts.EdgeAlpha = d.EdgeAlpha
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	if len(nodes) == 0 {
		return encodePNG(dc)
	}

	w, h := float64(opts.Width), float64(opts.Height)
	px := func(n Node) (float64, float64) {
		x := opts.Margin + (n.X+1)/2*(w-2*opts.Margin)
		y := opts.Margin + (1-(n.Y+1)/2)*(h-2*opts.Margin)
		return x, y
	}

	for _, l := range links {
		if l.From < 0 || l.From >= len(nodes) || l.To < 0 || l.To >= len(nodes) {
			return nil, fmt.Errorf("network: link %d-%d out of range", l.From, l.To)
		}
		x0, y0 := px(nodes[l.From])
		x1, y1 := px(nodes[l.To])
		dc.SetRGBA(0.5, 0.5, 0.5, opts.EdgeAlpha)
		dc.SetLineWidth(l.Weight * opts.EdgeScale * pointsToPixels)
		dc.DrawLine(x0, y0, x1, y1)
		dc.Stroke()
	}

	faces, err := newFaceCache()
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}
	defer faces.close()
	dc.SetFontFace(faces.face(opts.LabelSize))

	for _, n := range nodes {
		x, y := px(n)
		dc.SetRGB255(173, 216, 230)
		dc.DrawCircle(x, y, opts.NodeRadius)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(n.Label, x, y, 0.5, 0.35)
	}
	return encodePNG(dc)
}
