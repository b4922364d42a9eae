package layout

import (
	"context"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

// Positions maps node ids to coordinates.
type Positions map[int64]r2.Vec

// Options configures the spring layout.
type Options struct {
	Spacing    float64 // optimal distance between nodes; 0 means 1/sqrt(n)
	Iterations int     // default 50
	Threshold  float64 // mean displacement that stops the run early (default 1e-4)
	Scale      float64 // final coordinates lie in [-Scale, Scale] (default 1)
	Seed       int64   // default 42
}

// DefaultOptions returns the standard layout settings.
func DefaultOptions() Options {
	return Options{
		Spacing:    0.5,
		Iterations: 50,
		Threshold:  1e-4,
		Scale:      1,
		Seed:       42,
	}
}

const minDistance = 0.01

// Spring places the nodes of g with a Fruchterman-Reingold simulation.
// Nodes repel with k²/d and connected nodes attract with w·d²/k. The result
// is deterministic for a fixed graph, node order and seed.
func Spring(ctx context.Context, g graph.WeightedUndirected, nodes []int64, opts Options) (Positions, error) {
	d := DefaultOptions()
	if opts.Iterations <= 0 {
		opts.Iterations = d.Iterations
	}
	if opts.Threshold <= 0 {
		opts.Threshold = d.Threshold
	}
	if opts.Scale <= 0 {
		opts.Scale = d.Scale
	}

	n := len(nodes)
	pos := make(Positions, n)
	switch n {
	case 0:
		return pos, nil
	case 1:
		pos[nodes[0]] = r2.Vec{}
		return pos, nil
	}

	k := opts.Spacing
	if k <= 0 {
		k = 1 / math.Sqrt(float64(n))
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	p := make([]r2.Vec, n)
	for i := range p {
		p[i] = r2.Vec{X: rng.Float64(), Y: rng.Float64()}
	}

	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
		for j := range weights[i] {
			if i == j {
				continue
			}
			if w, ok := g.Weight(nodes[i], nodes[j]); ok {
				weights[i][j] = w
			}
		}
	}

	temp := 0.1 * spread(p)
	dt := temp / float64(opts.Iterations+1)
	disp := make([]r2.Vec, n)

	for iter := 0; iter < opts.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range disp {
			disp[i] = r2.Vec{}
			for j := range p {
				if i == j {
					continue
				}
				delta := r2.Sub(p[i], p[j])
				dist := math.Max(r2.Norm(delta), minDistance)
				f := k*k/(dist*dist) - weights[i][j]*dist/k
				disp[i] = r2.Add(disp[i], r2.Scale(f, delta))
			}
		}

		var moved float64
		for i := range p {
			length := math.Max(r2.Norm(disp[i]), minDistance)
			step := r2.Scale(temp/length, disp[i])
			p[i] = r2.Add(p[i], step)
			moved += r2.Norm(step)
		}
		temp -= dt
		if moved/float64(n) < opts.Threshold {
			break
		}
	}

	finalize(p, opts.Scale)
	for i, id := range nodes {
		pos[id] = p[i]
	}
	return pos, nil
}

// finalize resets non-finite positions to the origin and then rescales, so
// one diverged node cannot poison the centroid of the rest.
func finalize(p []r2.Vec, scale float64) {
	for i, v := range p {
		if !finite(v) {
			p[i] = r2.Vec{}
		}
	}
	rescale(p, scale)
}

// spread returns the larger of the x and y extents of p.
func spread(p []r2.Vec) float64 {
	minX, maxX := p[0].X, p[0].X
	minY, maxY := p[0].Y, p[0].Y
	for _, v := range p[1:] {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	return math.Max(maxX-minX, maxY-minY)
}

// rescale centres p on its centroid and scales it so the largest absolute coordinate is scale.
func rescale(p []r2.Vec, scale float64) {
	var c r2.Vec
	for _, v := range p {
		c = r2.Add(c, v)
	}
	c = r2.Scale(1/float64(len(p)), c)

	var lim float64
	for i := range p {
		p[i] = r2.Sub(p[i], c)
		lim = math.Max(lim, math.Max(math.Abs(p[i].X), math.Abs(p[i].Y)))
	}
	if lim == 0 {
		return
	}
	for i := range p {
		p[i] = r2.Scale(scale/lim, p[i])
	}
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
