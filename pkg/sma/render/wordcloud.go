package render

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"sort"

	"github.com/fogleman/gg"
)

// Word is a term and its frequency in the token stream.
type Word struct {
	Text  string
	Count int
}

// Frequencies counts tokens across docs, most frequent first, ties in first-seen order.
func Frequencies(docs [][]string) []Word {
	idx := make(map[string]int)
	var words []Word
	for _, doc := range docs {
		for _, tok := range doc {
			i, ok := idx[tok]
			if !ok {
				i = len(words)
				idx[tok] = i
				words = append(words, Word{Text: tok})
			}
			words[i].Count++
		}
	}
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Count > words[j].Count
	})
	return words
}

// CloudOptions configures the word cloud.
type CloudOptions struct {
	Width       int
	Height      int
	MaxWords    int
	MaxFontSize int
	MinFontSize int
	Seed        int64
}

// DefaultCloudOptions returns an 800×400 cloud of at most 200 words.
func DefaultCloudOptions() CloudOptions {
	return CloudOptions{
		Width:       800,
		Height:      400,
		MaxWords:    200,
		MaxFontSize: 96,
		MinFontSize: 6,
		Seed:        42,
	}
}

var palette = []color.RGBA{
	{68, 1, 84, 255},
	{59, 82, 139, 255},
	{33, 145, 140, 255},
	{94, 201, 98, 255},
	{72, 40, 120, 255},
	{38, 130, 142, 255},
	{53, 183, 121, 255},
	{49, 104, 142, 255},
}

type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) overlaps(o rect) bool {
	return r.x0 < o.x1 && o.x0 < r.x1 && r.y0 < o.y1 && o.y0 < r.y1
}

const (
	spiralStep  = 0.1
	spiralGrow  = 2.0
	shrinkRatio = 0.9
	wordPadding = 1.0
)

// WordCloud renders words on a plain white canvas, sized by frequency and
// packed along an Archimedean spiral without overlap. It returns PNG bytes.
func WordCloud(words []Word, opts CloudOptions) ([]byte, error) {
	d := DefaultCloudOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = d.MaxWords
	}
	if opts.MaxFontSize <= 0 {
		opts.MaxFontSize = d.MaxFontSize
	}
	if opts.MinFontSize <= 0 || opts.MinFontSize > opts.MaxFontSize {
		opts.MinFontSize = d.MinFontSize
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if len(words) > opts.MaxWords {
		words = words[:opts.MaxWords]
	}
	if len(words) == 0 {
		return encodePNG(dc)
	}

	faces, err := newFaceCache()
	if err != nil {
		return nil, fmt.Errorf("word cloud: %w", err)
	}
	defer faces.close()

	rng := rand.New(rand.NewSource(opts.Seed))
	w, h := float64(opts.Width), float64(opts.Height)
	cx, cy := w/2, h/2
	maxCount := float64(words[0].Count)
	maxRadius := math.Hypot(w, h) / 2
	var placed []rect
	limit := opts.MaxFontSize

	for _, word := range words {
		if word.Count <= 0 {
			continue
		}
		size := int(math.Round(float64(opts.MaxFontSize) * float64(word.Count) / maxCount))
		if size > limit {
			size = limit
		}
		if size < opts.MinFontSize {
			size = opts.MinFontSize
		}
		fitted := false
		for {
			dc.SetFontFace(faces.face(size))
			tw, th := dc.MeasureString(word.Text)
			if box, ok := findSlot(cx, cy, tw, th, w, h, maxRadius, placed, rng.Float64()*2*math.Pi); ok {
				dc.SetColor(palette[rng.Intn(len(palette))])
				dc.DrawStringAnchored(word.Text, (box.x0+box.x1)/2, (box.y0+box.y1)/2, 0.5, 0.35)
				placed = append(placed, box)
				fitted = true
				break
			}
			next := int(float64(size) * shrinkRatio)
			if next < opts.MinFontSize || next == size {
				break
			}
			size = next
		}
		// the canvas is full once a word no longer fits at the minimum size
		if !fitted {
			break
		}
		limit = size
	}
	return encodePNG(dc)
}

// findSlot walks an Archimedean spiral from the centre until a box of tw×th
// fits inside the canvas without touching any placed box.
func findSlot(cx, cy, tw, th, w, h, maxRadius float64, placed []rect, phase float64) (rect, bool) {
	if tw+2*wordPadding > w || th+2*wordPadding > h {
		return rect{}, false
	}
	for t := 0.0; ; t += spiralStep {
		r := spiralGrow * t
		if r > maxRadius {
			return rect{}, false
		}
		x := cx + r*math.Cos(t+phase)
		y := cy + r*math.Sin(t+phase)
		box := rect{
			x0: x - tw/2 - wordPadding,
			y0: y - th/2 - wordPadding,
			x1: x + tw/2 + wordPadding,
			y1: y + th/2 + wordPadding,
		}
		if box.x0 < 0 || box.y0 < 0 || box.x1 > w || box.y1 > h {
			continue
		}
		free := true
		for _, p := range placed {
			if box.overlaps(p) {
				free = false
				break
			}
		}
		if free {
			return box, true
		}
	}
}
