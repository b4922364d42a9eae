package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce sync.Once
	baseFont *truetype.Font
	fontErr  error
)

// regularFont returns the parsed Go Regular font. The parsed font is read
// only; faces built from it are not and must stay local to one render call.
func regularFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		baseFont, fontErr = truetype.Parse(goregular.TTF)
	})
	return baseFont, fontErr
}

// faceCache builds faces per pixel size for the duration of a single render.
type faceCache struct {
	f     *truetype.Font
	faces map[int]font.Face
}

func newFaceCache() (*faceCache, error) {
	f, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &faceCache{f: f, faces: make(map[int]font.Face)}, nil
}

func (c *faceCache) face(size int) font.Face {
	if face, ok := c.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(c.f, &truetype.Options{Size: float64(size), Hinting: font.HintingNone})
	c.faces[size] = face
	return face
}

func (c *faceCache) close() {
	for _, face := range c.faces {
		face.Close()
	}
}
