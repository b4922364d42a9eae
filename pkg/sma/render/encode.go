package render

import (
	"bytes"
	"encoding/base64"

	"github.com/fogleman/gg"
)

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeBase64 returns the standard base64 text of an encoded image.
func EncodeBase64(png []byte) string {
	return base64.StdEncoding.EncodeToString(png)
}
