package imaging

import (
	"bytes"
	"image"
	"image/png"
)

// Encoder serializes an image into a file format.
type Encoder interface {
	// Ext is the file extension including the dot, e.g. ".png".
	Ext() string
	Encode(img image.Image) ([]byte, error)
}

// PNGEncoder writes lossless PNG files.
type PNGEncoder struct {
	Level png.CompressionLevel
}

// PNG is the default encoder.
var PNG Encoder = PNGEncoder{Level: png.DefaultCompression}

// Ext implements Encoder.
func (PNGEncoder) Ext() string { return ".png" }

// Encode implements Encoder.
func (e PNGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: e.Level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
