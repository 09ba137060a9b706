package imaging

import (
	"errors"
	"fmt"
	"image"
)

// Side is the width and height of a decoded image.
const Side = 32

const planeSize = Side * Side

// RecordSize is the byte length of a channel-planar RGB record.
const RecordSize = 3 * planeSize

// ErrPixelLength is returned when a record does not hold exactly
// RecordSize bytes.
var ErrPixelLength = errors.New("imaging: invalid pixel record length")

// Decode converts a channel-planar record into an opaque RGBA image.
func Decode(pixels []byte) (*image.RGBA, error) {
	if len(pixels) != RecordSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrPixelLength, len(pixels), RecordSize)
	}

	img := image.NewRGBA(image.Rect(0, 0, Side, Side))
	red := pixels[:planeSize]
	green := pixels[planeSize : 2*planeSize]
	blue := pixels[2*planeSize:]

	for i := range planeSize {
		o := i * 4
		img.Pix[o] = red[i]
		img.Pix[o+1] = green[i]
		img.Pix[o+2] = blue[i]
		img.Pix[o+3] = 0xff
	}
	return img, nil
}
