// Package preview decodes a selected maze image into something a terminal can
// display: a data URI for the original bytes, the decoded dimensions and a
// small character thumbnail. It never touches the network.
package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	// Registered decoders for the accepted upload types
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/yildizm/MazeSolve/internal/upload"
)

// DefaultThumbnailWidth is the thumbnail width in terminal cells
const DefaultThumbnailWidth = 48

// ReasonDecodeFailed is shown when a validated file cannot be decoded
const ReasonDecodeFailed = "Could not decode image preview"

// ramp maps dark to light; maze walls are dark, corridors light
var ramp = []rune("█▓▒░ ")

// Image is a decoded, displayable preview
type Image struct {
	Name      string   `json:"name"`
	Format    string   `json:"format"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	DataURI   string   `json:"-"`
	Thumbnail []string `json:"-"`
}

// Options configures preview rendering
type Options struct {
	ThumbnailWidth int
}

// Renderer decodes candidates into previews
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer; a non-positive width selects the default
func NewRenderer(opts Options) *Renderer {
	if opts.ThumbnailWidth <= 0 {
		opts.ThumbnailWidth = DefaultThumbnailWidth
	}
	return &Renderer{opts: opts}
}

// Render decodes the candidate. Decode failures are reported as
// UnsupportedType so callers handle them like any other rejected file.
func (r *Renderer) Render(ctx context.Context, c *upload.Candidate) (*Image, error) {
	if c == nil {
		return nil, upload.NewError(upload.KindNoFileSelected, upload.ReasonNoFile)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := c.ReadAll()
	if err != nil {
		return nil, upload.NewErrorWithCause(upload.KindUnsupportedType, ReasonDecodeFailed, err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, upload.NewErrorWithCause(upload.KindUnsupportedType, ReasonDecodeFailed, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &Image{
		Name:      c.Name,
		Format:    format,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		DataURI:   DataURI(c.Type, data),
		Thumbnail: Thumbnail(img, r.opts.ThumbnailWidth),
	}, nil
}

// Dimensions returns a "WxH" label
func (i *Image) Dimensions() string {
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// DataURI encodes data as a base64 data URI
func DataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Thumbnail downsamples img to at most width cells. Terminal cells are about
// twice as tall as wide, so each row covers two source rows per column.
func Thumbnail(img image.Image, width int) []string {
	bounds := img.Bounds()
	if bounds.Empty() || width <= 0 {
		return nil
	}

	if bounds.Dx() < width {
		width = bounds.Dx()
	}
	step := float64(bounds.Dx()) / float64(width)
	height := int(float64(bounds.Dy()) / (step * 2))
	if height < 1 {
		height = 1
	}
	rowStep := float64(bounds.Dy()) / float64(height)

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		line := make([]rune, 0, width)
		y := bounds.Min.Y + int(float64(row)*rowStep)
		for col := 0; col < width; col++ {
			x := bounds.Min.X + int(float64(col)*step)
			line = append(line, shade(img.At(x, y)))
		}
		lines = append(lines, string(line))
	}
	return lines
}

func shade(c color.Color) rune {
	gray := color.GrayModel.Convert(c).(color.Gray)
	idx := int(gray.Y) * len(ramp) / 256
	return ramp[idx]
}
