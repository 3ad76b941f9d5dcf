package commands

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/jo-hoe/gosplash/internal/commandstructure"
)

// RoundCornersParams represents typed parameters for the corner rounding command
type RoundCornersParams struct {
	Radius int
}

// NewRoundCornersParamsFromMap creates RoundCornersParams from a generic map
func NewRoundCornersParamsFromMap(params map[string]any) (*RoundCornersParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"radius"}); err != nil {
		return nil, err
	}

	radius := commandstructure.GetIntParam(params, "radius", -1)
	if radius < 0 {
		return nil, fmt.Errorf("radius must be zero or positive, got %d", radius)
	}

	return &RoundCornersParams{
		Radius: radius,
	}, nil
}

// RoundCornersCommand clips the four corners of an image to quarter-circle
// arcs by rewriting its alpha channel
type RoundCornersCommand struct {
	name   string
	params *RoundCornersParams
}

// NewRoundCornersCommand creates a new corner rounding command from configuration parameters
func NewRoundCornersCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewRoundCornersParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &RoundCornersCommand{
		name:   "RoundCornersCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *RoundCornersCommand) Name() string {
	return c.name
}

// Execute applies the corner mask to the image's alpha channel.
// The mask is intersected with any existing alpha, so pixels that were
// already transparent stay transparent.
func (c *RoundCornersCommand) Execute(imageData []byte) ([]byte, error) {
	radius := c.params.Radius

	// A zero radius leaves every pixel untouched
	if radius == 0 {
		slog.Debug("RoundCornersCommand: radius is zero; returning original bytes")
		return imageData, nil
	}

	slog.Debug("RoundCornersCommand: decoding image",
		"input_size_bytes", len(imageData),
		"radius", radius)

	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		slog.Error("RoundCornersCommand: failed to decode PNG image", "error", err)
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Corner regions must not overlap; the mask is undefined in that case
	minSide := width
	if height < minSide {
		minSide = height
	}
	if 2*radius > minSide {
		slog.Error("RoundCornersCommand: radius too large",
			"radius", radius,
			"width", width,
			"height", height)
		return nil, fmt.Errorf("radius %d exceeds half the smaller image dimension (%dx%d)", radius, width, height)
	}

	nrgba := imaging.Clone(img)
	mask := buildCornerMask(width, height, radius)

	parallelFor(height, func(y int) {
		rowStart := y * nrgba.Stride
		maskRow := y * mask.Stride
		for x := 0; x < width; x++ {
			m := mask.Pix[maskRow+x]
			if m == 0xFF {
				continue
			}
			ai := rowStart + x*4 + 3
			a := int(nrgba.Pix[ai])
			nrgba.Pix[ai] = uint8((a*int(m) + 127) / 255)
		}
	})

	var buf bytes.Buffer
	buf.Grow(width * height)
	if err := png.Encode(&buf, nrgba); err != nil {
		slog.Error("RoundCornersCommand: failed to encode masked image", "error", err)
		return nil, fmt.Errorf("failed to encode masked PNG image: %w", err)
	}

	slog.Debug("RoundCornersCommand: corner rounding complete",
		"output_size_bytes", buf.Len())

	return buf.Bytes(), nil
}

// GetRadius returns the configured radius
func (c *RoundCornersCommand) GetRadius() int {
	return c.params.Radius
}

// GetParams returns the typed parameters
func (c *RoundCornersCommand) GetParams() *RoundCornersParams {
	return c.params
}

// buildCornerMask produces the per-pixel opacity map: fully opaque everywhere
// except the four corner squares of side radius, which carry the quadrants of
// a single disc stamp of diameter 2*radius.
func buildCornerMask(width, height, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	for i := range mask.Pix {
		mask.Pix[i] = 0xFF
	}

	stamp := buildDiscStamp(radius)

	for y := 0; y < radius; y++ {
		topRow := y * mask.Stride
		bottomRow := (height - radius + y) * mask.Stride
		stampTop := y * stamp.Stride
		stampBottom := (radius + y) * stamp.Stride
		for x := 0; x < radius; x++ {
			mask.Pix[topRow+x] = stamp.Pix[stampTop+x]
			mask.Pix[topRow+width-radius+x] = stamp.Pix[stampTop+radius+x]
			mask.Pix[bottomRow+x] = stamp.Pix[stampBottom+x]
			mask.Pix[bottomRow+width-radius+x] = stamp.Pix[stampBottom+radius+x]
		}
	}

	return mask
}

// buildDiscStamp renders a filled circle inscribed in a 2*radius square into
// an alpha map. A pixel is opaque when its center lies inside the circle; the
// test runs in doubled coordinates to stay in integer arithmetic.
func buildDiscStamp(radius int) *image.Alpha {
	d := 2 * radius
	stamp := image.NewAlpha(image.Rect(0, 0, d, d))
	for y := 0; y < d; y++ {
		dy := 2*y + 1 - d
		row := y * stamp.Stride
		for x := 0; x < d; x++ {
			dx := 2*x + 1 - d
			if dx*dx+dy*dy <= d*d {
				stamp.Pix[row+x] = 0xFF
			}
		}
	}
	return stamp
}

func init() {
	// Register the command in the default registry
	if err := commandstructure.DefaultRegistry.Register("RoundCornersCommand", NewRoundCornersCommand); err != nil {
		panic(fmt.Sprintf("failed to register RoundCornersCommand: %v", err))
	}
}
