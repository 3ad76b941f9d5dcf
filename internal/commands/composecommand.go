package commands

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/jo-hoe/gosplash/internal/commandstructure"
)

// ComposeParams represents typed parameters for the compose command
type ComposeParams struct {
	Height     int
	Width      int
	Background color.NRGBA
	Opacity    float64
}

// NewComposeParamsFromMap creates ComposeParams from a generic map
func NewComposeParamsFromMap(params map[string]any) (*ComposeParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"height", "width", "background"}); err != nil {
		return nil, err
	}

	height := commandstructure.GetIntParam(params, "height", 0)
	width := commandstructure.GetIntParam(params, "width", 0)

	if height <= 0 {
		return nil, fmt.Errorf("height must be positive, got %d", height)
	}
	if width <= 0 {
		return nil, fmt.Errorf("width must be positive, got %d", width)
	}

	background, err := ParseHexColor(commandstructure.GetStringParam(params, "background", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid background: %w", err)
	}

	// Parse opacity (optional)
	opacity := 1.0
	if opacityParam, ok := params["opacity"]; ok {
		switch v := opacityParam.(type) {
		case float64:
			opacity = v
		case int:
			opacity = float64(v)
		default:
			return nil, fmt.Errorf("opacity must be a number")
		}
		if opacity < 0 || opacity > 1 {
			return nil, fmt.Errorf("opacity must be between 0 and 1, got %f", opacity)
		}
	}

	return &ComposeParams{
		Height:     height,
		Width:      width,
		Background: background,
		Opacity:    opacity,
	}, nil
}

// ComposeCommand alpha-composites an image onto the center of a solid-color
// canvas of the configured size
type ComposeCommand struct {
	name   string
	params *ComposeParams
}

// NewComposeCommand creates a new compose command from configuration parameters
func NewComposeCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewComposeParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &ComposeCommand{
		name:   "ComposeCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *ComposeCommand) Name() string {
	return c.name
}

// Execute centers the image on a freshly allocated canvas and blends it in.
// Placement uses floor division, so odd leftover space lands on the right and
// bottom edges.
func (c *ComposeCommand) Execute(imageData []byte) ([]byte, error) {
	slog.Debug("ComposeCommand: decoding image",
		"input_size_bytes", len(imageData))

	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		slog.Error("ComposeCommand: failed to decode PNG image", "error", err)
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	bounds := img.Bounds()
	imgWidth := bounds.Dx()
	imgHeight := bounds.Dy()

	canvasWidth := c.params.Width
	canvasHeight := c.params.Height

	offsetX := (canvasWidth - imgWidth) / 2
	offsetY := (canvasHeight - imgHeight) / 2

	slog.Debug("ComposeCommand: compositing onto canvas",
		"canvas_width", canvasWidth,
		"canvas_height", canvasHeight,
		"image_width", imgWidth,
		"image_height", imgHeight,
		"offset_x", offsetX,
		"offset_y", offsetY)

	canvas := imaging.New(canvasWidth, canvasHeight, c.params.Background)
	composed := imaging.Overlay(canvas, img, image.Pt(offsetX, offsetY), c.params.Opacity)

	var buf bytes.Buffer
	buf.Grow(canvasWidth * canvasHeight)
	if err := png.Encode(&buf, composed); err != nil {
		slog.Error("ComposeCommand: failed to encode composed image", "error", err)
		return nil, fmt.Errorf("failed to encode composed PNG image: %w", err)
	}

	slog.Debug("ComposeCommand: composition complete",
		"output_size_bytes", buf.Len())

	return buf.Bytes(), nil
}

// GetHeight returns the configured canvas height
func (c *ComposeCommand) GetHeight() int {
	return c.params.Height
}

// GetWidth returns the configured canvas width
func (c *ComposeCommand) GetWidth() int {
	return c.params.Width
}

// GetParams returns the typed parameters
func (c *ComposeCommand) GetParams() *ComposeParams {
	return c.params
}

func init() {
	// Register the command in the default registry
	if err := commandstructure.DefaultRegistry.Register("ComposeCommand", NewComposeCommand); err != nil {
		panic(fmt.Sprintf("failed to register ComposeCommand: %v", err))
	}
}
