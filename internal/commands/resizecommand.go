package commands

import (
	"bytes"
	"fmt"
	"image/png"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/jo-hoe/gosplash/internal/commandstructure"
)

// ResizeParams represents typed parameters for the resize command
type ResizeParams struct {
	Height int
	Width  int
}

// NewResizeParamsFromMap creates ResizeParams from a generic map
func NewResizeParamsFromMap(params map[string]any) (*ResizeParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"height", "width"}); err != nil {
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

	return &ResizeParams{
		Height: height,
		Width:  width,
	}, nil
}

// ResizeCommand resamples an image to exact target dimensions.
// Aspect ratio is not preserved; the target size wins.
type ResizeCommand struct {
	name   string
	params *ResizeParams
}

// NewResizeCommand creates a new resize command from configuration parameters
func NewResizeCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewResizeParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &ResizeCommand{
		name:   "ResizeCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *ResizeCommand) Name() string {
	return c.name
}

// Execute resizes the image to the configured dimensions using Lanczos resampling
func (c *ResizeCommand) Execute(imageData []byte) ([]byte, error) {
	slog.Debug("ResizeCommand: decoding image",
		"input_size_bytes", len(imageData))

	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		slog.Error("ResizeCommand: failed to decode PNG image", "error", err)
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	targetWidth := c.params.Width
	targetHeight := c.params.Height

	// If target matches original dimensions, skip processing
	if targetWidth == originalWidth && targetHeight == originalHeight {
		slog.Debug("ResizeCommand: target dimensions equal original; skipping resize")
		return imageData, nil
	}

	slog.Debug("ResizeCommand: resampling",
		"original_width", originalWidth,
		"original_height", originalHeight,
		"target_width", targetWidth,
		"target_height", targetHeight)

	resized := imaging.Resize(img, targetWidth, targetHeight, imaging.Lanczos)

	var buf bytes.Buffer
	buf.Grow(targetWidth * targetHeight)
	if err := png.Encode(&buf, resized); err != nil {
		slog.Error("ResizeCommand: failed to encode resized image", "error", err)
		return nil, fmt.Errorf("failed to encode resized PNG image: %w", err)
	}

	slog.Debug("ResizeCommand: resize complete",
		"output_size_bytes", buf.Len())

	return buf.Bytes(), nil
}

// GetHeight returns the configured height
func (c *ResizeCommand) GetHeight() int {
	return c.params.Height
}

// GetWidth returns the configured width
func (c *ResizeCommand) GetWidth() int {
	return c.params.Width
}

// GetParams returns the typed parameters
func (c *ResizeCommand) GetParams() *ResizeParams {
	return c.params
}

func init() {
	// Register the command in the default registry
	if err := commandstructure.DefaultRegistry.Register("ResizeCommand", NewResizeCommand); err != nil {
		panic(fmt.Sprintf("failed to register ResizeCommand: %v", err))
	}
}
