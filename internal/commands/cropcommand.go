package commands

import (
	"bytes"
	"fmt"
	"image/png"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/jo-hoe/gosplash/internal/commandstructure"
)

// CropParams represents typed parameters for the crop command
type CropParams struct {
	Height int
	Width  int
}

// NewCropParamsFromMap creates CropParams from a generic map
func NewCropParamsFromMap(params map[string]any) (*CropParams, error) {
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

	return &CropParams{
		Height: height,
		Width:  width,
	}, nil
}

// CropCommand trims an image to the configured dimensions around its center
type CropCommand struct {
	name   string
	params *CropParams
}

// NewCropCommand creates a new crop command from configuration parameters
func NewCropCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewCropParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &CropCommand{
		name:   "CropCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *CropCommand) Name() string {
	return c.name
}

// Execute crops the image to the configured dimensions (center crop)
func (c *CropCommand) Execute(imageData []byte) ([]byte, error) {
	slog.Debug("CropCommand: decoding image",
		"input_size_bytes", len(imageData))

	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		slog.Error("CropCommand: failed to decode PNG image", "error", err)
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	cropWidth := c.params.Width
	cropHeight := c.params.Height

	// If requested dimensions cover the full image, return original
	if cropWidth >= originalWidth && cropHeight >= originalHeight {
		slog.Debug("CropCommand: no crop needed, dimensions already smaller or equal")
		return imageData, nil
	}

	// Limit crop dimensions to original size
	if cropWidth > originalWidth {
		cropWidth = originalWidth
	}
	if cropHeight > originalHeight {
		cropHeight = originalHeight
	}

	slog.Debug("CropCommand: performing center crop",
		"original_width", originalWidth,
		"original_height", originalHeight,
		"crop_width", cropWidth,
		"crop_height", cropHeight)

	cropped := imaging.CropCenter(img, cropWidth, cropHeight)

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		slog.Error("CropCommand: failed to encode cropped image", "error", err)
		return nil, fmt.Errorf("failed to encode cropped PNG image: %w", err)
	}

	slog.Debug("CropCommand: crop complete",
		"output_size_bytes", buf.Len())

	return buf.Bytes(), nil
}

// GetHeight returns the configured height
func (c *CropCommand) GetHeight() int {
	return c.params.Height
}

// GetWidth returns the configured width
func (c *CropCommand) GetWidth() int {
	return c.params.Width
}

// GetParams returns the typed parameters
func (c *CropCommand) GetParams() *CropParams {
	return c.params
}

func init() {
	// Register the command in the default registry
	if err := commandstructure.DefaultRegistry.Register("CropCommand", NewCropCommand); err != nil {
		panic(fmt.Sprintf("failed to register CropCommand: %v", err))
	}
}
