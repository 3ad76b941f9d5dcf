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

// FlattenParams represents typed parameters for the flatten command
type FlattenParams struct {
	Background color.NRGBA
}

// NewFlattenParamsFromMap creates FlattenParams from a generic map
func NewFlattenParamsFromMap(params map[string]any) (*FlattenParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"background"}); err != nil {
		return nil, err
	}

	background, err := ParseHexColor(commandstructure.GetStringParam(params, "background", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid background: %w", err)
	}

	return &FlattenParams{
		Background: background,
	}, nil
}

// FlattenCommand composites an image onto a fully opaque background of the
// same size, removing any residual transparency before the final encode
type FlattenCommand struct {
	name   string
	params *FlattenParams
}

// NewFlattenCommand creates a new flatten command from configuration parameters
func NewFlattenCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewFlattenParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &FlattenCommand{
		name:   "FlattenCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *FlattenCommand) Name() string {
	return c.name
}

// Execute composites the image onto an opaque canvas of the same dimensions.
// The result carries no alpha channel when encoded.
func (c *FlattenCommand) Execute(imageData []byte) ([]byte, error) {
	slog.Debug("FlattenCommand: decoding image",
		"input_size_bytes", len(imageData))

	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		slog.Error("FlattenCommand: failed to decode PNG image", "error", err)
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	slog.Debug("FlattenCommand: flattening onto opaque background",
		"width", width,
		"height", height)

	background := imaging.New(width, height, c.params.Background)
	flattened := imaging.Overlay(background, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	buf.Grow(width * height)
	if err := png.Encode(&buf, flattened); err != nil {
		slog.Error("FlattenCommand: failed to encode flattened image", "error", err)
		return nil, fmt.Errorf("failed to encode flattened PNG image: %w", err)
	}

	slog.Debug("FlattenCommand: flatten complete",
		"output_size_bytes", buf.Len())

	return buf.Bytes(), nil
}

// GetParams returns the typed parameters
func (c *FlattenCommand) GetParams() *FlattenParams {
	return c.params
}

func init() {
	// Register the command in the default registry
	if err := commandstructure.DefaultRegistry.Register("FlattenCommand", NewFlattenCommand); err != nil {
		panic(fmt.Sprintf("failed to register FlattenCommand: %v", err))
	}
}
