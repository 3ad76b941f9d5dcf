package commands

import (
	"image/color"
	"testing"

	"github.com/jo-hoe/gosplash/internal/commandstructure"
)

func TestNewFlattenParamsFromMap(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]any
		wantErr bool
	}{
		{
			name:   "Valid background",
			params: map[string]any{"background": "#F2F2F7"},
		},
		{
			name:    "Missing background",
			params:  map[string]any{},
			wantErr: true,
		},
		{
			name:    "Invalid background",
			params:  map[string]any{"background": "gray"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := NewFlattenParamsFromMap(tt.params)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if params.Background.A != 0xFF {
				t.Errorf("Expected opaque background color, got alpha %d", params.Background.A)
			}
		})
	}
}

func TestFlattenCommand_RemovesTransparency(t *testing.T) {
	// Left half opaque red, right half fully transparent
	img := createSolidPNG(8, 8, color.NRGBA{255, 0, 0, 255})
	decoded := decodeAlpha(t, img)
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			decoded.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 0})
		}
	}
	input := encodePNG(t, decoded)

	command, err := NewFlattenCommand(map[string]any{"background": "#F2F2F7"})
	if err != nil {
		t.Fatalf("Failed to create command: %v", err)
	}

	result, err := command.Execute(input)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	out := decodeAlpha(t, result)
	b := out.Bounds()
	if b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("Expected dimensions 8x8, got %dx%d", b.Dx(), b.Dy())
	}

	// Opaque pixels keep their color, transparent pixels take the background
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("Expected opaque pixel to keep its color, got %v", got)
	}
	if got := out.NRGBAAt(6, 6); got != (color.NRGBA{0xF2, 0xF2, 0xF7, 0xFF}) {
		t.Errorf("Expected transparent pixel to take background color, got %v", got)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := out.NRGBAAt(x, y).A; got != 255 {
				t.Fatalf("Expected fully opaque output, got alpha %d at (%d,%d)", got, x, y)
			}
		}
	}
}

func TestFlattenCommand_OpaqueInputUnchanged(t *testing.T) {
	input := createSolidPNG(6, 6, color.NRGBA{10, 20, 30, 255})

	command, err := NewFlattenCommand(map[string]any{"background": "#000000"})
	if err != nil {
		t.Fatalf("Failed to create command: %v", err)
	}

	result, err := command.Execute(input)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	out := decodeAlpha(t, result)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if got := out.NRGBAAt(x, y); got != (color.NRGBA{10, 20, 30, 255}) {
				t.Fatalf("Expected pixel values to survive flattening, got %v at (%d,%d)", got, x, y)
			}
		}
	}
}

func TestFlattenCommand_InvalidImageData(t *testing.T) {
	command, err := NewFlattenCommand(map[string]any{"background": "#000000"})
	if err != nil {
		t.Fatalf("Failed to create command: %v", err)
	}

	_, err = command.Execute([]byte("not an image"))
	if err == nil {
		t.Error("Expected error for invalid image data")
	}
}

func TestFlattenCommand_RegisteredInDefaultRegistry(t *testing.T) {
	if !commandstructure.DefaultRegistry.IsRegistered("FlattenCommand") {
		t.Error("Expected FlattenCommand to be registered in DefaultRegistry")
	}

	command, err := commandstructure.DefaultRegistry.Create("FlattenCommand", map[string]any{
		"background": "#000000",
	})
	if err != nil {
		t.Fatalf("Failed to create command via registry: %v", err)
	}

	if command.Name() != "FlattenCommand" {
		t.Errorf("Expected command name FlattenCommand, got %s", command.Name())
	}
}
