package manifest

import (
	"testing"
	"time"
)

func newTestManifest(t *testing.T) ManifestService {
	t.Helper()

	ms, err := NewSQLiteManifest(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteManifest error: %v", err)
	}
	if err = ms.CreateManifest(); err != nil {
		t.Fatalf("CreateManifest error: %v", err)
	}
	t.Cleanup(func() { _ = ms.Close() })
	return ms
}

func testAsset(variant string) *Asset {
	return &Asset{
		Variant:     variant,
		Path:        "assets/" + variant + ".png",
		Width:       1284,
		Height:      2778,
		Background:  "#000000",
		ContentHash: "aabbcc",
		SizeBytes:   1024,
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteManifest_DoesManifestExist(t *testing.T) {
	ms := newTestManifest(t)
	if !ms.DoesManifestExist() {
		t.Fatalf("expected DoesManifestExist to return true")
	}
}

func TestSQLiteManifest_RecordAndGetByVariant(t *testing.T) {
	ms := newTestManifest(t)

	want := testAsset("splash-dark")
	if err := ms.RecordAsset(want); err != nil {
		t.Fatalf("RecordAsset error: %v", err)
	}

	got, err := ms.GetAssetByVariant("splash-dark")
	if err != nil {
		t.Fatalf("GetAssetByVariant error: %v", err)
	}
	if got == nil {
		t.Fatalf("GetAssetByVariant returned nil; expected asset")
	}
	if got.Variant != want.Variant {
		t.Errorf("expected variant %q, got %q", want.Variant, got.Variant)
	}
	if got.Path != want.Path {
		t.Errorf("expected path %q, got %q", want.Path, got.Path)
	}
	if got.Width != want.Width || got.Height != want.Height {
		t.Errorf("expected dimensions %dx%d, got %dx%d", want.Width, want.Height, got.Width, got.Height)
	}
	if got.Background != want.Background {
		t.Errorf("expected background %q, got %q", want.Background, got.Background)
	}
	if got.ContentHash != want.ContentHash {
		t.Errorf("expected content hash %q, got %q", want.ContentHash, got.ContentHash)
	}
	if got.SizeBytes != want.SizeBytes {
		t.Errorf("expected size %d, got %d", want.SizeBytes, got.SizeBytes)
	}
	if !got.GeneratedAt.Equal(want.GeneratedAt) {
		t.Errorf("expected generated_at %v, got %v", want.GeneratedAt, got.GeneratedAt)
	}

	// Non-existent variant returns nil without error
	missing, err := ms.GetAssetByVariant("splash-sepia")
	if err != nil {
		t.Fatalf("GetAssetByVariant(non-existent) error: %v", err)
	}
	if missing != nil {
		t.Fatalf("GetAssetByVariant(non-existent) returned non-nil; expected nil")
	}
}

func TestSQLiteManifest_RecordAsset_UpsertReplacesRow(t *testing.T) {
	ms := newTestManifest(t)

	first := testAsset("splash-dark")
	if err := ms.RecordAsset(first); err != nil {
		t.Fatalf("RecordAsset #1 error: %v", err)
	}

	second := testAsset("splash-dark")
	second.ContentHash = "ddeeff"
	second.SizeBytes = 2048
	if err := ms.RecordAsset(second); err != nil {
		t.Fatalf("RecordAsset #2 error: %v", err)
	}

	assets, err := ms.GetAllAssets()
	if err != nil {
		t.Fatalf("GetAllAssets error: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("expected 1 asset after re-recording same variant, got %d", len(assets))
	}
	if assets[0].ContentHash != "ddeeff" {
		t.Errorf("expected updated content hash, got %q", assets[0].ContentHash)
	}
	if assets[0].SizeBytes != 2048 {
		t.Errorf("expected updated size, got %d", assets[0].SizeBytes)
	}
}

func TestSQLiteManifest_RecordAsset_FillsGeneratedAt(t *testing.T) {
	ms := newTestManifest(t)

	asset := testAsset("splash-light")
	asset.GeneratedAt = time.Time{}
	if err := ms.RecordAsset(asset); err != nil {
		t.Fatalf("RecordAsset error: %v", err)
	}

	got, err := ms.GetAssetByVariant("splash-light")
	if err != nil {
		t.Fatalf("GetAssetByVariant error: %v", err)
	}
	if got == nil || got.GeneratedAt.IsZero() {
		t.Fatalf("expected generated_at to be filled on record, got %+v", got)
	}
}

func TestSQLiteManifest_GetAllAssets_OrderedByVariant(t *testing.T) {
	ms := newTestManifest(t)

	if err := ms.RecordAsset(testAsset("splash-light")); err != nil {
		t.Fatalf("RecordAsset #1 error: %v", err)
	}
	if err := ms.RecordAsset(testAsset("splash-dark")); err != nil {
		t.Fatalf("RecordAsset #2 error: %v", err)
	}

	assets, err := ms.GetAllAssets()
	if err != nil {
		t.Fatalf("GetAllAssets error: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assets))
	}
	if assets[0].Variant != "splash-dark" || assets[1].Variant != "splash-light" {
		t.Errorf("expected assets ordered by variant, got %q then %q", assets[0].Variant, assets[1].Variant)
	}
}

func TestSQLiteManifest_DeleteAsset(t *testing.T) {
	ms := newTestManifest(t)

	if err := ms.RecordAsset(testAsset("splash-dark")); err != nil {
		t.Fatalf("RecordAsset #1 error: %v", err)
	}
	if err := ms.RecordAsset(testAsset("splash-light")); err != nil {
		t.Fatalf("RecordAsset #2 error: %v", err)
	}

	if err := ms.DeleteAsset("splash-dark"); err != nil {
		t.Fatalf("DeleteAsset error: %v", err)
	}

	assets, err := ms.GetAllAssets()
	if err != nil {
		t.Fatalf("GetAllAssets error: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("expected 1 asset after deletion, got %d", len(assets))
	}
	if assets[0].Variant != "splash-light" {
		t.Fatalf("expected remaining variant %q, got %q", "splash-light", assets[0].Variant)
	}
}

func TestNewManifest_UnsupportedDriver(t *testing.T) {
	_, err := NewManifest("postgres", ":memory:")
	if err == nil {
		t.Fatalf("expected error for unsupported driver, got nil")
	}
}

func TestNewManifest_SQLite(t *testing.T) {
	ms, err := NewManifest("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("NewManifest error: %v", err)
	}
	t.Cleanup(func() { _ = ms.Close() })

	if !ms.DoesManifestExist() {
		t.Fatalf("expected manifest to exist after creation")
	}
}

func TestContentHash(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "Empty input",
			input: []byte{},
			want:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "Known vector",
			input: []byte("abc"),
			want:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentHash(tt.input); got != tt.want {
				t.Errorf("expected hash %q, got %q", tt.want, got)
			}
		})
	}
}
