package manifest

type ManifestService interface {
	CreateManifest() error
	DoesManifestExist() bool
	Close() error

	// RecordAsset inserts or replaces the manifest row for the asset's variant,
	// so regenerating a splash screen never leaves stale rows behind.
	RecordAsset(asset *Asset) error
	GetAllAssets() ([]*Asset, error)
	GetAssetByVariant(variant string) (*Asset, error)
	DeleteAsset(variant string) error
}
