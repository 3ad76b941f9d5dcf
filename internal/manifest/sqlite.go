package manifest

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteManifest struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteManifest(connectionString string) (ManifestService, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}

	return &SQLiteManifest{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteManifest) CreateManifest() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS assets (
		variant TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		background TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		size_bytes INTEGER NOT NULL,
		generated_at TIMESTAMP NOT NULL
	)`)
	return err
}

func (s *SQLiteManifest) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteManifest) DoesManifestExist() bool {
	// In SQLite, the database file is created when you connect to it.
	// So we can assume it exists if we can successfully ping the database.
	err := s.db.Ping()
	return err == nil
}

func (s *SQLiteManifest) RecordAsset(asset *Asset) error {
	if asset.GeneratedAt.IsZero() {
		asset.GeneratedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`INSERT INTO assets
		(variant, path, width, height, background, content_hash, size_bytes, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(variant) DO UPDATE SET
			path = excluded.path,
			width = excluded.width,
			height = excluded.height,
			background = excluded.background,
			content_hash = excluded.content_hash,
			size_bytes = excluded.size_bytes,
			generated_at = excluded.generated_at`,
		asset.Variant, asset.Path, asset.Width, asset.Height,
		asset.Background, asset.ContentHash, asset.SizeBytes, asset.GeneratedAt)
	return err
}

func (s *SQLiteManifest) GetAllAssets() ([]*Asset, error) {
	rows, err := s.db.Query(`SELECT variant, path, width, height, background,
		content_hash, size_bytes, generated_at FROM assets ORDER BY variant`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close() // Explicitly ignore error as we're already returning an error from the function
	}()

	var assets []*Asset
	for rows.Next() {
		var asset Asset
		if err := rows.Scan(&asset.Variant, &asset.Path, &asset.Width, &asset.Height,
			&asset.Background, &asset.ContentHash, &asset.SizeBytes, &asset.GeneratedAt); err != nil {
			return nil, err
		}
		assets = append(assets, &asset)
	}
	return assets, rows.Err()
}

func (s *SQLiteManifest) GetAssetByVariant(variant string) (*Asset, error) {
	row := s.db.QueryRow(`SELECT variant, path, width, height, background,
		content_hash, size_bytes, generated_at FROM assets WHERE variant = ?`, variant)

	var asset Asset
	if err := row.Scan(&asset.Variant, &asset.Path, &asset.Width, &asset.Height,
		&asset.Background, &asset.ContentHash, &asset.SizeBytes, &asset.GeneratedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

func (s *SQLiteManifest) DeleteAsset(variant string) error {
	_, err := s.db.Exec("DELETE FROM assets WHERE variant = ?", variant)
	return err
}
