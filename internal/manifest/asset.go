package manifest

import "time"

type Asset struct {
	Variant     string    `db:"variant"`      // variant name, one row per variant
	Path        string    `db:"path"`         // output path relative to the project root
	Width       int       `db:"width"`        // canvas width in pixels
	Height      int       `db:"height"`       // canvas height in pixels
	Background  string    `db:"background"`   // hex background color, e.g. #000000
	ContentHash string    `db:"content_hash"` // SHA-256 of the encoded PNG
	SizeBytes   int64     `db:"size_bytes"`   // encoded PNG size
	GeneratedAt time.Time `db:"generated_at"`
}
