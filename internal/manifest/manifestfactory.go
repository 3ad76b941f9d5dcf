package manifest

import (
	"fmt"
	"log"
)

func NewManifest(manifestType, connectionString string) (service ManifestService, err error) {
	switch manifestType {
	case "sqlite":
		service, err = NewSQLiteManifest(connectionString)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported manifest driver: %s", manifestType)
	}

	// Ensure manifest schema exists (idempotent), important for in-memory SQLite
	log.Print("initializing manifest schema (ensuring tables exist)")
	if err = service.CreateManifest(); err != nil {
		return nil, fmt.Errorf("failed to create manifest: %w", err)
	}

	return service, nil
}
