package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

//go:embed catalog.json
var catalogFS embed.FS

// LoadCatalog reads the built-in level catalog: an ordered JSON array of
// schemas, played in sequence.
func LoadCatalog() ([]*Schema, error) {
	data, err := fs.ReadFile(catalogFS, "catalog.json")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parseCatalog(data)
}

// LoadCatalogFile reads a catalog from disk, for playtesting level sets
// outside the embedded one.
func LoadCatalogFile(path string) ([]*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) ([]*Schema, error) {
	var raw []*Schema
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	for i, s := range raw {
		s.Normalize()
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
	}
	return raw, nil
}
