package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"flightdesk-service/internal/domain/apperrors"
	"flightdesk-service/internal/domain/entity"
)

// LoadRoutes reads the read-only route table from <dir>/routes.json.
// The table is operator-supplied lookup data; an absent file yields an
// empty table, which rejects every booking until routes are configured.
func LoadRoutes(dir string) ([]entity.Route, error) {
	path := filepath.Join(dir, "routes.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []entity.Route{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read routes: %v", apperrors.ErrStoreUnavailable, err)
	}
	routes, err := decodeRecords[entity.Route](data)
	if err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	return routes, nil
}
