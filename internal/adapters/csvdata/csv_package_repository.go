package csvdata

import (
	"context"
	"errors"
	"fmt"
	"parcel-route-service/internal/domain"
)

// CSV-backed implementation of the PackageRepository port.
type CSVPackageRepository struct{ Path string }

func NewCSVPackageRepository(path string) *CSVPackageRepository {
	return &CSVPackageRepository{Path: path}
}

// Return all packages listed in the file.
func (c *CSVPackageRepository) ListPackages(ctx context.Context) ([]*domain.Package, error) {
	if c.Path == "" {
		return nil, errors.New("csv package repository: path is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pkgs, err := LoadPackages(c.Path)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return pkgs, nil
}
