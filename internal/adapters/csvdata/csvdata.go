// Package csvdata reads the package list, the address table and the distance
// matrix from CSV files.
package csvdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"parcel-route-service/internal/domain"
	"strconv"
	"strings"
)

const packageFields = 7

// Read package rows: ID, address, city, state, zip, deadline, weight.
// Rows that are too short or have a non-numeric ID (headers included) are
// skipped with a diagnostic.
func ReadPackages(r io.Reader) ([]*domain.Package, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("read packages: %w", err)
	}

	pkgs := make([]*domain.Package, 0, len(rows))
	for i, row := range rows {
		if len(row) < packageFields {
			log.Printf("skipping package row %d: %d fields, want %d: %v", i+1, len(row), packageFields, row)
			continue
		}

		id, err := strconv.Atoi(row[0])
		if err != nil {
			log.Printf("skipping package row %d: invalid package id %q", i+1, row[0])
			continue
		}

		pkgs = append(pkgs, &domain.Package{
			PackageID: id,
			Address:   row[1],
			City:      row[2],
			State:     row[3],
			Zip:       row[4],
			Deadline:  row[5],
			Weight:    row[6],
			Status:    domain.StatusAtHub,
		})
	}

	return pkgs, nil
}

// Read address rows: index, name, label.
func ReadAddresses(r io.Reader) ([]domain.Address, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("read addresses: %w", err)
	}

	addresses := make([]domain.Address, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			log.Printf("skipping address row %d: %d fields, want 3: %v", i+1, len(row), row)
			continue
		}

		idx, err := strconv.Atoi(row[0])
		if err != nil {
			log.Printf("skipping address row %d: invalid index %q", i+1, row[0])
			continue
		}

		addresses = append(addresses, domain.Address{Index: idx, Name: row[1], Label: row[2]})
	}

	return addresses, nil
}

// Read the distance matrix. Cells are kept as text; an empty cell means the
// distance is stored in the transposed cell.
func ReadDistances(r io.Reader) ([][]string, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("read distances: %w", err)
	}
	return rows, nil
}

func LoadPackages(path string) ([]*domain.Package, error) {
	var pkgs []*domain.Package
	err := withFile(path, func(r io.Reader) (err error) {
		pkgs, err = ReadPackages(r)
		return err
	})
	return pkgs, err
}

func LoadAddresses(path string) ([]domain.Address, error) {
	var addresses []domain.Address
	err := withFile(path, func(r io.Reader) (err error) {
		addresses, err = ReadAddresses(r)
		return err
	})
	return addresses, err
}

func LoadDistances(path string) ([][]string, error) {
	var matrix [][]string
	err := withFile(path, func(r io.Reader) (err error) {
		matrix, err = ReadDistances(r)
		return err
	})
	return matrix, err
}

func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return fmt.Errorf("load %q: %w", path, err)
	}
	return nil
}

// readAll returns every record with fields trimmed and a leading byte order
// mark removed from the first field.
func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	for _, row := range rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		if len(row) > 0 {
			row[0] = strings.TrimPrefix(row[0], "\ufeff")
		}
	}
	return rows, nil
}
