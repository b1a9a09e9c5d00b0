package distance

import (
	"fmt"
	"log"
	"math"
	"parcel-route-service/internal/domain"
	"parcel-route-service/internal/hashtable"
	"parcel-route-service/internal/ports"
	"strconv"
	"strings"
)

// MatrixOracle implements DistanceOracle over an address table and a distance
// matrix in which only one triangle may be populated.
//
// Addresses are resolved by substring: the first row whose label contains the
// queried address wins. This tolerates formatting noise in the source data
// (suffixes, unit numbers) but can pick the wrong row when one address is a
// prefix of another, so labels should be distinct.
//
// Resolved indexes are memoized, so a MatrixOracle is not safe for concurrent use.
type MatrixOracle struct {
	addresses []domain.Address
	matrix    [][]string
	indexes   *hashtable.Table[string, int]
}

func NewMatrixOracle(addresses []domain.Address, matrix [][]string) *MatrixOracle {
	return &MatrixOracle{
		addresses: addresses,
		matrix:    matrix,
		indexes:   hashtable.New[string, int](len(addresses)),
	}
}

// Return the matrix index of the first address row whose label contains address.
func (o *MatrixOracle) IndexOf(address string) (int, error) {
	if strings.TrimSpace(address) == "" {
		return 0, fmt.Errorf("index of address: empty address: %w", ports.ErrNotFound)
	}

	if idx, ok := o.indexes.Lookup(address); ok {
		return idx, nil
	}

	for _, a := range o.addresses {
		if strings.Contains(a.Label, address) {
			o.indexes.Insert(address, a.Index)
			return a.Index, nil
		}
	}

	return 0, fmt.Errorf("index of address %q: %w", address, ports.ErrNotFound)
}

// Return the distance in miles between two addresses.
func (o *MatrixOracle) DistanceBetween(from string, to string) (float64, error) {
	i, err := o.IndexOf(from)
	if err != nil {
		return 0, fmt.Errorf("distance between: %w", err)
	}

	j, err := o.IndexOf(to)
	if err != nil {
		return 0, fmt.Errorf("distance between: %w", err)
	}

	return o.Distance(i, j)
}

// Return the distance between two matrix indexes. An empty cell defers to
// its transpose; the diagonal is zero without consulting the matrix.
func (o *MatrixOracle) Distance(i int, j int) (float64, error) {
	if i == j {
		return 0, nil
	}

	n := len(o.matrix)
	if i < 0 || j < 0 || i >= n || j >= n {
		log.Printf("distance lookup failed: start_index=%d end_index=%d size=%d err=out of range", i, j, n)
		return 0, fmt.Errorf("distance %d -> %d: matrix size %d: %w", i, j, n, ports.ErrOutOfRange)
	}

	cell := o.cell(i, j)
	if cell == "" {
		cell = o.cell(j, i)
	}

	d, err := strconv.ParseFloat(cell, 64)
	if err != nil || d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		log.Printf("distance lookup failed: start_index=%d end_index=%d cell=%q err=invalid data", i, j, cell)
		return 0, fmt.Errorf("distance %d -> %d: cell %q: %w", i, j, cell, ports.ErrInvalidData)
	}

	return d, nil
}

func (o *MatrixOracle) cell(i int, j int) string {
	row := o.matrix[i]
	if j >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[j])
}
