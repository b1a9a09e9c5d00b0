package distance

import (
	"fmt"
	"parcel-route-service/internal/ports"
)

type MockPair struct {
	From, To string
	Miles    float64
}

// MockOracle is a DistanceOracle backed by an explicit list of symmetric pairs.
// Addresses are indexed in order of first appearance.
type MockOracle struct {
	index map[string]int
	m     map[[2]int]float64
}

func NewMockOracle(pairs []MockPair) *MockOracle {
	o := &MockOracle{
		index: make(map[string]int),
		m:     make(map[[2]int]float64, 2*len(pairs)),
	}
	for _, p := range pairs {
		i, j := o.add(p.From), o.add(p.To)
		o.m[[2]int{i, j}] = p.Miles
		o.m[[2]int{j, i}] = p.Miles
	}
	return o
}

func (o *MockOracle) add(address string) int {
	if i, ok := o.index[address]; ok {
		return i
	}
	i := len(o.index)
	o.index[address] = i
	return i
}

func (o *MockOracle) IndexOf(address string) (int, error) {
	i, ok := o.index[address]
	if !ok {
		return 0, fmt.Errorf("missing address %q: %w", address, ports.ErrNotFound)
	}
	return i, nil
}

func (o *MockOracle) DistanceBetween(from string, to string) (float64, error) {
	i, err := o.IndexOf(from)
	if err != nil {
		return 0, err
	}
	j, err := o.IndexOf(to)
	if err != nil {
		return 0, err
	}
	if i == j {
		return 0, nil
	}

	d, ok := o.m[[2]int{i, j}]
	if !ok {
		return 0, fmt.Errorf("missing pair %q -> %q: %w", from, to, ports.ErrInvalidData)
	}
	return d, nil
}
