package ports

// Contract for resolving addresses and the road distance between them.
type DistanceOracle interface {
	// Return the distance-matrix index bound to an address.
	IndexOf(address string) (int, error)
	// Return the distance in miles between two addresses.
	DistanceBetween(from string, to string) (float64, error)
}
