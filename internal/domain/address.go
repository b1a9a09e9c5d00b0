package domain

// A row of the address table. Label is the human readable text the
// distance oracle matches addresses against; Index is the row/column of
// the address in the distance matrix.
type Address struct {
	Index int
	Name  string
	Label string
}
