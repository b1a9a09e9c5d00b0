package domain

// Status is the delivery state of a package as of some query time.
type Status string

const (
	StatusAtHub     Status = "At Hub"
	StatusEnRoute   Status = "En route"
	StatusDelivered Status = "Delivered"
)

func (s Status) String() string { return string(s) }
