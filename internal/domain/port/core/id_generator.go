package core

// IDGenerator produces unique identifiers for new domain records
type IDGenerator interface {
	NewID() string
}
