package domain

import "strings"

// Table is the name of a mongo collection
type Table string

const (
	TableListings Table = "listings"
)

// Email is an identity key. Comparisons are case-insensitive.
type Email string

func (e Email) ToLower() Email {
	return Email(strings.ToLower(string(e)))
}

func (e Email) Equals(other Email) bool {
	return e.ToLower() == other.ToLower()
}
