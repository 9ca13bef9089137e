package enum

// ContactType tells whether a contact is billed, paid, or both
type ContactType string

const (
	ContactClient   ContactType = "CLIENT"
	ContactSupplier ContactType = "SUPPLIER"
	ContactBoth     ContactType = "BOTH"
)

// Valid reports whether the value is a known contact type
func (t ContactType) Valid() bool {
	switch t {
	case ContactClient, ContactSupplier, ContactBoth:
		return true
	}
	return false
}
