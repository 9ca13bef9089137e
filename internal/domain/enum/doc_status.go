package enum

// DocStatus represents the lifecycle state of a document
type DocStatus string

const (
	DocStatusDraft     DocStatus = "DRAFT"
	DocStatusSent      DocStatus = "SENT"
	DocStatusPaid      DocStatus = "PAID"
	DocStatusCancelled DocStatus = "CANCELLED"
)

// Valid reports whether the value is a known document status
func (s DocStatus) Valid() bool {
	switch s {
	case DocStatusDraft, DocStatusSent, DocStatusPaid, DocStatusCancelled:
		return true
	}
	return false
}
