package enum

// FiscalCategory is one of the three micro-entrepreneur tax buckets
type FiscalCategory string

const (
	FiscalBicVente  FiscalCategory = "BIC_VENTE"
	FiscalBicPresta FiscalCategory = "BIC_PRESTA"
	FiscalBnc       FiscalCategory = "BNC"
)

// FiscalCategories lists the categories in declaration order
var FiscalCategories = []FiscalCategory{FiscalBicVente, FiscalBicPresta, FiscalBnc}

// Valid reports whether the value is a known fiscal category
func (c FiscalCategory) Valid() bool {
	switch c {
	case FiscalBicVente, FiscalBicPresta, FiscalBnc:
		return true
	}
	return false
}

// Label returns the short French label used on PDFs
func (c FiscalCategory) Label() string {
	switch c {
	case FiscalBicVente:
		return "BIC Vente"
	case FiscalBicPresta:
		return "BIC Presta"
	case FiscalBnc:
		return "BNC"
	}
	return string(c)
}
