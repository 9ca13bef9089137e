package enum

// ActivityType is the declared activity of the micro-entrepreneur
type ActivityType string

const (
	ActivityBicVente  ActivityType = "BIC_VENTE"
	ActivityBicPresta ActivityType = "BIC_PRESTA"
	ActivityBnc       ActivityType = "BNC"
	ActivityMixed     ActivityType = "MIXED"
)

// Valid reports whether the value is a known activity type
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityBicVente, ActivityBicPresta, ActivityBnc, ActivityMixed:
		return true
	}
	return false
}

// DeclarationFrequency is how often URSSAF turnover is declared
type DeclarationFrequency string

const (
	DeclarationMonthly   DeclarationFrequency = "MONTHLY"
	DeclarationQuarterly DeclarationFrequency = "QUARTERLY"
)

// Valid reports whether the value is a known declaration frequency
func (f DeclarationFrequency) Valid() bool {
	return f == DeclarationMonthly || f == DeclarationQuarterly
}
