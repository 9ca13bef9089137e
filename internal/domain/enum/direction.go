package enum

// Direction marks a ledger transaction as money in or money out
type Direction string

const (
	DirectionIncome  Direction = "INCOME"
	DirectionExpense Direction = "EXPENSE"
)

// Valid reports whether the value is a known direction
func (d Direction) Valid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// Label returns the French label used in exports
func (d Direction) Label() string {
	if d == DirectionIncome {
		return "Recette"
	}
	return "Dépense"
}
