package models

import "github.com/shopspring/decimal"

// Cost is a shared expense paid by one member of a group.
type Cost struct {
	// ID is the unique identifier for the cost (UUID format).
	ID string

	// GroupID is the group the cost belongs to.
	GroupID string

	// EventID links the cost to the event it was created with. Empty for
	// standalone costs.
	EventID string

	// Name is the human-readable description (e.g., "Cleaning supplies").
	Name string

	// Category is an optional free-form grouping (e.g., "utilities").
	Category string

	// Amount is the total paid, at currency scale (two decimal places).
	Amount decimal.Decimal

	// Payer is the username of the member who paid.
	Payer string

	// Shares is how the amount is divided. Order is significant: for even
	// splits the last share absorbs the rounding remainder.
	Shares []CostShare

	// CreatedAt is the Unix timestamp when the cost was recorded.
	CreatedAt int64
}

// CostShare is one member's portion of a cost.
type CostShare struct {
	Member string
	Amount decimal.Decimal
}
