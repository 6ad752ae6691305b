package api

import "github.com/shopspring/decimal"

type Share struct {
	Member string          `json:"member"`
	Amount decimal.Decimal `json:"amount"`
}

type Cost struct {
	ID       string          `json:"id"`
	GroupID  string          `json:"groupId"`
	EventID  string          `json:"eventId,omitempty"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Payer    string          `json:"payer"`
	Shares   []Share         `json:"shares"`
	// CreatedAt is a Unix timestamp.
	CreatedAt int64 `json:"createdAt"`
}

// CostInput describes a cost to record. With no Shares the amount is split
// evenly across Participants (or every group member when that is empty too).
type CostInput struct {
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Payer        string          `json:"payer"`
	Participants []string        `json:"participants,omitempty"`
	Shares       []Share         `json:"shares,omitempty"`
}

type PreviewEvenSplitRequest struct {
	Total        decimal.Decimal `json:"total"`
	Participants []string        `json:"participants"`
}

type PreviewEvenSplitResponse struct {
	Shares []Share `json:"shares"`
}

type ValidateSplitRequest struct {
	Total  decimal.Decimal `json:"total"`
	Shares []Share         `json:"shares"`
}

type ValidateSplitResponse struct {
	Valid bool `json:"valid"`
	// Remaining is total minus the sum of the shares.
	Remaining decimal.Decimal `json:"remaining"`
	Message   string          `json:"message,omitempty"`
}

type CreateCostRequest struct {
	GroupID string `json:"groupId"`
	EventID string `json:"eventId,omitempty"`
	CostInput
}

type CreateCostResponse struct {
	Cost *Cost `json:"cost"`
}

type GetCostRequest struct {
	CostID string `json:"costId"`
}

type GetCostResponse struct {
	Cost *Cost `json:"cost"`
}

type ListCostsRequest struct {
	GroupID string `json:"groupId"`
}

type ListCostsResponse struct {
	Costs []*Cost `json:"costs"`
}
