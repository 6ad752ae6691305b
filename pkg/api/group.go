package api

import "github.com/shopspring/decimal"

type Group struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	// Expiration is an ISO-8601 date, empty for permanent groups.
	Expiration string   `json:"expiration,omitempty"`
	Timezone   string   `json:"timezone,omitempty"`
	Creator    string   `json:"creator"`
	Members    []string `json:"members"`
	CreatedAt  int64    `json:"createdAt"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
	// Members are added alongside the caller, who always joins the group.
	Members    []string `json:"members,omitempty"`
	Expiration string   `json:"expiration,omitempty"`
	Timezone   string   `json:"timezone,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
	// Users holds the profiles of the group's members, in member order.
	Users []*User `json:"users"`
}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// Outcomes reported per username by AddMembers.
const (
	MemberAdded         = "added"
	MemberNotFound      = "not_found"
	MemberAlreadyMember = "already_member"
)

type AddMembersRequest struct {
	GroupID   string   `json:"groupId"`
	Usernames []string `json:"usernames"`
}

type MemberResult struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

type AddMembersResponse struct {
	Results []MemberResult `json:"results"`
	Group   *Group         `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

// MemberBalance is positive when the member is owed money.
type MemberBalance struct {
	Member      string          `json:"member"`
	NetBalance  decimal.Decimal `json:"netBalance"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	TotalOwed   decimal.Decimal `json:"totalOwed"`
	// Unallocated is paid money no share covers, from splits within tolerance.
	Unallocated decimal.Decimal `json:"unallocated"`
}

// Debt is a suggested payment that settles part of the group's balances.
type Debt struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type GetGroupBalancesResponse struct {
	Balances []MemberBalance `json:"balances"`
	Debts    []Debt          `json:"debts"`
}
