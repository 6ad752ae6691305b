package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CostForBalance represents a cost with the minimal information needed for balance calculations.
type CostForBalance struct {
	Payer  string
	Amount decimal.Decimal
	Shares []Share
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	Member      string
	NetBalance  decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid   decimal.Decimal // Total amount paid across all costs
	TotalOwed   decimal.Decimal // Total of this member's shares
	// Unallocated is the part of TotalPaid no share accounts for, left by
	// manual splits accepted within Tolerance. It is not owed by anyone.
	Unallocated decimal.Decimal
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// CalculateGroupBalances computes balances across the costs of a group.
//
// Algorithm:
//   - For each cost: payer contributed +amount, each share's member owes the share
//   - amount - sum(shares) is unallocated and credited to no one
//   - net_balance = total_paid - unallocated - total_owed, so balances sum to zero
//   - Debts are simplified by greedily matching debtors with creditors
//
// Results are sorted by member name.
func CalculateGroupBalances(costs []CostForBalance) ([]MemberBalance, []DebtEdge) {
	balances := make(map[string]*MemberBalance)
	get := func(member string) *MemberBalance {
		b, ok := balances[member]
		if !ok {
			b = &MemberBalance{Member: member}
			balances[member] = b
		}
		return b
	}

	for _, c := range costs {
		// Costs without a payer can't be attributed to anyone
		if c.Payer == "" {
			continue
		}
		payer := get(c.Payer)
		payer.TotalPaid = payer.TotalPaid.Add(c.Amount)
		payer.Unallocated = payer.Unallocated.Add(c.Amount.Sub(Sum(c.Shares)))
		for _, s := range c.Shares {
			b := get(s.Member)
			b.TotalOwed = b.TotalOwed.Add(s.Amount)
		}
	}

	memberBalances := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.NetBalance = b.TotalPaid.Sub(b.Unallocated).Sub(b.TotalOwed)
		memberBalances = append(memberBalances, *b)
	}
	sort.Slice(memberBalances, func(i, j int) bool {
		return memberBalances[i].Member < memberBalances[j].Member
	})

	return memberBalances, simplifyDebts(memberBalances)
}

// simplifyDebts matches debtors with creditors to minimize transactions.
func simplifyDebts(balances []MemberBalance) []DebtEdge {
	type position struct {
		member string
		amount decimal.Decimal
	}
	var creditors, debtors []position
	for _, b := range balances {
		switch {
		case b.NetBalance.IsPositive():
			creditors = append(creditors, position{b.Member, b.NetBalance})
		case b.NetBalance.IsNegative():
			debtors = append(debtors, position{b.Member, b.NetBalance.Neg()})
		}
	}

	// Largest amounts first, ties broken by name
	byAmount := func(p []position) func(i, j int) bool {
		return func(i, j int) bool {
			if c := p[i].amount.Cmp(p[j].amount); c != 0 {
				return c > 0
			}
			return p[i].member < p[j].member
		}
	}
	sort.SliceStable(creditors, byAmount(creditors))
	sort.SliceStable(debtors, byAmount(debtors))

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)
		if amount.IsPositive() {
			edges = append(edges, DebtEdge{
				From:   debtors[i].member,
				To:     creditors[j].member,
				Amount: amount,
			})
		}

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if !debtors[i].amount.IsPositive() {
			i++
		}
		if !creditors[j].amount.IsPositive() {
			j++
		}
	}
	return edges
}
