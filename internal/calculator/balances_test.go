package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateGroupBalances(t *testing.T) {
	costs := []CostForBalance{
		{
			// Alice pays 90 split three ways
			Payer:  "Alice",
			Amount: d("90"),
			Shares: []Share{{"Alice", d("30")}, {"Bob", d("30")}, {"Charlie", d("30")}},
		},
		{
			// Bob pays 30 split with Charlie
			Payer:  "Bob",
			Amount: d("30"),
			Shares: []Share{{"Bob", d("15")}, {"Charlie", d("15")}},
		},
		{
			// Costs without a payer are ignored
			Amount: d("1000"),
			Shares: []Share{{"Alice", d("1000")}},
		},
	}

	balances, debts := CalculateGroupBalances(costs)

	want := map[string]string{"Alice": "60", "Bob": "-15", "Charlie": "-45"}
	if len(balances) != len(want) {
		t.Fatalf("got %d balances, want %d", len(balances), len(want))
	}
	net := decimal.Zero
	for i, b := range balances {
		if !b.NetBalance.Equal(d(want[b.Member])) {
			t.Errorf("%s net = %s, want %s", b.Member, b.NetBalance, want[b.Member])
		}
		if i > 0 && balances[i-1].Member > b.Member {
			t.Errorf("balances not sorted: %s before %s", balances[i-1].Member, b.Member)
		}
		net = net.Add(b.NetBalance)
	}
	if !net.IsZero() {
		t.Errorf("net balances sum to %s, want 0", net)
	}

	// Charlie owes the most and settles first
	if len(debts) != 2 {
		t.Fatalf("got %d debts, want 2: %+v", len(debts), debts)
	}
	if debts[0].From != "Charlie" || debts[0].To != "Alice" || !debts[0].Amount.Equal(d("45")) {
		t.Errorf("debt 0 = %+v, want Charlie -> Alice 45", debts[0])
	}
	if debts[1].From != "Bob" || debts[1].To != "Alice" || !debts[1].Amount.Equal(d("15")) {
		t.Errorf("debt 1 = %+v, want Bob -> Alice 15", debts[1])
	}
}

func TestCalculateGroupBalances_SettledGroup(t *testing.T) {
	costs := []CostForBalance{
		{Payer: "Alice", Amount: d("20"), Shares: []Share{{"Alice", d("10")}, {"Bob", d("10")}}},
		{Payer: "Bob", Amount: d("20"), Shares: []Share{{"Alice", d("10")}, {"Bob", d("10")}}},
	}
	balances, debts := CalculateGroupBalances(costs)
	if len(debts) != 0 {
		t.Errorf("expected no debts, got %+v", debts)
	}
	for _, b := range balances {
		if !b.NetBalance.IsZero() {
			t.Errorf("%s net = %s, want 0", b.Member, b.NetBalance)
		}
	}
}

func TestCalculateGroupBalances_ToleratedManualSplit(t *testing.T) {
	// Shares one cent short of the total pass ValidateManualSplit
	costs := []CostForBalance{
		{Payer: "Alice", Amount: d("100.00"), Shares: []Share{{"Alice", d("40.00")}, {"Bob", d("59.99")}}},
		{Payer: "Bob", Amount: d("10.00"), Shares: []Share{{"Alice", d("5.00")}, {"Bob", d("5.01")}}},
	}
	balances, _ := CalculateGroupBalances(costs)

	want := map[string]struct{ net, unallocated string }{
		"Alice": {"54.99", "0.01"},
		"Bob":   {"-54.99", "-0.01"},
	}
	net := decimal.Zero
	for _, b := range balances {
		w := want[b.Member]
		if !b.NetBalance.Equal(d(w.net)) {
			t.Errorf("%s net = %s, want %s", b.Member, b.NetBalance, w.net)
		}
		if !b.Unallocated.Equal(d(w.unallocated)) {
			t.Errorf("%s unallocated = %s, want %s", b.Member, b.Unallocated, w.unallocated)
		}
		net = net.Add(b.NetBalance)
	}
	if !net.IsZero() {
		t.Errorf("net balances sum to %s, want 0", net)
	}
}

func TestCalculateGroupBalances_Empty(t *testing.T) {
	balances, debts := CalculateGroupBalances(nil)
	if len(balances) != 0 || len(debts) != 0 {
		t.Errorf("expected empty results, got %v %v", balances, debts)
	}
}
