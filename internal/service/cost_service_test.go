package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/choretracker/pkg/api"
)

func TestPreviewEvenSplit(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	resp, err := env.costs.PreviewEvenSplit(ctx, as("alice", &api.PreviewEvenSplitRequest{
		Total:        dec("100.00"),
		Participants: []string{"a", "b", "c"},
	}))
	if err != nil {
		t.Fatalf("PreviewEvenSplit failed: %v", err)
	}

	want := []api.Share{
		{Member: "a", Amount: dec("33.33")},
		{Member: "b", Amount: dec("33.33")},
		{Member: "c", Amount: dec("33.34")},
	}
	if len(resp.Msg.Shares) != len(want) {
		t.Fatalf("expected %d shares, got %v", len(want), resp.Msg.Shares)
	}
	for i, w := range want {
		got := resp.Msg.Shares[i]
		if got.Member != w.Member || !got.Amount.Equal(w.Amount) {
			t.Errorf("share %d: expected %s %s, got %s %s", i, w.Member, w.Amount, got.Member, got.Amount)
		}
	}

	_, err = env.costs.PreviewEvenSplit(ctx, as("alice", &api.PreviewEvenSplitRequest{Total: dec("10")}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = env.costs.PreviewEvenSplit(ctx, as("alice", &api.PreviewEvenSplitRequest{
		Total:        dec("10.005"),
		Participants: []string{"a"},
	}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestValidateSplit(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name          string
		total         string
		shares        []string
		wantValid     bool
		wantRemaining string
	}{
		{"exact", "20.00", []string{"10.00", "10.00"}, true, "0"},
		{"within tolerance", "20.00", []string{"10.00", "9.99"}, true, "0.01"},
		{"short", "20.00", []string{"10.00", "9.50"}, false, "0.50"},
		{"over", "20.00", []string{"15.00", "10.00"}, false, "-5.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := make([]api.Share, len(tt.shares))
			for i, amount := range tt.shares {
				shares[i] = api.Share{Member: string(rune('a' + i)), Amount: dec(amount)}
			}
			resp, err := env.costs.ValidateSplit(ctx, as("alice", &api.ValidateSplitRequest{
				Total:  dec(tt.total),
				Shares: shares,
			}))
			if err != nil {
				t.Fatalf("ValidateSplit failed: %v", err)
			}
			if resp.Msg.Valid != tt.wantValid {
				t.Errorf("valid: expected %v, got %v", tt.wantValid, resp.Msg.Valid)
			}
			if !resp.Msg.Remaining.Equal(dec(tt.wantRemaining)) {
				t.Errorf("remaining: expected %s, got %s", tt.wantRemaining, resp.Msg.Remaining)
			}
			if !tt.wantValid && !strings.Contains(resp.Msg.Message, "remaining: "+tt.wantRemaining) {
				t.Errorf("message %q does not report the remainder", resp.Msg.Message)
			}
		})
	}

	_, err := env.costs.ValidateSplit(ctx, as("alice", &api.ValidateSplitRequest{Total: dec("20")}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestCreateCost(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	env.addUsers(t, "alice", "bob", "carol", "dave")
	ctx := context.Background()
	group := env.createGroup(t, "alice", "bob", "carol")

	t.Run("even split across all members by default", func(t *testing.T) {
		resp, err := env.costs.CreateCost(ctx, as("bob", &api.CreateCostRequest{
			GroupID:   group.ID,
			CostInput: api.CostInput{Name: "Internet", Category: "utilities", Amount: dec("100")},
		}))
		if err != nil {
			t.Fatalf("CreateCost failed: %v", err)
		}
		cost := resp.Msg.Cost
		if cost.Payer != "bob" || len(cost.Shares) != 3 {
			t.Fatalf("unexpected cost: %+v", cost)
		}
		if cost.Shares[2].Member != "carol" || !cost.Shares[2].Amount.Equal(dec("33.34")) {
			t.Errorf("last share should absorb the remainder, got %+v", cost.Shares[2])
		}
	})

	t.Run("manual split", func(t *testing.T) {
		resp, err := env.costs.CreateCost(ctx, as("alice", &api.CreateCostRequest{
			GroupID: group.ID,
			CostInput: api.CostInput{
				Name:   "Dinner",
				Amount: dec("45.00"),
				Payer:  "carol",
				Shares: []api.Share{
					{Member: "alice", Amount: dec("20.00")},
					{Member: "carol", Amount: dec("25.00")},
				},
			},
		}))
		if err != nil {
			t.Fatalf("CreateCost failed: %v", err)
		}
		if resp.Msg.Cost.Payer != "carol" || len(resp.Msg.Cost.Shares) != 2 {
			t.Errorf("unexpected cost: %+v", resp.Msg.Cost)
		}
	})

	tests := []struct {
		name   string
		caller string
		input  api.CostInput
		code   connect.Code
	}{
		{"payer not a member", "alice", api.CostInput{Name: "x", Amount: dec("5"), Payer: "dave"}, connect.CodeInvalidArgument},
		{"participant not a member", "alice", api.CostInput{Name: "x", Amount: dec("5"), Participants: []string{"dave"}}, connect.CodeInvalidArgument},
		{"share member not a member", "alice", api.CostInput{Name: "x", Amount: dec("5"), Shares: []api.Share{{Member: "dave", Amount: dec("5")}}}, connect.CodeInvalidArgument},
		{"mismatch", "alice", api.CostInput{Name: "x", Amount: dec("5"), Shares: []api.Share{{Member: "bob", Amount: dec("4")}}}, connect.CodeInvalidArgument},
		{"missing name", "alice", api.CostInput{Amount: dec("5")}, connect.CodeInvalidArgument},
		{"caller not a member", "dave", api.CostInput{Name: "x", Amount: dec("5")}, connect.CodePermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.costs.CreateCost(ctx, as(tt.caller, &api.CreateCostRequest{
				GroupID:   group.ID,
				CostInput: tt.input,
			}))
			expectCode(t, err, tt.code)
		})
	}

	t.Run("ListCosts newest first", func(t *testing.T) {
		resp, err := env.costs.ListCosts(ctx, as("carol", &api.ListCostsRequest{GroupID: group.ID}))
		if err != nil {
			t.Fatalf("ListCosts failed: %v", err)
		}
		if len(resp.Msg.Costs) != 2 {
			t.Fatalf("expected 2 costs, got %d", len(resp.Msg.Costs))
		}
		if resp.Msg.Costs[0].Name != "Dinner" {
			t.Errorf("expected Dinner first, got %s", resp.Msg.Costs[0].Name)
		}
	})
}

func TestGetCost(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	env.addUsers(t, "alice", "bob", "carol")
	ctx := context.Background()
	group := env.createGroup(t, "alice", "bob")

	created, err := env.costs.CreateCost(ctx, as("alice", &api.CreateCostRequest{
		GroupID:   group.ID,
		CostInput: api.CostInput{Name: "Soap", Category: "household", Amount: dec("7.50")},
	}))
	if err != nil {
		t.Fatalf("CreateCost failed: %v", err)
	}

	resp, err := env.costs.GetCost(ctx, as("bob", &api.GetCostRequest{CostID: created.Msg.Cost.ID}))
	if err != nil {
		t.Fatalf("GetCost failed: %v", err)
	}
	cost := resp.Msg.Cost
	if cost.Name != "Soap" || cost.Category != "household" || !cost.Amount.Equal(dec("7.50")) {
		t.Errorf("unexpected cost: %+v", cost)
	}
	if len(cost.Shares) != 2 || !cost.Shares[0].Amount.Equal(dec("3.75")) {
		t.Errorf("unexpected shares: %+v", cost.Shares)
	}

	tests := []struct {
		name   string
		caller string
		costID string
		code   connect.Code
	}{
		{"not a member", "carol", created.Msg.Cost.ID, connect.CodePermissionDenied},
		{"unknown cost", "alice", "missing", connect.CodeNotFound},
		{"missing id", "alice", "", connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.costs.GetCost(ctx, as(tt.caller, &api.GetCostRequest{CostID: tt.costID}))
			expectCode(t, err, tt.code)
		})
	}
}

func TestCreateCost_MemberNamesIgnoreCase(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	env.addUsers(t, "alice", "bob")
	ctx := context.Background()
	group := env.createGroup(t, "alice", "bob")

	even, err := env.costs.CreateCost(ctx, as("alice", &api.CreateCostRequest{
		GroupID:   group.ID,
		CostInput: api.CostInput{Name: "Milk", Amount: dec("4.00"), Payer: "BOB", Participants: []string{"Alice", "Bob"}},
	}))
	if err != nil {
		t.Fatalf("CreateCost failed: %v", err)
	}
	if c := even.Msg.Cost; c.Payer != "bob" || c.Shares[0].Member != "alice" || c.Shares[1].Member != "bob" {
		t.Errorf("expected stored spellings, got %+v", c)
	}

	manual, err := env.costs.CreateCost(ctx, as("alice", &api.CreateCostRequest{
		GroupID: group.ID,
		CostInput: api.CostInput{
			Name:   "Bread",
			Amount: dec("3.00"),
			Shares: []api.Share{{Member: "BOB", Amount: dec("3.00")}},
		},
	}))
	if err != nil {
		t.Fatalf("CreateCost failed: %v", err)
	}
	if got := manual.Msg.Cost.Shares[0].Member; got != "bob" {
		t.Errorf("expected share for bob, got %s", got)
	}

	_, err = env.costs.CreateCost(ctx, as("alice", &api.CreateCostRequest{
		GroupID:   group.ID,
		CostInput: api.CostInput{Name: "Eggs", Amount: dec("2.00"), Participants: []string{"bob", "Bob"}},
	}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestCreateCost_EventFromOtherGroup(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	env.addUsers(t, "alice")
	ctx := context.Background()
	home := env.createGroup(t, "alice")
	work := env.createGroup(t, "alice")
	event := env.createEvent(t, &api.CreateEventRequest{GroupID: work.ID, Name: "Lunch", FirstDate: "2025-03-26"})

	_, err := env.costs.CreateCost(ctx, as("alice", &api.CreateCostRequest{
		GroupID:   home.ID,
		EventID:   event.ID,
		CostInput: api.CostInput{Name: "Lunch", Amount: dec("12")},
	}))
	expectCode(t, err, connect.CodeInvalidArgument)
}
