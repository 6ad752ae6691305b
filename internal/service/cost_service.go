package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/choretracker/internal/calculator"
	"github.com/mmynk/choretracker/internal/metrics"
	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/internal/storage"
	"github.com/mmynk/choretracker/pkg/api"
	"github.com/mmynk/choretracker/pkg/api/apiconnect"
)

var _ apiconnect.CostServiceHandler = (*CostService)(nil)

// Split modes, used as the metrics label for created costs.
const (
	splitEven   = "even"
	splitManual = "manual"
)

// CostService implements the Connect CostService.
type CostService struct {
	store storage.Store
}

// NewCostService creates a new CostService with the given storage backend.
func NewCostService(store storage.Store) *CostService {
	return &CostService{store: store}
}

// PreviewEvenSplit shows how a total would be divided evenly. Nothing is stored.
func (s *CostService) PreviewEvenSplit(ctx context.Context, req *connect.Request[api.PreviewEvenSplitRequest]) (*connect.Response[api.PreviewEvenSplitResponse], error) {
	slog.Info("PreviewEvenSplit request received",
		"total", req.Msg.Total,
		"participants_count", len(req.Msg.Participants),
	)

	shares, err := calculator.DistributeEvenly(req.Msg.Total, req.Msg.Participants)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.PreviewEvenSplitResponse{Shares: toAPIShares(shares)}), nil
}

// ValidateSplit checks manually entered shares against a total. A mismatch is
// reported in the response, with the amount still to assign, rather than as
// an error; malformed input is still an error.
func (s *CostService) ValidateSplit(ctx context.Context, req *connect.Request[api.ValidateSplitRequest]) (*connect.Response[api.ValidateSplitResponse], error) {
	slog.Info("ValidateSplit request received",
		"total", req.Msg.Total,
		"shares_count", len(req.Msg.Shares),
	)

	shares := fromAPIShares(req.Msg.Shares)
	resp := &api.ValidateSplitResponse{
		Valid:     true,
		Remaining: req.Msg.Total.Sub(calculator.Sum(shares)),
	}

	err := calculator.ValidateManualSplit(req.Msg.Total, shares)
	var mismatch *calculator.MismatchError
	switch {
	case errors.As(err, &mismatch):
		metrics.SplitMismatches.Inc()
		resp.Valid = false
		resp.Message = mismatch.Error()
	case err != nil:
		return nil, toConnectError(err)
	}

	return connect.NewResponse(resp), nil
}

// CreateCost records a cost in a group.
func (s *CostService) CreateCost(ctx context.Context, req *connect.Request[api.CreateCostRequest]) (*connect.Response[api.CreateCostResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateCost request received",
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
		"shares_count", len(req.Msg.Shares),
	)

	group, err := groupFor(ctx, s.store, req.Msg.GroupID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}

	if req.Msg.EventID != "" {
		event, err := s.store.GetEvent(ctx, req.Msg.EventID)
		if err != nil {
			return nil, toConnectError(err)
		}
		if event.GroupID != group.ID {
			return nil, invalidArgument("event %s belongs to another group", event.ID)
		}
	}

	cost, mode, err := buildCost(group, caller, "", req.Msg.CostInput)
	if err != nil {
		slog.Warn("CreateCost rejected", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}
	cost.GroupID = group.ID
	cost.EventID = req.Msg.EventID

	if err := s.store.CreateCost(ctx, cost); err != nil {
		slog.Error("CreateCost failed", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	metrics.CostsCreated.WithLabelValues(mode).Inc()

	slog.Info("Cost created", "cost_id", cost.ID, "group_id", group.ID, "mode", mode)
	return connect.NewResponse(&api.CreateCostResponse{Cost: toAPICost(cost)}), nil
}

// GetCost returns one cost with its shares. The caller must belong to the
// cost's group.
func (s *CostService) GetCost(ctx context.Context, req *connect.Request[api.GetCostRequest]) (*connect.Response[api.GetCostResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetCost request received", "cost_id", req.Msg.CostID)

	if strings.TrimSpace(req.Msg.CostID) == "" {
		return nil, invalidArgument("cost_id required")
	}
	cost, err := s.store.GetCost(ctx, req.Msg.CostID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := groupFor(ctx, s.store, cost.GroupID, caller); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetCostResponse{Cost: toAPICost(cost)}), nil
}

// ListCosts returns a group's costs, newest first.
func (s *CostService) ListCosts(ctx context.Context, req *connect.Request[api.ListCostsRequest]) (*connect.Response[api.ListCostsResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListCosts request received", "group_id", req.Msg.GroupID)

	group, err := groupFor(ctx, s.store, req.Msg.GroupID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}

	costs, err := s.store.ListCostsByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("ListCosts failed", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.ListCostsResponse{Costs: toAPICosts(costs)}), nil
}

// buildCost validates a cost against its group and computes its shares.
// Without explicit shares the amount is split evenly across the participants,
// or across every group member when no participants are named. It returns the
// split mode used.
func buildCost(group *models.Group, caller, defaultName string, in api.CostInput) (*models.Cost, string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = defaultName
	}
	if name == "" {
		return nil, "", invalidArgument("cost name required")
	}
	if err := calculator.ValidateAmount(in.Amount); err != nil {
		return nil, "", err
	}

	payer := strings.TrimSpace(in.Payer)
	if payer == "" {
		payer = caller
	}
	payer, ok := group.Member(payer)
	if !ok {
		return nil, "", invalidArgument("payer %s is not a member of the group", strings.TrimSpace(in.Payer))
	}

	var (
		shares []calculator.Share
		mode   string
	)
	if len(in.Shares) > 0 {
		names := make([]string, len(in.Shares))
		for i, share := range in.Shares {
			if strings.TrimSpace(share.Member) == "" {
				return nil, "", invalidArgument("share %d has no member", i+1)
			}
			names[i] = share.Member
		}
		members, err := groupMembersOnly(group, names)
		if err != nil {
			return nil, "", err
		}

		shares = fromAPIShares(in.Shares)
		for i := range shares {
			shares[i].Member = members[i]
		}
		for _, share := range shares {
			if err := calculator.ValidateAmount(share.Amount); err != nil {
				return nil, "", err
			}
		}
		if err := calculator.ValidateManualSplit(in.Amount, shares); err != nil {
			if errors.Is(err, calculator.ErrSplitMismatch) {
				metrics.SplitMismatches.Inc()
			}
			return nil, "", err
		}
		mode = splitManual
	} else {
		participants := group.Members
		if len(in.Participants) > 0 {
			var err error
			participants, err = groupMembersOnly(group, in.Participants)
			if err != nil {
				return nil, "", err
			}
		}

		var err error
		shares, err = calculator.DistributeEvenly(in.Amount, participants)
		if err != nil {
			return nil, "", err
		}
		mode = splitEven
	}

	return &models.Cost{
		Name:     name,
		Category: strings.TrimSpace(in.Category),
		Amount:   in.Amount,
		Payer:    payer,
		Shares:   toModelShares(shares),
	}, mode, nil
}
