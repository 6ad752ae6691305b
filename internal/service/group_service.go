package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/choretracker/internal/calculator"
	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/internal/recurrence"
	"github.com/mmynk/choretracker/internal/storage"
	"github.com/mmynk/choretracker/pkg/api"
	"github.com/mmynk/choretracker/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group. The caller becomes its creator and first
// member; every other listed member must be a registered user.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"creator", caller,
		"members_count", len(req.Msg.Members),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("group name required")
	}

	group := &models.Group{
		Name:     name,
		Status:   models.GroupStatusActive,
		Timezone: strings.TrimSpace(req.Msg.Timezone),
		Creator:  caller,
		Members:  []string{caller},
	}
	if group.Timezone != "" {
		if _, err := time.LoadLocation(group.Timezone); err != nil {
			return nil, invalidArgument("unknown timezone %q", group.Timezone)
		}
	}
	if req.Msg.Expiration != "" {
		exp, err := recurrence.ParseDate(req.Msg.Expiration)
		if err != nil {
			return nil, invalidArgument("expiration: %v", err)
		}
		group.Expiration = &exp
	}

	for _, requested := range req.Msg.Members {
		if strings.TrimSpace(requested) == "" {
			continue
		}
		user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(requested))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("user %q not found", requested))
			}
			return nil, toConnectError(err)
		}
		if !group.HasMember(user.Username) {
			group.Members = append(group.Members, user.Username)
		}
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Group created", "group_id", group.ID, "members", len(group.Members))

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID together with its members' profiles.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := groupFor(ctx, s.store, req.Msg.GroupID, caller)
	if err != nil {
		slog.Warn("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	users, err := s.store.GetUsersByUsernames(ctx, group.Members)
	if err != nil {
		slog.Error("GetGroup failed to load members", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.GetGroupResponse{
		Group: toAPIGroup(group),
		Users: make([]*api.User, 0, len(group.Members)),
	}
	for _, member := range group.Members {
		if user, ok := users[member]; ok {
			resp.Users = append(resp.Users, toAPIUser(user))
		}
	}

	return connect.NewResponse(resp), nil
}

// ListGroups retrieves the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListGroupsResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListGroups request received", "username", caller)

	groups, err := s.store.ListGroupsForMember(ctx, caller)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.ListGroupsResponse{Groups: make([]*api.Group, len(groups))}
	for i, group := range groups {
		resp.Groups[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(resp), nil
}

// AddMembers adds registered users to a group. Each requested username gets
// its own outcome: added, not_found or already_member.
func (s *GroupService) AddMembers(ctx context.Context, req *connect.Request[api.AddMembersRequest]) (*connect.Response[api.AddMembersResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddMembers request received",
		"group_id", req.Msg.GroupID,
		"usernames_count", len(req.Msg.Usernames),
	)

	group, err := groupFor(ctx, s.store, req.Msg.GroupID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}

	var (
		results []api.MemberResult
		toAdd   []string
	)
	for _, requested := range req.Msg.Usernames {
		requested = strings.TrimSpace(requested)
		if requested == "" {
			continue
		}

		user, err := s.store.GetUserByUsername(ctx, requested)
		if errors.Is(err, storage.ErrNotFound) {
			results = append(results, api.MemberResult{Username: requested, Status: api.MemberNotFound})
			continue
		}
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}

		if group.HasMember(user.Username) {
			results = append(results, api.MemberResult{Username: user.Username, Status: api.MemberAlreadyMember})
			continue
		}
		group.Members = append(group.Members, user.Username)
		toAdd = append(toAdd, user.Username)
		results = append(results, api.MemberResult{Username: user.Username, Status: api.MemberAdded})
	}

	if len(toAdd) > 0 {
		if err := s.store.AddGroupMembers(ctx, group.ID, toAdd); err != nil {
			slog.Error("AddMembers failed", "group_id", group.ID, "error", err)
			return nil, toConnectError(err)
		}
	}

	slog.Info("Members added", "group_id", group.ID, "added", len(toAdd))
	return connect.NewResponse(&api.AddMembersResponse{
		Results: results,
		Group:   toAPIGroup(group),
	}), nil
}

// DeleteGroup removes a group by ID. Only the creator may delete a group.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[emptypb.Empty], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	group, err := groupFor(ctx, s.store, req.Msg.GroupID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}
	if group.Creator != caller {
		return nil, toConnectError(errNotCreator)
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		slog.Error("DeleteGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", group.ID)
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// GetGroupBalances calculates balances across all costs in a group.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetGroupBalances request received", "group_id", req.Msg.GroupID)

	group, err := groupFor(ctx, s.store, req.Msg.GroupID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}

	costs, err := s.store.ListCostsByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("GetGroupBalances failed - could not list costs", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	forBalance := make([]calculator.CostForBalance, len(costs))
	for i, cost := range costs {
		shares := make([]calculator.Share, len(cost.Shares))
		for j, share := range cost.Shares {
			shares[j] = calculator.Share{Member: share.Member, Amount: share.Amount}
		}
		forBalance[i] = calculator.CostForBalance{
			Payer:  cost.Payer,
			Amount: cost.Amount,
			Shares: shares,
		}
	}

	balances, debts := calculator.CalculateGroupBalances(forBalance)

	resp := &api.GetGroupBalancesResponse{
		Balances: make([]api.MemberBalance, len(balances)),
		Debts:    make([]api.Debt, len(debts)),
	}
	for i, b := range balances {
		resp.Balances[i] = api.MemberBalance{
			Member:      b.Member,
			NetBalance:  b.NetBalance,
			TotalPaid:   b.TotalPaid,
			TotalOwed:   b.TotalOwed,
			Unallocated: b.Unallocated,
		}
	}
	for i, d := range debts {
		resp.Debts[i] = api.Debt{From: d.From, To: d.To, Amount: d.Amount}
	}

	slog.Info("GetGroupBalances successful", "group_id", group.ID, "costs", len(costs), "debts", len(debts))
	return connect.NewResponse(resp), nil
}
