package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/choretracker/internal/auth"
	"github.com/mmynk/choretracker/internal/calculator"
	"github.com/mmynk/choretracker/internal/middleware"
	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/internal/recurrence"
	"github.com/mmynk/choretracker/internal/storage"
)

var (
	errNotMember  = errors.New("not a member of this group")
	errNotCreator = errors.New("only the group creator can do this")
)

// invalidArgument builds a CodeInvalidArgument error from a message.
func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// toConnectError maps domain and storage errors to Connect error codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, errNotMember), errors.Is(err, errNotCreator):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, calculator.ErrNoParticipants),
		errors.Is(err, calculator.ErrNegativeAmount),
		errors.Is(err, calculator.ErrInvalidScale),
		errors.Is(err, calculator.ErrDuplicateParticipant),
		errors.Is(err, calculator.ErrSplitMismatch),
		errors.Is(err, recurrence.ErrUnknownRule),
		errors.Is(err, recurrence.ErrInvalidRange):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// callerUsername returns the authenticated caller or a CodeUnauthenticated error.
func callerUsername(ctx context.Context) (string, error) {
	username := middleware.GetUsername(ctx)
	if username == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return username, nil
}

// groupFor loads a group and checks that username belongs to it.
func groupFor(ctx context.Context, store storage.GroupStore, groupID, username string) (*models.Group, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, invalidArgument("group_id required")
	}
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(username) {
		slog.Warn("Group access denied", "group_id", groupID, "username", username)
		return nil, errNotMember
	}
	return group, nil
}

// eventFor loads an event and the group it belongs to, checking membership.
func eventFor(ctx context.Context, store storage.Store, eventID, username string) (*models.Event, *models.Group, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, nil, invalidArgument("event_id required")
	}
	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	group, err := groupFor(ctx, store, event.GroupID, username)
	if err != nil {
		return nil, nil, err
	}
	return event, group, nil
}

// groupMembersOnly rejects usernames that are not members of group, and
// duplicates. Names match ignoring case. It returns the stored spellings in
// request order.
func groupMembersOnly(group *models.Group, usernames []string) ([]string, error) {
	seen := make(map[string]bool, len(usernames))
	out := make([]string, 0, len(usernames))
	for _, u := range usernames {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		member, ok := group.Member(u)
		if !ok {
			return nil, invalidArgument("%s is not a member of the group", u)
		}
		if seen[member] {
			return nil, invalidArgument("%s listed more than once", u)
		}
		seen[member] = true
		out = append(out, member)
	}
	return out, nil
}
