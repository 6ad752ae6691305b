package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/choretracker/internal/calendar"
	"github.com/mmynk/choretracker/internal/metrics"
	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/internal/recurrence"
	"github.com/mmynk/choretracker/internal/storage"
	"github.com/mmynk/choretracker/pkg/api"
	"github.com/mmynk/choretracker/pkg/api/apiconnect"
)

var _ apiconnect.EventServiceHandler = (*EventService)(nil)

// MaxOccurrenceSpan bounds the range ListOccurrences will expand.
const MaxOccurrenceSpan = 366 * 24 * time.Hour

// EventService implements the Connect EventService.
type EventService struct {
	store storage.Store
	now   func() time.Time
}

// NewEventService creates a new EventService with the given storage backend.
func NewEventService(store storage.Store) *EventService {
	return &EventService{store: store, now: time.Now}
}

// parseSchedule validates the name, first date and repeat rule shared by
// CreateEvent and UpdateEvent.
func parseSchedule(name, firstDate, repeat string) (string, time.Time, recurrence.Rule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", time.Time{}, recurrence.None, invalidArgument("event name required")
	}
	first, err := recurrence.ParseDate(firstDate)
	if err != nil {
		return "", time.Time{}, recurrence.None, invalidArgument("first_date: %v", err)
	}
	rule, err := recurrence.ParseRule(repeat)
	if err != nil {
		return "", time.Time{}, recurrence.None, invalidArgument("repeat: %v", err)
	}
	return name, first, rule, nil
}

// CreateEvent schedules a new event in a group. When the request carries a
// cost, it is validated first and stored in the same transaction.
func (s *EventService) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateEvent request received",
		"group_id", req.Msg.GroupID,
		"name", req.Msg.Name,
		"repeat", req.Msg.Repeat,
		"with_cost", req.Msg.Cost != nil,
	)

	group, err := groupFor(ctx, s.store, req.Msg.GroupID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}

	name, first, rule, err := parseSchedule(req.Msg.Name, req.Msg.FirstDate, req.Msg.Repeat)
	if err != nil {
		return nil, err
	}

	members, err := groupMembersOnly(group, req.Msg.Members)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		members = []string{caller}
	}

	event := &models.Event{
		GroupID:   group.ID,
		Name:      name,
		FirstDate: first,
		Repeat:    rule,
		Members:   members,
	}

	var (
		cost *models.Cost
		mode string
	)
	if req.Msg.Cost != nil {
		cost, mode, err = buildCost(group, caller, name, *req.Msg.Cost)
		if err != nil {
			slog.Warn("CreateEvent cost rejected", "group_id", group.ID, "error", err)
			return nil, toConnectError(err)
		}
	}

	if err := s.store.CreateEvent(ctx, event, cost); err != nil {
		slog.Error("CreateEvent failed", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.CreateEventResponse{Event: toAPIEvent(event)}
	if cost != nil {
		metrics.CostsCreated.WithLabelValues(mode).Inc()
		resp.Cost = toAPICost(cost)
	}

	slog.Info("Event created", "event_id", event.ID, "group_id", group.ID)
	return connect.NewResponse(resp), nil
}

// GetEvent retrieves an event and the costs attached to it.
func (s *EventService) GetEvent(ctx context.Context, req *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetEvent request received", "event_id", req.Msg.EventID)

	event, _, err := eventFor(ctx, s.store, req.Msg.EventID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}

	costs, err := s.store.ListCostsByEvent(ctx, event.ID)
	if err != nil {
		slog.Error("GetEvent failed to list costs", "event_id", event.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.GetEventResponse{
		Event: toAPIEvent(event),
		Costs: toAPICosts(costs),
	}), nil
}

// UpdateEvent replaces an event's name, schedule and members.
func (s *EventService) UpdateEvent(ctx context.Context, req *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateEvent request received", "event_id", req.Msg.EventID)

	event, group, err := eventFor(ctx, s.store, req.Msg.EventID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}

	name, first, rule, err := parseSchedule(req.Msg.Name, req.Msg.FirstDate, req.Msg.Repeat)
	if err != nil {
		return nil, err
	}
	members, err := groupMembersOnly(group, req.Msg.Members)
	if err != nil {
		return nil, err
	}

	event.Name = name
	event.FirstDate = first
	event.Repeat = rule
	event.Members = members
	if err := s.store.UpdateEvent(ctx, event); err != nil {
		slog.Error("UpdateEvent failed", "event_id", event.ID, "error", err)
		return nil, toConnectError(err)
	}

	return reloadEvent(ctx, s.store, event.ID, func(e *api.Event) *api.UpdateEventResponse {
		return &api.UpdateEventResponse{Event: e}
	})
}

// DeleteEvent removes an event. Its costs stay in the group's history.
func (s *EventService) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[emptypb.Empty], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteEvent request received", "event_id", req.Msg.EventID)

	event, _, err := eventFor(ctx, s.store, req.Msg.EventID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteEvent(ctx, event.ID); err != nil {
		slog.Error("DeleteEvent failed", "event_id", event.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Event deleted", "event_id", event.ID)
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// ChangeEventMembers reassigns an event. Every member must belong to the group.
func (s *EventService) ChangeEventMembers(ctx context.Context, req *connect.Request[api.ChangeEventMembersRequest]) (*connect.Response[api.ChangeEventMembersResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ChangeEventMembers request received",
		"event_id", req.Msg.EventID,
		"members_count", len(req.Msg.Members),
	)

	event, group, err := eventFor(ctx, s.store, req.Msg.EventID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}
	members, err := groupMembersOnly(group, req.Msg.Members)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetEventMembers(ctx, event.ID, members); err != nil {
		slog.Error("ChangeEventMembers failed", "event_id", event.ID, "error", err)
		return nil, toConnectError(err)
	}

	return reloadEvent(ctx, s.store, event.ID, func(e *api.Event) *api.ChangeEventMembersResponse {
		return &api.ChangeEventMembersResponse{Event: e}
	})
}

// MarkEventComplete sets or clears an event's completion flag.
func (s *EventService) MarkEventComplete(ctx context.Context, req *connect.Request[api.MarkEventCompleteRequest]) (*connect.Response[api.MarkEventCompleteResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("MarkEventComplete request received",
		"event_id", req.Msg.EventID,
		"complete", req.Msg.Complete,
	)

	event, _, err := eventFor(ctx, s.store, req.Msg.EventID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.SetEventComplete(ctx, event.ID, req.Msg.Complete); err != nil {
		slog.Error("MarkEventComplete failed", "event_id", event.ID, "error", err)
		return nil, toConnectError(err)
	}
	event.IsComplete = req.Msg.Complete

	return connect.NewResponse(&api.MarkEventCompleteResponse{Event: toAPIEvent(event)}), nil
}

// ListEventsForDate returns the group's events that occur on the given date.
func (s *EventService) ListEventsForDate(ctx context.Context, req *connect.Request[api.ListEventsForDateRequest]) (*connect.Response[api.ListEventsForDateResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListEventsForDate request received", "group_id", req.Msg.GroupID, "date", req.Msg.Date)

	group, err := groupFor(ctx, s.store, req.Msg.GroupID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}
	target, err := s.dateOrToday(group, req.Msg.Date)
	if err != nil {
		return nil, err
	}

	events, err := s.store.ListEventsByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("ListEventsForDate failed", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	visible := calendar.FilterByDate(events, target)
	slog.Info("ListEventsForDate successful", "group_id", group.ID, "count", len(visible))
	return connect.NewResponse(&api.ListEventsForDateResponse{Events: toAPIEvents(visible)}), nil
}

// GetCalendarMonth reports which days of a month have events, and which of
// those have an event assigned to the caller.
func (s *EventService) GetCalendarMonth(ctx context.Context, req *connect.Request[api.GetCalendarMonthRequest]) (*connect.Response[api.GetCalendarMonthResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetCalendarMonth request received", "group_id", req.Msg.GroupID, "date", req.Msg.Date)

	group, err := groupFor(ctx, s.store, req.Msg.GroupID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}
	anchor, err := s.dateOrToday(group, req.Msg.Date)
	if err != nil {
		return nil, err
	}

	events, err := s.store.ListEventsByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("GetCalendarMonth failed", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	start := calendar.MonthStart(anchor)
	return connect.NewResponse(&api.GetCalendarMonthResponse{
		Year:         start.Year(),
		Month:        int(start.Month()),
		DaysInMonth:  calendar.DaysInMonth(anchor),
		EventDays:    calendar.DatesWithEvents(events, anchor).Sorted(),
		AssignedDays: calendar.DatesAssignedTo(events, anchor, caller).Sorted(),
	}), nil
}

// ListOccurrences lists the days within [from, to] on which an event occurs.
func (s *EventService) ListOccurrences(ctx context.Context, req *connect.Request[api.ListOccurrencesRequest]) (*connect.Response[api.ListOccurrencesResponse], error) {
	caller, err := callerUsername(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListOccurrences request received",
		"event_id", req.Msg.EventID,
		"from", req.Msg.From,
		"to", req.Msg.To,
	)

	event, _, err := eventFor(ctx, s.store, req.Msg.EventID, caller)
	if err != nil {
		return nil, toConnectError(err)
	}

	from, err := recurrence.ParseDate(req.Msg.From)
	if err != nil {
		return nil, invalidArgument("from: %v", err)
	}
	to, err := recurrence.ParseDate(req.Msg.To)
	if err != nil {
		return nil, invalidArgument("to: %v", err)
	}
	if recurrence.Date(to).Sub(recurrence.Date(from)) > MaxOccurrenceSpan {
		return nil, invalidArgument("range may span at most 366 days")
	}

	dates, err := recurrence.Occurrences(event.FirstDate, event.Repeat, from, to)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.ListOccurrencesResponse{Dates: make([]string, len(dates))}
	for i, d := range dates {
		resp.Dates[i] = d.Format(time.DateOnly)
	}
	return connect.NewResponse(resp), nil
}

// dateOrToday parses date, falling back to the current day in the group's
// time zone when it is empty.
func (s *EventService) dateOrToday(group *models.Group, date string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return group.Today(s.now()), nil
	}
	t, err := recurrence.ParseDate(date)
	if err != nil {
		return time.Time{}, invalidArgument("date: %v", err)
	}
	return t, nil
}

// reloadEvent fetches the stored event and wraps it in a response.
func reloadEvent[T any](ctx context.Context, store storage.EventStore, eventID string, wrap func(*api.Event) *T) (*connect.Response[T], error) {
	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(wrap(toAPIEvent(event))), nil
}
