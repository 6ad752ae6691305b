package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/choretracker/pkg/api"
)

// EventServiceName is the fully-qualified name of the EventService service.
const EventServiceName = "choretracker.v1.EventService"

// Procedure paths of the EventService RPCs.
const (
	EventServiceCreateEventProcedure        = "/choretracker.v1.EventService/CreateEvent"
	EventServiceGetEventProcedure           = "/choretracker.v1.EventService/GetEvent"
	EventServiceUpdateEventProcedure        = "/choretracker.v1.EventService/UpdateEvent"
	EventServiceDeleteEventProcedure        = "/choretracker.v1.EventService/DeleteEvent"
	EventServiceChangeEventMembersProcedure = "/choretracker.v1.EventService/ChangeEventMembers"
	EventServiceMarkEventCompleteProcedure  = "/choretracker.v1.EventService/MarkEventComplete"
	EventServiceListEventsForDateProcedure  = "/choretracker.v1.EventService/ListEventsForDate"
	EventServiceGetCalendarMonthProcedure   = "/choretracker.v1.EventService/GetCalendarMonth"
	EventServiceListOccurrencesProcedure    = "/choretracker.v1.EventService/ListOccurrences"
)

// EventServiceClient is a client for the choretracker.v1.EventService service.
type EventServiceClient interface {
	// CreateEvent schedules an event, optionally with a cost.
	CreateEvent(context.Context, *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error)
	// GetEvent returns an event and its costs.
	GetEvent(context.Context, *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error)
	// UpdateEvent replaces an event's schedule and members.
	UpdateEvent(context.Context, *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error)
	// DeleteEvent removes an event.
	DeleteEvent(context.Context, *connect.Request[api.DeleteEventRequest]) (*connect.Response[emptypb.Empty], error)
	// ChangeEventMembers reassigns an event.
	ChangeEventMembers(context.Context, *connect.Request[api.ChangeEventMembersRequest]) (*connect.Response[api.ChangeEventMembersResponse], error)
	// MarkEventComplete sets or clears an event's completion.
	MarkEventComplete(context.Context, *connect.Request[api.MarkEventCompleteRequest]) (*connect.Response[api.MarkEventCompleteResponse], error)
	// ListEventsForDate returns the group's events occurring on a date.
	ListEventsForDate(context.Context, *connect.Request[api.ListEventsForDateRequest]) (*connect.Response[api.ListEventsForDateResponse], error)
	// GetCalendarMonth returns the days of a month that have events.
	GetCalendarMonth(context.Context, *connect.Request[api.GetCalendarMonthRequest]) (*connect.Response[api.GetCalendarMonthResponse], error)
	// ListOccurrences expands an event's dates within a range.
	ListOccurrences(context.Context, *connect.Request[api.ListOccurrencesRequest]) (*connect.Response[api.ListOccurrencesResponse], error)
}

// NewEventServiceClient constructs a client for the choretracker.v1.EventService service. The JSON
// codec is installed first, so opts may still override it.
func NewEventServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) EventServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &eventServiceClient{
		createEvent:        connect.NewClient[api.CreateEventRequest, api.CreateEventResponse](httpClient, baseURL+EventServiceCreateEventProcedure, opts...),
		getEvent:           connect.NewClient[api.GetEventRequest, api.GetEventResponse](httpClient, baseURL+EventServiceGetEventProcedure, opts...),
		updateEvent:        connect.NewClient[api.UpdateEventRequest, api.UpdateEventResponse](httpClient, baseURL+EventServiceUpdateEventProcedure, opts...),
		deleteEvent:        connect.NewClient[api.DeleteEventRequest, emptypb.Empty](httpClient, baseURL+EventServiceDeleteEventProcedure, opts...),
		changeEventMembers: connect.NewClient[api.ChangeEventMembersRequest, api.ChangeEventMembersResponse](httpClient, baseURL+EventServiceChangeEventMembersProcedure, opts...),
		markEventComplete:  connect.NewClient[api.MarkEventCompleteRequest, api.MarkEventCompleteResponse](httpClient, baseURL+EventServiceMarkEventCompleteProcedure, opts...),
		listEventsForDate:  connect.NewClient[api.ListEventsForDateRequest, api.ListEventsForDateResponse](httpClient, baseURL+EventServiceListEventsForDateProcedure, opts...),
		getCalendarMonth:   connect.NewClient[api.GetCalendarMonthRequest, api.GetCalendarMonthResponse](httpClient, baseURL+EventServiceGetCalendarMonthProcedure, opts...),
		listOccurrences:    connect.NewClient[api.ListOccurrencesRequest, api.ListOccurrencesResponse](httpClient, baseURL+EventServiceListOccurrencesProcedure, opts...),
	}
}

type eventServiceClient struct {
	createEvent        *connect.Client[api.CreateEventRequest, api.CreateEventResponse]
	getEvent           *connect.Client[api.GetEventRequest, api.GetEventResponse]
	updateEvent        *connect.Client[api.UpdateEventRequest, api.UpdateEventResponse]
	deleteEvent        *connect.Client[api.DeleteEventRequest, emptypb.Empty]
	changeEventMembers *connect.Client[api.ChangeEventMembersRequest, api.ChangeEventMembersResponse]
	markEventComplete  *connect.Client[api.MarkEventCompleteRequest, api.MarkEventCompleteResponse]
	listEventsForDate  *connect.Client[api.ListEventsForDateRequest, api.ListEventsForDateResponse]
	getCalendarMonth   *connect.Client[api.GetCalendarMonthRequest, api.GetCalendarMonthResponse]
	listOccurrences    *connect.Client[api.ListOccurrencesRequest, api.ListOccurrencesResponse]
}

func (c *eventServiceClient) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	return c.createEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) GetEvent(ctx context.Context, req *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error) {
	return c.getEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) UpdateEvent(ctx context.Context, req *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error) {
	return c.updateEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) ChangeEventMembers(ctx context.Context, req *connect.Request[api.ChangeEventMembersRequest]) (*connect.Response[api.ChangeEventMembersResponse], error) {
	return c.changeEventMembers.CallUnary(ctx, req)
}

func (c *eventServiceClient) MarkEventComplete(ctx context.Context, req *connect.Request[api.MarkEventCompleteRequest]) (*connect.Response[api.MarkEventCompleteResponse], error) {
	return c.markEventComplete.CallUnary(ctx, req)
}

func (c *eventServiceClient) ListEventsForDate(ctx context.Context, req *connect.Request[api.ListEventsForDateRequest]) (*connect.Response[api.ListEventsForDateResponse], error) {
	return c.listEventsForDate.CallUnary(ctx, req)
}

func (c *eventServiceClient) GetCalendarMonth(ctx context.Context, req *connect.Request[api.GetCalendarMonthRequest]) (*connect.Response[api.GetCalendarMonthResponse], error) {
	return c.getCalendarMonth.CallUnary(ctx, req)
}

func (c *eventServiceClient) ListOccurrences(ctx context.Context, req *connect.Request[api.ListOccurrencesRequest]) (*connect.Response[api.ListOccurrencesResponse], error) {
	return c.listOccurrences.CallUnary(ctx, req)
}

// EventServiceHandler is implemented by the server side of the choretracker.v1.EventService service.
type EventServiceHandler interface {
	CreateEvent(context.Context, *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error)
	GetEvent(context.Context, *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error)
	UpdateEvent(context.Context, *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error)
	DeleteEvent(context.Context, *connect.Request[api.DeleteEventRequest]) (*connect.Response[emptypb.Empty], error)
	ChangeEventMembers(context.Context, *connect.Request[api.ChangeEventMembersRequest]) (*connect.Response[api.ChangeEventMembersResponse], error)
	MarkEventComplete(context.Context, *connect.Request[api.MarkEventCompleteRequest]) (*connect.Response[api.MarkEventCompleteResponse], error)
	ListEventsForDate(context.Context, *connect.Request[api.ListEventsForDateRequest]) (*connect.Response[api.ListEventsForDateResponse], error)
	GetCalendarMonth(context.Context, *connect.Request[api.GetCalendarMonthRequest]) (*connect.Response[api.GetCalendarMonthResponse], error)
	ListOccurrences(context.Context, *connect.Request[api.ListOccurrencesRequest]) (*connect.Response[api.ListOccurrencesResponse], error)
}

// NewEventServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewEventServiceHandler(svc EventServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	createEventHandler := connect.NewUnaryHandler(EventServiceCreateEventProcedure, svc.CreateEvent, opts...)
	getEventHandler := connect.NewUnaryHandler(EventServiceGetEventProcedure, svc.GetEvent, opts...)
	updateEventHandler := connect.NewUnaryHandler(EventServiceUpdateEventProcedure, svc.UpdateEvent, opts...)
	deleteEventHandler := connect.NewUnaryHandler(EventServiceDeleteEventProcedure, svc.DeleteEvent, opts...)
	changeEventMembersHandler := connect.NewUnaryHandler(EventServiceChangeEventMembersProcedure, svc.ChangeEventMembers, opts...)
	markEventCompleteHandler := connect.NewUnaryHandler(EventServiceMarkEventCompleteProcedure, svc.MarkEventComplete, opts...)
	listEventsForDateHandler := connect.NewUnaryHandler(EventServiceListEventsForDateProcedure, svc.ListEventsForDate, opts...)
	getCalendarMonthHandler := connect.NewUnaryHandler(EventServiceGetCalendarMonthProcedure, svc.GetCalendarMonth, opts...)
	listOccurrencesHandler := connect.NewUnaryHandler(EventServiceListOccurrencesProcedure, svc.ListOccurrences, opts...)
	return "/choretracker.v1.EventService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case EventServiceCreateEventProcedure:
			createEventHandler.ServeHTTP(w, r)
		case EventServiceGetEventProcedure:
			getEventHandler.ServeHTTP(w, r)
		case EventServiceUpdateEventProcedure:
			updateEventHandler.ServeHTTP(w, r)
		case EventServiceDeleteEventProcedure:
			deleteEventHandler.ServeHTTP(w, r)
		case EventServiceChangeEventMembersProcedure:
			changeEventMembersHandler.ServeHTTP(w, r)
		case EventServiceMarkEventCompleteProcedure:
			markEventCompleteHandler.ServeHTTP(w, r)
		case EventServiceListEventsForDateProcedure:
			listEventsForDateHandler.ServeHTTP(w, r)
		case EventServiceGetCalendarMonthProcedure:
			getCalendarMonthHandler.ServeHTTP(w, r)
		case EventServiceListOccurrencesProcedure:
			listOccurrencesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
