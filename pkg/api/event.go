package api

type Event struct {
	ID      string `json:"id"`
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
	// FirstDate is formatted "2006-01-02 15:04:05".
	FirstDate  string   `json:"firstDate"`
	Repeat     string   `json:"repeat"`
	IsComplete bool     `json:"isComplete"`
	Members    []string `json:"members"`
	CreatedAt  int64    `json:"createdAt"`
}

type CreateEventRequest struct {
	GroupID   string   `json:"groupId"`
	Name      string   `json:"name"`
	FirstDate string   `json:"firstDate"`
	Repeat    string   `json:"repeat,omitempty"`
	Members   []string `json:"members,omitempty"`
	// Cost, when set, is recorded together with the event.
	Cost *CostInput `json:"cost,omitempty"`
}

type CreateEventResponse struct {
	Event *Event `json:"event"`
	Cost  *Cost  `json:"cost,omitempty"`
}

type GetEventRequest struct {
	EventID string `json:"eventId"`
}

type GetEventResponse struct {
	Event *Event  `json:"event"`
	Costs []*Cost `json:"costs"`
}

type UpdateEventRequest struct {
	EventID   string   `json:"eventId"`
	Name      string   `json:"name"`
	FirstDate string   `json:"firstDate"`
	Repeat    string   `json:"repeat,omitempty"`
	Members   []string `json:"members"`
}

type UpdateEventResponse struct {
	Event *Event `json:"event"`
}

type DeleteEventRequest struct {
	EventID string `json:"eventId"`
}

type ChangeEventMembersRequest struct {
	EventID string   `json:"eventId"`
	Members []string `json:"members"`
}

type ChangeEventMembersResponse struct {
	Event *Event `json:"event"`
}

type MarkEventCompleteRequest struct {
	EventID  string `json:"eventId"`
	Complete bool   `json:"complete"`
}

type MarkEventCompleteResponse struct {
	Event *Event `json:"event"`
}

type ListEventsForDateRequest struct {
	GroupID string `json:"groupId"`
	Date    string `json:"date"`
}

type ListEventsForDateResponse struct {
	Events []*Event `json:"events"`
}

type GetCalendarMonthRequest struct {
	GroupID string `json:"groupId"`
	// Date is any date within the month to show.
	Date string `json:"date"`
}

type GetCalendarMonthResponse struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	DaysInMonth int `json:"daysInMonth"`
	// EventDays are the days of the month with at least one event.
	EventDays []int `json:"eventDays"`
	// AssignedDays are the days with an event assigned to the caller.
	AssignedDays []int `json:"assignedDays"`
}

type ListOccurrencesRequest struct {
	EventID string `json:"eventId"`
	From    string `json:"from"`
	To      string `json:"to"`
}

type ListOccurrencesResponse struct {
	// Dates are formatted "2006-01-02".
	Dates []string `json:"dates"`
}
