package service

import (
	"time"

	"github.com/mmynk/choretracker/internal/calculator"
	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/pkg/api"
)

func toAPIUser(user *models.User) *api.User {
	return &api.User{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
		PhotoURL: user.PhotoURL,
	}
}

func toAPIGroup(group *models.Group) *api.Group {
	g := &api.Group{
		ID:        group.ID,
		Name:      group.Name,
		Status:    group.Status,
		Timezone:  group.Timezone,
		Creator:   group.Creator,
		Members:   group.Members,
		CreatedAt: group.CreatedAt,
	}
	if group.Expiration != nil {
		g.Expiration = group.Expiration.Format(time.DateOnly)
	}
	if g.Members == nil {
		g.Members = []string{}
	}
	return g
}

func toAPIEvent(event *models.Event) *api.Event {
	members := event.Members
	if members == nil {
		members = []string{}
	}
	return &api.Event{
		ID:         event.ID,
		GroupID:    event.GroupID,
		Name:       event.Name,
		FirstDate:  event.FirstDate.Format(time.DateTime),
		Repeat:     event.Repeat.String(),
		IsComplete: event.IsComplete,
		Members:    members,
		CreatedAt:  event.CreatedAt,
	}
}

func toAPIEvents(events []models.Event) []*api.Event {
	out := make([]*api.Event, len(events))
	for i := range events {
		out[i] = toAPIEvent(&events[i])
	}
	return out
}

func toAPICost(cost *models.Cost) *api.Cost {
	shares := make([]api.Share, len(cost.Shares))
	for i, s := range cost.Shares {
		shares[i] = api.Share{Member: s.Member, Amount: s.Amount}
	}
	return &api.Cost{
		ID:        cost.ID,
		GroupID:   cost.GroupID,
		EventID:   cost.EventID,
		Name:      cost.Name,
		Category:  cost.Category,
		Amount:    cost.Amount,
		Payer:     cost.Payer,
		Shares:    shares,
		CreatedAt: cost.CreatedAt,
	}
}

func toAPICosts(costs []*models.Cost) []*api.Cost {
	out := make([]*api.Cost, len(costs))
	for i, c := range costs {
		out[i] = toAPICost(c)
	}
	return out
}

func toAPIShares(shares []calculator.Share) []api.Share {
	out := make([]api.Share, len(shares))
	for i, s := range shares {
		out[i] = api.Share{Member: s.Member, Amount: s.Amount}
	}
	return out
}

func fromAPIShares(shares []api.Share) []calculator.Share {
	out := make([]calculator.Share, len(shares))
	for i, s := range shares {
		out[i] = calculator.Share{Member: s.Member, Amount: s.Amount}
	}
	return out
}

func toModelShares(shares []calculator.Share) []models.CostShare {
	out := make([]models.CostShare, len(shares))
	for i, s := range shares {
		out[i] = models.CostShare{Member: s.Member, Amount: s.Amount}
	}
	return out
}
