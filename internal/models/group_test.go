package models

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestGroupMember(t *testing.T) {
	group := &Group{Members: []string{"alice", "Bob"}}

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"alice", "alice", true},
		{"ALICE", "alice", true},
		{"bob", "Bob", true},
		{"carol", "", false},
	}
	for _, tt := range tests {
		got, ok := group.Member(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Member(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
		if group.HasMember(tt.name) != tt.wantOK {
			t.Errorf("HasMember(%q) = %v, want %v", tt.name, !tt.wantOK, tt.wantOK)
		}
	}
}

func TestGroupToday(t *testing.T) {
	now := time.Date(2025, 3, 26, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		timezone string
		want     string
	}{
		{"", "2025-03-26"},
		{"UTC", "2025-03-26"},
		{"Pacific/Kiritimati", "2025-03-27"},
		{"America/Los_Angeles", "2025-03-26"},
		{"Not/AZone", "2025-03-26"},
	}
	for _, tt := range tests {
		group := &Group{Timezone: tt.timezone}
		if got := group.Today(now).Format(time.DateOnly); got != tt.want {
			t.Errorf("Today in %q = %s, want %s", tt.timezone, got, tt.want)
		}
	}
}
