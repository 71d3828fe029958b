package scheduler

import (
	"testing"
	"time"

	"github.com/sandeepkv93/choirsched/internal/model"
)

func TestPlanNotices(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)
	now := time.Date(2026, 1, 4, 13, 10, 0, 0, loc)
	events := []model.Event{
		{ID: "soon", Title: "정기 연습", Date: "2026-01-04", Time: "13:30"},
		{ID: "later", Title: "Evening worship", Date: "2026-01-04", Time: "19:00"},
		{ID: "past", Title: "Morning", Date: "2026-01-04", Time: "08:00"},
		{ID: "untimed", Title: "Retreat", Date: "2026-01-10"},
		{ID: "bad", Title: "Broken", Date: "2026-1-4", Time: "19:00"},
	}

	got := Plan(events, now, 30*time.Minute, loc)
	if len(got) != 2 {
		t.Fatalf("expected two notices, got %d: %+v", len(got), got)
	}
	if got[0].EventID != "soon" || !got[0].FireAt.Equal(now) {
		t.Fatalf("lead already passed should fire now, got %+v", got[0])
	}
	wantFire := time.Date(2026, 1, 4, 18, 30, 0, 0, loc)
	if got[1].EventID != "later" || !got[1].FireAt.Equal(wantFire) {
		t.Fatalf("unexpected second notice %+v", got[1])
	}
}

func TestPlanDisabledByZeroLead(t *testing.T) {
	events := []model.Event{{ID: "a", Date: "2030-01-01", Time: "10:00"}}
	if got := Plan(events, time.Now(), 0, time.UTC); len(got) != 0 {
		t.Fatalf("expected no notices, got %d", len(got))
	}
}
