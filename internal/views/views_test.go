package views

import (
	"strings"
	"testing"
)

func TestRenderGridShowsHeaderAndDays(t *testing.T) {
	out := RenderGrid(GridPanelData{
		Title: "January 2026",
		Weeks: [][]CellData{
			{{}, {}, {}, {}, {Day: 1}, {Day: 2, HasEvent: true}, {Day: 3}},
		},
	})
	for _, want := range []string{"January 2026", "Su", "Sa", " 1", " 2•"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in grid:\n%s", want, out)
		}
	}
}

func TestListLinesMarksCursor(t *testing.T) {
	lines := ListLines([]ListItemData{
		{Date: "2026-01-04", Weekday: "Sun", Category: "worship", Title: "주일 찬양", TimeRange: "11:00"},
		{Date: "2026-01-04", Weekday: "Sun", Category: "practice", Title: "정기 연습", TimeRange: "13:30 / 15:00", Cursor: true},
	})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "  01-04 Sun") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "> 01-04") || !strings.Contains(lines[1], "13:30 / 15:00") {
		t.Fatalf("unexpected cursor line %q", lines[1])
	}
}

func TestRenderListPanelStates(t *testing.T) {
	if out := RenderListPanel(ListPanelData{Title: "Events", Empty: true}, ""); !strings.Contains(out, "no events this month") {
		t.Fatalf("expected empty placeholder, got %q", out)
	}
	if out := RenderListPanel(ListPanelData{Title: "Events", Loading: "loading schedules"}, "body"); strings.Contains(out, "body") {
		t.Fatalf("loading should hide the list, got %q", out)
	}
}

func TestRenderConfirmAndNotice(t *testing.T) {
	if out := RenderConfirm("Delete 정기 연습?"); !strings.Contains(out, "[y] delete") {
		t.Fatalf("expected confirm keys, got %q", out)
	}
	if got := RenderNotice("주일 찬양", "01-04 11:00", "대예배실"); got != "upcoming: 주일 찬양 at 01-04 11:00 (대예배실)" {
		t.Fatalf("unexpected notice %q", got)
	}
	if got := RenderNotice("Practice", "01-04 13:30", ""); strings.Contains(got, "(") {
		t.Fatalf("notice without location should have no parens: %q", got)
	}
}

func TestRenderDetailSkipsEmpty(t *testing.T) {
	if RenderDetail(DetailData{}) != "" {
		t.Fatalf("expected empty detail")
	}
	out := RenderDetail(DetailData{Title: "Cantata", Date: "2026-04-05", Category: "special", Label: "Special", TimeRange: "10:00", Location: "대예배실"})
	if !strings.Contains(out, "date: 2026-04-05") || !strings.Contains(out, "place: 대예배실") {
		t.Fatalf("unexpected detail %q", out)
	}
}
