package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/choirsched/internal/model"
)

func sampleEvents() []model.Event {
	return []model.Event{
		{ID: "a1", Title: "정기 연습", Date: "2026-01-04", Category: model.CategoryPractice, Time: "08:00", Time2: "10:20", Location: "찬양대실"},
		{ID: "b2", Title: "Choir retreat", Date: "2026-01-10", Category: model.CategorySpecial, Description: "Bring **music folders**"},
		{ID: "c3", Title: "Broken", Date: "2026-1-11", Category: model.CategoryOther},
	}
}

func TestWriteEncodesTimedAndAllDayEvents(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, Write(&buf, sampleEvents(), Options{Location: time.UTC, Now: now}))

	out := buf.String()
	assert.Contains(t, out, "PRODID:"+ProductID)
	assert.Contains(t, out, "UID:a1@choirsched")
	assert.Contains(t, out, "DTSTART:20260104T080000Z")
	assert.Contains(t, out, "DTEND:20260104T102000Z")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260110")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20260111")
	assert.Contains(t, out, "CATEGORIES:Special")
	assert.NotContains(t, out, "Broken")
}

func TestWriteRoundTripsThroughDecoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleEvents(), Options{Location: time.UTC}))

	cal, err := ical.NewDecoder(strings.NewReader(buf.String())).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	summary, err := events[0].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "정기 연습", summary)

	location, err := events[0].Props.Text(ical.PropLocation)
	require.NoError(t, err)
	assert.Equal(t, "찬양대실", location)
}

func TestCalendarSkipsEndNotAfterStart(t *testing.T) {
	ev := model.Event{ID: "x", Title: "x", Date: "2026-01-04", Category: model.CategoryOther, Time: "10:00", Time2: "09:00"}
	cal := Calendar([]model.Event{ev}, Options{})
	events := cal.Events()
	require.Len(t, events, 1)
	assert.Nil(t, events[0].Props.Get(ical.PropDateTimeEnd))
}
