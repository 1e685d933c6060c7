package event

import (
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventPayload_Validate(t *testing.T) {
	p := CreateEventPayload{
		Title:     "Journée portes ouvertes",
		EventDate: model.Date{Time: time.Date(2026, 11, 14, 9, 0, 0, 0, time.UTC)},
		Location:  "Amphi A",
	}
	require.NoError(t, p.Validate())

	p.EventDate = model.Date{}
	assert.Error(t, p.Validate())

	url := "not a url"
	p = CreateEventPayload{Title: "Forum", EventDate: model.Date{Time: time.Now()}, Location: "Hall", ImageURL: &url}
	assert.Error(t, p.Validate())
}

func TestListEventsQuery_UpcomingDefault(t *testing.T) {
	q := ListEventsQuery{}
	require.NoError(t, q.Validate())
	assert.True(t, q.OnlyUpcoming())

	q.Upcoming = "false"
	assert.False(t, q.OnlyUpcoming())

	q.Upcoming = "maybe"
	assert.Error(t, q.Validate())
}

func TestUpcomingAndPastDefaults(t *testing.T) {
	u := UpcomingQuery{}
	require.NoError(t, u.Validate())
	assert.Equal(t, DefaultUpcomingDays, u.Days)

	p := PastQuery{}
	require.NoError(t, p.Validate())
	assert.Equal(t, DefaultPastLimit, p.Limit)
}

func TestSearchQuery_RequiresQuery(t *testing.T) {
	q := SearchQuery{Query: "   "}
	err := q.Validate()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestDateRangeQuery_Validate(t *testing.T) {
	start := model.Date{Time: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	end := model.Date{Time: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}

	assert.NoError(t, (&DateRangeQuery{StartDate: start, EndDate: end}).Validate())
	assert.Error(t, (&DateRangeQuery{StartDate: end, EndDate: start}).Validate())
	assert.Error(t, (&DateRangeQuery{StartDate: start}).Validate())
}
