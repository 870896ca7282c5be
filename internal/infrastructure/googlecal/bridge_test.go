package googlecal

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/acadash/backend/domain"
)

func TestBridgeUnconfiguredWithoutCredentials(t *testing.T) {
	bridge := NewBridge("", "secret", "http://localhost/cb", nil)

	assert.False(t, bridge.Configured())
	assert.False(t, bridge.Connected())

	_, err := bridge.AuthCodeURL()
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestBridgeAuthCodeURL(t *testing.T) {
	bridge := NewBridge("client-id", "client-secret", "http://localhost:3001/api/calendar/callback", nil)
	require.True(t, bridge.Configured())

	url, err := bridge.AuthCodeURL()
	require.NoError(t, err)
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "prompt=consent")
	assert.Contains(t, url, "calendar.readonly")
}

func TestBridgeConnectionLifecycle(t *testing.T) {
	bridge := NewBridge("id", "secret", "http://localhost/cb", nil)
	assert.False(t, bridge.Connected())

	bridge.mu.Lock()
	bridge.token = &oauth2.Token{AccessToken: "tok"}
	bridge.mu.Unlock()
	assert.True(t, bridge.Connected())

	bridge.Disconnect()
	assert.False(t, bridge.Connected())
}

func TestSyncTaskRequiresTitleAndDueDate(t *testing.T) {
	bridge := NewBridge("id", "secret", "http://localhost/cb", nil)

	for _, task := range []domain.Task{
		{DueDate: "2026-09-01"},
		{Title: "Study"},
		{},
	} {
		_, err := bridge.SyncTask(context.Background(), task)
		require.Error(t, err)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	}
}

// A 401 from the provider must drop the session so that status reports
// disconnected and the user can re-authorize.
func TestListEventsDropsSessionOnAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"code":401,"message":"Invalid Credentials"}}`)
	}))
	defer server.Close()

	bridge := NewBridge("id", "secret", "http://localhost/cb", nil)
	bridge.opts = []option.ClientOption{option.WithEndpoint(server.URL + "/")}
	bridge.mu.Lock()
	bridge.token = &oauth2.Token{AccessToken: "tok"}
	bridge.mu.Unlock()
	require.True(t, bridge.Connected())

	_, err := bridge.ListEvents(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
	assert.False(t, bridge.Connected())
}

func TestSyncTaskNotConnected(t *testing.T) {
	bridge := NewBridge("id", "secret", "http://localhost/cb", nil)

	_, err := bridge.SyncTask(context.Background(), domain.Task{Title: "Study", DueDate: "2026-09-01"})
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	_, err = bridge.ListEvents(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestBuildEventTimed(t *testing.T) {
	event, err := buildEvent(domain.Task{
		Title:    "Lab report",
		DueDate:  "2026-09-18",
		TimeSlot: "14:30",
	})
	require.NoError(t, err)

	assert.Equal(t, "\U0001F4DA Lab report", event.Summary)
	assert.Equal(t, "Created from Academic Dashboard", event.Description)
	require.NotNil(t, event.Start)
	require.NotNil(t, event.End)
	assert.Equal(t, "2026-09-18T14:30:00", event.Start.DateTime)
	assert.Equal(t, "2026-09-18T15:30:00", event.End.DateTime)
	assert.Equal(t, eventTimeZone, event.Start.TimeZone)
	assert.Empty(t, event.Start.Date)
}

func TestBuildEventAllDay(t *testing.T) {
	event, err := buildEvent(domain.Task{
		Title:       "Submit essay",
		Description: "final draft",
		DueDate:     "2026-10-02",
	})
	require.NoError(t, err)

	assert.Equal(t, "final draft", event.Description)
	assert.Equal(t, "2026-10-02", event.Start.Date)
	assert.Equal(t, "2026-10-02", event.End.Date)
	assert.Empty(t, event.Start.DateTime)
}

func TestBuildEventRejectsMalformedTimeSlot(t *testing.T) {
	_, err := buildEvent(domain.Task{
		Title:    "Bad slot",
		DueDate:  "2026-10-02",
		TimeSlot: "25:99",
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestFromGoogleEvent(t *testing.T) {
	timed := fromGoogleEvent(&calendar.Event{
		Id:      "evt-1",
		Summary: "Office hours",
		Start:   &calendar.EventDateTime{DateTime: "2026-09-01T10:00:00-04:00"},
		End:     &calendar.EventDateTime{DateTime: "2026-09-01T11:00:00-04:00"},
	})
	assert.Equal(t, "evt-1", timed.ID)
	assert.Equal(t, "Office hours", timed.Title)
	assert.False(t, timed.AllDay)
	assert.Equal(t, "2026-09-01T10:00:00-04:00", timed.Start)

	allDay := fromGoogleEvent(&calendar.Event{
		Id:    "evt-2",
		Start: &calendar.EventDateTime{Date: "2026-09-02"},
		End:   &calendar.EventDateTime{Date: "2026-09-03"},
	})
	assert.True(t, allDay.AllDay)
	assert.Equal(t, "2026-09-02", allDay.Start)
	assert.Equal(t, "2026-09-03", allDay.End)
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, isAuthError(&googleapi.Error{Code: 401}))
	assert.False(t, isAuthError(&googleapi.Error{Code: 500}))
	assert.False(t, isAuthError(assert.AnError))
}
