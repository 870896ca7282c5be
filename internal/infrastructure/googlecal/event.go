package googlecal

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/acadash/backend/domain"
)

// Events created from tasks land in the owner's local calendar; the zone the
// original deployment assumed.
const eventTimeZone = "America/New_York"

const defaultEventDuration = time.Hour

// Event is the flattened slice of a Google Calendar event the UI renders.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	AllDay      bool   `json:"allDay"`
}

func fromGoogleEvent(item *calendar.Event) Event {
	event := Event{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
	}
	if item.Start != nil {
		if item.Start.DateTime != "" {
			event.Start = item.Start.DateTime
		} else {
			event.Start = item.Start.Date
			event.AllDay = true
		}
	}
	if item.End != nil {
		if item.End.DateTime != "" {
			event.End = item.End.DateTime
		} else {
			event.End = item.End.Date
		}
	}
	return event
}

// buildEvent translates a task into a calendar event. With a time slot the
// event is timed and runs for exactly one hour; without one it is an all-day
// event spanning the due date.
func buildEvent(task domain.Task) (*calendar.Event, error) {
	description := task.Description
	if description == "" {
		description = "Created from Academic Dashboard"
	}

	event := &calendar.Event{
		Summary:     "\U0001F4DA " + task.Title,
		Description: description,
	}

	if task.TimeSlot == "" {
		event.Start = &calendar.EventDateTime{Date: task.DueDate}
		event.End = &calendar.EventDateTime{Date: task.DueDate}
		return event, nil
	}

	start, err := time.Parse("2006-01-02T15:04", task.DueDate+"T"+task.TimeSlot)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid due date or time slot", err)
	}
	end := start.Add(defaultEventDuration)

	event.Start = &calendar.EventDateTime{
		DateTime: start.Format("2006-01-02T15:04:05"),
		TimeZone: eventTimeZone,
	}
	event.End = &calendar.EventDateTime{
		DateTime: end.Format("2006-01-02T15:04:05"),
		TimeZone: eventTimeZone,
	}
	return event, nil
}
