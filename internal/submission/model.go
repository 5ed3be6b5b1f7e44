// Package submission provides the date submission model and its stores.
package submission

import (
	"strings"
	"time"
)

// Submission is one persisted date-invitation response.
type Submission struct {
	ID                  int64     `json:"id"`
	SelectedDate        string    `json:"selectedDate"` // YYYY-MM-DD
	PhoneNumber         string    `json:"phoneNumber"`
	Activities          []string  `json:"activities"`
	ActivityDescription string    `json:"activityDescription"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Payload is the request body for creating a submission.
type Payload struct {
	SelectedDate        string   `json:"selectedDate" validate:"required"`
	PhoneNumber         string   `json:"phoneNumber" validate:"required,phone9"`
	Activities          []string `json:"activities"`
	ActivityDescription string   `json:"activityDescription"`
}

// Describe joins activities the way they are shown to people.
func Describe(activities []string) string {
	return strings.Join(activities, ", ")
}

// build turns a validated payload into a record. The description is always
// derived from the activities so the two cannot drift apart.
func build(p Payload, id int64, now time.Time) *Submission {
	activities := p.Activities
	if activities == nil {
		activities = []string{}
	}
	return &Submission{
		ID:                  id,
		SelectedDate:        p.SelectedDate,
		PhoneNumber:         p.PhoneNumber,
		Activities:          activities,
		ActivityDescription: Describe(activities),
		CreatedAt:           now.UTC().Truncate(time.Millisecond),
	}
}

// nextID derives an id from the creation time in milliseconds, bumping it
// past maxID so ids stay unique and increasing.
func nextID(now time.Time, maxID int64) int64 {
	id := now.UnixMilli()
	if id <= maxID {
		id = maxID + 1
	}
	return id
}

func maxID(records []*Submission) int64 {
	var m int64
	for _, s := range records {
		if s.ID > m {
			m = s.ID
		}
	}
	return m
}
