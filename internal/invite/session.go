// Package invite implements the multi-step date invitation form: the step
// machine, input validation, and the fire-and-forget submission.
package invite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/evcraddock/date-invite/internal/submission"
)

// Step is a stage of the form.
type Step int

const (
	StepInitial Step = iota
	StepActivity
	StepDate
	StepPhone
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepInitial:
		return "initial"
	case StepActivity:
		return "activity"
	case StepDate:
		return "date"
	case StepPhone:
		return "phone"
	case StepSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// PhoneErrorMessage is shown when the phone number is not nine digits.
const PhoneErrorMessage = "HONEY YOUR NUMBER IS NOT CORRECT ❤️"

var (
	ErrWrongStep        = errors.New("action not available at this step")
	ErrNoActivity       = errors.New("pick at least one activity")
	ErrUnknownActivity  = errors.New("unknown activity")
	ErrOtherNotSelected = errors.New(`select "other" before describing it`)
	ErrDateInPast       = errors.New("date must be today or later")
	ErrInvalidPhone     = errors.New("phone number must have 9 digits")
	ErrNoSubmitter      = errors.New("session has no submitter")
)

// Submitter sends a finished invitation to the backend.
type Submitter interface {
	SaveDate(ctx context.Context, p submission.Payload) (*submission.Submission, error)
}

// Observer receives the outcome of a dispatched submission. It runs on the
// dispatch goroutine and cannot affect the session.
type Observer func(*submission.Submission, error)

// Option configures a Session.
type Option func(*Session)

// WithObserver registers a callback for dispatch outcomes.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithClock overrides the clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRand overrides the random source used by the NO control.
func WithRand(intn func(n int) int) Option {
	return func(s *Session) { s.dodger = NewDodger(intn) }
}

// WithTimeout bounds how long a dispatched submission may take.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// Session is the transient state of one person filling in the form.
// It is not safe for concurrent use; drive it from one goroutine.
type Session struct {
	step       Step
	date       time.Time
	phone      string
	selected   []string
	custom     string
	phoneError string

	dodger    *Dodger
	submitter Submitter
	observer  Observer
	now       func() time.Time
	timeout   time.Duration
}

// NewSession starts a form at the initial step.
func NewSession(submitter Submitter, opts ...Option) *Session {
	s := &Session{
		submitter: submitter,
		dodger:    NewDodger(nil),
		now:       time.Now,
		timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Step returns the current step.
func (s *Session) Step() Step { return s.step }

// Date returns the chosen date, or the zero time before one is chosen.
func (s *Session) Date() time.Time { return s.date }

// Phone returns the formatted phone number as displayed.
func (s *Session) Phone() string { return s.phone }

// PhoneError returns the current phone validation message, if any.
func (s *Session) PhoneError() string { return s.phoneError }

// CustomActivity returns the free-text activity.
func (s *Session) CustomActivity() string { return s.custom }

// SelectedActivities returns the selected activity ids in selection order.
func (s *Session) SelectedActivities() []string {
	return append([]string(nil), s.selected...)
}

// IsSelected reports whether an activity id is selected.
func (s *Session) IsSelected(id string) bool {
	return lo.Contains(s.selected, id)
}

// NoPlacement returns where the NO control is currently drawn.
func (s *Session) NoPlacement() Placement { return s.dodger.Placement() }

// Yes accepts the invitation.
func (s *Session) Yes() error {
	if s.step != StepInitial {
		return ErrWrongStep
	}
	s.step = StepActivity
	return nil
}

// No moves the NO control somewhere else on screen and stays on the
// initial step. current and card describe the control as rendered now.
func (s *Session) No(viewport Size, current Point, card Size) ([]Placement, error) {
	if s.step != StepInitial {
		return nil, ErrWrongStep
	}
	return s.dodger.Dodge(viewport, current, card), nil
}

// ToggleActivity adds or removes an activity. Removing "other" also clears
// the custom text.
func (s *Session) ToggleActivity(id string) error {
	if s.step != StepActivity {
		return ErrWrongStep
	}
	if !Known(id) {
		return fmt.Errorf("%w: %q", ErrUnknownActivity, id)
	}

	if lo.Contains(s.selected, id) {
		s.selected = lo.Without(s.selected, id)
		if id == OtherID {
			s.custom = ""
		}
		return nil
	}
	s.selected = append(s.selected, id)
	return nil
}

// SetCustomActivity sets the free-text activity. "other" must be selected.
func (s *Session) SetCustomActivity(text string) error {
	if s.step != StepActivity {
		return ErrWrongStep
	}
	if !s.IsSelected(OtherID) {
		return ErrOtherNotSelected
	}
	s.custom = text
	return nil
}

// CanProceed reports whether the activity step has a usable selection:
// any catalog activity, or "other" with non-blank text.
func (s *Session) CanProceed() bool {
	for _, id := range s.selected {
		if id != OtherID {
			return true
		}
	}
	return s.IsSelected(OtherID) && strings.TrimSpace(s.custom) != ""
}

// Next leaves the activity step.
func (s *Session) Next() error {
	if s.step != StepActivity {
		return ErrWrongStep
	}
	if !s.CanProceed() {
		return ErrNoActivity
	}
	s.step = StepDate
	return nil
}

// SelectDate picks the calendar day d falls on in its own zone. Days
// before today on the session clock are rejected.
func (s *Session) SelectDate(d time.Time) error {
	if s.step != StepDate {
		return ErrWrongStep
	}
	now := s.now()
	y, m, day := d.Date()
	d = time.Date(y, m, day, 0, 0, 0, 0, now.Location())
	if d.Before(calendarDay(now)) {
		return ErrDateInPast
	}
	s.date = d
	s.step = StepPhone
	return nil
}

// SetPhone formats raw input and stores it, clearing any earlier error.
// It returns the value to display.
func (s *Session) SetPhone(raw string) (string, error) {
	if s.step != StepPhone {
		return "", ErrWrongStep
	}
	s.phone = FormatPhone(raw)
	s.phoneError = ""
	return s.phone, nil
}

// Payload builds the request body from the current answers.
func (s *Session) Payload() submission.Payload {
	activities := lo.FilterMap(s.selected, func(id string, _ int) (string, bool) {
		return Label(id), id != OtherID
	})
	if custom := strings.TrimSpace(s.custom); custom != "" {
		activities = append(activities, custom)
	}

	var date string
	if !s.date.IsZero() {
		date = s.date.Format(time.DateOnly)
	}

	return submission.Payload{
		SelectedDate:        date,
		PhoneNumber:         cleanPhone(s.phone),
		Activities:          activities,
		ActivityDescription: submission.Describe(activities),
	}
}

// Submit validates the phone number and, if it is valid, dispatches the
// payload and moves to the submitted step without waiting for the result.
// ctx only supplies values to the dispatch; its cancellation is ignored.
func (s *Session) Submit(ctx context.Context) error {
	if s.step != StepPhone {
		return ErrWrongStep
	}
	if !submission.ValidPhone(cleanPhone(s.phone)) {
		s.phoneError = PhoneErrorMessage
		return ErrInvalidPhone
	}
	s.phoneError = ""
	if s.submitter == nil {
		return ErrNoSubmitter
	}

	p := s.Payload()
	slog.DebugContext(ctx, "dispatching date", "date", p.SelectedDate, "activities", p.ActivityDescription)
	go s.dispatch(context.WithoutCancel(ctx), p)

	s.step = StepSubmitted
	return nil
}

func (s *Session) dispatch(ctx context.Context, p submission.Payload) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sub, err := s.submitter.SaveDate(ctx, p)
	if err != nil {
		slog.ErrorContext(ctx, "sending date to server", "error", err)
	} else {
		slog.InfoContext(ctx, "date saved", "id", sub.ID)
	}

	if s.observer != nil {
		s.observer(sub, err)
	}
}

// Acknowledge closes the submitted step and resets the form.
func (s *Session) Acknowledge() error {
	if s.step != StepSubmitted {
		return ErrWrongStep
	}
	s.reset()
	return nil
}

func (s *Session) reset() {
	s.step = StepInitial
	s.date = time.Time{}
	s.phone = ""
	s.phoneError = ""
	s.selected = nil
	s.custom = ""
	s.dodger.Reset()
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
