package contact

import (
	"context"
	"errors"
	"sync"

	"github.com/agile-ai-hub/intake-api/pkg/logger"
	"go.uber.org/zap"
)

// Status is the form's visible submission state
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrSubmitInFlight is returned while a previous submission is still outstanding
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// Navigator sends the user somewhere, such as a mailto: link
type Navigator interface {
	Navigate(url string) error
}

// Outcome describes what a Submit call did
type Outcome struct {
	Status      Status
	Result      Result
	FallbackURL string
	NavigateErr error
}

// Form is the contact form: its fields, its status, and the email fallback
type Form struct {
	mu            sync.Mutex
	status        Status
	fields        Submission
	submitter     Submitter
	navigator     Navigator
	fallbackEmail string
}

// NewForm creates an idle form
func NewForm(submitter Submitter, navigator Navigator, fallbackEmail string) *Form {
	return &Form{
		status:        StatusIdle,
		submitter:     submitter,
		navigator:     navigator,
		fallbackEmail: fallbackEmail,
	}
}

// SetFields replaces the form's field values
func (f *Form) SetFields(sub Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = sub
}

// Fields returns the current field values
func (f *Form) Fields() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Status returns the current submission state
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Submit validates and sends the current fields.
// Invalid fields are rejected before anything is sent and leave the status unchanged.
// On success the fields are cleared. On any failure the status becomes error and the
// navigator is pointed at a pre-filled mailto: link.
func (f *Form) Submit(ctx context.Context) (*Outcome, error) {
	f.mu.Lock()
	if f.status == StatusSending {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	sub := f.fields
	if _, err := sub.Validate(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.status = StatusSending
	f.mu.Unlock()

	result := f.submitter.Submit(ctx, sub)

	f.mu.Lock()
	if result.OK() {
		f.status = StatusSuccess
		f.fields = Submission{}
		f.mu.Unlock()
		return &Outcome{Status: StatusSuccess, Result: result}, nil
	}
	f.status = StatusError
	f.mu.Unlock()

	outcome := &Outcome{
		Status:      StatusError,
		Result:      result,
		FallbackURL: MailtoLink(f.fallbackEmail, sub),
	}
	logger.Warn("Submission failed, falling back to email", zap.Error(result.Err))

	if err := f.navigator.Navigate(outcome.FallbackURL); err != nil {
		outcome.NavigateErr = err
		logger.Warn("Failed to open email fallback", zap.Error(err))
	}
	return outcome, nil
}
