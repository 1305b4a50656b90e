package models

import (
	"time"

	"github.com/agile-ai-hub/intake-api/pkg/notion"
)

const (
	// DefaultLeadTitle names a lead that arrived without a name
	DefaultLeadTitle = "New lead"

	// DefaultSource labels submissions that did not say where they came from
	DefaultSource = "website"

	// MaxMessageLength caps the forwarded message, in characters
	MaxMessageLength = 2000

	// SubmittedAtLayout matches JavaScript's Date.toISOString
	SubmittedAtLayout = "2006-01-02T15:04:05.000Z"
)

// Lead database column names
const (
	PropertyName        = "Name"
	PropertyEmail       = "Email"
	PropertySource      = "Source"
	PropertySubmittedAt = "Submitted At"
)

// IntakeRequest is a contact form submission as received by the intake endpoint.
// Every field is optional; Source distinguishes "absent" (nil) from an explicit value.
type IntakeRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Message string  `json:"message"`
	Source  *string `json:"source"`
}

// IntakeResponse is returned by the intake endpoint
type IntakeResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Title returns the lead title, falling back to the placeholder
func (r *IntakeRequest) Title() string {
	if r.Name == "" {
		return DefaultLeadTitle
	}
	return r.Name
}

// SourceLabel returns the submission channel, falling back to the default
func (r *IntakeRequest) SourceLabel() string {
	if r.Source == nil {
		return DefaultSource
	}
	return *r.Source
}

// TruncateMessage cuts s to at most MaxMessageLength characters
func TruncateMessage(s string) string {
	count := 0
	for i := range s {
		if count == MaxMessageLength {
			return s[:i]
		}
		count++
	}
	return s
}

// NewLeadPage maps a submission onto the lead database schema.
// submittedAt is supplied by the server; nothing from the request feeds it.
func NewLeadPage(databaseID string, req *IntakeRequest, submittedAt time.Time) *notion.CreatePageRequest {
	var email *string
	if req.Email != "" {
		e := req.Email
		email = &e
	}

	children := []notion.Block{}
	if req.Message != "" {
		children = append(children, notion.ParagraphBlock(TruncateMessage(req.Message)))
	}

	return &notion.CreatePageRequest{
		Parent: notion.Parent{DatabaseID: databaseID},
		Properties: notion.Properties{
			PropertyName:   notion.TitleProperty{Title: notion.PlainText(req.Title())},
			PropertyEmail:  notion.EmailProperty{Email: email},
			PropertySource: notion.RichTextProperty{RichText: notion.PlainText(req.SourceLabel())},
			PropertySubmittedAt: notion.DateProperty{
				Date: notion.DateValue{Start: submittedAt.UTC().Format(SubmittedAtLayout)},
			},
		},
		Children: children,
	}
}
