package models_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/agile-ai-hub/intake-api/internal/models"
	"github.com/agile-ai-hub/intake-api/pkg/notion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 9, 30, 15, 123456789, time.FixedZone("IDT", 3*60*60))

func strPtr(s string) *string { return &s }

func TestNewLeadPage_FullSubmission(t *testing.T) {
	req := &models.IntakeRequest{Name: "Jane", Email: "jane@x.com", Message: "Hi"}

	page := models.NewLeadPage("db-123", req, fixedNow)

	assert.Equal(t, "db-123", page.Parent.DatabaseID)
	assert.Equal(t, notion.TitleProperty{Title: notion.PlainText("Jane")}, page.Properties[models.PropertyName])

	email := page.Properties[models.PropertyEmail].(notion.EmailProperty)
	require.NotNil(t, email.Email)
	assert.Equal(t, "jane@x.com", *email.Email)

	assert.Equal(t, notion.RichTextProperty{RichText: notion.PlainText("website")}, page.Properties[models.PropertySource])
	assert.Equal(t, notion.DateProperty{Date: notion.DateValue{Start: "2026-10-16T06:30:15.123Z"}}, page.Properties[models.PropertySubmittedAt])

	require.Len(t, page.Children, 1)
	assert.Equal(t, notion.ParagraphBlock("Hi"), page.Children[0])
}

func TestNewLeadPage_EmptySubmission(t *testing.T) {
	page := models.NewLeadPage("db-123", &models.IntakeRequest{}, fixedNow)

	assert.Equal(t, notion.TitleProperty{Title: notion.PlainText(models.DefaultLeadTitle)}, page.Properties[models.PropertyName])
	assert.Nil(t, page.Properties[models.PropertyEmail].(notion.EmailProperty).Email)
	assert.Empty(t, page.Children)

	data, err := json.Marshal(page)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Email":{"email":null}`)
	assert.Contains(t, string(data), `"children":[]`)
	assert.Contains(t, string(data), `"content":"New lead"`)
}

func TestNewLeadPage_Source(t *testing.T) {
	tests := []struct {
		name     string
		source   *string
		expected string
	}{
		{name: "absent uses default", source: nil, expected: "website"},
		{name: "explicit value kept", source: strPtr("linkedin"), expected: "linkedin"},
		{name: "explicit empty kept", source: strPtr(""), expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := models.NewLeadPage("db", &models.IntakeRequest{Source: tt.source}, fixedNow)
			assert.Equal(t, notion.RichTextProperty{RichText: notion.PlainText(tt.expected)}, page.Properties[models.PropertySource])
		})
	}
}

func TestNewLeadPage_TruncatesLongMessage(t *testing.T) {
	long := strings.Repeat("a", 1999) + "bcdef"

	page := models.NewLeadPage("db", &models.IntakeRequest{Message: long}, fixedNow)

	require.Len(t, page.Children, 1)
	content := page.Children[0].Paragraph.RichText[0].Text.Content
	assert.Len(t, content, models.MaxMessageLength)
	assert.Equal(t, long[:2000], content)
}

func TestTruncateMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "short", input: "hello", expected: "hello"},
		{name: "exact limit", input: strings.Repeat("x", 2000), expected: strings.Repeat("x", 2000)},
		{name: "over limit", input: strings.Repeat("x", 2001), expected: strings.Repeat("x", 2000)},
		{name: "multibyte counted as characters", input: strings.Repeat("ש", 2005), expected: strings.Repeat("ש", 2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, models.TruncateMessage(tt.input))
		})
	}
}

func TestIntakeRequest_DecodeNullSource(t *testing.T) {
	var req models.IntakeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Jane","source":null}`), &req))

	assert.Nil(t, req.Source)
	assert.Equal(t, "website", req.SourceLabel())
	assert.Equal(t, "Jane", req.Title())
}
