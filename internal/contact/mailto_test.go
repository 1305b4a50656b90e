package contact

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailtoLink(t *testing.T) {
	link := MailtoLink("owner@example.com", Submission{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Message: "Hi & welcome",
	})

	require.True(t, strings.HasPrefix(link, "mailto:owner@example.com?"))
	assert.NotContains(t, link, "+", "spaces must be %20 encoded")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	query, err := url.ParseQuery(parsed.RawQuery)
	require.NoError(t, err)

	assert.Equal(t, "Website inquiry from Jane Doe", query.Get("subject"))
	assert.Equal(t, "Name: Jane Doe\nEmail: jane@x.com\n\nHi & welcome", query.Get("body"))
}

func TestEncodeComponent(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{in: "a b&c=d\n", expected: "a%20b%26c%3Dd%0A"},
		{in: "Hi! (it's *me*)", expected: "Hi!%20(it's%20*me*)"},
		{in: "100% + ~_.-", expected: "100%25%20%2B%20~_.-"},
		{in: "שלום", expected: "%D7%A9%D7%9C%D7%95%D7%9D"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, encodeComponent(tt.in))
		})
	}
}
