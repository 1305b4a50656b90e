package contact

import (
	"fmt"
	"net/url"
	"strings"
)

// MailtoLink builds the pre-filled email used when the intake endpoint is unreachable
func MailtoLink(recipient string, sub Submission) string {
	subject := fmt.Sprintf("Website inquiry from %s", sub.Name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", sub.Name, sub.Email, sub.Message)

	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", recipient, encodeComponent(subject), encodeComponent(body))
}

// componentUnescaper restores the marks encodeURIComponent leaves as is
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes like encodeURIComponent: spaces become %20, not +,
// and !'()* stay literal
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
