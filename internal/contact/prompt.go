package contact

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// EndpointPrompt is the question shown when editing the saved endpoint
const EndpointPrompt = "Paste the Notion endpoint URL"

// PromptEndpoint asks for a new intake endpoint, showing the current one.
// It returns "" when the user enters nothing.
func PromptEndpoint(in io.Reader, out io.Writer, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(out, "%s [%s]: ", EndpointPrompt, current)
	} else {
		fmt.Fprintf(out, "%s: ", EndpointPrompt)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read endpoint: %w", err)
	}
	return strings.TrimSpace(line), nil
}
