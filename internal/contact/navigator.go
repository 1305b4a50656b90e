package contact

import (
	"io"

	"github.com/pkg/browser"
)

// BrowserNavigator opens URLs with the operating system's default handler
type BrowserNavigator struct{}

func init() {
	// xdg-open and friends are chatty on stdout
	browser.Stdout = io.Discard
}

// Navigate opens url, for mailto: links that is the default mail client
func (BrowserNavigator) Navigate(url string) error {
	return browser.OpenURL(url)
}
