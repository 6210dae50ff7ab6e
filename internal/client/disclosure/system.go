package disclosure

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteText copies text to the OS clipboard.
func (SystemClipboard) WriteText(_ context.Context, text string) error {
	return clipboard.WriteAll(text)
}

// SystemOpener opens URLs in the default browser.
type SystemOpener struct{}

// Open launches the default browser at url.
func (SystemOpener) Open(url string) error {
	return browser.OpenURL(url)
}
