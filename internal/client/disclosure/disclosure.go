// Package disclosure handles per-field reveal state for password-like
// values and bridges copy and open-URL actions to the host environment.
package disclosure

import (
	"context"
	"sync"

	"github.com/icfoundry/icvault/internal/client/notify"
	"go.uber.org/zap"
)

// Mask replaces a hidden field value. Always exactly 12 bullet runes,
// regardless of the real value's length.
const Mask = "••••••••••••"

// Clipboard is the external clipboard write capability. Writes may fail,
// e.g. when the environment denies access.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Opener hands a URL to the environment to open in a new, non-opener,
// no-referrer context. Failures are the environment's concern.
type Opener interface {
	Open(url string) error
}

// Bridge tracks which fields of the open item are revealed and routes copy
// and open actions to the environment. Reveal state lives only as long as
// the item stays open; it is never persisted.
type Bridge struct {
	clipboard Clipboard
	opener    Opener
	notifier  *notify.Notifier
	log       *zap.Logger

	mu       sync.Mutex
	revealed map[string]bool
}

// NewBridge constructs a Bridge. All fields start hidden.
func NewBridge(clipboard Clipboard, opener Opener, notifier *notify.Notifier, log *zap.Logger) *Bridge {
	return &Bridge{
		clipboard: clipboard,
		opener:    opener,
		notifier:  notifier,
		log:       log,
		revealed:  make(map[string]bool),
	}
}

// ToggleReveal flips the reveal state of the given field and returns the
// new state.
func (b *Bridge) ToggleReveal(fieldKey string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revealed[fieldKey] = !b.revealed[fieldKey]
	return b.revealed[fieldKey]
}

// Revealed reports whether the given field is currently revealed.
func (b *Bridge) Revealed(fieldKey string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revealed[fieldKey]
}

// Display returns the value to render for a field: the real value when
// revealed, the fixed mask otherwise.
func (b *Bridge) Display(fieldKey, value string) string {
	if b.Revealed(fieldKey) {
		return value
	}
	return Mask
}

// Reset hides every field again. Called when the open item changes.
func (b *Bridge) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revealed = make(map[string]bool)
}

// CopyField writes value to the clipboard and reports the outcome through
// the notifier. Both outcomes are terminal; no error escapes this boundary.
func (b *Bridge) CopyField(ctx context.Context, value, label string) {
	if err := b.clipboard.WriteText(ctx, value); err != nil {
		b.log.Error("failed to copy to clipboard", zap.String("field", label), zap.Error(err))
		b.notifier.Show("Failed to copy to clipboard", 0)
		return
	}
	b.notifier.Show(label+" copied to clipboard", 0)
}

// OpenURL asks the environment to open url. Fire-and-forget; a refusal is
// logged but not surfaced.
func (b *Bridge) OpenURL(url string) {
	if err := b.opener.Open(url); err != nil {
		b.log.Warn("failed to open url", zap.String("url", url), zap.Error(err))
	}
}
