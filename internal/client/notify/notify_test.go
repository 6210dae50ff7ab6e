package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icfoundry/icvault/internal/client/notify"
)

func TestDefaultDuration(t *testing.T) {
	assert.Equal(t, 2*time.Second, notify.DefaultDuration)
}

func TestShow_VisibleThenAutoHides(t *testing.T) {
	n := notify.New()

	n.Show("Password copied to clipboard", 50*time.Millisecond)
	assert.True(t, n.Visible())
	assert.Equal(t, "Password copied to clipboard", n.Message())

	require.Eventually(t, func() bool { return !n.Visible() },
		time.Second, 10*time.Millisecond)
	// The text stays readable after hiding.
	assert.Equal(t, "Password copied to clipboard", n.Message())
}

func TestShow_SecondCallSupersedesFirstTimer(t *testing.T) {
	n := notify.New()

	n.Show("first", 80*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	n.Show("second", 80*time.Millisecond)

	// Past the first countdown's deadline: the second message must still be
	// up, because its own countdown started fresh.
	time.Sleep(60 * time.Millisecond)
	assert.True(t, n.Visible())
	assert.Equal(t, "second", n.Message())

	require.Eventually(t, func() bool { return !n.Visible() },
		time.Second, 10*time.Millisecond)
}

func TestDismiss_HidesEarlyAndCancelsCountdown(t *testing.T) {
	n := notify.New()

	n.Show("toast", time.Hour)
	require.True(t, n.Visible())

	n.Dismiss()
	assert.False(t, n.Visible())

	// A new message shown right after must not be hidden by anything left
	// over from the dismissed one.
	n.Show("fresh", time.Hour)
	time.Sleep(50 * time.Millisecond)
	assert.True(t, n.Visible())
	assert.Equal(t, "fresh", n.Message())
}

func TestShow_NonPositiveDurationUsesDefault(t *testing.T) {
	n := notify.New()

	n.Show("slow", 0)
	time.Sleep(80 * time.Millisecond)
	// Still visible well before the 2s default elapses.
	assert.True(t, n.Visible())
	n.Dismiss()
}
