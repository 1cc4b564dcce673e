package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// bannerDuration is how long a banner stays visible before auto-dismissing.
const bannerDuration = 3 * time.Second

// bannerKind selects the banner's color.
type bannerKind int

const (
	bannerSuccess bannerKind = iota
	bannerError
)

// bannerExpiredMsg fires when a banner's dismiss timer elapses. The seq
// identifies which banner the timer belongs to.
type bannerExpiredMsg struct {
	seq int
}

// banner is the single transient feedback line. At most one banner is
// visible; showing a new one replaces the old and restarts the clock. Each
// Show bumps seq so a stale timer from a replaced banner cannot dismiss the
// current one.
type banner struct {
	kind    bannerKind
	text    string
	seq     int
	visible bool
}

// Show replaces the current banner and returns the dismiss timer command.
func (b *banner) Show(kind bannerKind, text string) tea.Cmd {
	b.kind = kind
	b.text = text
	b.visible = true
	b.seq++

	seq := b.seq
	return tea.Tick(bannerDuration, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}

// Expire handles a dismiss timer. Timers from replaced banners are ignored.
func (b *banner) Expire(msg bannerExpiredMsg) {
	if msg.seq == b.seq {
		b.visible = false
	}
}

// View renders the banner, or "" when none is visible.
func (b *banner) View() string {
	if !b.visible {
		return ""
	}
	if b.kind == bannerSuccess {
		return SuccessBannerStyle.Render(b.text)
	}
	return ErrorBannerStyle.Render(b.text)
}
