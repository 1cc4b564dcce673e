package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette. Warm and high-contrast: the audience is older adults, so
// every accent doubles as a large, obvious visual cue.
var (
	PrimaryColor = lipgloss.Color("#3D8BFD") // Blue - titles, focused borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success banners
	ErrorColor   = lipgloss.Color("#FF5555") // Red - error banners
	MutedColor   = lipgloss.Color("#626262") // Gray - hints, secondary text
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
	UserColor    = lipgloss.Color("#FFA500") // Orange - the user's own messages
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

var (
	// TitleStyle is for screen titles ("CHIPI — INICIAR SESIÓN")
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			PaddingLeft(2)

	// SubtitleStyle is for the line under the title
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2)

	// LabelStyle is for input field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			PaddingLeft(2)

	// HintStyle is for key hints at the bottom of a screen
	HintStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2)

	// SuccessBannerStyle renders the auto-dismissing success banner
	SuccessBannerStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(SuccessColor).
				Padding(0, 2)

	// ErrorBannerStyle renders the auto-dismissing error banner
	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ErrorColor).
				Padding(0, 2)

	// UserMessageStyle is for the user's lines in the transcript
	UserMessageStyle = lipgloss.NewStyle().
				Foreground(UserColor).
				Bold(true)

	// AssistantMessageStyle is for the assistant's lines in the transcript
	AssistantMessageStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// WelcomeStyle is for the placeholder shown before the first message
	WelcomeStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true).
			PaddingLeft(2)

	// SpinnerStyle colors the waiting spinner
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// GetTerminalSize returns the current terminal width and height, clamped to
// the supported range. Used as a fallback before the first WindowSizeMsg.
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}
