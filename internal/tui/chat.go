package tui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chipi-ai/chipi/internal/transcript"
)

// submitMessageMsg is emitted when the user sends a chat message.
type submitMessageMsg struct {
	text string
}

// logoutMsg is emitted when the user asks to sign out.
type logoutMsg struct{}

// showChatHelpMsg is emitted when the user asks the assistant for usage help.
type showChatHelpMsg struct{}

// welcomeText is the placeholder shown until the first message is sent. Once
// hidden it never returns for the life of the session.
const welcomeText = "¡Hola! Soy Chipi, tu asistente. Escríbeme lo que necesites y presiona Enter."

// helpText is appended as an assistant entry when the user asks for help, so
// the instructions appear in the conversation itself.
const helpText = `Puedo ayudarte con muchas cosas:

  • Pregúntame la hora o la fecha
  • Cuéntame un problema y lo resolvemos juntos
  • Escribe tu mensaje abajo y presiona Enter para enviarlo

Para salir de tu cuenta presiona ctrl+d. Para cerrar el programa, ctrl+c.`

// chatKeyMap defines the chat screen key bindings.
type chatKeyMap struct {
	Send   key.Binding
	Logout key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k chatKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Logout, k.Help}
}

func (k chatKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Logout},
		{k.Help, k.Quit},
	}
}

var chatKeys = chatKeyMap{
	Send:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "enviar")),
	Logout: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "cerrar sesión")),
	Help:   key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "ayuda")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "salir")),
}

// chatModel is the conversation screen: transcript viewport on top, input
// line below.
type chatModel struct {
	log     *transcript.Transcript
	vp      viewport.Model
	input   textinput.Model
	spin    spinner.Model
	help    help.Model
	waiting bool
	welcome bool // welcome placeholder still visible
	width   int
	height  int
}

func newChatModel() chatModel {
	input := textinput.New()
	input.Placeholder = "Escribe tu mensaje aquí…"
	input.CharLimit = 500
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = SpinnerStyle

	width, height := GetTerminalSize()

	m := chatModel{
		log:     transcript.New(),
		vp:      viewport.New(width-4, height-8),
		input:   input,
		spin:    spin,
		help:    help.New(),
		welcome: true,
		width:   width,
		height:  height,
	}
	m.refresh()
	return m
}

// reset clears the conversation for a fresh session.
func (m *chatModel) reset() {
	m.log.Clear()
	m.input.SetValue("")
	m.waiting = false
	m.welcome = true
	m.refresh()
}

// setSize resizes the viewport to the terminal dimensions.
func (m *chatModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.vp.Width = width - 4
	m.vp.Height = height - 8
	if m.vp.Height < 3 {
		m.vp.Height = 3
	}
	m.input.Width = width - 8
	m.refresh()
}

// appendUser adds the user's line to the transcript. The first append hides
// the welcome placeholder for good.
func (m *chatModel) appendUser(text string) {
	m.welcome = false
	m.log.Append(transcript.AuthorUser, maskSecrets(text))
	m.refresh()
}

// appendAssistant adds an assistant line to the transcript.
func (m *chatModel) appendAssistant(text string) {
	m.log.Append(transcript.AuthorAssistant, text)
	m.refresh()
}

// refresh re-renders the transcript into the viewport and scrolls to the
// newest entry.
func (m *chatModel) refresh() {
	var b strings.Builder
	for _, e := range m.log.Entries() {
		switch e.Author {
		case transcript.AuthorUser:
			b.WriteString(UserMessageStyle.Render("Tú: "))
			b.WriteString(wrapText(e.Text, m.vp.Width-6))
		case transcript.AuthorAssistant:
			b.WriteString(AssistantMessageStyle.Render("Chipi: "))
			b.WriteString(wrapText(e.Text, m.vp.Width-6))
		}
		b.WriteString("\n\n")
	}
	m.vp.SetContent(b.String())
	m.vp.GotoBottom()
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, chatKeys.Send):
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.SetValue("")
			return m, func() tea.Msg { return submitMessageMsg{text: text} }
		case key.Matches(msg, chatKeys.Logout):
			return m, func() tea.Msg { return logoutMsg{} }
		case key.Matches(msg, chatKeys.Help):
			return m, func() tea.Msg { return showChatHelpMsg{} }
		}
	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m chatModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("CHIPI"))
	b.WriteString("\n\n")

	if m.welcome && m.log.Len() == 0 {
		b.WriteString(WelcomeStyle.Render(wrapText(welcomeText, m.width-6)))
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.vp.View())
		b.WriteString("\n")
	}

	if m.waiting {
		b.WriteString(fmt.Sprintf("  %s Chipi está escribiendo…\n", m.spin.View()))
	}

	b.WriteString("\n  " + m.input.View() + "\n\n")
	b.WriteString("  " + m.help.View(chatKeys))
	return b.String()
}

// secretPhrases are lead-ins after which the rest of the line is a secret
// the user is dictating. Matching is case-insensitive.
var secretPhrases = []string{
	"mi contraseña de",
	"guarda la contraseña de",
	"la clave de",
}

// maskSecrets hides passwords the user dictates in chat ("mi contraseña de
// gmail es abc123") so the transcript never shows them. Only the user's echo
// is masked; the text sent to the backend is untouched. Matching is
// case-insensitive against the original string: lowercasing can change byte
// lengths, so offsets from a lowered copy must never be applied to text.
func maskSecrets(text string) string {
	for _, phrase := range secretPhrases {
		phraseEnd := indexFoldEnd(text, phrase)
		if phraseEnd < 0 {
			continue
		}
		esEnd := indexFoldEnd(text[phraseEnd:], " es ")
		if esEnd < 0 {
			continue
		}
		return text[:phraseEnd+esEnd] + "••••••"
	}
	return text
}

// indexFoldEnd finds the first case-insensitive occurrence of pattern in s
// and returns the byte offset just past it, or -1 when absent.
func indexFoldEnd(s, pattern string) int {
	for i := range s {
		if n := foldPrefixLen(s[i:], pattern); n >= 0 {
			return i + n
		}
	}
	return -1
}

// foldPrefixLen returns how many bytes at the start of s match pattern
// case-insensitively, or -1 when they do not.
func foldPrefixLen(s, pattern string) int {
	n := 0
	for _, pr := range pattern {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return -1
		}
		if unicode.ToLower(r) != unicode.ToLower(pr) {
			return -1
		}
		n += size
	}
	return n
}

// wrapText wraps text at width using lipgloss, guarding tiny widths.
func wrapText(text string, width int) string {
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
