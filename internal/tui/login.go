package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// submitLoginMsg is emitted when the user submits the login form.
type submitLoginMsg struct {
	phone    string
	password string
}

// showRegisterMsg is emitted when the user asks for the registration screen.
type showRegisterMsg struct{}

// loginModel is the login form: phone and password.
type loginModel struct {
	inputs []textinput.Model
	focus  int
}

func newLoginModel() loginModel {
	phone := textinput.New()
	phone.Placeholder = "3001234567"
	phone.CharLimit = 10
	phone.Width = 24
	phone.Focus()

	password := textinput.New()
	password.Placeholder = "contraseña"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 24

	return loginModel{inputs: []textinput.Model{phone, password}}
}

// reset clears both fields and refocuses the phone input. Called on logout
// so the next user starts from a blank form.
func (m *loginModel) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			phone := strings.TrimSpace(m.inputs[0].Value())
			password := strings.TrimSpace(m.inputs[1].Value())
			return m, func() tea.Msg { return submitLoginMsg{phone: phone, password: password} }
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil
		case "ctrl+r":
			return m, func() tea.Msg { return showRegisterMsg{} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *loginModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("CHIPI — INICIAR SESIÓN"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Tu asistente de confianza"))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Número de celular"))
	b.WriteString("\n")
	b.WriteString("  " + m.inputs[0].View())
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Contraseña"))
	b.WriteString("\n")
	b.WriteString("  " + m.inputs[1].View())
	b.WriteString("\n\n")
	b.WriteString(HintStyle.Render("enter: ingresar • tab: cambiar campo • ctrl+r: crear cuenta • ctrl+c: salir"))
	return b.String()
}
