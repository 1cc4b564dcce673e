package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// submitRegisterMsg is emitted when the user submits the registration form.
type submitRegisterMsg struct {
	phone    string
	password string
	confirm  string
}

// showLoginMsg is emitted when the user returns to the login screen.
type showLoginMsg struct{}

// registerModel is the registration form: phone, password, confirmation.
type registerModel struct {
	inputs []textinput.Model
	focus  int
}

func newRegisterModel() registerModel {
	phone := textinput.New()
	phone.Placeholder = "3001234567"
	phone.CharLimit = 10
	phone.Width = 24
	phone.Focus()

	password := textinput.New()
	password.Placeholder = "mínimo 6 caracteres, 3 letras y 3 números"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 44

	confirm := textinput.New()
	confirm.Placeholder = "repite la contraseña"
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'
	confirm.Width = 44

	return registerModel{inputs: []textinput.Model{phone, password, confirm}}
}

// reset clears the form. Called when the user navigates away so a later
// visit starts blank.
func (m *registerModel) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			sub := submitRegisterMsg{
				phone:    strings.TrimSpace(m.inputs[0].Value()),
				password: strings.TrimSpace(m.inputs[1].Value()),
				confirm:  strings.TrimSpace(m.inputs[2].Value()),
			}
			return m, func() tea.Msg { return sub }
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil
		case "esc":
			return m, func() tea.Msg { return showLoginMsg{} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *registerModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("CHIPI — CREAR CUENTA"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Solo necesitas tu número de celular"))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Número de celular"))
	b.WriteString("\n")
	b.WriteString("  " + m.inputs[0].View())
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Contraseña"))
	b.WriteString("\n")
	b.WriteString("  " + m.inputs[1].View())
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Confirmar contraseña"))
	b.WriteString("\n")
	b.WriteString("  " + m.inputs[2].View())
	b.WriteString("\n\n")
	b.WriteString(HintStyle.Render("enter: registrarse • tab: cambiar campo • esc: volver • ctrl+c: salir"))
	return b.String()
}
