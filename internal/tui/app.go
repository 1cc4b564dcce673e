package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/chipi-ai/chipi/internal/api"
	"github.com/chipi-ai/chipi/internal/client"
	"github.com/chipi-ai/chipi/internal/logging"
	"github.com/chipi-ai/chipi/internal/screen"
	"github.com/chipi-ai/chipi/internal/session"
	"github.com/chipi-ai/chipi/internal/validate"
)

// User-facing banner texts.
const (
	bannerLoginOK      = "¡Bienvenido! Has ingresado correctamente"
	bannerRegisterOK   = "¡Registro exitoso! Ya puedes iniciar sesión"
	bannerLoggedOut    = "Has cerrado la sesión. ¡Hasta pronto!"
	bannerLoginFail    = "Número o contraseña incorrectos"
	bannerRegisterFail = "No se pudo crear la cuenta. Intenta nuevamente."
	bannerConnFail     = "No se pudo conectar con el servidor. Revisa tu conexión."

	// chatErrorReply is shown as an assistant line when sending fails.
	// Chat failures never use the banner; the answer arrives where the
	// user is looking.
	chatErrorReply = "Lo siento, ocurrió un problema al procesar tu solicitud. ¿Puedes intentar nuevamente?"
)

// Network results delivered back into the event loop.
type loginResultMsg struct {
	phone string
	resp  *api.LoginResponse
	err   error
}

type registerResultMsg struct {
	resp *api.RegisterResponse
	err  error
}

type messageResultMsg struct {
	resp *api.MessageResponse
	err  error
}

// AppModel is the root Bubble Tea model. It owns the active screen, the
// session and the banner, and routes messages to the per-screen models.
type AppModel struct {
	client  *client.Client
	current screen.Screen
	sess    *session.Session
	banner  banner

	login    loginModel
	register registerModel
	chat     chatModel
}

// NewAppModel creates the root model starting on the login screen.
func NewAppModel(c *client.Client) AppModel {
	return AppModel{
		client:   c,
		current:  screen.Login,
		login:    newLoginModel(),
		register: newRegisterModel(),
		chat:     newChatModel(),
	}
}

// Session returns the active session, or nil when signed out.
func (m AppModel) Session() *session.Session {
	return m.sess
}

// Screen returns the currently visible screen.
func (m AppModel) Screen() screen.Screen {
	return m.current
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.chat.setSize(msg.Width, msg.Height)
		return m, nil

	case bannerExpiredMsg:
		m.banner.Expire(msg)
		return m, nil

	case showRegisterMsg:
		m.current = screen.Next(m.current, screen.EventShowRegister)
		m.register.reset()
		return m, nil

	case showLoginMsg:
		m.current = screen.Next(m.current, screen.EventShowLogin)
		m.login.reset()
		return m, nil

	case submitLoginMsg:
		if err := validate.Login(msg.phone, msg.password); err != nil {
			return m, m.banner.Show(bannerError, err.Error())
		}
		return m, m.loginCmd(msg.phone, msg.password)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case submitRegisterMsg:
		if err := validate.Register(msg.phone, msg.password, msg.confirm); err != nil {
			return m, m.banner.Show(bannerError, err.Error())
		}
		return m, m.registerCmd(msg.phone, msg.password, msg.confirm)

	case registerResultMsg:
		return m.handleRegisterResult(msg)

	case submitMessageMsg:
		// No session or no text means no chat; stale submissions are
		// dropped silently.
		if !m.sess.Active() || msg.text == "" {
			return m, nil
		}
		m.chat.appendUser(msg.text)
		m.chat.waiting = true
		return m, tea.Batch(m.chat.spin.Tick, m.messageCmd(m.sess.Phone(), msg.text))

	case messageResultMsg:
		return m.handleMessageResult(msg)

	case showChatHelpMsg:
		// Help lands in the transcript as an assistant entry, in the
		// conversation the user is already reading.
		m.chat.appendAssistant(helpText)
		return m, nil

	case logoutMsg:
		phone := ""
		if m.sess != nil {
			phone = m.sess.Phone()
		}
		logging.Info("logged out", zap.String("phone", phone))
		m.sess = nil
		m.current = screen.Next(m.current, screen.EventLogout)
		m.chat.reset()
		m.login.reset()
		return m, m.banner.Show(bannerSuccess, bannerLoggedOut)
	}

	// Everything else goes to the active screen only.
	var cmd tea.Cmd
	switch m.current {
	case screen.Login:
		m.login, cmd = m.login.Update(msg)
	case screen.Register:
		m.register, cmd = m.register.Update(msg)
	case screen.Chat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

func (m AppModel) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logging.Warn("login request failed", zap.Error(msg.err))
		return m, m.banner.Show(bannerError, bannerConnFail)
	}
	if !msg.resp.Success {
		detail := msg.resp.Detail
		if detail == "" {
			detail = bannerLoginFail
		}
		return m, m.banner.Show(bannerError, detail)
	}

	phone := msg.resp.Phone
	if phone == "" {
		phone = msg.phone
	}
	m.sess = session.New(phone)
	m.current = screen.Next(m.current, screen.EventLoginSucceeded)
	m.login.reset()
	m.chat.reset()
	logging.Info("logged in", zap.String("phone", phone))
	return m, m.banner.Show(bannerSuccess, bannerLoginOK)
}

func (m AppModel) handleRegisterResult(msg registerResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logging.Warn("register request failed", zap.Error(msg.err))
		return m, m.banner.Show(bannerError, bannerConnFail)
	}
	if !msg.resp.Success {
		detail := msg.resp.Detail
		if detail == "" {
			detail = bannerRegisterFail
		}
		return m, m.banner.Show(bannerError, detail)
	}

	// Registration does not sign the user in; back to login to do it
	// with the new credentials.
	m.current = screen.Next(m.current, screen.EventRegisterSucceeded)
	m.register.reset()
	m.login.reset()
	return m, m.banner.Show(bannerSuccess, bannerRegisterOK)
}

func (m AppModel) handleMessageResult(msg messageResultMsg) (tea.Model, tea.Cmd) {
	m.chat.waiting = false
	if msg.err != nil || !msg.resp.Success {
		if msg.err != nil {
			logging.Warn("message request failed", zap.Error(msg.err))
		}
		m.chat.appendAssistant(chatErrorReply)
		return m, nil
	}
	m.chat.appendAssistant(msg.resp.Response)
	return m, nil
}

// loginCmd performs the login request off the event loop.
func (m AppModel) loginCmd(phone, password string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		resp, err := c.Login(context.Background(), phone, password)
		return loginResultMsg{phone: phone, resp: resp, err: err}
	}
}

// registerCmd performs the registration request off the event loop.
func (m AppModel) registerCmd(phone, password, confirm string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		resp, err := c.Register(context.Background(), phone, password, confirm)
		return registerResultMsg{resp: resp, err: err}
	}
}

// messageCmd performs the chat request off the event loop.
func (m AppModel) messageCmd(phone, text string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		resp, err := c.SendMessage(context.Background(), phone, text)
		return messageResultMsg{resp: resp, err: err}
	}
}

func (m AppModel) View() string {
	var body string
	switch m.current {
	case screen.Login:
		body = m.login.View()
	case screen.Register:
		body = m.register.View()
	case screen.Chat:
		body = m.chat.View()
	}

	if b := m.banner.View(); b != "" {
		return b + "\n\n" + body
	}
	return "\n" + body
}
