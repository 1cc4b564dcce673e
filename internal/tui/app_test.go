package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chipi-ai/chipi/internal/api"
	"github.com/chipi-ai/chipi/internal/client"
	"github.com/chipi-ai/chipi/internal/screen"
	"github.com/chipi-ai/chipi/internal/session"
	"github.com/chipi-ai/chipi/internal/transcript"
	"github.com/chipi-ai/chipi/internal/validate"
)

func newTestApp() AppModel {
	return NewAppModel(client.New("http://localhost:8600"))
}

// update runs one Update and returns the concrete model back.
func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	app, ok := model.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T, want AppModel", model)
	}
	return app, cmd
}

func TestSubmitLogin_EmptyFieldsShowsBanner(t *testing.T) {
	m := newTestApp()

	m, cmd := update(t, m, submitLoginMsg{phone: "", password: ""})

	if m.Screen() != screen.Login {
		t.Errorf("screen = %v, want Login", m.Screen())
	}
	if !m.banner.visible {
		t.Fatal("banner not visible after empty submit")
	}
	if m.banner.text != validate.ErrEmptyFields.Error() {
		t.Errorf("banner text = %q, want %q", m.banner.text, validate.ErrEmptyFields.Error())
	}
	if m.banner.kind != bannerError {
		t.Error("banner kind = success, want error")
	}
	// The dismiss timer must be scheduled
	if cmd == nil {
		t.Error("cmd = nil, want banner timer")
	}
	if m.Session() != nil {
		t.Error("session created from a failed submit")
	}
}

func TestSubmitLogin_ValidFieldsIssueRequest(t *testing.T) {
	m := newTestApp()

	m, cmd := update(t, m, submitLoginMsg{phone: "3001234567", password: "abc123"})

	if cmd == nil {
		t.Fatal("cmd = nil, want network command")
	}
	if m.banner.visible {
		t.Error("banner visible before any response")
	}
}

func TestLoginResult_SuccessEntersChat(t *testing.T) {
	m := newTestApp()

	m, cmd := update(t, m, loginResultMsg{
		phone: "3001234567",
		resp:  &api.LoginResponse{Success: true, Phone: "3001234567"},
	})

	if m.Screen() != screen.Chat {
		t.Errorf("screen = %v, want Chat", m.Screen())
	}
	if !m.Session().Active() {
		t.Fatal("session not active after successful login")
	}
	if m.Session().Phone() != "3001234567" {
		t.Errorf("session phone = %q, want %q", m.Session().Phone(), "3001234567")
	}
	if !m.banner.visible || m.banner.kind != bannerSuccess {
		t.Error("success banner not shown")
	}
	if cmd == nil {
		t.Error("cmd = nil, want banner timer")
	}
}

func TestLoginResult_RejectionStaysOnLogin(t *testing.T) {
	m := newTestApp()

	m, _ = update(t, m, loginResultMsg{
		phone: "3001234567",
		resp:  &api.LoginResponse{Success: false, Detail: "Número o contraseña incorrectos"},
	})

	if m.Screen() != screen.Login {
		t.Errorf("screen = %v, want Login", m.Screen())
	}
	if m.Session() != nil {
		t.Error("session created from a rejected login")
	}
	if !m.banner.visible || m.banner.kind != bannerError {
		t.Fatal("error banner not shown")
	}
	if m.banner.text != "Número o contraseña incorrectos" {
		t.Errorf("banner text = %q, want server detail", m.banner.text)
	}
}

func TestLoginResult_RejectionWithoutDetailUsesGenericText(t *testing.T) {
	m := newTestApp()

	m, _ = update(t, m, loginResultMsg{resp: &api.LoginResponse{Success: false}})

	if m.banner.text != bannerLoginFail {
		t.Errorf("banner text = %q, want %q", m.banner.text, bannerLoginFail)
	}
}

func TestLoginResult_TransportErrorShowsConnectionBanner(t *testing.T) {
	m := newTestApp()

	m, _ = update(t, m, loginResultMsg{err: errors.New("connection refused")})

	if m.Screen() != screen.Login {
		t.Errorf("screen = %v, want Login", m.Screen())
	}
	if m.banner.text != bannerConnFail {
		t.Errorf("banner text = %q, want %q", m.banner.text, bannerConnFail)
	}
}

func TestRegisterResult_SuccessReturnsToLogin(t *testing.T) {
	m := newTestApp()
	m, _ = update(t, m, showRegisterMsg{})
	if m.Screen() != screen.Register {
		t.Fatalf("screen = %v, want Register", m.Screen())
	}

	m, _ = update(t, m, registerResultMsg{resp: &api.RegisterResponse{Success: true}})

	if m.Screen() != screen.Login {
		t.Errorf("screen = %v, want Login after successful registration", m.Screen())
	}
	if m.Session() != nil {
		t.Error("registration must not sign the user in")
	}
	if !m.banner.visible || m.banner.kind != bannerSuccess {
		t.Error("success banner not shown")
	}
}

func TestRegisterResult_FailureStaysOnRegister(t *testing.T) {
	m := newTestApp()
	m, _ = update(t, m, showRegisterMsg{})

	m, _ = update(t, m, registerResultMsg{
		resp: &api.RegisterResponse{Success: false, Detail: "Este número ya está registrado. Intenta iniciar sesión"},
	})

	if m.Screen() != screen.Register {
		t.Errorf("screen = %v, want Register", m.Screen())
	}
	if m.banner.text != "Este número ya está registrado. Intenta iniciar sesión" {
		t.Errorf("banner text = %q, want server detail", m.banner.text)
	}
}

func TestSubmitMessage_WithoutSessionIsIgnored(t *testing.T) {
	m := newTestApp()

	m, cmd := update(t, m, submitMessageMsg{text: "hola"})

	if cmd != nil {
		t.Error("cmd != nil, want no network call without a session")
	}
	if m.chat.log.Len() != 0 {
		t.Errorf("transcript has %d entries, want 0", m.chat.log.Len())
	}
}

func TestMessageFlow_OptimisticEchoThenReply(t *testing.T) {
	m := newTestApp()
	m.sess = session.New("3001234567")
	m.current = screen.Chat

	m, cmd := update(t, m, submitMessageMsg{text: "hola"})
	if cmd == nil {
		t.Fatal("cmd = nil, want network command")
	}
	if !m.chat.waiting {
		t.Error("chat not in waiting state")
	}

	entries := m.chat.log.Entries()
	if len(entries) != 1 {
		t.Fatalf("transcript has %d entries, want 1 (optimistic echo)", len(entries))
	}
	if entries[0].Author != transcript.AuthorUser || entries[0].Text != "hola" {
		t.Errorf("echo entry = %+v, want the user's text", entries[0])
	}

	m, _ = update(t, m, messageResultMsg{
		resp: &api.MessageResponse{Success: true, Response: "¡Hola! ¿En qué le puedo ayudar?"},
	})

	if m.chat.waiting {
		t.Error("chat still waiting after the reply")
	}
	entries = m.chat.log.Entries()
	if len(entries) != 2 {
		t.Fatalf("transcript has %d entries, want 2", len(entries))
	}
	if entries[1].Author != transcript.AuthorAssistant {
		t.Errorf("reply author = %v, want assistant", entries[1].Author)
	}
	if entries[1].Text != "¡Hola! ¿En qué le puedo ayudar?" {
		t.Errorf("reply text = %q", entries[1].Text)
	}
}

// Chat failures surface as an assistant line, never as a banner.
func TestMessageResult_FailureBecomesAssistantLine(t *testing.T) {
	m := newTestApp()
	m.sess = session.New("3001234567")
	m.current = screen.Chat
	m, _ = update(t, m, submitMessageMsg{text: "hola"})

	m, _ = update(t, m, messageResultMsg{err: errors.New("connection refused")})

	entries := m.chat.log.Entries()
	if len(entries) != 2 {
		t.Fatalf("transcript has %d entries, want 2", len(entries))
	}
	if entries[1].Text != chatErrorReply {
		t.Errorf("error entry text = %q, want %q", entries[1].Text, chatErrorReply)
	}
	if m.banner.visible {
		t.Error("banner shown for a chat failure")
	}
	if m.Screen() != screen.Chat {
		t.Errorf("screen = %v, want Chat", m.Screen())
	}
}

func TestLogout_ResetsEverything(t *testing.T) {
	m := newTestApp()
	m.sess = session.New("3001234567")
	m.current = screen.Chat
	m.chat.appendUser("hola")
	m.chat.appendAssistant("¡Hola!")

	m, _ = update(t, m, logoutMsg{})

	if m.Screen() != screen.Login {
		t.Errorf("screen = %v, want Login", m.Screen())
	}
	if m.Session() != nil {
		t.Error("session survived logout")
	}
	if m.chat.log.Len() != 0 {
		t.Errorf("transcript has %d entries after logout, want 0", m.chat.log.Len())
	}
	if !m.chat.welcome {
		t.Error("welcome placeholder not restored for the next session")
	}
}

func TestShowHelp_AppendsAssistantEntry(t *testing.T) {
	m := newTestApp()
	m.sess = session.New("3001234567")
	m.current = screen.Chat

	m, cmd := update(t, m, showChatHelpMsg{})

	if cmd != nil {
		t.Error("cmd != nil, want no network call for help")
	}
	entries := m.chat.log.Entries()
	if len(entries) != 1 {
		t.Fatalf("transcript has %d entries, want 1", len(entries))
	}
	if entries[0].Author != transcript.AuthorAssistant {
		t.Errorf("help entry author = %v, want assistant", entries[0].Author)
	}
	if entries[0].Text != helpText {
		t.Error("help entry text differs from the fixed help text")
	}

	// Asking twice appends twice; the transcript is append-only
	m, _ = update(t, m, showChatHelpMsg{})
	if m.chat.log.Len() != 2 {
		t.Errorf("transcript has %d entries after second help, want 2", m.chat.log.Len())
	}
}

func TestScreenNavigation(t *testing.T) {
	m := newTestApp()

	m, _ = update(t, m, showRegisterMsg{})
	if m.Screen() != screen.Register {
		t.Errorf("screen = %v, want Register", m.Screen())
	}

	m, _ = update(t, m, showLoginMsg{})
	if m.Screen() != screen.Login {
		t.Errorf("screen = %v, want Login", m.Screen())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestApp()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c produced no command")
	}
	if msg := cmd(); msg == nil {
		t.Error("ctrl+c command produced nil message, want tea.Quit")
	}
}
