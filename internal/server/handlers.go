package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/chipi-ai/chipi/internal/api"
	"github.com/chipi-ai/chipi/internal/logging"
	"github.com/chipi-ai/chipi/internal/validate"
)

// User-facing failure details, in the audience's language.
const (
	detailBadCredentials = "Número o contraseña incorrectos"
	detailLocked         = "Demasiados intentos fallidos. Espera unos minutos e intenta de nuevo"
	detailUserExists     = "Este número ya está registrado. Intenta iniciar sesión"
	detailEmptyMessage   = "Por favor, escribe un mensaje"
	detailNotRegistered  = "Debes iniciar sesión primero"
	detailBadRequest     = "Solicitud inválida"
	detailInternal       = "Ocurrió un problema en el servidor. Intenta de nuevo"
)

// respondJSON writes v as the JSON response body. API failures are still
// HTTP 200; the success flag in the body carries the outcome.
func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", zap.Error(err))
	}
}

// decodeJSON parses the request body into v. A false return means the body
// was unusable and the caller should answer with a generic failure.
func decodeJSON(r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		logging.Warn("failed to decode request body",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		return false
	}
	return true
}

// handleLogin authenticates a phone/password pair.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decodeJSON(r, &req) {
		respondJSON(w, api.LoginResponse{Success: false, Detail: detailBadRequest})
		return
	}

	phone := strings.TrimSpace(req.Phone)
	password := strings.TrimSpace(req.Password)
	if err := validate.Login(phone, password); err != nil {
		s.events.Publish(EventValidation, phone, err.Error())
		respondJSON(w, api.LoginResponse{Success: false, Detail: err.Error()})
		return
	}

	if err := s.store.Authenticate(phone, password); err != nil {
		detail := detailBadCredentials
		switch {
		case errors.Is(err, ErrAccountLocked):
			detail = detailLocked
		case errors.Is(err, ErrInvalidCredentials):
			// Deliberately the same detail for unknown phone and wrong
			// password; the response must not reveal which one failed.
		default:
			logging.Error("login check failed", zap.Error(err))
			detail = detailInternal
		}
		s.events.Publish(EventLoginFail, phone, detail)
		respondJSON(w, api.LoginResponse{Success: false, Detail: detail})
		return
	}

	// A fresh sign-in starts the conversation with a clean context.
	s.assistant.Forget(phone)

	s.events.Publish(EventLogin, phone, "")
	respondJSON(w, api.LoginResponse{Success: true, Phone: phone})
}

// handleRegister creates a new account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !decodeJSON(r, &req) {
		respondJSON(w, api.RegisterResponse{Success: false, Detail: detailBadRequest})
		return
	}

	phone := strings.TrimSpace(req.Phone)
	password := strings.TrimSpace(req.Password)
	if err := validate.Register(phone, password, strings.TrimSpace(req.ConfirmPassword)); err != nil {
		s.events.Publish(EventValidation, phone, err.Error())
		respondJSON(w, api.RegisterResponse{Success: false, Detail: err.Error()})
		return
	}

	if err := s.store.Register(phone, password); err != nil {
		detail := detailInternal
		if errors.Is(err, ErrUserExists) {
			detail = detailUserExists
		} else {
			logging.Error("register failed", zap.Error(err))
		}
		respondJSON(w, api.RegisterResponse{Success: false, Detail: detail})
		return
	}

	logging.Info("account registered", zap.String("phone", phone))
	s.events.Publish(EventRegister, phone, "")
	respondJSON(w, api.RegisterResponse{Success: true})
}

// handleMessage produces an assistant reply for a chat message.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req api.MessageRequest
	if !decodeJSON(r, &req) {
		respondJSON(w, api.MessageResponse{Success: false, Detail: detailBadRequest})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondJSON(w, api.MessageResponse{Success: false, Detail: detailEmptyMessage})
		return
	}

	// The phone is the caller's claimed identity; only registered accounts
	// get replies.
	phone := strings.TrimSpace(req.Phone)
	if !s.store.Exists(phone) {
		s.events.Publish(EventValidation, phone, detailNotRegistered)
		respondJSON(w, api.MessageResponse{Success: false, Detail: detailNotRegistered})
		return
	}

	s.events.Publish(EventMessage, phone, "")
	reply := s.assistant.Reply(r.Context(), phone, req.Message)
	s.events.Publish(EventAssistant, phone, "")

	respondJSON(w, api.MessageResponse{Success: true, Response: reply})
}
