package assistant

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var errEmptyCompletion = errors.New("completion returned no content")

// systemPrompt sets the assistant's personality: a patient companion for
// older adults, answering in simple Colombian Spanish.
const systemPrompt = `Eres Chipi, un asistente virtual amable y paciente diseñado para acompañar a personas mayores en Colombia.

Reglas:
- Responde siempre en español, con frases cortas y palabras sencillas.
- Sé cálido y respetuoso; trata a la persona de "usted".
- Evita tecnicismos; si debes usar uno, explícalo con un ejemplo cotidiano.
- Si no sabes algo, dilo con honestidad y sugiere pedir ayuda a un familiar.
- Nunca pidas contraseñas, datos bancarios ni información personal sensible.`

// greetingWords are openers the local rules answer without the remote model.
var greetingWords = []string{
	"hola", "buenos días", "buenas tardes", "buenas noches", "buen día",
	"qué tal", "que tal", "saludos",
}

var thanksWords = []string{
	"gracias", "muchas gracias", "mil gracias", "te agradezco",
}

var spanishDays = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

var spanishMonths = map[time.Month]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// localRules answers messages the assistant always handles without the remote
// model: greetings, thanks, and asking for the time or date. The boolean
// reports whether a rule matched.
func localRules(message string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(message))
	if m == "" {
		return "No escuché nada. ¿Me lo puede repetir, por favor?", true
	}

	for _, g := range greetingWords {
		if m == g || strings.HasPrefix(m, g+" ") || strings.HasPrefix(m, g+",") {
			return "¡Hola! Qué gusto saludarle. ¿En qué le puedo ayudar hoy?", true
		}
	}

	for _, t := range thanksWords {
		if strings.Contains(m, t) {
			return "Con mucho gusto. Para eso estoy, siempre que me necesite.", true
		}
	}

	if strings.Contains(m, "qué hora") || strings.Contains(m, "que hora") {
		return currentTimeReply(time.Now()), true
	}
	if strings.Contains(m, "qué día") || strings.Contains(m, "que día") ||
		strings.Contains(m, "que dia") || strings.Contains(m, "qué fecha") ||
		strings.Contains(m, "que fecha") {
		return currentDateReply(time.Now()), true
	}

	return "", false
}

// currentTimeReply formats now as a spoken Spanish time, 12-hour clock.
func currentTimeReply(now time.Time) string {
	hour := now.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	period := "de la mañana"
	switch {
	case now.Hour() >= 19:
		period = "de la noche"
	case now.Hour() >= 12:
		period = "de la tarde"
	}
	return fmt.Sprintf("Son las %d:%02d %s.", hour, now.Minute(), period)
}

// currentDateReply formats now as a spoken Spanish date.
func currentDateReply(now time.Time) string {
	return fmt.Sprintf("Hoy es %s, %d de %s de %d.",
		spanishDays[now.Weekday()], now.Day(), spanishMonths[now.Month()], now.Year())
}

// fallbackReply answers when the remote model is unavailable. The responses
// steer toward topics the assistant can still help with offline.
func fallbackReply(message string) string {
	m := strings.ToLower(message)

	switch {
	case strings.Contains(m, "ayuda") || strings.Contains(m, "ayúdame") || strings.Contains(m, "ayudame"):
		return "Claro que sí, estoy para ayudarle. Puede preguntarme la hora, la fecha, o contarme qué necesita y lo resolvemos juntos."
	case strings.Contains(m, "problema") || strings.Contains(m, "error") || strings.Contains(m, "no funciona"):
		return "Entiendo que algo no está funcionando. Respire con calma y cuénteme paso a paso qué estaba haciendo cuando ocurrió."
	case strings.Contains(m, "cómo") || strings.Contains(m, "como") || strings.Contains(m, "qué es") || strings.Contains(m, "que es"):
		return "Es una buena pregunta. En este momento no tengo conexión para buscar la respuesta completa, pero inténtelo de nuevo en unos minutos."
	default:
		return "Le escucho. En este momento estoy con una conexión limitada, pero puede preguntarme la hora o la fecha, o intentar de nuevo en un momento."
	}
}
