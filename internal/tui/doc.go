// Package tui implements the interactive terminal client.
//
// The root AppModel owns the three mutually exclusive screens (login,
// registration, chat), the in-memory session and the transient feedback
// banner. Screens are separate models; AppModel routes input to whichever is
// active and applies screen transitions through the state machine in the
// screen package.
//
// Network calls never run on the event loop: submitting a form produces a
// tea.Cmd that performs one HTTP request and delivers the result back as a
// message. Failures on the login and registration screens surface in the
// banner; failures in the chat surface as an assistant line in the
// transcript, where the user is already looking.
package tui
