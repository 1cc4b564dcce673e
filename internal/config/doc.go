// Package config provides the client-side settings file for Chipi.
//
// The settings are stored as YAML under the platform config directory
// (e.g. $HOME/.config/chipi/config.yaml on Linux) and cover only connection
// parameters: the backend base URL and the request timeout. Credentials and
// chat history are never persisted.
//
// Writes are atomic (temp file + rename) so a crash mid-save cannot leave a
// corrupt file behind.
package config
