package discovery

import (
	"fmt"
	"time"
)

// Service represents a Chipi backend discovered on the local network.
type Service struct {
	// Instance is the advertised instance name (e.g. "chipi-server")
	Instance string

	// Hostname is the mDNS hostname (e.g. "devbox.local.")
	Hostname string

	// IP is the IPv4 address (IPv6 when no IPv4 was advertised)
	IP string

	// Port is the HTTP port the API listens on
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "version=v2.1.0", "api=1"
	Metadata map[string]string

	// DiscoveredAt is when the service was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the service
func (s *Service) String() string {
	return fmt.Sprintf("Chipi server %q at %s:%d", s.Instance, s.IP, s.Port)
}

// BaseURL returns the HTTP base URL for the service
func (s *Service) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", s.IP, s.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if
// not found
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
