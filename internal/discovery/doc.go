// Package discovery provides mDNS-based discovery of Chipi development
// servers on the local network.
//
// A running chipi-server announces itself under the "_chipi-api._tcp"
// service type; the client's scan command browses for those advertisements
// and reports the base URL of every server it finds. This spares users from
// typing IP addresses when pointing the client at a server on another
// machine.
//
// # Network Requirements
//
//   - Requires multicast support on the network interface
//   - Client and server must be on the same local network segment
//   - Firewall must allow mDNS (UDP port 5353)
package discovery
