// Package portpicker finds an unused local port for the content server.
//
// A port counts as free only when both a TCP and a UDP socket can bind
// 127.0.0.1 on it. Random candidates from [MinPort, MaxPort) are tried
// first; after that the operating system is asked for an ephemeral port.
//
//	port, err := portpicker.Pick()
//	if errors.Is(err, portpicker.ErrNoFreePort) { ... }
package portpicker
