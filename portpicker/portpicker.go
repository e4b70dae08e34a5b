package portpicker

import (
	"errors"
	"math/rand/v2"
	"net"
	"strconv"
)

const (
	// MinPort is the lowest random candidate (inclusive).
	MinPort = 15000
	// MaxPort is the upper bound of random candidates (exclusive).
	MaxPort = 25000

	randomAttempts = 10
	systemAttempts = 10

	loopback = "127.0.0.1"
)

// ErrNoFreePort is returned when every attempt found the port taken.
var ErrNoFreePort = errors.New("portpicker: no free port found")

// Picker yields an unused local port.
type Picker interface {
	Pick() (int, error)
}

// Func adapts a plain function to Picker.
type Func func() (int, error)

// Pick calls f.
func (f Func) Pick() (int, error) { return f() }

// Default is the picker used by Pick.
var Default Picker = &Random{}

// Pick returns an unused port from the default picker.
func Pick() (int, error) {
	return Default.Pick()
}

// Random implements the random-then-system strategy. A nil Rand uses the
// package-level generator.
type Random struct {
	Rand *rand.Rand
}

// Pick returns a port that is free for TCP and UDP on the loopback interface.
func (r *Random) Pick() (int, error) {
	for i := 0; i < randomAttempts; i++ {
		port := MinPort + r.intN(MaxPort-MinPort)
		if IsFree(port) {
			return port, nil
		}
	}

	for i := 0; i < systemAttempts; i++ {
		port, err := systemPort()
		if err != nil {
			continue
		}
		if IsFree(port) {
			return port, nil
		}
	}

	return 0, ErrNoFreePort
}

func (r *Random) intN(n int) int {
	if r.Rand != nil {
		return r.Rand.IntN(n)
	}
	return rand.IntN(n)
}

// IsFree reports whether port can be bound for both TCP and UDP on
// 127.0.0.1. Port 0 is never free.
func IsFree(port int) bool {
	if port <= 0 || port > 65535 {
		return false
	}
	addr := net.JoinHostPort(loopback, strconv.Itoa(port))

	tcp, err := net.Listen("tcp", addr)
	if err != nil {
		return false
	}
	defer tcp.Close()

	udp, err := net.ListenPacket("udp", addr)
	if err != nil {
		return false
	}
	_ = udp.Close()
	return true
}

// systemPort asks the OS for an ephemeral TCP port and releases it.
func systemPort() (int, error) {
	l, err := net.Listen("tcp", net.JoinHostPort(loopback, "0"))
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
