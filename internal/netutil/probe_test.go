package netutil

import (
	"net"
	"testing"
)

func TestProbeTCPFreePort(t *testing.T) {
	t.Parallel()

	// Ask the kernel for a free port, close it, then probe it.
	l, err := net.ListenTCP("tcp", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !ProbeTCP(port) {
		t.Errorf("ProbeTCP(%d) = false for a just-released port, want true", port)
	}
}

func TestProbeTCPBusyPort(t *testing.T) {
	t.Parallel()

	l, err := net.ListenTCP("tcp", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	if ProbeTCP(port) {
		t.Errorf("ProbeTCP(%d) = true while the port is held, want false", port)
	}
}

func TestProbeTCPInvalidPort(t *testing.T) {
	t.Parallel()

	if ProbeTCP(-1) {
		t.Error("ProbeTCP(-1) = true, want false")
	}
}
