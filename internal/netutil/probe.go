package netutil

import (
	"fmt"
	"net"
)

// ProbeTCP reports whether port is bindable on the loopback interface. The
// listener is closed immediately, so the result is only a point-in-time
// check: the registry's ledger, not the kernel, is what prevents cooperating
// processes from colliding. The probe exists to skip ports held by unrelated
// processes outside the registry's control.
func ProbeTCP(port int) bool {
	addr, err := net.ResolveTCPAddr("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return false
	}
	_ = l.Close()
	return true
}
