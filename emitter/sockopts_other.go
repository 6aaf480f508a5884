//go:build !unix

package emitter

import "net"

// setBroadcastOptions is a no-op on non-unix platforms; this protocol's
// broadcast transport targets unix LAN hosts (the same scope
// golang.org/x/sys/unix itself commits to).
func setBroadcastOptions(conn *net.UDPConn) error {
	return nil
}
