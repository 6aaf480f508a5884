//go:build unix

package emitter

import (
	"net"

	"golang.org/x/sys/unix"
)

// setBroadcastOptions arms SO_BROADCAST and IP_MULTICAST_LOOP on conn's
// underlying file descriptor. net.UDPConn exposes no direct setter for
// either, so the options are set with golang.org/x/sys/unix on the raw
// descriptor reached through conn.SyscallConn.
func setBroadcastOptions(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var sockErr error
	err = raw.Control(func(fd uintptr) {
		if sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1); sockErr != nil {
			return
		}
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_MULTICAST_LOOP, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
