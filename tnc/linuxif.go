//go:build linux

package tnc

import (
	"net"
	"strings"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/vk7ntk/ax25kiss/ax25"
	"github.com/vk7ntk/ax25kiss/internal/logging"
)

var linuxifLog = logging.For("tnc.linuxif")

// ethPAX25 is ETH_P_AX25 (0x0002), the Linux AF_PACKET protocol number
// for the AX.25 link layer. Not exposed by golang.org/x/sys/unix, so it
// is named here the way the kernel's if_ether.h does.
const ethPAX25 = 0x0002

const maxFrameLen = 2048

// LinuxInterfaceTransport talks to a Linux kernel AX.25 network
// interface through an AF_PACKET raw socket bound to it, per spec.md
// §4.7. On transmit it prepends a single null octet (the kernel's
// AF_PACKET framing convention for this link type); on receive it
// strips any leading null octets.
type LinuxInterfaceTransport struct {
	fd   int
	name string

	mu     sync.Mutex
	closed bool
}

// OpenLinuxInterface opens and binds a raw AF_PACKET socket to the
// named network interface (e.g. "ax0").
func OpenLinuxInterface(name string) (*LinuxInterfaceTransport, error) {
	var fd, err = unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(htons(ethPAX25)))
	if err != nil {
		return nil, openErr(err)
	}

	var iface, ifErr = interfaceByName(name)
	if ifErr != nil {
		unix.Close(fd)

		return nil, interfaceNotFoundErr(name)
	}

	var sll = unix.SockaddrLinklayer{
		Protocol: htons(ethPAX25),
		Ifindex:  iface.Index,
	}

	if bindErr := unix.Bind(fd, &sll); bindErr != nil {
		unix.Close(fd)

		return nil, openErr(bindErr)
	}

	return &LinuxInterfaceTransport{fd: fd, name: name}, nil
}

func htons(v uint16) uint16 {
	return (v << 8) | (v >> 8)
}

func interfaceByName(name string) (*net.Interface, error) {
	return net.InterfaceByName(name)
}

// openLinuxInterfaceByCallsign resolves tnc:linuxif:<callsign> by
// scanning the host's network interfaces for one whose hardware address
// decodes, via the AX.25 address codec, to the requested callsign — a
// Linux AX.25 device's hardware address is itself an encoded AX.25
// address field, minus the final-in-field bit.
func openLinuxInterfaceByCallsign(callsign string, opts ...Option) (*Tnc, error) {
	var ifaces, err = net.Interfaces()
	if err != nil {
		return nil, openErr(err)
	}

	var want = strings.ToUpper(callsign)

	for _, iface := range ifaces {
		if len(iface.HardwareAddr) != 7 {
			continue
		}

		var addr, decodeErr = ax25.ParseAddress(iface.HardwareAddr)
		if decodeErr != nil {
			continue
		}

		if strings.ToUpper(addr.String()) == want {
			var transport, bindErr = OpenLinuxInterface(iface.Name)
			if bindErr != nil {
				return nil, bindErr
			}

			return New(transport, opts...), nil
		}
	}

	return nil, interfaceNotFoundErr(callsign)
}

// SendFrame prepends the single leading null octet the AF_PACKET
// transport quirk expects and writes the frame to the socket.
func (l *LinuxInterfaceTransport) SendFrame(frame []byte) error {
	var padded = make([]byte, 0, len(frame)+1)
	padded = append(padded, 0x00)
	padded = append(padded, frame...)

	var _, err = unix.Write(l.fd, padded)
	if err != nil {
		return sendErr(err)
	}

	return nil
}

// ReceiveFrame blocks on a read from the raw socket and strips any
// leading null octets before returning.
func (l *LinuxInterfaceTransport) ReceiveFrame() ([]byte, error) {
	var buf = make([]byte, maxFrameLen)

	var n, err = unix.Read(l.fd, buf)
	if err != nil {
		return nil, receiveErr(err)
	}

	var b = buf[:n]
	for len(b) > 0 && b[0] == 0x00 {
		b = b[1:]
	}

	return append([]byte(nil), b...), nil
}

// Shutdown closes the raw socket, unblocking any in-flight Read.
func (l *LinuxInterfaceTransport) Shutdown() error {
	l.mu.Lock()
	var alreadyClosed = l.closed
	l.closed = true
	l.mu.Unlock()

	if alreadyClosed {
		return nil
	}

	linuxifLog.Debug("shutting down raw interface transport", "interface", l.name)

	return unix.Close(l.fd)
}
