//go:build linux

// Command axifscan enumerates Linux network interfaces that look like
// AX.25 link-layer devices, printing the interface name, hardware
// address, and candidate callsign for each — the external tool that
// makes a tnc:linuxif:<callsign> address resolvable to a real
// interface. Uses udev (rather than a plain net.Interfaces() walk) so
// it can also show the sysfs device path, matching the level of detail
// a "scan my radios" tool in this ecosystem is expected to show.
package main

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/jochenvg/go-udev"

	"github.com/vk7ntk/ax25kiss/ax25"
	"github.com/vk7ntk/ax25kiss/internal/logging"
)

func main() {
	var log = logging.For("axifscan")

	var u udev.Udev
	var enumerate = u.NewEnumerate()

	if err := enumerate.AddMatchSubsystem("net"); err != nil {
		log.Fatal("failed to build udev filter", "err", err)
	}

	var devices, err = enumerate.Devices()
	if err != nil {
		log.Fatal("failed to enumerate net devices", "err", err)
	}

	fmt.Printf("%-10s  %-17s  %-10s  %s\n", "INTERFACE", "HWADDR", "CALLSIGN", "SYSPATH")

	var found int
	for _, d := range devices {
		var name = d.Sysname()
		if !looksLikeAX25(name) {
			continue
		}

		var iface, ifErr = net.InterfaceByName(name)
		if ifErr != nil {
			continue
		}

		var callsign = "-"
		if addr, parseErr := ax25.ParseAddress(iface.HardwareAddr); parseErr == nil {
			callsign = addr.String()
		}

		fmt.Printf("%-10s  %-17s  %-10s  %s\n", name, iface.HardwareAddr.String(), callsign, d.Syspath())
		found++
	}

	if found == 0 {
		fmt.Fprintln(os.Stderr, "no ax25-looking interfaces found")
	}
}

// looksLikeAX25 is a heuristic over the interface name: Linux AX.25
// kernel interfaces are conventionally named ax0, ax1, sm0, rose0 and
// similar, unlike ethN/wlanN/loopback devices.
func looksLikeAX25(name string) bool {
	return strings.HasPrefix(name, "ax") || strings.HasPrefix(name, "sm") || strings.HasPrefix(name, "rose")
}
