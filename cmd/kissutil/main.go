// Command kissutil talks to a TCP KISS TNC: received frames are printed
// in a human-readable monitor form, and lines typed on stdin are sent as
// UI frames. It is the dumbest possible application built on this
// module, useful for poking at a TNC by hand.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/vk7ntk/ax25kiss/ax25"
	"github.com/vk7ntk/ax25kiss/internal/logging"
	"github.com/vk7ntk/ax25kiss/tnc"
)

func main() {
	var hostname = pflag.StringP("hostname", "h", "localhost", "Hostname of TCP KISS TNC")
	var port = pflag.IntP("port", "p", 8001, "TCP port of KISS TNC")
	var mycall = pflag.StringP("mycall", "m", "", "Station callsign-SSID to transmit as (required to send)")
	var dest = pflag.StringP("to", "t", "APRS-0", "Destination address for transmitted frames")
	var verbose = pflag.BoolP("verbose", "v", false, "Show raw frame octets alongside the monitor line")
	var help = pflag.Bool("help", false, "Display help text")

	pflag.Parse()

	if *help {
		pflag.Usage()

		return
	}

	var log = logging.For("kissutil")

	var addr, addrErr = tnc.ParseAddress(fmt.Sprintf("tnc:tcpkiss:%s:%d", *hostname, *port))
	if addrErr != nil {
		log.Fatal("bad tnc address", "err", addrErr)
	}

	var handle, openErr = tnc.Open(addr)
	if openErr != nil {
		log.Fatal("failed to open tnc", "err", openErr)
	}

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("shutting down")
		handle.Shutdown()
		os.Exit(0)
	}()

	if *mycall != "" {
		go transmitStdin(handle, *mycall, *dest, log)
	}

	var sub = handle.Incoming()
	for result := range sub.Frames() {
		if result.Err != nil {
			log.Error("tnc closed", "err", result.Err)

			return
		}

		fmt.Println(monitorLine(result.Frame))
		if *verbose {
			fmt.Printf("  %s\n", hexDump(result.Frame.ToBytes()))
		}
	}
}

func transmitStdin(handle *tnc.Tnc, mycall, dest string, log *log.Logger) {
	var src, srcErr = ax25.ParseAddressString(mycall)
	if srcErr != nil {
		log.Error("bad --mycall value", "err", srcErr)

		return
	}

	var dst, dstErr = ax25.ParseAddressString(dest)
	if dstErr != nil {
		log.Error("bad --to value", "err", dstErr)

		return
	}

	var scanner = bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var frame = ax25.Frame{
			Source:      src,
			Destination: dst,
			Content: ax25.FrameContent{
				Kind: ax25.KindUnnumberedInformation,
				PID:  ax25.PIDNone,
				Info: []byte(scanner.Text()),
			},
		}

		if err := handle.SendFrame(frame); err != nil {
			log.Error("send failed", "err", err)
		}
	}
}

// monitorLine renders a frame as "SRC>DST,DIGI1,DIGI2:info", the
// conventional AX.25 monitor representation.
func monitorLine(f ax25.Frame) string {
	var path = []string{f.Destination.String()}
	for _, r := range f.Route {
		var entry = r.Address.String()
		if r.HasRepeated {
			entry += "*"
		}
		path = append(path, entry)
	}

	var info, _ = f.InfoStringLossy()

	return fmt.Sprintf("%s>%s:%s", f.Source.String(), strings.Join(path, ","), info)
}

func hexDump(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}

	return sb.String()
}
