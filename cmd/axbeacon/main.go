// Command axbeacon periodically transmits a single UI frame (an
// APRS-style position/status beacon) over a TNC handle. Grounded in the
// teacher's beacon concept (src/beacon.go), rewritten against this
// module's codec — the teacher's beacon.go computes and formats
// position/timestamp payloads; axbeacon instead transmits a fixed
// comment string, since position math is out of scope here.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/vk7ntk/ax25kiss/ax25"
	"github.com/vk7ntk/ax25kiss/internal/logging"
	"github.com/vk7ntk/ax25kiss/tnc"
)

const defaultInterval = 10 * time.Minute

func main() {
	var configPath = pflag.StringP("config", "c", "", "Path to a YAML config file")
	var tncAddr = pflag.StringP("tnc", "T", "", "tnc: address to transmit through")
	var callsign = pflag.StringP("mycall", "m", "", "Station callsign-SSID")
	var dest = pflag.StringP("to", "t", "", "Destination address")
	var comment = pflag.StringP("comment", "C", "", "Beacon comment text")
	var intervalSeconds = pflag.IntP("interval", "i", 0, "Seconds between beacons")
	var help = pflag.Bool("help", false, "Display help text")

	pflag.Parse()

	if *help {
		pflag.Usage()

		return
	}

	var log = logging.For("axbeacon")

	var cfg, cfgErr = loadConfig(*configPath)
	if cfgErr != nil {
		log.Fatal("failed to read config", "path", *configPath, "err", cfgErr)
	}

	if *tncAddr != "" {
		cfg.TncAddress = *tncAddr
	}
	if *callsign != "" {
		cfg.Callsign = *callsign
	}
	if *dest != "" {
		cfg.Dest = *dest
	}
	if *comment != "" {
		cfg.Comment = *comment
	}
	if *intervalSeconds != 0 {
		cfg.IntervalSeconds = *intervalSeconds
	}
	if cfg.Dest == "" {
		cfg.Dest = "APRS-0"
	}
	if cfg.TncAddress == "" {
		cfg.TncAddress = "tnc:tcpkiss:localhost:8001"
	}
	if cfg.Callsign == "" {
		log.Fatal("a callsign is required (--mycall or config callsign)")
	}

	var interval = defaultInterval
	if cfg.IntervalSeconds > 0 {
		interval = time.Duration(cfg.IntervalSeconds) * time.Second
	}

	var src, srcErr = ax25.ParseAddressString(cfg.Callsign)
	if srcErr != nil {
		log.Fatal("bad callsign", "err", srcErr)
	}

	var dst, dstErr = ax25.ParseAddressString(cfg.Dest)
	if dstErr != nil {
		log.Fatal("bad destination", "err", dstErr)
	}

	var addr, addrErr = tnc.ParseAddress(cfg.TncAddress)
	if addrErr != nil {
		log.Fatal("bad tnc address", "err", addrErr)
	}

	var handle, openErr = tnc.Open(addr)
	if openErr != nil {
		log.Fatal("failed to open tnc", "err", openErr)
	}

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	var ticker = time.NewTicker(interval)
	defer ticker.Stop()

	transmitOne(handle, src, dst, cfg.Comment, log)

	for {
		select {
		case <-ticker.C:
			transmitOne(handle, src, dst, cfg.Comment, log)
		case <-sigs:
			handle.Shutdown()

			return
		}
	}
}

func transmitOne(handle *tnc.Tnc, src, dst ax25.Address, comment string, log *log.Logger) {
	var frame = ax25.Frame{
		Source:      src,
		Destination: dst,
		Content: ax25.FrameContent{
			Kind: ax25.KindUnnumberedInformation,
			PID:  ax25.PIDNone,
			Info: []byte(comment),
		},
	}

	if err := handle.SendFrame(frame); err != nil {
		log.Error("beacon transmit failed", "err", err)

		return
	}

	log.Info("beacon sent", "from", src.String(), "to", dst.String())
}
