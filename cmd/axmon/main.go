// Command axmon connects to a TNC handle and prints every received
// frame in monitor form, optionally exposing Prometheus fan-out
// statistics. Grounded in the teacher's multi-client monitor,
// src/aclients.go, generalized to this module's single-handle fan-out.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/vk7ntk/ax25kiss/ax25"
	"github.com/vk7ntk/ax25kiss/internal/logging"
	"github.com/vk7ntk/ax25kiss/tnc"
)

func main() {
	var configPath = pflag.StringP("config", "c", "", "Path to a YAML config file")
	var tncAddr = pflag.StringP("tnc", "T", "", "tnc: address to monitor, e.g. tnc:tcpkiss:localhost:8001")
	var metricsAddr = pflag.StringP("metrics-addr", "M", "", "If set, serve Prometheus metrics on this host:port")
	var help = pflag.Bool("help", false, "Display help text")

	pflag.Parse()

	if *help {
		pflag.Usage()

		return
	}

	var log = logging.For("axmon")

	var cfg, cfgErr = loadConfig(*configPath)
	if cfgErr != nil {
		log.Fatal("failed to read config", "path", *configPath, "err", cfgErr)
	}

	if *tncAddr != "" {
		cfg.TncAddress = *tncAddr
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if cfg.TncAddress == "" {
		cfg.TncAddress = "tnc:tcpkiss:localhost:8001"
	}

	var addr, addrErr = tnc.ParseAddress(cfg.TncAddress)
	if addrErr != nil {
		log.Fatal("bad tnc address", "err", addrErr)
	}

	var opts []tnc.Option
	if cfg.MetricsAddr != "" {
		var registry = prometheus.NewRegistry()

		var metrics, metricsErr = tnc.NewMetrics(registry, addr.String())
		if metricsErr != nil {
			log.Fatal("failed to register metrics", "err", metricsErr)
		}

		opts = append(opts, tnc.WithMetrics(metrics))

		go serveMetrics(cfg.MetricsAddr, registry, log)
	}

	var handle, openErr = tnc.Open(addr, opts...)
	if openErr != nil {
		log.Fatal("failed to open tnc", "err", openErr)
	}

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		handle.Shutdown()
	}()

	var count int
	var sub = handle.Incoming()
	for result := range sub.Frames() {
		if result.Err != nil {
			log.Info("tnc closed", "frames_seen", count, "err", result.Err)

			return
		}

		count++
		fmt.Println(monitorLine(result.Frame))
	}
}

func serveMetrics(addr string, registry *prometheus.Registry, log *log.Logger) {
	var mux = http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("metrics server exited", "err", err)
	}
}

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
