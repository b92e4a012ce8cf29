package tnc

import (
	"context"
	"fmt"

	"github.com/brutella/dnssd"
)

// dnssdServiceType is the DNS-SD service type TCP-KISS TNCs advertise
// under, so a client can discover one on the local network instead of
// being given a host:port by hand.
const dnssdServiceType = "_kiss-tnc._tcp"

// AnnounceTCPKISS advertises a TCP-KISS TNC listening on port via
// mDNS/DNS-SD, under the given service name. It runs the responder in a
// background goroutine and returns once the service has been added; the
// returned stop function withdraws the announcement and must be called
// to release the responder.
//
// Grounded in the teacher's src/dns_sd.go, which wires the same
// brutella/dnssd package for the identical purpose.
func AnnounceTCPKISS(ctx context.Context, name string, port int) (stop func(), err error) {
	var cfg = dnssd.Config{
		Name: name,
		Type: dnssdServiceType,
		Port: port,
	}

	var sv, svErr = dnssd.NewService(cfg)
	if svErr != nil {
		return nil, fmt.Errorf("tnc: dns-sd service config: %w", svErr)
	}

	var rp, rpErr = dnssd.NewResponder()
	if rpErr != nil {
		return nil, fmt.Errorf("tnc: dns-sd responder: %w", rpErr)
	}

	var added, addErr = rp.Add(sv)
	if addErr != nil {
		return nil, fmt.Errorf("tnc: dns-sd add service: %w", addErr)
	}

	var runCtx, cancel = context.WithCancel(ctx)

	tncLog.Info("announcing tcpkiss tnc over dns-sd", "name", name, "port", port)

	go func() {
		if respondErr := rp.Respond(runCtx); respondErr != nil && runCtx.Err() == nil {
			tncLog.Error("dns-sd responder exited", "err", respondErr)
		}
	}()

	return func() {
		rp.Remove(added)
		cancel()
	}, nil
}
