// Package tnc presents either a KISS-over-TCP connection or a Linux
// AX.25 network interface as a single "TNC handle": something that can
// transmit AX.25 frames and multicast received frames (or a terminal
// error) to any number of subscribers.
//
// Grounded in the teacher's src/kissnet.go (TCP KISS server/client) and
// src/aclients.go (multi-TNC client fan-out), generalized from the
// teacher's cgo/C-struct style into a plain Go interface the handle is
// polymorphic over.
package tnc

// Transport is the narrow capability set a concrete TNC connection must
// provide. Tnc calls ReceiveFrame from its single background reader
// goroutine, and forwards every Tnc.SendFrame call directly, so
// implementations must allow concurrent SendFrame calls as well as
// SendFrame running concurrently with ReceiveFrame.
type Transport interface {
	// SendFrame transmits one complete AX.25 frame's raw octets.
	SendFrame(frame []byte) error

	// ReceiveFrame blocks until one complete AX.25 frame's raw octets
	// have arrived, or returns an error (including after Shutdown has
	// unblocked it).
	ReceiveFrame() ([]byte, error)

	// Shutdown releases the underlying resource and unblocks any
	// in-flight ReceiveFrame call with an error. Idempotent.
	Shutdown() error
}

// TransportErrorKind enumerates the transport-layer error taxonomy of
// spec.md §7 — typically terminal, unlike the recoverable parse errors
// in the ax25 package.
type TransportErrorKind int

const (
	ErrOpenTnc TransportErrorKind = iota
	ErrInterfaceNotFound
	ErrSendFrame
	ErrReceiveFrame
	ErrConfigFailed
)

// TransportError wraps an underlying I/O failure from a Transport.
type TransportError struct {
	Kind     TransportErrorKind
	Callsign string // only set for ErrInterfaceNotFound
	Err      error
}

func (e *TransportError) Error() string {
	if e.Kind == ErrInterfaceNotFound {
		return "tnc: no interface found for callsign " + e.Callsign
	}

	return "tnc: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

func sendErr(err error) error    { return &TransportError{Kind: ErrSendFrame, Err: err} }
func receiveErr(err error) error { return &TransportError{Kind: ErrReceiveFrame, Err: err} }
func openErr(err error) error    { return &TransportError{Kind: ErrOpenTnc, Err: err} }

func interfaceNotFoundErr(callsign string) error {
	return &TransportError{Kind: ErrInterfaceNotFound, Callsign: callsign}
}
