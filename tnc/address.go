package tnc

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a parsed `tnc:` URI: either a TCP KISS endpoint or a Linux
// AX.25 interface identified by the callsign bound to it.
type Address struct {
	Kind     AddressKind
	Host     string // tcpkiss only
	Port     uint16 // tcpkiss only
	Callsign string // linuxif only
}

type AddressKind int

const (
	KindTCPKISS AddressKind = iota
	KindLinuxInterface
)

// AddressError reports a failure to parse a `tnc:` URI.
type AddressError struct {
	Kind AddressErrorKind
	Msg  string
}

func (e *AddressError) Error() string { return e.Msg }

type AddressErrorKind int

const (
	ErrNoTncPrefix AddressErrorKind = iota
	ErrUnknownType
	ErrWrongParameterCount
	ErrInvalidPort
)

const (
	prefix      = "tnc:"
	typeTCPKISS = "tcpkiss"
	typeLinuxIf = "linuxif"
)

// ParseAddress parses a `tnc:` URI of the form `tnc:tcpkiss:<host>:<port>`
// or `tnc:linuxif:<callsign>`.
func ParseAddress(s string) (Address, error) {
	if !strings.HasPrefix(s, prefix) {
		return Address{}, &AddressError{Kind: ErrNoTncPrefix, Msg: fmt.Sprintf("%q has no tnc: prefix", s)}
	}

	var rest = s[len(prefix):]
	var parts = strings.Split(rest, ":")

	switch parts[0] {
	case typeTCPKISS:
		if len(parts) != 3 {
			return Address{}, &AddressError{
				Kind: ErrWrongParameterCount,
				Msg:  fmt.Sprintf("tcpkiss expects 2 parameters (host, port), got %d", len(parts)-1),
			}
		}

		var port, portErr = strconv.ParseUint(parts[2], 10, 16)
		if portErr != nil {
			return Address{}, &AddressError{
				Kind: ErrInvalidPort,
				Msg:  fmt.Sprintf("invalid port %q: %v", parts[2], portErr),
			}
		}

		return Address{Kind: KindTCPKISS, Host: parts[1], Port: uint16(port)}, nil

	case typeLinuxIf:
		if len(parts) != 2 {
			return Address{}, &AddressError{
				Kind: ErrWrongParameterCount,
				Msg:  fmt.Sprintf("linuxif expects 1 parameter (callsign), got %d", len(parts)-1),
			}
		}

		return Address{Kind: KindLinuxInterface, Callsign: strings.ToUpper(parts[1])}, nil

	default:
		return Address{}, &AddressError{Kind: ErrUnknownType, Msg: fmt.Sprintf("unknown tnc type %q", parts[0])}
	}
}

// String renders the address back to its URI form.
func (a Address) String() string {
	switch a.Kind {
	case KindTCPKISS:
		return fmt.Sprintf("tnc:tcpkiss:%s:%d", a.Host, a.Port)
	case KindLinuxInterface:
		return fmt.Sprintf("tnc:linuxif:%s", a.Callsign)
	default:
		return ""
	}
}
