package ax25

import (
	"fmt"
	"strconv"
	"strings"
)

// addressFieldLen is the fixed encoded size of one AX.25 address field.
const addressFieldLen = 7

const (
	ssidMask      = 0x0f
	ssidShift     = 1
	cBitMask      = 0x80
	reservedBits  = 0b0110_0000
	finalBitMask  = 0x01
	minCallsignLn = 1
	maxCallsignLn = 6
	maxSSID       = 15
)

// Address is one 7-octet AX.25 address field: a callsign, an SSID, and
// a single flag bit whose meaning depends on where the address sits in
// the frame (command/response marker for source/destination, "has been
// repeated" for a repeater).
type Address struct {
	Callsign string
	SSID     int
	CBit     bool
}

// ParseError reports a failure to decode or parse an AX.25 wire
// structure or text form. Callers use errors.As to recover the
// *ParseError and compare its Kind with the Err* constants.
type ParseError struct {
	Kind ParseErrorKind
	Msg  string
}

func (e *ParseError) Error() string { return e.Msg }

// ParseErrorKind enumerates the recoverable parse failures named in the
// spec, across address text parsing, the address field, and the frame
// assembler.
type ParseErrorKind int

const (
	ErrInvalidFormat ParseErrorKind = iota
	ErrInvalidSSID
	ErrSSIDOutOfRange
	ErrAddressInvalidUTF8
	ErrOnlyNullBytes
	ErrNoEndToAddressField
	ErrAddressFieldTooShort
	ErrFrameTooShort
	ErrContentZeroLength
	ErrMissingPIDField
	ErrUnrecognisedSFieldType
	ErrUnrecognisedUFieldType
	ErrWrongSizeFrmrInfo
)

func newParseErr(kind ParseErrorKind, format string, args ...any) error {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ParseAddress decodes a 7-octet AX.25 address field.
func ParseAddress(field []byte) (Address, error) {
	if len(field) != addressFieldLen {
		return Address{}, newParseErr(ErrAddressFieldTooShort,
			"address field must be %d octets, got %d", addressFieldLen, len(field))
	}

	// Reverse the six callsign octets, shift each right by one, drop
	// leading (i.e. trailing, pre-reverse) space padding, reverse back.
	var reversed = make([]byte, maxCallsignLn)
	for i := 0; i < maxCallsignLn; i++ {
		reversed[i] = field[maxCallsignLn-1-i] >> 1
	}

	var trimmed = reversed
	for len(trimmed) > 0 && trimmed[0] == ' ' {
		trimmed = trimmed[1:]
	}

	var callsignBytes = make([]byte, len(trimmed))
	for i, b := range trimmed {
		callsignBytes[len(trimmed)-1-i] = b
	}

	if !isValidASCII(callsignBytes) {
		return Address{}, newParseErr(ErrAddressInvalidUTF8, "address callsign is not valid UTF-8")
	}

	var octet7 = field[6]

	return Address{
		Callsign: string(callsignBytes),
		SSID:     int((octet7 >> ssidShift) & ssidMask),
		CBit:     octet7&cBitMask != 0,
	}, nil
}

func isValidASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}

	return true
}

// ToBytes encodes the address to its 7-octet wire form. highBit carries
// the command/response bit (source/destination) or the has-been-
// repeated bit (repeater); finalInAddress sets the low bit of the last
// octet, marking the final address in the address field.
func (a Address) ToBytes(highBit bool, finalInAddress bool) [addressFieldLen]byte {
	var out [addressFieldLen]byte

	for i := 0; i < maxCallsignLn; i++ {
		var c byte = ' '
		if i < len(a.Callsign) {
			c = a.Callsign[i]
		}
		out[i] = c << 1
	}

	var octet7 = byte(a.SSID<<ssidShift) | reservedBits
	if highBit {
		octet7 |= cBitMask
	}
	if finalInAddress {
		octet7 |= finalBitMask
	}
	out[6] = octet7

	return out
}

// ParseAddressString parses the text form "CALL-N" (N in 0..=15). A bare
// "CALL" without an SSID is rejected. The callsign is uppercased on
// return.
func ParseAddressString(s string) (Address, error) {
	var parts = strings.Split(s, "-")
	if len(parts) != 2 {
		return Address{}, newParseErr(ErrInvalidFormat, "address %q must have the form CALL-SSID", s)
	}

	var callsign, ssidStr = parts[0], parts[1]

	if len(callsign) < minCallsignLn || len(callsign) > maxCallsignLn {
		return Address{}, newParseErr(ErrInvalidFormat,
			"callsign %q must be %d to %d characters", callsign, minCallsignLn, maxCallsignLn)
	}

	for _, r := range callsign {
		if !isAlphanumericASCII(r) {
			return Address{}, newParseErr(ErrInvalidFormat, "callsign %q is not alphanumeric", callsign)
		}
	}

	var ssid, convErr = strconv.Atoi(ssidStr)
	if convErr != nil {
		return Address{}, newParseErr(ErrInvalidSSID, "SSID %q is not an integer", ssidStr)
	}

	if ssid < 0 || ssid > maxSSID {
		return Address{}, newParseErr(ErrSSIDOutOfRange, "SSID %d out of range 0..=%d", ssid, maxSSID)
	}

	return Address{Callsign: strings.ToUpper(callsign), SSID: ssid}, nil
}

func isAlphanumericASCII(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// String renders the address in the conventional "CALL" or "CALL-N"
// display form.
func (a Address) String() string {
	if a.SSID == 0 {
		return a.Callsign
	}

	return fmt.Sprintf("%s-%d", a.Callsign, a.SSID)
}
