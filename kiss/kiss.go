// Package kiss implements the KISS TNC byte-stuffing protocol: framing
// octets for transport to an external modem and extracting frames from
// a streaming byte source. See http://www.ka9q.net/papers/kiss.html.
//
// Grounded in the teacher's src/kiss_frame.go state machine, rewritten
// as a pure-Go, allocation-light buffer rather than a cgo-bound
// fixed-size C array.
package kiss

// The four KISS sentinel octets.
const (
	FEND  = 0xC0
	FESC  = 0xDB
	TFEND = 0xDC
	TFESC = 0xDD
)

// dataFrameCommand is the KISS command nibble for "data frame, port 0" —
// the only command this package emits or expects on decode.
const dataFrameCommand = 0x00

// Encode wraps frame in the KISS transmit envelope: FEND, the command
// byte (data frame, port 0), the byte-stuffed payload, then FEND.
func Encode(frame []byte) []byte {
	var out = make([]byte, 0, len(frame)+4)
	out = append(out, FEND, dataFrameCommand)

	for _, b := range frame {
		switch b {
		case FEND:
			out = append(out, FESC, TFEND)
		case FESC:
			out = append(out, FESC, TFESC)
		default:
			out = append(out, b)
		}
	}

	out = append(out, FEND)

	return out
}

// state is the receive-side state machine, over { searching, data,
// escaped }, per spec.md §4.5.
type state int

const (
	stateSearching state = iota
	stateData
	stateEscaped
)

// Framer is an append-only byte buffer fed by a transport, from which
// complete KISS frames can be extracted one at a time.
type Framer struct {
	buf []byte
}

// NewFramer returns an empty Framer.
func NewFramer() *Framer {
	return &Framer{}
}

// Feed appends newly-received transport bytes to the internal buffer.
func (f *Framer) Feed(b []byte) {
	f.buf = append(f.buf, b...)
}

// Extract scans the buffer for one complete frame. On success it
// returns the de-stuffed octets, still carrying their leading KISS
// command/port byte (see commit below), and drains the buffer up to —
// but not including — the trailing FEND, so that FEND serves as the
// next frame's start marker. If no frame is complete yet, ok is false
// and the buffer is left unchanged. Zero-length frames are never
// returned; a frame holding only the command byte (an empty payload) is
// returned as that single byte. Callers should call Extract repeatedly
// after each Feed until ok is false.
func (f *Framer) Extract() (frame []byte, ok bool) {
	var st = stateSearching
	var acc []byte

	for i, b := range f.buf {
		switch st {
		case stateSearching:
			if b == FEND {
				st = stateData
			}

		case stateData:
			switch b {
			case FEND:
				if len(acc) > 0 {
					return f.commit(acc, i)
				}
				// Consecutive FEND: collapse, stay in Data.
			case FESC:
				st = stateEscaped
			default:
				acc = append(acc, b)
			}

		case stateEscaped:
			switch b {
			case TFEND:
				acc = append(acc, FEND)
				st = stateData
			case TFESC:
				acc = append(acc, FESC)
				st = stateData
			case FEND:
				if len(acc) > 0 {
					return f.commit(acc, i)
				}
				st = stateData
			default:
				// Unexpected byte after FESC: discarded, not appended.
				st = stateData
			}
		}
	}

	return nil, false
}

// commit drains the buffer up to (not including) the FEND at index
// fendIndex. The returned frame still carries its leading port/command
// nibble byte (0x00 for an ordinary data frame) — stripping it is the
// AX.25 frame assembler's job, which already tolerates a leading null
// octet for the Linux raw-interface transport's own quirk.
func (f *Framer) commit(acc []byte, fendIndex int) ([]byte, bool) {
	f.buf = append([]byte(nil), f.buf[fendIndex:]...)

	if len(acc) == 0 {
		return nil, false
	}

	return acc, true
}
