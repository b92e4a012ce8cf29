package ax25

// RouteEntry is one digipeater address in a frame's route, plus whether
// that repeater has already repeated the frame.
type RouteEntry struct {
	Address     Address
	HasRepeated bool
}

// Frame is a fully decoded AX.25 frame: source, destination, an ordered
// digipeater route, the derived command/response role, and the decoded
// content.
type Frame struct {
	Source            Address
	Destination       Address
	Route             []RouteEntry
	CommandOrResponse *CommandResponse // nil when the C-bit pair is ambiguous
	Content           FrameContent
}

const minAddressFieldOctets = 14 // destination + source, no repeaters

// FromBytes parses a complete AX.25 frame from raw octets (after any
// KISS or HDLC framing has already been removed).
func FromBytes(b []byte) (Frame, error) {
	var start = 0
	for start < len(b) && b[start] == 0 {
		start++
	}

	if start == len(b) {
		return Frame{}, newParseErr(ErrOnlyNullBytes, "frame is only null bytes")
	}

	var addrEnd = -1
	for i := start; i < len(b); i++ {
		if b[i]&0x01 != 0 {
			addrEnd = i
			break
		}
	}

	if addrEnd == -1 {
		return Frame{}, newParseErr(ErrNoEndToAddressField, "no octet in address field has its low bit set")
	}

	if addrEnd-start+1 < minAddressFieldOctets {
		return Frame{}, newParseErr(ErrAddressFieldTooShort, "address field is %d octets, need at least %d", addrEnd-start+1, minAddressFieldOctets)
	}

	if addrEnd+1 >= len(b) {
		return Frame{}, newParseErr(ErrFrameTooShort, "no control octet after address field (len=%d)", len(b))
	}

	var dest, destErr = ParseAddress(b[start : start+7])
	if destErr != nil {
		return Frame{}, destErr
	}

	var src, srcErr = ParseAddress(b[start+7 : start+14])
	if srcErr != nil {
		return Frame{}, srcErr
	}

	var numRoute = (addrEnd + 1 - start - minAddressFieldOctets) / 7

	var route = make([]RouteEntry, 0, numRoute)
	for i := 0; i < numRoute; i++ {
		var off = start + minAddressFieldOctets + i*7
		var repeater, repErr = ParseAddress(b[off : off+7])
		if repErr != nil {
			return Frame{}, repErr
		}
		route = append(route, RouteEntry{Address: repeater, HasRepeated: repeater.CBit})
	}

	var content, contentErr = DecodeFrameContent(b[addrEnd+1:])
	if contentErr != nil {
		return Frame{}, contentErr
	}

	return Frame{
		Source:            src,
		Destination:       dest,
		Route:             route,
		CommandOrResponse: deriveCommandOrResponse(dest, src),
		Content:           content,
	}, nil
}

func deriveCommandOrResponse(dest, src Address) *CommandResponse {
	switch {
	case dest.CBit && !src.CBit:
		var c = Command
		return &c
	case !dest.CBit && src.CBit:
		var r = Response
		return &r
	default:
		return nil
	}
}

// ToBytes re-encodes the frame to its wire octets.
func (f Frame) ToBytes() []byte {
	var destHigh, srcHigh bool

	if f.CommandOrResponse == nil || *f.CommandOrResponse == Command {
		destHigh = true
		srcHigh = false
	} else {
		destHigh = false
		srcHigh = true
	}

	var out = make([]byte, 0, 14+len(f.Route)*7+2)

	var destBytes = f.Destination.ToBytes(destHigh, false)
	out = append(out, destBytes[:]...)

	var srcBytes = f.Source.ToBytes(srcHigh, len(f.Route) == 0)
	out = append(out, srcBytes[:]...)

	for i, r := range f.Route {
		var isLast = i == len(f.Route)-1
		var rb = r.Address.ToBytes(r.HasRepeated, isLast)
		out = append(out, rb[:]...)
	}

	out = append(out, f.Content.Encode()...)

	return out
}

// InfoStringLossy is a convenience forwarding to Content.InfoStringLossy.
func (f Frame) InfoStringLossy() (string, bool) {
	return f.Content.InfoStringLossy()
}
