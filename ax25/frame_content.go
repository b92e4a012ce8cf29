package ax25

// CommandResponse distinguishes the AX.25 v2.0 command/response roles,
// derived from the pair of address C-bits by the frame assembler.
type CommandResponse int

const (
	Command CommandResponse = iota
	Response
)

// FrameContent is a sum type over the AX.25 control-field families. Only
// one field group is meaningful per variant; Kind says which.
type FrameContent struct {
	Kind FrameContentKind

	// Information / UnnumberedInformation
	PID  ProtocolIdentifier
	Info []byte

	// Information / ReceiveReady / ReceiveNotReady / Reject / FrameReject
	ReceiveSequence int
	SendSequence    int // Information and FrameReject only
	Poll            bool
	PollOrFinal     bool // S-frames and UnnumberedInformation use P/F, not a bare Poll

	// SetAsynchronousBalancedMode / Disconnect
	// (Poll above carries these too)

	// DisconnectedMode / UnnumberedAcknowledge / FrameReject
	Final bool

	// FrameReject
	RejectedControlFieldRaw byte
	Z, Y, X, W              bool
	FrmrCommandResponse     CommandResponse

	// UnknownContent
	Raw []byte
}

// FrameContentKind enumerates the control-field families and their
// sub-variants, per spec.md §3.
type FrameContentKind int

const (
	KindInformation FrameContentKind = iota
	KindReceiveReady
	KindReceiveNotReady
	KindReject
	KindSABM
	KindDisconnect
	KindDisconnectedMode
	KindUnnumberedAcknowledge
	KindFrameReject
	KindUnnumberedInformation
	KindUnknownContent
)

// Control field bit layout constants.
const (
	iFrameLowBit    = 0x01
	sFrameMask      = 0x03
	sFrameTag       = 0x01
	uFrameTag       = 0x03
	rSeqMask        = 0b1110_0000
	rSeqShift       = 5
	sSeqMask        = 0b0000_1110
	sSeqShift       = 1
	pollBit         = 0b0001_0000
	sSubTypeMask    = 0x0f
	uSubTypeMask    = 0b1110_1111 // ignore P/F bit when matching

	sSubReceiveReady    = 0x01
	sSubReceiveNotReady = 0x05
	sSubReject          = 0x09

	uSubSABM = 0x2f
	uSubDISC = 0x43
	uSubDM   = 0x0f
	uSubUA   = 0x63
	uSubFRMR = 0x87
	uSubUI   = 0x03
)

// DecodeFrameContent classifies and decodes the content region (control
// field onward) of an AX.25 frame.
func DecodeFrameContent(content []byte) (FrameContent, error) {
	if len(content) == 0 {
		return FrameContent{}, newParseErr(ErrContentZeroLength, "content region is empty")
	}

	var c = content[0]

	switch {
	case c&iFrameLowBit == 0:
		return decodeIFrame(content)
	case c&sFrameMask == sFrameTag:
		return decodeSFrame(c)
	case c&sFrameMask == uFrameTag:
		return decodeUFrame(content)
	default:
		// Not reachable: c & 0x03 is exhaustively 0, 1, or 3 given the
		// two prior checks, but keep a defined fallback for safety.
		return FrameContent{Kind: KindUnknownContent, Raw: append([]byte(nil), content...)}, nil
	}
}

func decodeIFrame(content []byte) (FrameContent, error) {
	if len(content) < 2 {
		return FrameContent{}, newParseErr(ErrMissingPIDField, "I-frame needs at least 2 octets, got %d", len(content))
	}

	var c = content[0]

	return FrameContent{
		Kind:            KindInformation,
		ReceiveSequence: int((c & rSeqMask) >> rSeqShift),
		SendSequence:    int((c & sSeqMask) >> sSeqShift),
		Poll:            c&pollBit != 0,
		PID:             DecodePID(content[1]),
		Info:            append([]byte(nil), content[2:]...),
	}, nil
}

func decodeSFrame(c byte) (FrameContent, error) {
	var n_r = int((c & rSeqMask) >> rSeqShift)
	var pf = c&pollBit != 0

	var kind FrameContentKind
	switch c & sSubTypeMask {
	case sSubReceiveReady:
		kind = KindReceiveReady
	case sSubReceiveNotReady:
		kind = KindReceiveNotReady
	case sSubReject:
		kind = KindReject
	default:
		return FrameContent{}, newParseErr(ErrUnrecognisedSFieldType, "unrecognised S-frame sub-type 0x%02x", c&sSubTypeMask)
	}

	return FrameContent{Kind: kind, ReceiveSequence: n_r, PollOrFinal: pf}, nil
}

func decodeUFrame(content []byte) (FrameContent, error) {
	var c = content[0]
	var pf = c&pollBit != 0

	switch c & uSubTypeMask {
	case uSubSABM:
		return FrameContent{Kind: KindSABM, Poll: pf}, nil
	case uSubDISC:
		return FrameContent{Kind: KindDisconnect, Poll: pf}, nil
	case uSubDM:
		return FrameContent{Kind: KindDisconnectedMode, Final: pf}, nil
	case uSubUA:
		return FrameContent{Kind: KindUnnumberedAcknowledge, Final: pf}, nil
	case uSubFRMR:
		return decodeFRMR(content)
	case uSubUI:
		return decodeUI(content, pf)
	default:
		return FrameContent{}, newParseErr(ErrUnrecognisedUFieldType, "unrecognised U-frame sub-type 0x%02x", c&uSubTypeMask)
	}
}

func decodeFRMR(content []byte) (FrameContent, error) {
	if len(content) != 4 {
		return FrameContent{}, newParseErr(ErrWrongSizeFrmrInfo, "FRMR needs exactly 4 octets, got %d", len(content))
	}

	var info0, info1, info2 = content[1], content[2], content[3]

	var cr = Command
	if info1&0x10 != 0 {
		cr = Response
	}

	return FrameContent{
		Kind:                    KindFrameReject,
		Final:                   content[0]&pollBit != 0,
		RejectedControlFieldRaw: info2,
		Z:                       info0&0x1 != 0,
		Y:                       info0&0x2 != 0,
		X:                       info0&0x4 != 0,
		W:                       info0&0x8 != 0,
		ReceiveSequence:         int((info1 & rSeqMask) >> rSeqShift),
		SendSequence:            int((info1 & sSeqMask) >> sSeqShift),
		FrmrCommandResponse:     cr,
	}, nil
}

func decodeUI(content []byte, pf bool) (FrameContent, error) {
	if len(content) < 2 {
		return FrameContent{}, newParseErr(ErrMissingPIDField, "UI-frame needs at least 2 octets, got %d", len(content))
	}

	return FrameContent{
		Kind:        KindUnnumberedInformation,
		PollOrFinal: pf,
		PID:         DecodePID(content[1]),
		Info:        append([]byte(nil), content[2:]...),
	}, nil
}

// Encode is the inverse of DecodeFrameContent for every known variant:
// re-encoding a successfully decoded content region reproduces the
// original bytes, with two exceptions. Layer3Impl PIDs re-encode to the
// canonical octet, and a FrameReject re-encodes with the unused bits of
// its info octets (the high nibble of the first, the low bit of the
// second) cleared, since FrameContent does not keep them.
func (fc FrameContent) Encode() []byte {
	switch fc.Kind {
	case KindInformation:
		var c = byte(fc.ReceiveSequence&0x07)<<rSeqShift | byte(fc.SendSequence&0x07)<<sSeqShift
		if fc.Poll {
			c |= pollBit
		}
		var out = make([]byte, 2, 2+len(fc.Info))
		out[0] = c
		out[1] = fc.PID.Encode()
		out = append(out, fc.Info...)

		return out

	case KindReceiveReady:
		return []byte{sControlByte(fc, sSubReceiveReady)}
	case KindReceiveNotReady:
		return []byte{sControlByte(fc, sSubReceiveNotReady)}
	case KindReject:
		return []byte{sControlByte(fc, sSubReject)}

	case KindSABM:
		return []byte{uControlByte(uSubSABM, fc.Poll)}
	case KindDisconnect:
		return []byte{uControlByte(uSubDISC, fc.Poll)}
	case KindDisconnectedMode:
		return []byte{uControlByte(uSubDM, fc.Final)}
	case KindUnnumberedAcknowledge:
		return []byte{uControlByte(uSubUA, fc.Final)}

	case KindFrameReject:
		return encodeFRMR(fc)

	case KindUnnumberedInformation:
		var out = make([]byte, 2, 2+len(fc.Info))
		out[0] = uControlByte(uSubUI, fc.PollOrFinal)
		out[1] = fc.PID.Encode()
		out = append(out, fc.Info...)

		return out

	case KindUnknownContent:
		return append([]byte(nil), fc.Raw...)

	default:
		return append([]byte(nil), fc.Raw...)
	}
}

func sControlByte(fc FrameContent, subType byte) byte {
	var c = byte(fc.ReceiveSequence&0x07)<<rSeqShift | subType
	if fc.PollOrFinal {
		c |= pollBit
	}

	return c
}

func uControlByte(subType byte, pf bool) byte {
	var c = subType
	if pf {
		c |= pollBit
	}

	return c
}

func encodeFRMR(fc FrameContent) []byte {
	var info0 byte
	if fc.Z {
		info0 |= 0x1
	}
	if fc.Y {
		info0 |= 0x2
	}
	if fc.X {
		info0 |= 0x4
	}
	if fc.W {
		info0 |= 0x8
	}

	var info1 = byte(fc.ReceiveSequence&0x07)<<rSeqShift | byte(fc.SendSequence&0x07)<<sSeqShift
	if fc.FrmrCommandResponse == Response {
		info1 |= 0x10
	}

	var c0 byte = uSubFRMR
	if fc.Final {
		c0 |= pollBit
	}

	return []byte{c0, info0, info1, fc.RejectedControlFieldRaw}
}

// InfoStringLossy returns a best-effort UTF-8 view of the info payload
// for Information and UnnumberedInformation frames, and false for every
// other variant.
func (fc FrameContent) InfoStringLossy() (string, bool) {
	switch fc.Kind {
	case KindInformation, KindUnnumberedInformation:
		return toValidUTF8Lossy(fc.Info), true
	default:
		return "", false
	}
}
