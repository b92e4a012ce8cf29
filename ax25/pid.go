package ax25

// ProtocolIdentifier names the Layer-3 protocol carried in the info
// field of an Information or UnnumberedInformation frame. It is decoded
// from, and re-encoded to, a single octet per AX.25 2.0 section 6.
type ProtocolIdentifier struct {
	kind    pidKind
	unknown byte // only meaningful when kind == pidUnknown
}

type pidKind int

const (
	pidLayer3Impl pidKind = iota
	pidX25Plp
	pidCompressedTCPIP
	pidUncompressedTCPIP
	pidSegmentationFragment
	pidTexnetDatagram
	pidLinkQuality
	pidAppletalk
	pidAppletalkARP
	pidArpaIP
	pidArpaAddress
	pidFlexnet
	pidNetRom
	pidNone
	pidEscape
	pidUnknown
)

// Canonical octet values for every fixed, non-range PID.
const (
	octetX25Plp              = 0x01
	octetCompressedTCPIP     = 0x06
	octetUncompressedTCPIP   = 0x07
	octetSegmentationFrag    = 0x08
	octetTexnetDatagram      = 0xC3
	octetLinkQuality         = 0xC4
	octetAppletalk           = 0xCA
	octetAppletalkARP        = 0xCB
	octetArpaIP              = 0xCC
	octetArpaAddress         = 0xCD
	octetFlexnet             = 0xCE
	octetNetRom              = 0xCF
	octetNone                = 0xF0
	octetEscape              = 0xFF
	octetLayer3ImplCanonical = 0b0001_0000
)

var (
	// PIDX25Plp etc. are the exported constructors for fixed PID values.
	PIDX25Plp            = ProtocolIdentifier{kind: pidX25Plp}
	PIDCompressedTCPIP   = ProtocolIdentifier{kind: pidCompressedTCPIP}
	PIDUncompressedTCPIP = ProtocolIdentifier{kind: pidUncompressedTCPIP}
	PIDSegmentationFrag  = ProtocolIdentifier{kind: pidSegmentationFragment}
	PIDTexnetDatagram    = ProtocolIdentifier{kind: pidTexnetDatagram}
	PIDLinkQuality       = ProtocolIdentifier{kind: pidLinkQuality}
	PIDAppletalk         = ProtocolIdentifier{kind: pidAppletalk}
	PIDAppletalkARP      = ProtocolIdentifier{kind: pidAppletalkARP}
	PIDArpaIP            = ProtocolIdentifier{kind: pidArpaIP}
	PIDArpaAddress       = ProtocolIdentifier{kind: pidArpaAddress}
	PIDFlexnet           = ProtocolIdentifier{kind: pidFlexnet}
	PIDNetRom            = ProtocolIdentifier{kind: pidNetRom}
	PIDNone              = ProtocolIdentifier{kind: pidNone}
	PIDEscape            = ProtocolIdentifier{kind: pidEscape}
	PIDLayer3Impl        = ProtocolIdentifier{kind: pidLayer3Impl}
)

// PIDUnknown wraps a raw octet that matches no recognised PID family.
func PIDUnknown(octet byte) ProtocolIdentifier {
	return ProtocolIdentifier{kind: pidUnknown, unknown: octet}
}

// isLayer3Impl reports whether octet falls in the "Layer 3 implemented"
// range: bits 0b0011_0000 masked to 0b0001_0000 or 0b0010_0000.
func isLayer3Impl(octet byte) bool {
	var masked = octet & 0b0011_0000
	return masked == 0b0001_0000 || masked == 0b0010_0000
}

// DecodePID maps a single PID octet to its symbolic value. The
// Layer3Impl range test runs first, then the fixed table, then the
// Unknown fallback. No fixed-table octet falls inside the Layer3Impl
// range, so the order of the first two steps does not change any result.
func DecodePID(octet byte) ProtocolIdentifier {
	if isLayer3Impl(octet) {
		return PIDLayer3Impl
	}

	switch octet {
	case octetX25Plp:
		return PIDX25Plp
	case octetCompressedTCPIP:
		return PIDCompressedTCPIP
	case octetUncompressedTCPIP:
		return PIDUncompressedTCPIP
	case octetSegmentationFrag:
		return PIDSegmentationFrag
	case octetTexnetDatagram:
		return PIDTexnetDatagram
	case octetLinkQuality:
		return PIDLinkQuality
	case octetAppletalk:
		return PIDAppletalk
	case octetAppletalkARP:
		return PIDAppletalkARP
	case octetArpaIP:
		return PIDArpaIP
	case octetArpaAddress:
		return PIDArpaAddress
	case octetFlexnet:
		return PIDFlexnet
	case octetNetRom:
		return PIDNetRom
	case octetNone:
		return PIDNone
	case octetEscape:
		return PIDEscape
	default:
		return PIDUnknown(octet)
	}
}

// Encode returns the canonical octet for p. Layer3Impl always encodes to
// 0b0001_0000 — several distinct octets decode to that symbolic value,
// so re-encoding one of the others is necessarily lossy. This is the
// one documented exception to the PID round-trip law.
func (p ProtocolIdentifier) Encode() byte {
	switch p.kind {
	case pidLayer3Impl:
		return octetLayer3ImplCanonical
	case pidX25Plp:
		return octetX25Plp
	case pidCompressedTCPIP:
		return octetCompressedTCPIP
	case pidUncompressedTCPIP:
		return octetUncompressedTCPIP
	case pidSegmentationFragment:
		return octetSegmentationFrag
	case pidTexnetDatagram:
		return octetTexnetDatagram
	case pidLinkQuality:
		return octetLinkQuality
	case pidAppletalk:
		return octetAppletalk
	case pidAppletalkARP:
		return octetAppletalkARP
	case pidArpaIP:
		return octetArpaIP
	case pidArpaAddress:
		return octetArpaAddress
	case pidFlexnet:
		return octetFlexnet
	case pidNetRom:
		return octetNetRom
	case pidNone:
		return octetNone
	case pidEscape:
		return octetEscape
	case pidUnknown:
		return p.unknown
	default:
		return p.unknown
	}
}

// String gives a short symbolic name, useful in monitor output and logs.
func (p ProtocolIdentifier) String() string {
	switch p.kind {
	case pidLayer3Impl:
		return "Layer3Impl"
	case pidX25Plp:
		return "X25Plp"
	case pidCompressedTCPIP:
		return "CompressedTcpIp"
	case pidUncompressedTCPIP:
		return "UncompressedTcpIp"
	case pidSegmentationFragment:
		return "SegmentationFragment"
	case pidTexnetDatagram:
		return "TexnetDatagram"
	case pidLinkQuality:
		return "LinkQuality"
	case pidAppletalk:
		return "Appletalk"
	case pidAppletalkARP:
		return "AppletalkArp"
	case pidArpaIP:
		return "ArpaIp"
	case pidArpaAddress:
		return "ArpaAddress"
	case pidFlexnet:
		return "Flexnet"
	case pidNetRom:
		return "NetRom"
	case pidNone:
		return "None"
	case pidEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// IsUnknown reports whether p decoded from an octet matching no
// recognised family, and returns that raw octet.
func (p ProtocolIdentifier) IsUnknown() (octet byte, ok bool) {
	if p.kind == pidUnknown {
		return p.unknown, true
	}

	return 0, false
}
