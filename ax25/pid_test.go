package ax25

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDecodePID_Layer3ImplRange(t *testing.T) {
	assert.Equal(t, PIDLayer3Impl, DecodePID(0x10))
	assert.Equal(t, PIDLayer3Impl, DecodePID(0x20))
	assert.Equal(t, PIDLayer3Impl, DecodePID(0xA5))
}

func TestDecodePID_Unknown(t *testing.T) {
	var got = DecodePID(0x45)
	var octet, ok = got.IsUnknown()
	assert.True(t, ok)
	assert.Equal(t, byte(0x45), octet)
}

func TestDecodePID_CanonicalOctets(t *testing.T) {
	var canonical = []byte{0x01, 0x06, 0x07, 0x08, 0xC3, 0xC4, 0xCA, 0xCB, 0xCC, 0xCD, 0xCE, 0xCF, 0xF0, 0xFF}
	for _, octet := range canonical {
		var decoded = DecodePID(octet)
		assert.Equal(t, octet, decoded.Encode(), "round-trip failed for canonical octet 0x%02x", octet)
	}
}

func TestDecodePID_UnknownRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var octet = rapid.Byte().Draw(t, "octet")
		if isLayer3Impl(octet) {
			return
		}

		var decoded = DecodePID(octet)
		if _, ok := decoded.IsUnknown(); !ok {
			return // a known, fixed-table PID; covered by the canonical-octet test
		}

		assert.Equal(t, octet, decoded.Encode())
	})
}

func TestDecodePID_Layer3ImplCanonicalizesOnEncode(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var octet = rapid.Byte().Draw(t, "octet")
		if !isLayer3Impl(octet) {
			return
		}

		assert.Equal(t, byte(0b0001_0000), DecodePID(octet).Encode())
	})
}
