package ax25

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_UIRoundTrip(t *testing.T) {
	var cr = Command
	var f = Frame{
		Destination:       Address{Callsign: "APRS", CBit: true},
		Source:            Address{Callsign: "VK7NTK"},
		CommandOrResponse: &cr,
		Content: FrameContent{
			Kind: KindUnnumberedInformation,
			PID:  PIDNone,
			Info: []byte("Hello"),
		},
	}

	var encoded = f.ToBytes()
	var decoded, err = FromBytes(encoded)
	require.NoError(t, err)

	assert.Equal(t, f.Destination, decoded.Destination)
	assert.Equal(t, f.Source, decoded.Source)
	assert.Equal(t, f.Content, decoded.Content)
	assert.Equal(t, encoded, decoded.ToBytes())
}

func TestFrame_OnlyNullBytes(t *testing.T) {
	var _, err = FromBytes([]byte{0, 0, 0})
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrOnlyNullBytes, pe.Kind)
}

func TestFrame_NoEndToAddressField(t *testing.T) {
	var b = make([]byte, 20)
	for i := range b {
		b[i] = 0xFE // non-zero, but low bit always clear
	}
	var _, err = FromBytes(b)
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrNoEndToAddressField, pe.Kind)
}

func TestFrame_WithRepeaters(t *testing.T) {
	var dest, _ = ParseAddressString("APRS-0")
	var src, _ = ParseAddressString("VK7NTK-1")
	var r1, _ = ParseAddressString("WIDE1-1")
	var r2, _ = ParseAddressString("WIDE2-2")

	var cr = Command
	var f = Frame{
		Destination:       dest,
		Source:            src,
		Route:             []RouteEntry{{Address: r1, HasRepeated: true}, {Address: r2, HasRepeated: false}},
		CommandOrResponse: &cr,
		Content: FrameContent{
			Kind: KindUnnumberedInformation,
			PID:  PIDNone,
			Info: []byte("test"),
		},
	}

	var encoded = f.ToBytes()
	var decoded, err = FromBytes(encoded)
	require.NoError(t, err)

	require.Len(t, decoded.Route, 2)
	assert.Equal(t, "WIDE1", decoded.Route[0].Address.Callsign)
	assert.True(t, decoded.Route[0].HasRepeated)
	assert.Equal(t, "WIDE2", decoded.Route[1].Address.Callsign)
	assert.False(t, decoded.Route[1].HasRepeated)
	assert.Equal(t, encoded, decoded.ToBytes())
}

func TestFrame_InfoStringLossy(t *testing.T) {
	var cr = Command
	var f = Frame{
		Destination:       Address{Callsign: "APRS"},
		Source:            Address{Callsign: "VK7NTK"},
		CommandOrResponse: &cr,
		Content: FrameContent{
			Kind: KindUnnumberedInformation,
			PID:  PIDNone,
			Info: []byte("Hello"),
		},
	}

	var s, ok = f.InfoStringLossy()
	require.True(t, ok)
	assert.Equal(t, "Hello", s)

	var f2 = Frame{Content: FrameContent{Kind: KindSABM}}
	var _, ok2 = f2.InfoStringLossy()
	assert.False(t, ok2)
}
