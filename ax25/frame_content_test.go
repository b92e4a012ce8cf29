package ax25

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDecodeFrameContent_Information(t *testing.T) {
	var content = []byte{0b0100_0010, 0xF0, 'h', 'i'}
	var fc, err = DecodeFrameContent(content)
	require.NoError(t, err)
	assert.Equal(t, KindInformation, fc.Kind)
	assert.Equal(t, 2, fc.ReceiveSequence)
	assert.Equal(t, 1, fc.SendSequence)
	assert.False(t, fc.Poll)
	assert.Equal(t, PIDNone, fc.PID)
	assert.Equal(t, []byte("hi"), fc.Info)

	assert.Equal(t, content, fc.Encode())
}

func TestDecodeFrameContent_MissingPID(t *testing.T) {
	var _, err = DecodeFrameContent([]byte{0x00})
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrMissingPIDField, pe.Kind)
}

func TestDecodeFrameContent_SFrames(t *testing.T) {
	var cases = []struct {
		control byte
		kind    FrameContentKind
	}{
		{0x01, KindReceiveReady},
		{0x05, KindReceiveNotReady},
		{0x09, KindReject},
	}

	for _, c := range cases {
		var fc, err = DecodeFrameContent([]byte{c.control})
		require.NoError(t, err)
		assert.Equal(t, c.kind, fc.Kind)
		assert.Equal(t, []byte{c.control}, fc.Encode())
	}
}

func TestDecodeFrameContent_UnrecognisedSType(t *testing.T) {
	var _, err = DecodeFrameContent([]byte{0x0d}) // low bits 01, sub-type 0xd
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrUnrecognisedSFieldType, pe.Kind)
}

func TestDecodeFrameContent_UFrames(t *testing.T) {
	var cases = []struct {
		control byte
		kind    FrameContentKind
	}{
		{0x2f, KindSABM},
		{0x43, KindDisconnect},
		{0x0f, KindDisconnectedMode},
		{0x63, KindUnnumberedAcknowledge},
	}

	for _, c := range cases {
		var fc, err = DecodeFrameContent([]byte{c.control})
		require.NoError(t, err)
		assert.Equal(t, c.kind, fc.Kind)
		assert.Equal(t, []byte{c.control}, fc.Encode())
	}
}

func TestDecodeFrameContent_UI(t *testing.T) {
	var content = []byte{0x03, 0xF0, 'H', 'e', 'l', 'l', 'o'}
	var fc, err = DecodeFrameContent(content)
	require.NoError(t, err)
	assert.Equal(t, KindUnnumberedInformation, fc.Kind)
	assert.False(t, fc.PollOrFinal)
	assert.Equal(t, PIDNone, fc.PID)
	assert.Equal(t, []byte("Hello"), fc.Info)
	assert.Equal(t, content, fc.Encode())
}

func TestDecodeFrameContent_FRMR(t *testing.T) {
	// z=1,y=0,x=1,w=0 -> info0 = 0b0101 = 0x5
	// receive_sequence=3, send_sequence=2, command_response=Response -> info1 = (3<<5)|(2<<1)|0x10 = 0x74
	var content = []byte{0x87, 0x05, 0x74, 0x3C}
	var fc, err = DecodeFrameContent(content)
	require.NoError(t, err)
	assert.Equal(t, KindFrameReject, fc.Kind)
	assert.True(t, fc.Z)
	assert.False(t, fc.Y)
	assert.True(t, fc.X)
	assert.False(t, fc.W)
	assert.Equal(t, 3, fc.ReceiveSequence)
	assert.Equal(t, 2, fc.SendSequence)
	assert.Equal(t, Response, fc.FrmrCommandResponse)
	assert.Equal(t, byte(0x3C), fc.RejectedControlFieldRaw)
	assert.Equal(t, content, fc.Encode())
}

func TestDecodeFrameContent_WrongSizeFRMR(t *testing.T) {
	var _, err = DecodeFrameContent([]byte{0x87, 0x00})
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrWrongSizeFrmrInfo, pe.Kind)
}

func TestFrameContent_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var control = rapid.Byte().Draw(t, "control")
		var kind = control & 0x03

		var content []byte
		switch {
		case kind == 0x01 || kind == 0x03:
			if kind == 0x01 {
				var sub = control & sSubTypeMask
				if sub != sSubReceiveReady && sub != sSubReceiveNotReady && sub != sSubReject {
					return
				}
				content = []byte{control}
			} else {
				var sub = control & uSubTypeMask
				switch sub {
				case uSubSABM, uSubDISC, uSubDM, uSubUA:
					content = []byte{control}
				case uSubFRMR:
					var extra = rapid.SliceOfN(rapid.Byte(), 3, 3).Draw(t, "frmrInfo")
					content = append([]byte{control}, extra...)
				case uSubUI:
					var pid = rapid.Byte().Draw(t, "pid")
					if isLayer3Impl(pid) {
						return // documented PID canonicalization exception
					}
					var info = rapid.SliceOf(rapid.Byte()).Draw(t, "info")
					content = append([]byte{control, pid}, info...)
				default:
					return
				}
			}
		default: // I-frame
			var pid = rapid.Byte().Draw(t, "pid")
			if isLayer3Impl(pid) {
				return // documented PID canonicalization exception
			}
			var info = rapid.SliceOf(rapid.Byte()).Draw(t, "info")
			content = append([]byte{control, pid}, info...)
		}

		var fc, err = DecodeFrameContent(content)
		if err != nil {
			return
		}
		if fc.Kind == KindUnknownContent {
			return
		}

		assert.Equal(t, content, fc.Encode())
	})
}
