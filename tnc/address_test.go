package tnc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress_TCPKISS(t *testing.T) {
	var a, err = ParseAddress("tnc:tcpkiss:localhost:8001")
	require.NoError(t, err)
	assert.Equal(t, KindTCPKISS, a.Kind)
	assert.Equal(t, "localhost", a.Host)
	assert.Equal(t, uint16(8001), a.Port)
}

func TestParseAddress_LinuxIf(t *testing.T) {
	var a, err = ParseAddress("tnc:linuxif:vk7ntk-1")
	require.NoError(t, err)
	assert.Equal(t, KindLinuxInterface, a.Kind)
	assert.Equal(t, "VK7NTK-1", a.Callsign)
}

func TestParseAddress_RoundTrip(t *testing.T) {
	var cases = []string{"tnc:tcpkiss:192.168.1.50:8001", "tnc:linuxif:VK7NTK-1"}
	for _, s := range cases {
		var a, err = ParseAddress(s)
		require.NoError(t, err)
		assert.Equal(t, s, a.String())
	}
}

func TestParseAddress_Failures(t *testing.T) {
	var cases = map[string]AddressErrorKind{
		"tcpkiss:localhost:8001":   ErrNoTncPrefix,
		"tnc:serial:/dev/ttyUSB0":  ErrUnknownType,
		"tnc:tcpkiss:localhost":    ErrWrongParameterCount,
		"tnc:tcpkiss:localhost:x": ErrInvalidPort,
	}

	for s, wantKind := range cases {
		var _, err = ParseAddress(s)
		require.Errorf(t, err, "expected %q to fail", s)

		var ae *AddressError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, wantKind, ae.Kind, "for input %q", s)
	}
}
