package tnc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk7ntk/ax25kiss/ax25"
)

func TestTCPKISSLoopback_SendAndReceive(t *testing.T) {
	var listener, err = ListenTCPKISS("127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	var serverTransportCh = make(chan *TCPKISSTransport, 1)
	go func() {
		var serverTransport, acceptErr = listener.Accept()
		require.NoError(t, acceptErr)
		serverTransportCh <- serverTransport
	}()

	var clientTransport, dialErr = DialTCPKISS(listener.Addr().String())
	require.NoError(t, dialErr)
	defer clientTransport.Shutdown()

	var serverTransport = <-serverTransportCh
	defer serverTransport.Shutdown()

	var client = New(clientTransport)
	defer client.Shutdown()

	var server = New(serverTransport)
	defer server.Shutdown()

	var sub = server.Incoming()

	var src, _ = ax25.ParseAddressString("VK7NTK-1")
	var dst, _ = ax25.ParseAddressString("APRS-0")
	var frame = ax25.Frame{
		Source:      src,
		Destination: dst,
		Content: ax25.FrameContent{
			Kind: ax25.KindUnnumberedInformation,
			PID:  ax25.PIDNone,
			Info: []byte("hello over the wire"),
		},
	}

	require.NoError(t, client.SendFrame(frame))

	select {
	case result := <-sub.Frames():
		require.NoError(t, result.Err)
		var info, _ = result.Frame.InfoStringLossy()
		require.Equal(t, "hello over the wire", info)
		require.Equal(t, "VK7NTK-1", result.Frame.Source.String())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for loopback frame")
	}
}
