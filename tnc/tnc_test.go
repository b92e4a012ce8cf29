package tnc

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk7ntk/ax25kiss/ax25"
)

// fakeTransport is an in-memory Transport for exercising Tnc's fan-out
// without a real socket: ReceiveFrame pops from a queue of canned
// frames/errors fed in by the test, SendFrame records what was sent.
type fakeTransport struct {
	mu      sync.Mutex
	queue   []fakeRecv
	sent    [][]byte
	closed  bool
	unblock chan struct{}
}

type fakeRecv struct {
	frame []byte
	err   error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{unblock: make(chan struct{}, 64)}
}

func (f *fakeTransport) push(recv fakeRecv) {
	f.mu.Lock()
	f.queue = append(f.queue, recv)
	f.mu.Unlock()
	f.unblock <- struct{}{}
}

func (f *fakeTransport) SendFrame(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, frame)

	return nil
}

func (f *fakeTransport) ReceiveFrame() ([]byte, error) {
	for {
		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()

			return nil, errors.New("fake transport closed")
		}
		if len(f.queue) > 0 {
			var next = f.queue[0]
			f.queue = f.queue[1:]
			f.mu.Unlock()

			return next.frame, next.err
		}
		f.mu.Unlock()

		<-f.unblock
	}
}

func (f *fakeTransport) Shutdown() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	select {
	case f.unblock <- struct{}{}:
	default:
	}

	return nil
}

func testUIFrame(t *testing.T, info string) []byte {
	t.Helper()

	var src, err = ax25.ParseAddressString("VK7NTK-1")
	require.NoError(t, err)
	var dst, err2 = ax25.ParseAddressString("APRS-0")
	require.NoError(t, err2)

	var f = ax25.Frame{
		Source:      src,
		Destination: dst,
		Content: ax25.FrameContent{
			Kind: ax25.KindUnnumberedInformation,
			PID:  ax25.PIDNone,
			Info: []byte(info),
		},
	}

	return f.ToBytes()
}

func TestTnc_FanOutOrdering(t *testing.T) {
	var transport = newFakeTransport()
	var tnc = New(transport)
	defer tnc.Shutdown()

	var subA = tnc.Incoming()
	var subB = tnc.Incoming()

	var messages = []string{"one", "two", "three"}
	for _, m := range messages {
		transport.push(fakeRecv{frame: testUIFrame(t, m)})
	}

	for _, want := range messages {
		var gotA = <-subA.Frames()
		require.NoError(t, gotA.Err)
		var infoA, _ = gotA.Frame.InfoStringLossy()
		assert.Equal(t, want, infoA)

		var gotB = <-subB.Frames()
		require.NoError(t, gotB.Err)
		var infoB, _ = gotB.Frame.InfoStringLossy()
		assert.Equal(t, want, infoB)
	}
}

func TestTnc_LateSubscriberMissesEarlierFrames(t *testing.T) {
	var transport = newFakeTransport()
	var tnc = New(transport)
	defer tnc.Shutdown()

	var subA = tnc.Incoming()
	transport.push(fakeRecv{frame: testUIFrame(t, "before")})

	var first = <-subA.Frames()
	require.NoError(t, first.Err)

	var subB = tnc.Incoming()
	transport.push(fakeRecv{frame: testUIFrame(t, "after")})

	var gotB = <-subB.Frames()
	require.NoError(t, gotB.Err)
	var infoB, _ = gotB.Frame.InfoStringLossy()
	assert.Equal(t, "after", infoB)
}

func TestTnc_TransportErrorTerminatesAllSubscriptions(t *testing.T) {
	var transport = newFakeTransport()
	var tnc = New(transport)

	var subA = tnc.Incoming()
	var subB = tnc.Incoming()

	transport.push(fakeRecv{err: errors.New("link down")})

	var resultA = <-subA.Frames()
	require.Error(t, resultA.Err)

	var resultB = <-subB.Frames()
	require.Error(t, resultB.Err)

	_, okA := <-subA.Frames()
	assert.False(t, okA)
	_, okB := <-subB.Frames()
	assert.False(t, okB)
}

func TestTnc_UnparseableFramesAreSkippedNotDelivered(t *testing.T) {
	var transport = newFakeTransport()
	var tnc = New(transport)
	defer tnc.Shutdown()

	var sub = tnc.Incoming()

	transport.push(fakeRecv{frame: []byte{0xFE, 0xFE, 0xFE}}) // unparseable garbage
	transport.push(fakeRecv{frame: testUIFrame(t, "good")})

	var got = <-sub.Frames()
	require.NoError(t, got.Err)
	var info, _ = got.Frame.InfoStringLossy()
	assert.Equal(t, "good", info)
}

func TestTnc_SendFrameRecordsOnTransport(t *testing.T) {
	var transport = newFakeTransport()
	var tnc = New(transport)
	defer tnc.Shutdown()

	var src, _ = ax25.ParseAddressString("VK7NTK-1")
	var dst, _ = ax25.ParseAddressString("APRS-0")
	var f = ax25.Frame{
		Source:      src,
		Destination: dst,
		Content: ax25.FrameContent{
			Kind: ax25.KindUnnumberedInformation,
			PID:  ax25.PIDNone,
			Info: []byte("hello"),
		},
	}

	require.NoError(t, tnc.SendFrame(f))

	require.Eventually(t, func() bool {
		transport.mu.Lock()
		defer transport.mu.Unlock()

		return len(transport.sent) == 1
	}, time.Second, time.Millisecond)
}

func TestTnc_SubscriptionCloseStopsDelivery(t *testing.T) {
	var transport = newFakeTransport()
	var tnc = New(transport)
	defer tnc.Shutdown()

	var sub = tnc.Incoming()
	sub.Close()

	_, ok := <-sub.Frames()
	assert.False(t, ok)
}
