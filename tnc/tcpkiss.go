package tnc

import (
	"io"
	"net"
	"sync"
	"time"

	"github.com/vk7ntk/ax25kiss/internal/logging"
	"github.com/vk7ntk/ax25kiss/kiss"
)

var tcpLog = logging.For("tnc.tcpkiss")

// receiveChunkSize is how many octets TCPKISSTransport reads from the
// socket per syscall when the framer has no complete frame buffered.
// Grounded in the teacher's src/kissnet.go read-loop chunk size.
const receiveChunkSize = 1024

// TCPKISSTransport is a blocking TCP connection carrying KISS-framed
// AX.25 octets, per spec.md §4.6. Two flows share the socket: send
// takes sendMu around writes, receive takes recvMu around both the
// socket read and the KISS buffer.
type TCPKISSTransport struct {
	conn net.Conn

	sendMu sync.Mutex

	recvMu sync.Mutex
	framer *kiss.Framer

	closeMu sync.Mutex
	closed  bool
}

// DialTCPKISS opens a TCP connection to a KISS TNC at addr
// ("host:port").
func DialTCPKISS(addr string) (*TCPKISSTransport, error) {
	var conn, err = net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return nil, openErr(err)
	}

	return NewTCPKISSTransport(conn), nil
}

// NewTCPKISSTransport wraps an already-established connection.
func NewTCPKISSTransport(conn net.Conn) *TCPKISSTransport {
	return &TCPKISSTransport{conn: conn, framer: kiss.NewFramer()}
}

// SendFrame serializes frame into a KISS envelope and writes it under
// the send mutex, so concurrent SendFrame calls never interleave their
// bytes on the wire.
func (t *TCPKISSTransport) SendFrame(frame []byte) error {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()

	var encoded = kiss.Encode(frame)

	var _, err = t.conn.Write(encoded)
	if err != nil {
		return sendErr(err)
	}

	return nil
}

// ReceiveFrame extracts one frame from the framer's buffer, reading more
// bytes from the socket as needed. The command/port byte is still
// present at frame[0] — callers passing this to ax25.FromBytes rely on
// its leading-null tolerance to skip it.
func (t *TCPKISSTransport) ReceiveFrame() ([]byte, error) {
	t.recvMu.Lock()
	defer t.recvMu.Unlock()

	for {
		if frame, ok := t.framer.Extract(); ok {
			return frame, nil
		}

		var buf = make([]byte, receiveChunkSize)
		var n, err = t.conn.Read(buf)
		if n > 0 {
			t.framer.Feed(buf[:n])
		}
		if err != nil {
			if err == io.EOF {
				tcpLog.Debug("connection closed by peer")
			}

			return nil, receiveErr(err)
		}
	}
}

// Shutdown closes the connection, unblocking any in-flight Read.
func (t *TCPKISSTransport) Shutdown() error {
	t.closeMu.Lock()
	var alreadyClosed = t.closed
	t.closed = true
	t.closeMu.Unlock()

	if alreadyClosed {
		return nil
	}

	return t.conn.Close()
}
