package tnc

import "net"

// TCPKISSListener accepts inbound TCP-KISS connections. It exists for
// tests and demo tools that need to stand up a loopback TNC without a
// real radio — Tnc itself only ever dials out via DialTCPKISS. Grounded
// in the server side of the teacher's src/kissnet.go.
type TCPKISSListener struct {
	ln net.Listener
}

// ListenTCPKISS starts listening on addr ("host:port", "" host binds
// all interfaces).
func ListenTCPKISS(addr string) (*TCPKISSListener, error) {
	var ln, err = net.Listen("tcp", addr)
	if err != nil {
		return nil, openErr(err)
	}

	return &TCPKISSListener{ln: ln}, nil
}

// Addr returns the listener's bound address, useful when addr was
// ":0" and the OS picked an ephemeral port.
func (l *TCPKISSListener) Addr() net.Addr { return l.ln.Addr() }

// Accept blocks for the next inbound connection and wraps it as a
// TCPKISSTransport.
func (l *TCPKISSListener) Accept() (*TCPKISSTransport, error) {
	var conn, err = l.ln.Accept()
	if err != nil {
		return nil, receiveErr(err)
	}

	return NewTCPKISSTransport(conn), nil
}

// Close stops accepting new connections.
func (l *TCPKISSListener) Close() error {
	return l.ln.Close()
}
