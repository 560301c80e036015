package transport

import (
	"context"
	"net"
	"sync"

	"github.com/mohe22/ads-blocker/internal/dns/dnserr"
)

// udpListener implements Listener over a bound *net.UDPConn.
type udpListener struct {
	conn *net.UDPConn

	closeOnce sync.Once
}

// NewUDPListener binds a UDP socket on addr (host:port).
func NewUDPListener(addr string) (Listener, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, dnserr.Wrap(dnserr.BindFail, "transport: resolve listen address", err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, dnserr.Wrap(dnserr.BindFail, "transport: bind listen socket", err)
	}
	return &udpListener{conn: conn}, nil
}

// ReadFrom blocks on the socket. Since net.UDPConn has no context-aware
// read, cancellation is implemented by racing the blocking read against
// ctx.Done() and closing the socket to unblock it; the caller distinguishes
// this from a genuine socket failure via ctx.Err().
func (l *udpListener) ReadFrom(ctx context.Context) ([]byte, net.Addr, error) {
	type result struct {
		n    int
		addr *net.UDPAddr
		err  error
		buf  []byte
	}
	done := make(chan result, 1)

	go func() {
		buf := make([]byte, maxUDPDatagram)
		n, addr, err := l.conn.ReadFromUDP(buf)
		done <- result{n: n, addr: addr, err: err, buf: buf}
	}()

	select {
	case <-ctx.Done():
		_ = l.conn.Close()
		<-done
		return nil, nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, nil, dnserr.Wrap(dnserr.RecvFail, "transport: read from listener", r.err)
		}
		out := make([]byte, r.n)
		copy(out, r.buf[:r.n])
		return out, r.addr, nil
	}
}

func (l *udpListener) WriteTo(data []byte, addr net.Addr) error {
	udpAddr, ok := addr.(*net.UDPAddr)
	if !ok {
		return dnserr.New(dnserr.SendFail, "transport: address is not a UDP address")
	}
	if _, err := l.conn.WriteToUDP(data, udpAddr); err != nil {
		return dnserr.Wrap(dnserr.SendFail, "transport: write to client", err)
	}
	return nil
}

func (l *udpListener) Close() error {
	var err error
	l.closeOnce.Do(func() { err = l.conn.Close() })
	return err
}

func (l *udpListener) Addr() net.Addr { return l.conn.LocalAddr() }

const maxUDPDatagram = 4096

var _ Listener = (*udpListener)(nil)
