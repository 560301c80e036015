package transport

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/mohe22/ads-blocker/internal/dns/dnserr"
)

// udpUpstream implements UpstreamClient over a connected *net.UDPConn.
// One connected socket is reused across forwards; each Forward call sets a
// fresh read deadline derived from ctx.
type udpUpstream struct {
	conn *net.UDPConn
}

// NewUDPUpstream dials addr (host:port) as the upstream resolver.
func NewUDPUpstream(addr string) (UpstreamClient, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, dnserr.Wrap(dnserr.BindFail, "transport: resolve upstream address", err)
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, dnserr.Wrap(dnserr.BindFail, "transport: dial upstream", err)
	}
	return &udpUpstream{conn: conn}, nil
}

// Forward sends query to the upstream and waits for its reply, bounded by
// ctx's deadline. A timeout maps to UPSTREAM_TIMEOUT; any other send or
// receive failure, including a reset from the upstream while awaiting the
// reply, maps to UPSTREAM_UNREACHABLE.
func (u *udpUpstream) Forward(ctx context.Context, query []byte) ([]byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = u.conn.SetDeadline(deadline)
	} else {
		_ = u.conn.SetDeadline(time.Time{})
	}

	if _, err := u.conn.Write(query); err != nil {
		return nil, dnserr.Wrap(dnserr.UpstreamUnreachable, "transport: send to upstream", err)
	}

	buf := make([]byte, maxUDPDatagram)
	n, err := u.conn.Read(buf)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, dnserr.Wrap(dnserr.UpstreamTimeout, "transport: upstream reply timed out", err)
		}
		return nil, dnserr.Wrap(dnserr.UpstreamUnreachable, "transport: upstream unreachable", err)
	}

	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}

func (u *udpUpstream) Close() error { return u.conn.Close() }

var _ UpstreamClient = (*udpUpstream)(nil)
