// Package handler implements the query-handling state machine (C6): parse
// the incoming datagram, decide per question against the blocklist, and
// either synthesize a null-route response or forward the original
// datagram to the upstream resolver and relay its reply.
package handler

import (
	"context"
	"net"
	"time"

	logpkg "github.com/mohe22/ads-blocker/internal/dns/common/log"
	"github.com/mohe22/ads-blocker/internal/dns/dnserr"
	"github.com/mohe22/ads-blocker/internal/dns/domain"
	"github.com/mohe22/ads-blocker/internal/dns/repos/blocklist"
	"github.com/mohe22/ads-blocker/internal/dns/transport"
	"github.com/mohe22/ads-blocker/internal/dns/wire"
)

// Handler owns the transport endpoints and the blocklist for the lifetime
// of the serving loop and processes one datagram to completion before the
// next is accepted, per the single-threaded scheduling model.
type Handler struct {
	listener        transport.Listener
	upstream        transport.UpstreamClient
	blocked         blocklist.Repository
	logger          logpkg.Logger
	upstreamTimeout time.Duration
}

// New constructs a Handler over the given endpoints, blocklist repository,
// and logger. upstreamTimeout bounds every forwarded query: it is applied
// as a per-call context deadline so a silent or slow upstream can never
// stall the single-threaded receive loop.
func New(listener transport.Listener, upstream transport.UpstreamClient, blocked blocklist.Repository, logger logpkg.Logger, upstreamTimeout time.Duration) *Handler {
	return &Handler{listener: listener, upstream: upstream, blocked: blocked, logger: logger, upstreamTimeout: upstreamTimeout}
}

// Serve runs the receive loop until ctx is canceled. Each iteration is one
// full trip: receive, parse, decide, respond.
func (h *Handler) Serve(ctx context.Context) error {
	for {
		data, clientAddr, err := h.listener.ReadFrom(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			h.logger.Warn(map[string]any{"error": err.Error()}, "listener_read_failed")
			continue
		}
		h.handleDatagram(ctx, data, clientAddr)
	}
}

// handleDatagram implements the per-datagram state machine. Errors are
// logged and swallowed here: a malformed or unroutable query must never
// take down the serving loop.
func (h *Handler) handleDatagram(ctx context.Context, data []byte, clientAddr net.Addr) {
	logger := h.logger.With(map[string]any{"client": clientAddr.String()})

	if len(data) < 13 {
		logger.Warn(map[string]any{"size": len(data)}, "query_too_short")
		return
	}

	msg, err := wire.ParseMessage(data)
	if err != nil {
		logger.Warn(map[string]any{"error": err.Error()}, "query_parse_failed")
		return
	}

	for _, q := range msg.Questions {
		logger.Debug(map[string]any{
			"name": q.Name,
			"type": q.Type.String(),
		}, "query_received")

		if h.blocked.Match(q.Name) {
			h.respondBlocked(logger, msg, q, clientAddr)
			return
		}
	}

	h.forward(ctx, logger, data, clientAddr)
}

// respondBlocked synthesizes and sends a null-route reply for a blocked
// question, per S4/S5: QR=1, RA=1, AA=0, RCODE unchanged (NOERROR),
// authority and additional sections cleared, and a single null answer for
// every qtype except HTTPS, which instead gets an empty answer section.
func (h *Handler) respondBlocked(logger logpkg.Logger, msg domain.Message, q domain.Question, clientAddr net.Addr) {
	logger = logger.With(map[string]any{"name": q.Name})

	resp := msg
	resp.Header.QR = true
	resp.Header.RA = true
	resp.Header.AA = false
	resp.Authority = nil
	resp.Additional = nil

	if q.Type == domain.RRTypeHTTPS {
		resp.Answers = nil
	} else {
		rdlen := 4
		if q.Type == domain.RRTypeAAAA {
			rdlen = 16
		}
		rr, err := domain.NewResourceRecord(q.Name, q.Type, q.Class, 0, make([]byte, rdlen))
		if err != nil {
			logger.Warn(map[string]any{"error": err.Error()}, "block_response_build_failed")
			return
		}
		resp.Answers = []domain.ResourceRecord{rr}
	}

	encoded, err := wire.EncodeMessage(resp)
	if err != nil {
		logger.Warn(map[string]any{"error": err.Error()}, "block_response_encode_failed")
		return
	}

	if err := h.listener.WriteTo(encoded, clientAddr); err != nil {
		logger.Warn(map[string]any{"error": err.Error()}, "block_response_send_failed")
		return
	}

	logger.Info(map[string]any{"bytes": len(encoded)}, "query_blocked")
}

// forward relays the original datagram, byte for byte, to the upstream
// resolver and pipes its reply back to the client. The codec never touches
// the bytes on this path.
func (h *Handler) forward(ctx context.Context, logger logpkg.Logger, data []byte, clientAddr net.Addr) {
	ctx, cancel := context.WithTimeout(ctx, h.upstreamTimeout)
	defer cancel()

	reply, err := h.upstream.Forward(ctx, data)
	if err != nil {
		logger.Warn(map[string]any{"error": err.Error()}, "upstream_forward_failed")
		return
	}

	if err := h.listener.WriteTo(reply, clientAddr); err != nil {
		if dnserr.Is(err, dnserr.SendFail) {
			logger.Warn(map[string]any{"error": err.Error()}, "reply_relay_failed")
		}
		return
	}

	logger.Debug(map[string]any{"bytes": len(reply)}, "reply_relayed")
}
