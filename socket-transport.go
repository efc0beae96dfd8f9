package chatclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"
)

const (
	frameBuffer = 255
	pingPeriod  = time.Second * 10
)

// SocketTransport is the websocket half of the client: a read loop feeding
// Inbound and a write loop draining Emit. Reconnection and backoff are not
// its job; when the connection dies the inbound channel closes and the
// owner decides what happens next.
type SocketTransport struct {
	// The key bit - the web-socket connection
	conn net.Conn
	rw   io.ReadWriter

	// The message bit
	inbound chan []byte
	send    chan []byte

	// The concurrency bit
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	Slogger *slog.Logger
}

// Dial connects to the chat server, announcing the username as a query
// parameter. The generated client id rides along as a header purely for
// server-side log correlation.
func Dial(ctx context.Context, rawURL string, identity Identity, slogger *slog.Logger) (*SocketTransport, error) {
	if slogger == nil {
		slogger = slog.Default()
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	q := u.Query()
	q.Set("username", string(identity))
	u.RawQuery = q.Encode()

	connID := uuid.NewString()
	dialer := ws.Dialer{
		Header: ws.HandshakeHeaderHTTP(http.Header{
			"X-Client-ID": []string{connID},
		}),
	}

	conn, br, _, err := dialer.Dial(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.Host, err)
	}

	// The server may start pushing snapshots before the handshake reader
	// is drained; stitch any buffered bytes in front of the connection.
	rw := io.ReadWriter(conn)
	if br != nil {
		rw = struct {
			io.Reader
			io.Writer
		}{io.MultiReader(br, conn), conn}
	}

	tctx, cancel := context.WithCancel(context.Background())
	t := &SocketTransport{
		conn:    conn,
		rw:      rw,
		inbound: make(chan []byte, frameBuffer),
		send:    make(chan []byte, frameBuffer),
		ctx:     tctx,
		cancel:  cancel,
		wg:      sync.WaitGroup{},
		Slogger: slogger.With("conn", connID),
	}

	t.wg.Add(1)
	go func() {
		t.readLoop()
		t.wg.Done()
	}()
	t.wg.Add(1)
	go func() {
		t.writeLoop()
		t.wg.Done()
	}()
	return t, nil
}

func (t *SocketTransport) readLoop() {
	sl := t.Slogger.With("func", "transport.readLoop")
	sl.Debug("starting")
	defer func() {
		t.conn.Close()
		t.cancel()
		close(t.inbound)
		sl.Debug("readLoop exited")
	}()
	for {
		msg, _, err := wsutil.ReadServerData(t.rw)
		if err != nil {
			var er wsutil.ClosedError
			if errors.As(err, &er) {
				sl.Debug("server closed connection", "reason", er.Reason)
			} else {
				sl.Error("readLoop error", "err", err)
			}
			return
		}
		select {
		case t.inbound <- msg:
		case <-t.ctx.Done():
			return
		}
	}
}

func (t *SocketTransport) writeLoop() {
	sl := t.Slogger.With("func", "transport.writeLoop")
	sl.Debug("starting")
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		t.conn.Close()
		t.cancel()
		sl.Debug("writeLoop exited")
	}()
	for {
		select {
		case msg := <-t.send:
			if err := wsutil.WriteClientText(t.conn, msg); err != nil {
				sl.Error("writeLoop error", "err", err)
				return
			}
		case <-ticker.C:
			wsutil.WriteClientMessage(t.conn, ws.OpPing, []byte("ping"))
		case <-t.ctx.Done():
			return
		}
	}
}

// Inbound is the stream of raw frames for the client loop. Closed when the
// connection dies.
func (t *SocketTransport) Inbound() <-chan []byte {
	return t.inbound
}

// Emit encodes and queues one outbound event. Fire-and-forget: an encode
// failure is logged and the event dropped.
func (t *SocketTransport) Emit(ev ClientEvent) {
	raw, err := EncodeClientEvent(ev)
	if err != nil {
		t.Slogger.Error("encode outbound event", "event", ev.eventName(), "err", err)
		return
	}
	select {
	case t.send <- raw:
	case <-t.ctx.Done():
	}
}

func (t *SocketTransport) Close() {
	t.cancel()
	t.conn.Close()
	t.wg.Wait()
}
