package chatclient

import (
	"context"
	"log/slog"
	"sync"
)

const actionBuffer = 64

// Transport is the wire as seen by the client: a stream of raw inbound
// frames plus the outbound Emitter. SocketTransport is the websocket
// implementation; tests substitute channels.
type Transport interface {
	Emitter
	Inbound() <-chan []byte
	Close()
}

// Options configures a Client.
type Options struct {
	Identity Identity
	Renderer Renderer

	Slogger *slog.Logger
}

// Client runs the session. A single goroutine consumes inbound frames and
// user actions in arrival order, each handler running to completion before
// the next, so the session state needs no locks.
type Client struct {
	transport  Transport
	session    *SessionContext
	router     *Router
	dispatcher *Dispatcher

	actions chan UserAction

	// Concurrency
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Logging
	Slogger *slog.Logger
}

func NewClient(parentCtx context.Context, transport Transport, opts Options) *Client {
	ctx, cancel := context.WithCancel(parentCtx)

	slogger := opts.Slogger
	if slogger == nil {
		slogger = slog.Default()
	}
	slogger = slogger.With("user", string(opts.Identity))

	session := NewSessionContext(opts.Identity, transport, slogger)
	return &Client{
		transport:  transport,
		session:    session,
		router:     NewRouter(session, opts.Renderer, slogger),
		dispatcher: NewDispatcher(session, transport, slogger),
		actions:    make(chan UserAction, actionBuffer),
		ctx:        ctx,
		cancel:     cancel,
		wg:         sync.WaitGroup{},
		Slogger:    slogger,
	}
}

// Session exposes the shared session value. Callers outside the event loop
// must treat it as read-only.
func (c *Client) Session() *SessionContext {
	return c.session
}

// Do queues a user action for the event loop.
func (c *Client) Do(action UserAction) {
	select {
	case c.actions <- action:
	case <-c.ctx.Done():
	}
}

// Start consumes inbound frames and queued actions until the context is
// cancelled or the transport closes. Blocking; run it in its own goroutine
// when the caller has other work.
func (c *Client) Start() {
	sl := c.Slogger.With("func", "client.Start")
	sl.Debug("starting")
	defer sl.Info("stopped")

	c.wg.Add(1)
	defer c.wg.Done()

	for {
		select {
		case <-c.ctx.Done():
			return
		case raw, ok := <-c.transport.Inbound():
			if !ok {
				sl.Info("transport closed")
				return
			}
			if err := c.router.HandleRaw(raw); err != nil {
				// A frame the client cannot decode is dropped,
				// never fatal to the session.
				sl.Error("dropping frame", "err", err)
			}
		case action := <-c.actions:
			sl.Debug("action", "action", action)
			if err := c.dispatcher.Do(action); err != nil {
				sl.Warn("action rejected", "err", err)
			}
		}
	}
}

func (c *Client) Stop() {
	c.cancel()
	c.transport.Close()
	c.wg.Wait()
}
