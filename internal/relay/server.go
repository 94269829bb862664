package relay

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"xprlink/internal/domain"
)

const (
	DefaultMaxQueue   = 32
	DefaultMaxMessage = 64 << 10
	DefaultIdleTTL    = 10 * time.Minute

	subscriberBuffer = 16
	writeWait        = 10 * time.Second
	pingPeriod       = 30 * time.Second
)

// Config tunes a Server. Zero values pick the defaults.
type Config struct {
	MaxQueue   int
	MaxMessage int64

	// IdleTTL is how long a channel without subscribers keeps its queue
	// after the last activity before Sweep drops it.
	IdleTTL time.Duration
	Logger  *zap.Logger
	Now     func() time.Time
}

// Server is the in-memory channel relay.
type Server struct {
	maxQueue   int
	maxMessage int64
	idleTTL    time.Duration
	log        *zap.Logger
	now        func() time.Time
	upgrader   websocket.Upgrader

	mu       sync.Mutex
	channels map[domain.ChannelID]*channel
}

type channel struct {
	subs    map[*subscriber]struct{}
	queue   [][]byte
	touched time.Time
}

type subscriber struct {
	send chan []byte
}

// NewServer returns a relay with empty state.
func NewServer(cfg Config) *Server {
	if cfg.MaxQueue <= 0 {
		cfg.MaxQueue = DefaultMaxQueue
	}
	if cfg.MaxMessage <= 0 {
		cfg.MaxMessage = DefaultMaxMessage
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		maxQueue:   cfg.MaxQueue,
		maxMessage: cfg.MaxMessage,
		idleTTL:    cfg.IdleTTL,
		log:        log.Named("relay"),
		now:        cfg.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Wallets connect from arbitrary origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		channels: make(map[domain.ChannelID]*channel),
	}
}

// Handler returns the relay's routes wrapped in the access log.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "OK\n")
	}).Methods(http.MethodGet)
	r.HandleFunc("/{channel:[A-Za-z0-9_-]{1,128}}", s.handlePost).Methods(http.MethodPost)
	r.HandleFunc("/{channel:[A-Za-z0-9_-]{1,128}}", s.handleSubscribe).Methods(http.MethodGet)
	r.Use(s.accessLog)
	return r
}

// Deliver hands msg to the channel's subscribers, or queues it. It reports
// whether at least one subscriber took the message.
func (s *Server) Deliver(id domain.ChannelID, msg []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := s.channelLocked(id)
	delivered := false
	for sub := range ch.subs {
		select {
		case sub.send <- msg:
			delivered = true
		default:
			s.log.Warn("subscriber buffer full", zap.String("channel", id.String()))
		}
	}
	if delivered {
		return true
	}

	if len(ch.queue) >= s.maxQueue {
		ch.queue = ch.queue[1:]
		s.log.Warn("queue full, dropped oldest message", zap.String("channel", id.String()))
	}
	ch.queue = append(ch.queue, msg)
	return false
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	id := domain.ChannelID(mux.Vars(r)["channel"])

	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxMessage+1))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if int64(len(body)) > s.maxMessage {
		http.Error(w, "message too large", http.StatusRequestEntityTooLarge)
		return
	}
	if len(body) == 0 {
		http.Error(w, "empty message", http.StatusBadRequest)
		return
	}

	if s.Deliver(id, body) {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	id := domain.ChannelID(mux.Vars(r)["channel"])

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error.
		s.log.Debug("upgrade failed", zap.String("channel", id.String()), zap.Error(err))
		return
	}

	sub := s.subscribe(id)
	defer s.unsubscribe(id, sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case msg := <-sub.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.requeue(id, msg)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) subscribe(id domain.ChannelID) *subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := s.channelLocked(id)
	s.trimLocked(id, ch)
	// The buffer always has room for the backlog, so the sends below never
	// block while s.mu is held.
	sub := &subscriber{send: make(chan []byte, len(ch.queue)+s.maxQueue+subscriberBuffer)}
	for _, msg := range ch.queue {
		sub.send <- msg
	}
	ch.queue = nil
	ch.subs[sub] = struct{}{}
	return sub
}

func (s *Server) unsubscribe(id domain.ChannelID, sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.channels[id]
	if !ok {
		return
	}
	delete(ch.subs, sub)
	ch.touched = s.now()
	// Anything still buffered is older than the queue and goes back ahead
	// of it for the next subscriber.
	var pending [][]byte
drain:
	for {
		select {
		case msg := <-sub.send:
			pending = append(pending, msg)
		default:
			break drain
		}
	}
	ch.queue = append(pending, ch.queue...)
	s.trimLocked(id, ch)
	if len(ch.subs) == 0 && len(ch.queue) == 0 {
		delete(s.channels, id)
	}
}

func (s *Server) requeue(id domain.ChannelID, msg []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := s.channelLocked(id)
	ch.queue = append([][]byte{msg}, ch.queue...)
	s.trimLocked(id, ch)
}

// trimLocked drops the oldest queued messages beyond maxQueue.
func (s *Server) trimLocked(id domain.ChannelID, ch *channel) {
	if over := len(ch.queue) - s.maxQueue; over > 0 {
		ch.queue = ch.queue[over:]
		s.log.Warn("queue full, dropped oldest messages",
			zap.String("channel", id.String()), zap.Int("dropped", over))
	}
}

func (s *Server) channelLocked(id domain.ChannelID) *channel {
	ch, ok := s.channels[id]
	if !ok {
		ch = &channel{subs: make(map[*subscriber]struct{})}
		s.channels[id] = ch
	}
	ch.touched = s.now()
	return ch
}

// Sweep drops channels that have had no subscriber and no traffic for
// IdleTTL, together with their queued messages. It returns how many went.
func (s *Server) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	n := 0
	for id, ch := range s.channels {
		if len(ch.subs) == 0 && ch.touched.Before(cutoff) {
			delete(s.channels, id)
			n++
		}
	}
	if n > 0 {
		s.log.Debug("swept idle channels", zap.Int("count", n))
	}
	return n
}

// SweepEvery runs Sweep every interval until ctx is done.
func (s *Server) SweepEvery(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Hijack lets the WebSocket upgrader take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}
