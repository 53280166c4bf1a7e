// Package session owns the state of one chat: the conversation, the result
// holder and the set of in-flight exchanges.
//
// A single owner goroutine applies every mutation. Each accepted submission
// runs as its own task that holds the handle of its placeholder message,
// drives an animator while the request is outstanding, and reports frames and
// its final outcome back to the owner over a channel. Overlapping submissions
// are independent and cannot patch each other's placeholders.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/analyst-desk/analyst/internal/constants"
	"github.com/analyst-desk/analyst/internal/conversation"
	"github.com/analyst-desk/analyst/internal/exchange"
)

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("session closed")

// Exchanger performs one request/response round trip.
type Exchanger interface {
	Send(ctx context.Context, text string) (*exchange.Reply, error)
}

// Config configures a Session.
type Config struct {
	Exchanger Exchanger
	// Interval is the pending animation period.
	Interval time.Duration
	Logger   zerolog.Logger
}

// Snapshot is an immutable copy of the session state.
type Snapshot struct {
	Messages []conversation.Message
	Result   conversation.Result
	// Pending is true while at least one exchange is outstanding.
	Pending  bool
	InFlight int
}

// Empty reports whether the conversation has no messages yet.
func (s Snapshot) Empty() bool {
	return len(s.Messages) == 0
}

// Submission describes the outcome of Submit.
type Submission struct {
	// Accepted is false when the trimmed input was empty.
	Accepted      bool
	UserID        conversation.ID
	PlaceholderID conversation.ID
	// Snapshot is the state right after both messages were appended.
	Snapshot Snapshot
}

// Session is safe for concurrent use.
type Session struct {
	exchanger Exchanger
	interval  time.Duration
	logger    zerolog.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	tasks     sync.WaitGroup
	ownerDone chan struct{}
	closeOnce sync.Once

	ops     chan func()
	events  chan event
	updates chan Snapshot

	// Owned by the run goroutine.
	conv     *conversation.Conversation
	result   conversation.Result
	inflight map[conversation.ID]*task
}

// New starts a session. Call Close to release its goroutines.
func New(cfg Config) *Session {
	interval := cfg.Interval
	if interval <= 0 {
		interval = constants.DefaultAnimationInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		exchanger: cfg.Exchanger,
		interval:  interval,
		logger:    cfg.Logger.With().Str("component", "session").Logger(),
		ctx:       ctx,
		cancel:    cancel,
		ownerDone: make(chan struct{}),
		ops:       make(chan func()),
		events:    make(chan event),
		updates:   make(chan Snapshot, 1),
		conv:      conversation.New(),
		inflight:  make(map[conversation.ID]*task),
	}

	go s.run()

	return s
}

// Submit trims text and, if anything is left, appends the user message and an
// assistant placeholder, then starts the exchange. Empty input is a no-op:
// nothing is appended and no request is made.
func (s *Session) Submit(ctx context.Context, text string) (Submission, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Submission{}, nil
	}

	var sub Submission
	if err := s.do(ctx, func() { sub = s.startExchange(text) }); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	if err := s.do(ctx, func() { snap = s.snapshot() }); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Updates delivers a snapshot after every state change. Only the latest
// undelivered snapshot is kept. The channel is closed by Close.
func (s *Session) Updates() <-chan Snapshot {
	return s.updates
}

// Close cancels every in-flight exchange and animator and waits for all
// session goroutines to exit. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.ownerDone
		s.tasks.Wait()
	})
}

// do runs fn on the owner goroutine and waits for it to finish.
func (s *Session) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	op := func() {
		fn()
		close(done)
	}

	select {
	case s.ops <- op:
	case <-s.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	<-done
	return nil
}

func (s *Session) run() {
	defer close(s.ownerDone)
	defer close(s.updates)

	for {
		select {
		case <-s.ctx.Done():
			if n := len(s.inflight); n > 0 {
				s.logger.Debug().Int("in_flight", n).Msg("Session closed with pending exchanges")
			}
			return
		case op := <-s.ops:
			op()
		case ev := <-s.events:
			s.apply(ev)
		}
	}
}

func (s *Session) startExchange(text string) Submission {
	userID := s.conv.Append(conversation.RoleUser, text)
	placeholderID := s.conv.Append(conversation.RoleAssistant, constants.PlaceholderText)

	t := &task{
		placeholder: placeholderID,
		state:       stateSent,
		started:     time.Now(),
	}
	s.inflight[placeholderID] = t

	s.tasks.Add(1)
	go s.runExchange(t.placeholder, text)

	s.logger.Debug().
		Str("placeholder", string(placeholderID)).
		Int("length", len(text)).
		Int("in_flight", len(s.inflight)).
		Msg("Exchange started")

	snap := s.snapshot()
	s.publish(snap)

	return Submission{
		Accepted:      true,
		UserID:        userID,
		PlaceholderID: placeholderID,
		Snapshot:      snap,
	}
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Messages: s.conv.Messages(),
		Result:   s.result.Clone(),
		Pending:  len(s.inflight) > 0,
		InFlight: len(s.inflight),
	}
}

// publish replaces any undelivered snapshot with snap. Only the owner sends on
// updates, so after draining the buffer the send cannot block.
func (s *Session) publish(snap Snapshot) {
	select {
	case <-s.updates:
	default:
	}
	s.updates <- snap
}
