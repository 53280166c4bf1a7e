package session

import (
	"time"

	"github.com/analyst-desk/analyst/internal/animator"
	"github.com/analyst-desk/analyst/internal/constants"
	"github.com/analyst-desk/analyst/internal/conversation"
	"github.com/analyst-desk/analyst/internal/exchange"
)

// taskState is the per-submission state machine: Sent, then exactly one of
// the settled states. There is no way back to Sent.
type taskState int

const (
	stateSent taskState = iota
	stateSettledSuccess
	stateSettledFailure
)

func (s taskState) String() string {
	switch s {
	case stateSent:
		return "sent"
	case stateSettledSuccess:
		return "settled-success"
	case stateSettledFailure:
		return "settled-failure"
	default:
		return "unknown"
	}
}

type task struct {
	placeholder conversation.ID
	state       taskState
	started     time.Time
}

type event interface {
	placeholderID() conversation.ID
}

type frameEvent struct {
	id    conversation.ID
	frame string
}

func (e frameEvent) placeholderID() conversation.ID { return e.id }

type settledEvent struct {
	id    conversation.ID
	reply *exchange.Reply
	err   error
}

func (e settledEvent) placeholderID() conversation.ID { return e.id }

// runExchange is the task goroutine. The animator is stopped before the
// settlement is posted, so the owner never sees a frame after it.
func (s *Session) runExchange(id conversation.ID, text string) {
	defer s.tasks.Done()

	anim := animator.Start(s.ctx, s.interval, func(frame string) {
		s.post(frameEvent{id: id, frame: frame})
	})

	reply, err := s.exchanger.Send(s.ctx, text)
	anim.Stop()

	s.post(settledEvent{id: id, reply: reply, err: err})
}

// post hands ev to the owner unless the session is shutting down.
func (s *Session) post(ev event) {
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

// apply runs on the owner goroutine.
func (s *Session) apply(ev event) {
	t, ok := s.inflight[ev.placeholderID()]
	if !ok {
		// Late frame of a settled exchange.
		return
	}

	switch ev := ev.(type) {
	case frameEvent:
		s.patch(t.placeholder, ev.frame)

	case settledEvent:
		delete(s.inflight, t.placeholder)

		if ev.err != nil || ev.reply == nil {
			t.state = stateSettledFailure
			s.patch(t.placeholder, constants.ErrorMarker)
			s.logger.Warn().
				Err(ev.err).
				Str("placeholder", string(t.placeholder)).
				Str("state", t.state.String()).
				Dur("elapsed", time.Since(t.started)).
				Msg("Exchange failed")
		} else {
			t.state = stateSettledSuccess
			s.patch(t.placeholder, ev.reply.Answer)
			s.result = ev.reply.Result()
			s.logger.Debug().
				Str("placeholder", string(t.placeholder)).
				Str("state", t.state.String()).
				Dur("elapsed", time.Since(t.started)).
				Bool("has_text", s.result.GeneratedText != nil).
				Bool("has_chart", s.result.ChartDetails != nil).
				Msg("Exchange settled")
		}
	}

	s.publish(s.snapshot())
}

func (s *Session) patch(id conversation.ID, text string) {
	if err := s.conv.Patch(id, text); err != nil {
		s.logger.Error().Err(err).Msg("Failed to patch placeholder")
	}
}
