package shard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dimitrije/party-api/internal/hub"
	"github.com/dimitrije/party-api/internal/metrics"
	"github.com/dimitrije/party-api/internal/party"
)

var ErrClosed = errors.New("shard is closed")

// Publisher receives the events produced by one operation, in order.
type Publisher interface {
	Publish(events ...hub.Event)
}

type Config struct {
	MaxTeams      int
	MaxApplicants int
	QueueSize     int
}

// Func runs on the shard goroutine with exclusive access to its state.
type Func func(m *party.Manager, r *party.Roster) error

type op struct {
	ctx    context.Context
	fn     Func
	queued time.Time
	result chan error
}

// Shard serialises every team operation onto a single goroutine that owns
// a party.Manager and its player roster.
type Shard struct {
	manager *party.Manager
	roster  *party.Roster
	ops     chan *op
	done    chan struct{}
	pending []hub.Event

	pub     Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(cfg Config, pub Publisher, m *metrics.Metrics, logger *slog.Logger) *Shard {
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	s := &Shard{
		roster:  party.NewRoster(),
		ops:     make(chan *op, cfg.QueueSize),
		done:    make(chan struct{}),
		pub:     pub,
		metrics: m,
		logger:  logger,
	}
	s.manager = party.NewManager(s.roster,
		party.WithMaxTeams(cfg.MaxTeams),
		party.WithMaxApplicants(cfg.MaxApplicants),
		party.WithHooks(s.hooks()),
	)
	return s
}

// Run processes submitted operations until ctx is cancelled. On exit every
// player still on a team is removed from it.
func (s *Shard) Run(ctx context.Context) {
	s.logger.Info("shard started")
	for {
		select {
		case <-ctx.Done():
			s.stop()
			return
		case o := <-s.ops:
			s.exec(o)
		}
	}
}

// Do runs fn on the shard goroutine and returns its error. ctx only bounds
// the wait before fn starts; once started fn always runs to completion.
func (s *Shard) Do(ctx context.Context, fn Func) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}

	o := &op{ctx: ctx, fn: fn, queued: time.Now(), result: make(chan error, 1)}
	select {
	case s.ops <- o:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}

	select {
	case err := <-o.result:
		return err
	case <-s.done:
		select {
		case err := <-o.result:
			return err
		default:
			return ErrClosed
		}
	}
}

// Done is closed once Run has returned.
func (s *Shard) Done() <-chan struct{} {
	return s.done
}

func (s *Shard) exec(o *op) {
	if err := o.ctx.Err(); err != nil {
		o.result <- err
		return
	}
	s.metrics.ObserveQueueWait(time.Since(o.queued))

	err := s.call(o.fn)
	s.flush()
	o.result <- err
}

func (s *Shard) call(fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("shard operation panicked", "panic", r)
			err = fmt.Errorf("shard operation panicked: %v", r)
		}
	}()
	return fn(s.manager, s.roster)
}

func (s *Shard) flush() {
	s.metrics.SetState(s.manager.TeamCount(), s.manager.PlayerCount())
	if len(s.pending) == 0 {
		return
	}
	events := s.pending
	s.pending = nil
	if s.pub != nil {
		s.pub.Publish(events...)
	}
}

func (s *Shard) stop() {
	released := s.manager.Shutdown()
	s.flush()
	s.logger.Info("shard stopped", "players_released", released)

	for {
		select {
		case o := <-s.ops:
			o.result <- ErrClosed
		default:
			close(s.done)
			return
		}
	}
}
