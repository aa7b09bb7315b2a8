package services

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/harentsoaR/homecare-scheduler/internal/scheduler"
)

type session struct {
	mu       sync.Mutex
	sched    *scheduler.Scheduler
	lastUsed time.Time
}

// SessionStore keeps one in-memory scheduler per team. Nothing in it
// survives a restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session

	doctors []string
	opts    []scheduler.Option
	idleTTL time.Duration
	now     func() time.Time
}

// NewSessionStore seeds every new session with doctors. opts are passed to
// each scheduler it creates.
func NewSessionStore(doctors []string, idleTTL time.Duration, opts ...scheduler.Option) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		doctors:  append([]string(nil), doctors...),
		opts:     opts,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// With runs fn against the scheduler of key, creating it on first use, and
// returns fn's error. Calls for the same key are serialized.
func (s *SessionStore) With(key string, fn func(*scheduler.Scheduler) error) error {
	var err error
	s.Do(key, func(sc *scheduler.Scheduler) { err = fn(sc) })
	return err
}

// Do is With for operations that cannot fail.
func (s *SessionStore) Do(key string, fn func(*scheduler.Scheduler)) {
	for !s.run(key, fn) {
	}
}

// run reports false without calling fn when the session was swept or reset
// while it waited for the lock; the caller retries on a fresh session.
func (s *SessionStore) run(key string, fn func(*scheduler.Scheduler)) bool {
	sess := s.get(key)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !s.current(key, sess) {
		return false
	}
	sess.lastUsed = s.now()
	fn(sess.sched)
	return true
}

func (s *SessionStore) get(key string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		sess = &session{sched: scheduler.New(s.doctors, s.opts...), lastUsed: s.now()}
		s.sessions[key] = sess
		log.Debug().Str("team_id", key).Msg("session created")
	}
	return sess
}

func (s *SessionStore) current(key string, sess *session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[key] == sess
}

// Reset discards the session of key. It reports whether one existed.
func (s *SessionStore) Reset(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[key]
	delete(s.sessions, key)
	return ok
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the store's TTL and returns how
// many were dropped.
func (s *SessionStore) Sweep() int {
	cutoff := s.now().Add(-s.idleTTL)
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		// A session in use is not idle.
		if !sess.mu.TryLock() {
			continue
		}
		idle := sess.lastUsed.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep, plus any extra jobs, on the cron spec (for
// example "@every 10m"). Stop the returned cron on shutdown.
func (s *SessionStore) StartSweeper(spec string, extra ...func()) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if n := s.Sweep(); n > 0 {
			log.Info().Int("dropped", n).Int("remaining", s.Len()).Msg("idle sessions swept")
		}
		for _, job := range extra {
			job()
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
