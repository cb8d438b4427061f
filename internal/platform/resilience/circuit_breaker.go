package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreakerConfig configures a breaker. Non-positive limits fall back to
// DefaultCircuitBreakerConfig.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
	// OnStateChange is called after every transition, outside the lock.
	OnStateChange func(from, to CircuitState)
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   1,
	}
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaults.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaults.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return c
}

// CircuitBreaker opens after FailureThreshold consecutive failures, rejects
// calls for OpenTimeout, then lets HalfOpenMaxReq trial calls through. The trials
// all succeeding closes it again; any trial failing reopens it.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state          CircuitState
	failures       int
	openedAt       time.Time
	trialsInFlight int
	trialsPassed   int
	now            func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg.withDefaults(),
		state: CircuitStateClosed,
		now:   time.Now,
	}
}

func (b *CircuitBreaker) Allow() error {
	var err error
	b.update(func() {
		if b.state == CircuitStateOpen {
			if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
				err = ErrCircuitOpen
				return
			}
			b.setState(CircuitStateHalfOpen)
		}
		if b.state == CircuitStateHalfOpen {
			if b.trialsInFlight >= b.cfg.HalfOpenMaxReq {
				err = ErrCircuitOpen
				return
			}
			b.trialsInFlight++
		}
	})
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	b.update(func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures = 0
		case CircuitStateHalfOpen:
			b.trialsInFlight = max(b.trialsInFlight-1, 0)
			b.trialsPassed++
			if b.trialsPassed >= b.cfg.HalfOpenMaxReq && b.trialsInFlight == 0 {
				b.setState(CircuitStateClosed)
			}
		}
	})
}

func (b *CircuitBreaker) RecordFailure() {
	b.update(func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures++
			if b.failures >= b.cfg.FailureThreshold {
				b.setState(CircuitStateOpen)
			}
		case CircuitStateHalfOpen:
			b.setState(CircuitStateOpen)
		case CircuitStateOpen:
			b.openedAt = b.now()
		}
	})
}

// State reports half-open once the open timeout elapsed, even before the
// next Allow performs the transition.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) update(fn func()) {
	b.mu.Lock()
	from := b.state
	fn()
	to := b.state
	b.mu.Unlock()

	if from != to && b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}

// setState resets the counters of the state being entered. Callers hold mu.
func (b *CircuitBreaker) setState(to CircuitState) {
	b.state = to
	b.trialsInFlight = 0
	b.trialsPassed = 0
	switch to {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}
