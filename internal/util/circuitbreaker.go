package util

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// CircuitState represents the state of the circuit breaker
type CircuitState string

const (
	CircuitStateClosed   CircuitState = "CLOSED"
	CircuitStateOpen     CircuitState = "OPEN"
	CircuitStateHalfOpen CircuitState = "HALF_OPEN"
)

func (s CircuitState) String() string {
	return string(s)
}

// HealthCheckFunction reports whether the guarded service is reachable again.
type HealthCheckFunction func() bool

// CircuitBreaker guards an external backend: consecutive failures open the
// circuit, a passing health check (or the reset timeout) moves it to HALF_OPEN,
// and the next success closes it.
type CircuitBreaker struct {
	state               CircuitState
	failureCount        int
	failureThreshold    int
	resetTimeout        time.Duration
	nextRetryTime       time.Time
	nextHealthCheckTime time.Time
	healthCheckInterval time.Duration
	isHealthChecking    bool
	healthCheckFn       HealthCheckFunction
	logger              *zap.Logger
	mu                  sync.RWMutex
}

type CircuitBreakerStatus struct {
	State         CircuitState
	FailureCount  int
	NextRetryTime *time.Time
}

func NewCircuitBreaker(
	failureThreshold int,
	resetTimeout time.Duration,
	healthCheckInterval time.Duration,
	healthCheckFn HealthCheckFunction,
	logger *zap.Logger,
) *CircuitBreaker {
	return &CircuitBreaker{
		state:               CircuitStateClosed,
		failureThreshold:    failureThreshold,
		resetTimeout:        resetTimeout,
		healthCheckInterval: healthCheckInterval,
		healthCheckFn:       healthCheckFn,
		logger:              logger,
	}
}

// GetState returns the current circuit state, kicking off recovery probes
// when the circuit is open.
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateOpen {
		now := time.Now()

		if cb.healthCheckFn != nil && now.After(cb.nextHealthCheckTime) && !cb.isHealthChecking {
			go cb.tryHealthCheck()
		} else if cb.healthCheckFn == nil && now.After(cb.nextRetryTime) {
			// No health check configured: recover on elapsed time alone.
			cb.transitionTo(CircuitStateHalfOpen)
		}
	}

	return cb.state
}

func (cb *CircuitBreaker) CanExecute() bool {
	return cb.GetState() != CircuitStateOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateHalfOpen {
		cb.logger.Info("Circuit breaker: service recovered, closing circuit")
		cb.transitionTo(CircuitStateClosed)
		cb.failureCount = 0
	} else if cb.state == CircuitStateClosed && cb.failureCount > 0 {
		cb.failureCount = 0
	}
}

// RecordFailure counts a failure and opens the circuit once the threshold is
// reached. A positive customTimeout overrides the default reset timeout.
func (cb *CircuitBreaker) RecordFailure(customTimeout time.Duration) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++

	timeout := cb.resetTimeout
	if customTimeout > 0 {
		timeout = customTimeout
	}

	cb.logger.Warn("Circuit breaker: failure recorded",
		zap.Int("count", cb.failureCount),
		zap.Int("threshold", cb.failureThreshold),
		zap.Duration("timeout", timeout),
	)

	if cb.state == CircuitStateHalfOpen {
		cb.logger.Error("Circuit breaker: recovery attempt failed, reopening circuit")
		cb.transitionTo(CircuitStateOpen)
		cb.nextRetryTime = time.Now().Add(timeout)

		if cb.healthCheckFn != nil {
			cb.nextHealthCheckTime = time.Now().Add(cb.healthCheckInterval)
		}
	} else if cb.failureCount >= cb.failureThreshold {
		cb.logger.Error("Circuit breaker: threshold reached, opening circuit",
			zap.Int("threshold", cb.failureThreshold),
		)
		cb.transitionTo(CircuitStateOpen)
		cb.nextRetryTime = time.Now().Add(timeout)

		if cb.healthCheckFn != nil {
			cb.nextHealthCheckTime = time.Now().Add(cb.healthCheckInterval)
		}
	}
}

func (cb *CircuitBreaker) tryHealthCheck() {
	cb.mu.Lock()
	if cb.healthCheckFn == nil || cb.isHealthChecking {
		cb.mu.Unlock()
		return
	}
	cb.isHealthChecking = true
	cb.mu.Unlock()

	cb.logger.Info("Circuit breaker: running health check")

	isHealthy := cb.healthCheckFn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.isHealthChecking = false

	if isHealthy {
		cb.logger.Info("Circuit breaker: health check passed, entering HALF_OPEN")
		cb.transitionTo(CircuitStateHalfOpen)
	} else {
		cb.logger.Warn("Circuit breaker: health check failed, delaying next probe")
		cb.nextHealthCheckTime = time.Now().Add(cb.healthCheckInterval)
	}
}

// transitionTo must be called with the lock held.
func (cb *CircuitBreaker) transitionTo(newState CircuitState) {
	oldState := cb.state
	cb.state = newState

	nextRetry := "n/a"
	if newState == CircuitStateOpen {
		nextRetry = cb.nextRetryTime.Format(time.RFC3339)
	}

	cb.logger.Info("Circuit breaker: state transition",
		zap.String("from", oldState.String()),
		zap.String("to", newState.String()),
		zap.Int("failure_count", cb.failureCount),
		zap.String("next_retry", nextRetry),
	)
}

func (cb *CircuitBreaker) GetStatus() CircuitBreakerStatus {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	status := CircuitBreakerStatus{
		State:        cb.state,
		FailureCount: cb.failureCount,
	}

	if cb.state == CircuitStateOpen {
		status.NextRetryTime = &cb.nextRetryTime
	}

	return status
}
