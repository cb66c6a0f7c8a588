package infra

import (
	"testing"
	"time"
)

func bridgeBreaker(failures, successes int, timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		Name:             "bridge-test",
		FailureThreshold: failures,
		SuccessThreshold: successes,
		Timeout:          timeout,
	})
}

func TestCircuitBreaker_AllowsWhileClosed(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig("bridge-test"))

	if !cb.Allow() {
		t.Error("closed breaker rejected a request")
	}
	if cb.GetState() != StateClosed {
		t.Errorf("state = %s, want CLOSED", cb.GetState())
	}
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := bridgeBreaker(3, 2, 100*time.Millisecond)

	cb.RecordFailure()
	cb.RecordFailure()
	if cb.GetState() != StateClosed {
		t.Error("opened before the threshold")
	}

	cb.RecordFailure()
	if cb.GetState() != StateOpen {
		t.Errorf("state after 3 failures = %s, want OPEN", cb.GetState())
	}
	if cb.Allow() {
		t.Error("open breaker allowed a request")
	}
}

func TestCircuitBreaker_ProbesAfterTimeout(t *testing.T) {
	cb := bridgeBreaker(2, 1, 50*time.Millisecond)

	cb.RecordFailure()
	cb.RecordFailure()
	if cb.GetState() != StateOpen {
		t.Fatal("breaker did not open")
	}

	time.Sleep(60 * time.Millisecond)

	if !cb.Allow() {
		t.Error("probe rejected after timeout")
	}
	if cb.GetState() != StateHalfOpen {
		t.Errorf("state = %s, want HALF_OPEN", cb.GetState())
	}
}

func TestCircuitBreaker_ClosesAfterCleanProbes(t *testing.T) {
	cb := bridgeBreaker(2, 2, 10*time.Millisecond)

	cb.RecordFailure()
	cb.RecordFailure()
	time.Sleep(15 * time.Millisecond)
	cb.Allow()

	cb.RecordSuccess()
	if cb.GetState() != StateHalfOpen {
		t.Error("closed after a single probe")
	}

	cb.RecordSuccess()
	if cb.GetState() != StateClosed {
		t.Errorf("state = %s, want CLOSED", cb.GetState())
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	cb := bridgeBreaker(2, 2, 10*time.Millisecond)

	cb.RecordFailure()
	cb.RecordFailure()
	time.Sleep(15 * time.Millisecond)
	cb.Allow()

	cb.RecordFailure()
	if cb.GetState() != StateOpen {
		t.Errorf("state after failed probe = %s, want OPEN", cb.GetState())
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig("bridge-test"))

	for i := 0; i < 5; i++ {
		cb.RecordFailure()
	}
	if cb.GetState() != StateOpen {
		t.Fatal("breaker did not open")
	}

	cb.Reset()
	if cb.GetState() != StateClosed {
		t.Errorf("state after Reset = %s, want CLOSED", cb.GetState())
	}
	if !cb.Allow() {
		t.Error("reset breaker rejected a request")
	}
}
