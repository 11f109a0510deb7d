package loan

import (
	"errors"
	"testing"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusActive, StatusClosed, true},
		{StatusActive, StatusDefaulted, true},
		{StatusActive, StatusWrittenOff, true},
		{StatusDefaulted, StatusWrittenOff, true},
		{StatusDefaulted, StatusActive, false},
		{StatusDefaulted, StatusClosed, false},
		{StatusClosed, StatusActive, false},
		{StatusClosed, StatusWrittenOff, false},
		{StatusWrittenOff, StatusActive, false},
		{StatusWrittenOff, StatusClosed, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.ok {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.ok)
		}
		l := &Loan{Status: tt.from}
		err := l.TransitionTo(tt.to)
		if tt.ok && err != nil {
			t.Errorf("TransitionTo(%s -> %s): unexpected err %v", tt.from, tt.to, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("TransitionTo(%s -> %s): want ErrInvalidTransition, got %v", tt.from, tt.to, err)
		}
	}
}

func TestAcceptsPayments(t *testing.T) {
	want := map[Status]bool{
		StatusActive:     true,
		StatusDefaulted:  true,
		StatusClosed:     false,
		StatusWrittenOff: false,
	}
	for s, ok := range want {
		if got := s.AcceptsPayments(); got != ok {
			t.Errorf("%s.AcceptsPayments() = %v, want %v", s, got, ok)
		}
	}
}
