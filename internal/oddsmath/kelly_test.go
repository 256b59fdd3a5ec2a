package oddsmath

import (
	"errors"
	"math"
	"testing"
)

func TestKellyPositiveEdge(t *testing.T) {
	// +150 with a 45% win probability: b = 1.5, f* = (1.5*0.45 - 0.55)/1.5.
	sizing, err := Kelly(150, 0.45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sizing.NoEdge {
		t.Fatal("expected an edge")
	}
	want := (1.5*0.45 - 0.55) / 1.5
	if math.Abs(sizing.Fraction-want) > 1e-9 {
		t.Errorf("Fraction = %f, want %f", sizing.Fraction, want)
	}
	if math.Abs(sizing.Half-want/2) > 1e-9 || math.Abs(sizing.Quarter-want/4) > 1e-9 {
		t.Errorf("Half/Quarter = %f/%f, want %f/%f", sizing.Half, sizing.Quarter, want/2, want/4)
	}
}

func TestKellyNoEdge(t *testing.T) {
	// -110 implies roughly 52.4%; a 50% estimate is a losing bet.
	sizing, err := Kelly(-110, 0.50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sizing.NoEdge {
		t.Errorf("expected NoEdge, got fraction %f", sizing.Fraction)
	}
	if sizing.Fraction != 0 || sizing.Half != 0 || sizing.Quarter != 0 {
		t.Errorf("no-edge sizing must zero all fractions: %+v", sizing)
	}
}

func TestKellyRejectsBadInput(t *testing.T) {
	if _, err := Kelly(-110, 0); !errors.Is(err, ErrInvalidProbability) {
		t.Errorf("probability 0: error = %v, want ErrInvalidProbability", err)
	}
	if _, err := Kelly(-110, 1); !errors.Is(err, ErrInvalidProbability) {
		t.Errorf("probability 1: error = %v, want ErrInvalidProbability", err)
	}
	if _, err := Kelly(0, 0.5); !errors.Is(err, ErrInvalidOdds) {
		t.Errorf("price 0: error = %v, want ErrInvalidOdds", err)
	}
}
