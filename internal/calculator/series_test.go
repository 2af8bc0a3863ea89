package calculator

import (
	"math"
	"testing"
)

func TestTrailingMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	got, err := TrailingMean(values, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4.5 {
		t.Errorf("expected 4.5, got %v", got)
	}

	// Fewer values than the window: average everything.
	got, err = TrailingMean(values, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3, got %v", got)
	}

	if _, err := TrailingMean(nil, 5); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := TrailingMean(values, 0); err == nil {
		t.Error("expected error for non-positive window")
	}
}

func TestPercentChanges(t *testing.T) {
	got := PercentChanges([]float64{10, 10.1, 11.2, 12.5, 13.9})
	if len(got) != 4 {
		t.Fatalf("expected 4 changes, got %d", len(got))
	}
	want := []float64{
		(10.1/10 - 1) * 100,
		(11.2/10.1 - 1) * 100,
		(12.5/11.2 - 1) * 100,
		(13.9/12.5 - 1) * 100,
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("change %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if got := PercentChanges([]float64{10}); got != nil {
		t.Errorf("expected nil for single value, got %v", got)
	}

	// Zero and NaN bases are omitted, not emitted as Inf/NaN.
	got = PercentChanges([]float64{0, 10, math.NaN(), 12})
	for _, v := range got {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Errorf("invalid change leaked: %v", got)
		}
	}
}

func TestDollarVolumes(t *testing.T) {
	got := DollarVolumes([]float64{10, 20}, []float64{100, math.NaN()})
	if got[0] != 1000 {
		t.Errorf("expected 1000, got %v", got[0])
	}
	if got[1] != 0 {
		t.Errorf("NaN volume must count as zero, got %v", got[1])
	}
}
