package scenes

import (
	"testing"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/maxnichols/gravwell/config"
)

func newPulse() *gween.Sequence {
	return gween.NewSequence(
		gween.New(0, 1, 0.4, ease.InOutQuad),
		gween.New(1, 0, 0.4, ease.InOutQuad),
	)
}

func TestStepPulseStaysInRange(t *testing.T) {
	seq := newPulse()
	for i := 0; i < 120; i++ {
		v := stepPulse(seq)
		if v < 0 || v > 1 {
			t.Fatalf("pulse value out of [0, 1] at tick %d: %v", i, v)
		}
	}
}

func TestStepPulseRestartsAfterFullCycle(t *testing.T) {
	seq := newPulse()

	// One full rise-and-fall cycle is 0.8 seconds of ticks.
	cycle := int(0.8/config.Timestep) + 1
	for i := 0; i < cycle; i++ {
		stepPulse(seq)
	}

	// After the restart the pulse rises again from near zero.
	v := stepPulse(seq)
	if v > 0.5 {
		t.Fatalf("pulse did not restart after completing, got %v", v)
	}
	var peak float32
	for i := 0; i < cycle/2; i++ {
		if v = stepPulse(seq); v > peak {
			peak = v
		}
	}
	if peak < 0.5 {
		t.Fatalf("restarted pulse never rose, peak %v", peak)
	}
}
