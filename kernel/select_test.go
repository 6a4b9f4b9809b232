package kernel

import "testing"

func TestSelectKernelZeroMaskIsCapabilityError(t *testing.T) {
	if _, _, _, err := selectKernel(0); err == nil {
		t.Fatal("expected a capability error for feature mask 0")
	}
}

func TestSelectKernelAlwaysSucceedsWithNonZeroMask(t *testing.T) {
	for _, mask := range []uint8{FeatureNarrowA, FeatureNarrowB, FeatureWide, FeatureAll} {
		if _, single, double, err := selectKernel(mask); err != nil || single == nil || double == nil {
			t.Errorf("selectKernel(%d) = (_, %v, %v, %v), want a usable kernel pair and no error", mask, single, double, err)
		}
	}
}

func TestInitIsOneShot(t *testing.T) {
	// Init is process-wide and one-shot; this package's other tests may
	// already have called it, but calling it again must stay a no-op
	// that replays the original result rather than erroring or panicking.
	if err := Init(FeatureAll); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := Init(0); err != nil {
		t.Fatalf("second Init call (different mask) = %v, want nil (one-shot, ignores later args)", err)
	}
	if current() == nil {
		t.Fatal("current() returned nil after a successful Init")
	}
}
