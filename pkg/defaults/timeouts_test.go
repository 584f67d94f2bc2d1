package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"CollectorTimeout", CollectorTimeout, 1 * time.Second, 30 * time.Second},
		{"SnapshotTimeout", SnapshotTimeout, 10 * time.Second, 2 * time.Minute},
		{"WatchInterval", WatchInterval, 1 * time.Second, 1 * time.Minute},
		{"WatchMinInterval", WatchMinInterval, 10 * time.Millisecond, 1 * time.Second},
		{"CLISnapshotTimeout", CLISnapshotTimeout, 30 * time.Second, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) exceeds maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestTimeoutRelationships(t *testing.T) {
	if CollectorTimeout >= SnapshotTimeout {
		t.Errorf("CollectorTimeout (%v) should be less than SnapshotTimeout (%v)",
			CollectorTimeout, SnapshotTimeout)
	}
	if WatchMinInterval > WatchInterval {
		t.Errorf("WatchMinInterval (%v) should not exceed WatchInterval (%v)",
			WatchMinInterval, WatchInterval)
	}
}

func TestLimits(t *testing.T) {
	if LineBufferSize <= 0 || LineBufferSize > MaxLineSize {
		t.Errorf("LineBufferSize %d must be in (0, %d]", LineBufferSize, MaxLineSize)
	}
	if UIDMin >= UIDMax {
		t.Errorf("UIDMin %d must be below UIDMax %d", UIDMin, UIDMax)
	}
	if MountsReadAttempts < 1 {
		t.Errorf("MountsReadAttempts must be positive, got %d", MountsReadAttempts)
	}
}
