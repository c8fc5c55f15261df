package check

import "testing"

func TestStatus_Marker(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPass, "✅"},
		{StatusFail, "❌"},
		{StatusSkip, "⏭️"},
		{Status("BOGUS"), "?"},
	}
	for _, tt := range tests {
		if got := tt.status.Marker(); got != tt.want {
			t.Errorf("%s.Marker() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestKinds_Order(t *testing.T) {
	want := []Kind{"TypeCheck", "Lint", "Tests"}
	got := Kinds()
	if len(got) != len(want) {
		t.Fatalf("Kinds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Kinds()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResult_Failed(t *testing.T) {
	if (Result{Status: StatusPass}).Failed() {
		t.Error("PASS should not be failed")
	}
	if (Result{Status: StatusSkip}).Failed() {
		t.Error("SKIP should not be failed")
	}
	if !(Result{Status: StatusFail}).Failed() {
		t.Error("FAIL should be failed")
	}
}
