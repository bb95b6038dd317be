package version

import "testing"

func TestIsVersionGreaterThan(t *testing.T) {
	tests := []struct {
		version string
		target  string
		want    bool
	}{
		{"0.3.0", "0.2.9", true},
		{"0.3.0", "0.3.0", false},
		{"0.3.0", "0.3.1", false},
		{"1.0.0", "0.9.9", true},
		{"0.10.0", "0.9.0", true},
		{"0.3", "0.3.0", false},
	}
	for _, tt := range tests {
		if got := IsVersionGreaterThan(tt.version, tt.target); got != tt.want {
			t.Errorf("IsVersionGreaterThan(%q, %q) = %v, want %v", tt.version, tt.target, got, tt.want)
		}
	}
}

func TestIsVersionGreaterOrEqualThan(t *testing.T) {
	if !IsVersionGreaterOrEqualThan("0.3.0", "0.3.0") {
		t.Error("expected equal versions to compare as greater-or-equal")
	}
	if IsVersionGreaterOrEqualThan("0.2.0", "0.3.0") {
		t.Error("expected lower version to compare as less")
	}
}

func TestGetMinorVersion(t *testing.T) {
	if got := GetMinorVersion("0.3.1"); got != "0.3" {
		t.Errorf("GetMinorVersion(0.3.1) = %q, want 0.3", got)
	}
	if got := GetMinorVersion("0.3"); got != "" {
		t.Errorf("GetMinorVersion(0.3) = %q, want empty", got)
	}
}
