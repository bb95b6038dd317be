package tagauthority

import (
	"math/rand"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"BWCA", "bwca"},
		{"Winter Camping", "winter camping"},
		{"  winter   camping  ", "winter camping"},
		{"\"Boundary Waters\"", "boundary waters"},
		{"'quoted'", "quoted"},
		{"sub-zero", "sub-zero"},
		{"dog, sled!", "dog sled"},
		{"(fishing)", "fishing"},
		{"camp-fire\tcooking", "camp-fire cooking"},
		{"...", ""},
		{"Boundary Waters Canoe Area", "boundary waters canoe area"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	fixed := []string{
		"", " ", "BWCA", "  Winter   CAMPING ", "\"dog's\" day",
		"sub-zero... camping!", "(snow)  shoeing", "a\t\nb",
	}
	for _, raw := range fixed {
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", raw, once, twice)
		}
	}

	alphabet := []rune("aBcDé '\"-.,!?()[]:;\t\n  ZzÅ“”")
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		var b strings.Builder
		for n := rng.Intn(24); n > 0; n-- {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		raw := b.String()
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}
