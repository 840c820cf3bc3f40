package utils

import "testing"

func TestGetEnvBool(t *testing.T) {
	cases := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"", false, false},
		{"true", false, true},
		{" 1 ", false, true},
		{"false", true, false},
		{"not-a-bool", true, true},
	}

	for _, tc := range cases {
		t.Setenv("SEAM_TEST_BOOL", tc.raw)
		if got := GetEnvBool("SEAM_TEST_BOOL", tc.def); got != tc.want {
			t.Fatalf("GetEnvBool(%q, %v) = %v, want %v", tc.raw, tc.def, got, tc.want)
		}
	}
}

func TestGetEnvTrimmedOrDefault(t *testing.T) {
	t.Setenv("SEAM_TEST_VALUE", "   ")
	if got := GetEnvTrimmedOrDefault("SEAM_TEST_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	t.Setenv("SEAM_TEST_VALUE", "  Europe/Oslo ")
	if got := GetEnvTrimmedOrDefault("SEAM_TEST_VALUE", "UTC"); got != "Europe/Oslo" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}
