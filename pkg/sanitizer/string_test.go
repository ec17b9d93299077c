package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"leading and trailing", "  Biscuit  ", "Biscuit"},
		{"internal run collapsed", "Mrs.   Whiskers", "Mrs. Whiskers"},
		{"tabs and newlines", "Rex\t\nthe dog", "Rex the dog"},
		{"already clean", "Luna", "Luna"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeStateID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" ny ", "NY"},
		{"ca", "CA"},
		{"  san  andreas ", "SAN ANDREAS"},
	}

	for _, tt := range tests {
		if got := NormalizeStateID(tt.input); got != tt.want {
			t.Errorf("NormalizeStateID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeComment(t *testing.T) {
	got := NormalizeComment("  yard too small\nno fence  ")
	want := "yard too small\nno fence"
	if got != want {
		t.Errorf("NormalizeComment() = %q, want %q", got, want)
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("  (555) 123-4567 "); got != "(555) 123-4567" {
		t.Errorf("NormalizePhone() = %q", got)
	}
}
