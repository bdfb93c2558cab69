package tactile

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"after-pinch", "after-pinch"},
		{"two words", "two_words"},
		{"a/b\\c:d", "a_b_c_d"},
		{"v1.2", "v1.2"},
		{"  padded  ", "padded"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"héllo", "h_llo"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	s := NewSurface(SurfaceConfig{})
	s.Screenshot("first")
	s.Screenshot("second")
	got := s.PendingScreenshots()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("queue = %v", got)
	}
	if s.ScreenshotDir != "" {
		t.Errorf("ScreenshotDir = %q, want empty for the default", s.ScreenshotDir)
	}
}
