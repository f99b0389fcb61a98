package watcher

import "testing"

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"lecture.mp4", true},
		{"lecture.MOV", true},
		{"recording.mkv", true},
		{"slides.pdf", false},
		{"notes.txt", false},
		{"archive.mp4.part", false},
	}

	for _, tt := range tests {
		if got := isVideoFile(tt.path); got != tt.want {
			t.Errorf("isVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
