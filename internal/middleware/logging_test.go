package middleware

import "testing"

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"video detail",
			"/video/6f1c2a4e-9b3d-4f27-8a15-c0de8b1f2a33",
			"/video/:id",
		},
		{
			"watch progress",
			"/video/watch-progress/6f1c2a4e-9b3d-4f27-8a15-c0de8b1f2a33",
			"/video/watch-progress/:id",
		},
		{
			"channel",
			"/user/channel/6F1C2A4E-9B3D-4F27-8A15-C0DE8B1F2A33",
			"/user/channel/:id",
		},
		{"no ids", "/video/subscribed/videos", "/video/subscribed/videos"},
		{"not a uuid", "/video/recommend-video", "/video/recommend-video"},
		{"root", "/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizePath(tt.input); got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
