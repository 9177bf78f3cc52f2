package config

import "testing"

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"set", "25", 25},
		{"unset", "", 10},
		{"not a number", "many", 10},
		{"zero falls back", "0", 10},
		{"negative falls back", "-3", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_MAX_CONNS", tt.value)
			if got := getEnvInt("DB_MAX_CONNS", 10); got != tt.want {
				t.Errorf("getEnvInt(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}
