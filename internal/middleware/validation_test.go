package middleware

import (
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "My first upload", "My first upload", false},
		{"trims whitespace", "  padded  ", "padded", false},
		{"empty", "", "", true},
		{"only whitespace", "   ", "", true},
		{"too long", strings.Repeat("a", 121), "", true},
		{"at limit", strings.Repeat("a", 120), strings.Repeat("a", 120), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateTitle(tt.input)
			if (msg != "") != tt.wantErr {
				t.Errorf("ValidateTitle(%q) error = %q, wantErr %v", tt.input, msg, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"lowercases", "Gaming", "gaming", false},
		{"with space", "science & tech", "science & tech", false},
		{"empty", "", "", true},
		{"invalid characters", "../etc", "", true},
		{"too long", strings.Repeat("a", 41), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateCategory(tt.input)
			if (msg != "") != tt.wantErr {
				t.Errorf("ValidateCategory(%q) error = %q, wantErr %v", tt.input, msg, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateTags(t *testing.T) {
	t.Run("normalizes and dedups", func(t *testing.T) {
		got, msg := ValidateTags([]string{" Go ", "backend", "go", "", "Backend"})
		if msg != "" {
			t.Fatalf("unexpected error: %q", msg)
		}
		want := []string{"go", "backend"}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("tag %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("rejects malformed tag", func(t *testing.T) {
		if _, msg := ValidateTags([]string{"ok", "no spaces here"}); msg == "" {
			t.Error("expected error for tag with spaces")
		}
	})

	t.Run("rejects too many tags", func(t *testing.T) {
		tags := make([]string, 21)
		for i := range tags {
			tags[i] = strings.Repeat("t", 3) + string(rune('a'+i))
		}
		if _, msg := ValidateTags(tags); msg == "" {
			t.Error("expected error for 21 tags")
		}
	})
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "harshil_04", "harshil_04", false},
		{"lowercases", "Harshil", "harshil", false},
		{"with dot", "first.last", "first.last", false},
		{"empty", "", "", true},
		{"spaces", "two words", "", true},
		{"too long", strings.Repeat("a", 33), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateUsername(tt.input)
			if (msg != "") != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %q, wantErr %v", tt.input, msg, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateUsername(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
