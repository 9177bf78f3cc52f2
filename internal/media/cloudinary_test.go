package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Harshil0408/contentify-backend/pkg/hash"
)

func tempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asset.mp4")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCloudinaryStore_Upload(t *testing.T) {
	var gotPath string
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotForm[k] = v[0]
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"secure_url": "https://cdn.example.com/v/abc.mp4",
			"public_id":  "abc",
			"duration":   42.7,
		})
	}))
	defer srv.Close()

	store := NewCloudinaryStore("demo", "key123", "secret")
	store.SetBaseURL(srv.URL)

	asset, err := store.Upload(context.Background(), tempFile(t, "fake video bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if gotPath != "/auto/upload" {
		t.Errorf("path = %q, want /auto/upload", gotPath)
	}
	if asset.URL != "https://cdn.example.com/v/abc.mp4" {
		t.Errorf("URL = %q", asset.URL)
	}
	if asset.PublicID != "abc" {
		t.Errorf("PublicID = %q", asset.PublicID)
	}
	if asset.Duration != 42.7 {
		t.Errorf("Duration = %v, want 42.7", asset.Duration)
	}

	if gotForm["api_key"] != "key123" {
		t.Errorf("api_key = %q", gotForm["api_key"])
	}
	wantSig := hash.SignParams(map[string]string{
		"timestamp":           gotForm["timestamp"],
		"signature_algorithm": "sha256",
	}, "secret")
	if gotForm["signature"] != wantSig {
		t.Errorf("signature = %q, want %q", gotForm["signature"], wantSig)
	}
}

func TestCloudinaryStore_UploadIncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"public_id": "abc"})
	}))
	defer srv.Close()

	store := NewCloudinaryStore("demo", "key", "secret")
	store.SetBaseURL(srv.URL)

	if _, err := store.Upload(context.Background(), tempFile(t, "x")); err == nil {
		t.Fatal("expected error for response without secure_url")
	}
}

func TestCloudinaryStore_UploadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	store := NewCloudinaryStore("demo", "key", "secret")
	store.SetBaseURL(srv.URL)

	if _, err := store.Upload(context.Background(), tempFile(t, "x")); err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestCloudinaryStore_Delete(t *testing.T) {
	tests := []struct {
		name    string
		result  string
		wantErr bool
	}{
		{"ok", "ok", false},
		{"already gone", "not found", false},
		{"unexpected", "pending", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"result": tt.result})
			}))
			defer srv.Close()

			store := NewCloudinaryStore("demo", "key", "secret")
			store.SetBaseURL(srv.URL)

			err := store.Delete(context.Background(), "abc", KindVideo)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Delete error = %v, wantErr %v", err, tt.wantErr)
			}
			if gotPath != "/video/destroy" {
				t.Errorf("path = %q, want /video/destroy", gotPath)
			}
		})
	}
}
