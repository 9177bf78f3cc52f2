package hash

import (
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	// SHA256 of empty string
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestSignParams_SortsKeys(t *testing.T) {
	params := map[string]string{
		"timestamp": "1700000000",
		"public_id": "videos/abc",
	}

	got := SignParams(params, "secret")
	want := SHA256Hex("public_id=videos/abc&timestamp=1700000000secret")
	if got != want {
		t.Errorf("SignParams = %s, want %s", got, want)
	}
}

func TestSignParams_SkipsEmptyValues(t *testing.T) {
	withEmpty := map[string]string{
		"timestamp": "1700000000",
		"folder":    "",
	}
	withoutEmpty := map[string]string{
		"timestamp": "1700000000",
	}

	if SignParams(withEmpty, "s") != SignParams(withoutEmpty, "s") {
		t.Error("empty-valued keys should not affect the signature")
	}
}

func TestSignParams_Deterministic(t *testing.T) {
	params := map[string]string{
		"a": "1",
		"b": "2",
		"c": "3",
	}

	first := SignParams(params, "secret")
	for range 10 {
		if SignParams(params, "secret") != first {
			t.Fatal("SignParams should be deterministic across map iterations")
		}
	}
}

func TestSignParams_SecretChangesSignature(t *testing.T) {
	params := map[string]string{"timestamp": "1700000000"}

	if SignParams(params, "s1") == SignParams(params, "s2") {
		t.Error("different secrets should produce different signatures")
	}
}
