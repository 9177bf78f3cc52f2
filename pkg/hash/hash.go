package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// SignParams produces the media-store request signature: parameters are
// sorted by key, serialized as k=v joined with '&', the secret appended,
// and the whole string hashed. Keys with empty values are skipped.
func SignParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	return SHA256Hex(strings.Join(pairs, "&") + secret)
}
