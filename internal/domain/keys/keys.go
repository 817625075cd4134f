package keys

import "strings"

// Width of the visible prefix on a masked key. Deactivation resolves masked
// keys back to full keys by prefix match, so two keys sharing the first
// maskPrefixLen characters are indistinguishable to that lookup.
const maskPrefixLen = 5

const maskMarker = "..."

// Key is an API key as returned by the TinyToken key service. The full key
// value must not leave the service except through the one-time create
// response; every display surface gets the masked form.
type Key struct {
	APIKey      string `json:"api_key"`
	UserEmail   string `json:"user_email"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	ExpiresAt   string `json:"expires_at"`
	Active      bool   `json:"active"`
}

// CreatedKey is the one-time response for a freshly issued key. Keys are
// valid for 30 days from issuance.
type CreatedKey struct {
	Key           string `json:"key"`
	UserEmail     string `json:"user_email"`
	Description   string `json:"description,omitempty"`
	ExpiresInDays int    `json:"expires_in_days"`
	CreatedAt     string `json:"created_at"`
	ExpiresAt     string `json:"expires_at"`
}

// Mask reduces a key to its display form: the first five characters followed
// by an ellipsis marker. The remainder is discarded.
func Mask(key string) string {
	if len(key) > maskPrefixLen {
		key = key[:maskPrefixLen]
	}
	return key + maskMarker
}

// Matches reports whether masked is the masked form of full.
func Matches(full, masked string) bool {
	return full != "" && Mask(full) == masked
}

// MaskAll returns a copy of ks with every key value masked.
func MaskAll(ks []Key) []Key {
	out := make([]Key, len(ks))
	for i, k := range ks {
		k.APIKey = Mask(k.APIKey)
		out[i] = k
	}
	return out
}

// FindByMask returns the first key whose masked form equals masked.
func FindByMask(ks []Key, masked string) (Key, bool) {
	masked = strings.TrimSpace(masked)
	for _, k := range ks {
		if Matches(k.APIKey, masked) {
			return k, true
		}
	}
	return Key{}, false
}
