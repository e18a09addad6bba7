// Package cache memoizes scenario results so identical requests skip the
// calculation and advisory round trips.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"mortgage_scenario/pkg/core/scenario"
)

// Repository is a plain string cache. Implementations decide persistence
// and expiry.
type Repository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// ResultKey derives a stable cache key from the full parameter set.
// Restrictions are part of the key because the cached Result carries the
// validation verdict, which depends on them.
func ResultKey(inputs scenario.Inputs, assumptions scenario.Assumptions, restrictions scenario.Restrictions) string {
	payload, _ := json.Marshal(struct {
		Inputs       scenario.Inputs       `json:"inputs"`
		Assumptions  scenario.Assumptions  `json:"assumptions"`
		Restrictions scenario.Restrictions `json:"restrictions"`
	}{inputs, assumptions, restrictions})

	sum := sha256.Sum256(payload)
	return "scenario:" + hex.EncodeToString(sum[:])
}
