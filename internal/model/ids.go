package model

import "github.com/google/uuid"

// NewInstanceID mints a unique_instance_id for a placed cargo instance,
// unique within a single PackingResult.
func NewInstanceID(item CargoItem) string {
	nonce := uuid.New().String()[:8]
	return item.StableID + "_" + item.Kind.letter() + "_" + nonce
}
