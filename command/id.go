package command

import "github.com/google/uuid"

// UUIDGenerator is the real IDGenerator: a fresh random v4 per call, the
// same pattern rpg-toolkit's spatial package uses for its room/entity
// ids (uuid.New().String()).
type UUIDGenerator struct{}

// NewID returns a new random id.
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}
