package core

import (
	"fmt"

	"github.com/google/uuid"
)

// InvalidID marks an unassigned renderer resource slot.
const InvalidID uint32 = 0xFFFFFFFF

var Owners []interface{}

// IdentifierAquireNewID hands out the lowest free slot id for the owner.
func IdentifierAquireNewID(owner interface{}) uint32 {
	if len(Owners) == 0 {
		Owners = make([]interface{}, 100)
	}
	length := uint32(len(Owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if Owners[i] == nil {
			Owners[i] = owner
			return i
		}
	}

	// No existing free slots, push a new one.
	Owners = append(Owners, owner)
	return uint32(len(Owners)) - 1
}

func IdentifierReleaseID(id uint32) error {
	if len(Owners) == 0 {
		return fmt.Errorf("func IdentifierReleaseID - called before any id was acquired, nothing was done")
	}
	if id >= uint32(len(Owners)) {
		return fmt.Errorf("func IdentifierReleaseID - id '%d' out of range (max=%d), nothing was done", id, len(Owners))
	}
	// Zero out the entry, making it available for reuse.
	Owners[id] = nil
	return nil
}

// GenerateNewName returns a unique resource name with the given prefix,
// used for generated textures that have no asset filename of their own.
func GenerateNewName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
