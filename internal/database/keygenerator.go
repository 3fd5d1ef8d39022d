package database

import (
	"crypto/rand"
	"fmt"
	"time"
)

func generateID() (string, error) {
	var uuid [16]byte
	if _, err := rand.Read(uuid[:]); err != nil {
		return "", err
	}

	// Set version (4) and variant bits according to RFC 4122
	uuid[6] = (uuid[6] & 0x0f) | 0x40 // Version 4
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // Variant is 10

	return fmt.Sprintf("%x-%x-%x-%x-%x",
		uuid[0:4],
		uuid[4:6],
		uuid[6:8],
		uuid[8:10],
		uuid[10:16]), nil
}

// prepareInvocation fills the ID and timestamp of a new invocation
func prepareInvocation(inv *Invocation) error {
	if inv == nil {
		return fmt.Errorf("invocation cannot be nil")
	}
	if inv.ID == "" {
		id, err := generateID()
		if err != nil {
			return fmt.Errorf("failed to generate invocation id: %w", err)
		}
		inv.ID = id
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	return nil
}
