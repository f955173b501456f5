// Package uuid generates time-ordered UUIDv7 strings used as public
// reference numbers for travel requests.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7 based on the current timestamp. Time ordering
// keeps request references sortable by submission time.
//
// Format (RFC 4122):
// - 48 bits: Unix timestamp in milliseconds
// - 4 bits: version (0111 = 7)
// - 12 bits: random data
// - 2 bits: variant (10)
// - 62 bits: random data
func New() string {
	var uuid [16]byte

	timestamp := uint64(time.Now().UnixMilli())
	binary.BigEndian.PutUint64(uuid[0:8], timestamp<<16)

	// Fill remaining bytes with random data
	if _, err := rand.Read(uuid[6:]); err != nil {
		// Fallback to standard UUIDv4 if random generation fails
		return googleuuid.New().String()
	}

	// Set version (0111 = 7) and variant (10)
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(uuid[0:4]),
		binary.BigEndian.Uint16(uuid[4:6]),
		binary.BigEndian.Uint16(uuid[6:8]),
		binary.BigEndian.Uint16(uuid[8:10]),
		uuid[10:16],
	)
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
