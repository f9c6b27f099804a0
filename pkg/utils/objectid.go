package utils

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// GenerateObjectID returns a 24 character hex id: 4 bytes of big-endian unix
// seconds followed by 8 random bytes, so ids sort roughly by creation time.
func GenerateObjectID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	_, _ = rand.Read(b[4:])
	return hex.EncodeToString(b[:])
}
