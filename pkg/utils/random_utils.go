package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
)

const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomUint32 returns a cryptographically secure random uint32
func RandomUint32() uint32 {
	var num uint32
	if err := binary.Read(rand.Reader, binary.BigEndian, &num); err != nil {
		panic("generate random uint32 failed")
	}
	return num
}

// RandomIntn returns a uniform random int in [0, n)
func RandomIntn(n int) int {
	if n <= 0 {
		panic("RandomIntn: n must be positive")
	}
	// rejection sampling keeps the distribution uniform
	limit := ^uint32(0) - (^uint32(0) % uint32(n))
	for {
		v := RandomUint32()
		if v < limit {
			return int(v % uint32(n))
		}
	}
}

// GenerateOTP returns a 4-digit numeric code in [1000, 9999]
func GenerateOTP() string {
	return fmt.Sprintf("%d", 1000+RandomIntn(9000))
}

// GenerateInviteCode returns an upper-case code of the given length.
// Ambiguous characters (0, O, 1, I) are excluded.
func GenerateInviteCode(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(inviteAlphabet[RandomIntn(len(inviteAlphabet))])
	}
	return sb.String()
}
