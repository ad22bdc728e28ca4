package auth

import (
	"math/rand"
	"strconv"
)

// GenerateCode returns a uniformly random 6-digit verification code in the
// range 100000-999999. The source is deliberately non-cryptographic: the code
// proves mailbox ownership, nothing more.
func GenerateCode() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}
