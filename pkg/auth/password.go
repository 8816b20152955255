package auth

import (
	"crypto/md5"
	"encoding/hex"
)

// HashPassword hashes a cleartext password for the login wire format. The
// server expects the MD5 hex digest in the login payload; the cleartext
// never leaves the client.
func HashPassword(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
