package subsonic

import (
	"crypto/md5"
	"encoding/hex"

	"go.mau.fi/util/random"
)

// saltBytes is the number of random bytes in a salt. Servers require at least
// six characters; five bytes give ten hex characters.
const saltBytes = 5

// AuthParams are the per-request token authentication parameters.
type AuthParams struct {
	Salt  string
	Token string
}

// NewAuthParams generates a fresh salt and the matching token for password.
// A salt must never be reused across requests.
func NewAuthParams(password string) AuthParams {
	salt := hex.EncodeToString(random.Bytes(saltBytes))
	return AuthParams{
		Salt:  salt,
		Token: Token(password, salt),
	}
}

// Token computes the hex encoded MD5 digest of password followed by salt.
func Token(password, salt string) string {
	hash := md5.Sum([]byte(password + salt))
	return hex.EncodeToString(hash[:])
}
