package helpers

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// Avatar parameters: 200px, pg rating, mystery-man fallback.
const (
	avatarSize    = "200"
	avatarRating  = "pg"
	avatarDefault = "mm"
)

// AvatarURL derives the gravatar URL for email. The same email always yields the same URL.
func AvatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("//www.gravatar.com/avatar/%s?s=%s&r=%s&d=%s",
		hex.EncodeToString(sum[:]), avatarSize, avatarRating, avatarDefault)
}
