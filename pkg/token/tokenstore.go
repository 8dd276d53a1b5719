package tokenstore

import (
	"time"

	"ChatKeep/pkg/cache"
)

// Revocation store for logged-out JWTs, keyed by jti. Entries live only as
// long as the token itself would: once the token has expired the revocation
// record is useless and the TTL cache drops it. For multi-process deployments
// swap this for Redis.

const keyPrefix = "revoked:"

// Revoke marks jti as revoked until the token's expiry time. A zero or past
// expiresAt revokes for 24h, the maximum token lifetime we issue.
func Revoke(jti string, expiresAt time.Time) {
	if jti == "" {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cache.Default().Set(keyPrefix+jti, struct{}{}, ttl)
}

// IsRevoked reports whether jti has been revoked and not yet expired.
func IsRevoked(jti string) bool {
	if jti == "" {
		return false
	}
	_, ok := cache.Default().Get(keyPrefix + jti)
	return ok
}
