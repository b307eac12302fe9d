package redis

import (
	"fmt"
	"strings"

	"github.com/erppro/identity/internal/model"
)

// Key prefix for all identity data
const keyPrefix = "identity"

// accountKey returns the Redis key for an Account
func accountKey(id model.AccountID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> account_id index.
// The email is lowercased so the index enforces case-insensitive uniqueness.
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, strings.ToLower(strings.TrimSpace(email)))
}

// accountSetKey returns the Redis key for the SET of all account ids
func accountSetKey() string {
	return fmt.Sprintf("%s:accounts", keyPrefix)
}
