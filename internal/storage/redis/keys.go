package redis

import (
	"fmt"

	"github.com/myatmin/twodlive/internal/model"
)

// Key prefix for all application data
const keyPrefix = "twodlive"

// userKey returns the Redis key for a User hash
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// userCountKey returns the Redis key for the all-time registration counter
func userCountKey() string {
	return fmt.Sprintf("%s:users:count", keyPrefix)
}

// latestResultKey returns the Redis key for the latest published result
func latestResultKey() string {
	return fmt.Sprintf("%s:result:latest", keyPrefix)
}
