package redis

import "fmt"

// Key prefix for all switcher data
const keyPrefix = "bd2switch"

// accountKey returns the Redis key for one saved account's record set
func accountKey(name string) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, name)
}

// orderKey returns the Redis key of the LIST holding account insertion order
func orderKey() string {
	return fmt.Sprintf("%s:account_order", keyPrefix)
}

// configKey returns the Redis key of the HASH holding the config section
func configKey() string {
	return fmt.Sprintf("%s:config", keyPrefix)
}
