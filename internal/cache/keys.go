package cache

import "strings"

// GlobalKeyPrefix namespaces every key this service writes to redis.
const GlobalKeyPrefix = "trivia"

// GenerateCacheKey builds "trivia:<service>:<object>:<identifier>".
func GenerateCacheKey(serviceName, objectType, identifier string) string {
	return strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
}
