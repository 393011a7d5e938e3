package cache

import "strings"

const (
	GlobalKeyPrefix = "quizdeck"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// PublicQuizKey caches the player view of a quiz.
func PublicQuizKey(quizID string) string {
	return GenerateCacheKey("quiz", "public", quizID)
}

// AttemptResultKey caches a graded attempt. Attempts never change once stored.
func AttemptResultKey(attemptID string) string {
	return GenerateCacheKey("attempt", "result", attemptID)
}
