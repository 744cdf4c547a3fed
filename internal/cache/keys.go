package cache

import "strings"

const (
	GlobalKeyPrefix = "wikiquiz"

	quizServiceName = "quiz"
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

// QuizDetailKey is the key of the cached /quiz/{id} response.
func QuizDetailKey(id string) string {
	return GenerateCacheKey(quizServiceName, "detail", id)
}

// HistoryKey is the key of the cached /history response.
func HistoryKey() string {
	return GenerateCacheKey(quizServiceName, "history", "all")
}
