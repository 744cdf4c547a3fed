package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "detail",
			identifier:  "123",
			paramsKey:   nil,
			expectedKey: "wikiquiz:quiz:detail:123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "detail",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "wikiquiz:quiz:detail:123",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "scraper",
			objectType:  "page",
			identifier:  "Alan_Turing",
			paramsKey:   []string{"en", "v2"},
			expectedKey: "wikiquiz:scraper:page:Alan_Turing:en_v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}

func TestQuizKeys(t *testing.T) {
	assert.Equal(t, "wikiquiz:quiz:detail:01HZ", QuizDetailKey("01HZ"))
	assert.Equal(t, "wikiquiz:quiz:history:all", HistoryKey())
}
