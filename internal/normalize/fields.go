package normalize

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"wiki-quiz/internal/payload"
)

// Fallback keys per canonical field, highest priority first.
var (
	titleKeys        = []string{"title", "quizTitle", "quiz_title"}
	descriptionKeys  = []string{"description", "quiz_description", "summary"}
	questionTextKeys = []string{"question", "questionText", "q"}
	difficultyKeys   = []string{"difficulty"}
	answerKeys       = []string{"answer", "correctAnswer", "correct_option"}
	explanationKeys  = []string{"explanation"}
)

const (
	questionsKey = "questions"
	optionsKey   = "options"
	wrapperKey   = "quiz"
)

// Defaults used when no fallback key resolves.
const (
	DefaultTitle        = "Untitled Quiz"
	DefaultQuestionText = "Untitled Question"
	DefaultDifficulty   = "unknown"
	DefaultAnswer       = "No answer provided"
)

var placeholderOptions = []string{"Option A", "Option B", "Option C", "Option D"}

// PlaceholderOptions returns the option set substituted for unusable input.
func PlaceholderOptions() []string {
	return slices.Clone(placeholderOptions)
}

func isObject(v any) bool { return payload.IsObject(v) }

func lookup(v any, key string) (any, bool) { return payload.Lookup(v, key) }

// objectValues returns the values of a mapping in iteration order. Plain Go
// maps have none, so their keys are ordered integer-like first (ascending),
// then lexically.
func objectValues(v any) []any {
	switch o := v.(type) {
	case *payload.Object:
		return o.Values()
	case map[string]any:
		keys := make([]string, 0, len(o))
		for k := range o {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, compareKeys)
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			out = append(out, o[k])
		}
		return out
	}
	return nil
}

func compareKeys(a, b string) int {
	ai, aIdx := arrayIndex(a)
	bi, bIdx := arrayIndex(b)
	switch {
	case aIdx && bIdx:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	case aIdx:
		return -1
	case bIdx:
		return 1
	}
	return strings.Compare(a, b)
}

func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		return 0, false
	}
	return n, true
}

// firstString returns the first non-empty string found under keys.
func firstString(obj any, keys []string) (string, bool) {
	for _, k := range keys {
		v, ok := lookup(obj, k)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func stringOr(obj any, keys []string, def string) string {
	if s, ok := firstString(obj, keys); ok {
		return s
	}
	return def
}

func optionalString(obj any, keys []string) *string {
	if s, ok := firstString(obj, keys); ok {
		return &s
	}
	return nil
}

// resolveOptions turns whatever sits under "options" into a non-empty list.
func resolveOptions(v any) []string {
	var raw []any
	switch {
	case isArray(v):
		raw = v.([]any)
	case isObject(v):
		raw = objectValues(v)
	}
	if len(raw) == 0 {
		return PlaceholderOptions()
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		out = append(out, optionText(item))
	}
	return out
}

func isArray(v any) bool {
	arr, ok := v.([]any)
	return ok && arr != nil
}

func optionText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprint(v)
}
