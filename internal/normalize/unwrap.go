package normalize

// MaxUnwrapDepth bounds how many nested "quiz" wrappers are stripped.
const MaxUnwrapDepth = 5

// Unwrap strips redundant {"quiz": {...}} layers until the current value has
// no nested quiz object or MaxUnwrapDepth layers have been removed. If
// traversal fails for any reason the original input is returned.
func Unwrap(p any) (out any) {
	defer func() {
		if recover() != nil {
			out = p
		}
	}()

	current := p
	for depth := 0; depth < MaxUnwrapDepth; depth++ {
		next, ok := lookup(current, wrapperKey)
		if !ok || !isObject(next) {
			break
		}
		current = next
	}
	return current
}

// UnwrapToQuestions descends through "quiz" wrappers but stops at the first
// level that already carries a "questions" key. The backend stores quizzes
// in this form.
func UnwrapToQuestions(p any) (out any) {
	defer func() {
		if recover() != nil {
			out = p
		}
	}()

	current := p
	for depth := 0; depth < MaxUnwrapDepth; depth++ {
		if !isObject(current) {
			break
		}
		if _, ok := lookup(current, questionsKey); ok {
			break
		}
		next, ok := lookup(current, wrapperKey)
		if !ok || !isObject(next) {
			break
		}
		current = next
	}
	return current
}
