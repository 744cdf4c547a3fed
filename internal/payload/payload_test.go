package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_KeepsObjectKeyOrder(t *testing.T) {
	v, err := Decode([]byte(`{"D":"four","B":"two","A":"one","C":"three"}`))
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"D", "B", "A", "C"}, obj.Keys())
	assert.Equal(t, []any{"four", "two", "one", "three"}, obj.Values())
	assert.Equal(t, 4, obj.Len())
}

func TestDecode_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"null", `null`, nil},
		{"number", `42`, json.Number("42")},
		{"string", `"not-an-array"`, "not-an-array"},
		{"bool", `true`, true},
		{"empty array", `[]`, []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Nested(t *testing.T) {
	v, err := Decode([]byte(`{"quiz":{"questions":[{"q":"x"},1,null]}}`))
	require.NoError(t, err)

	outer := v.(*Object)
	inner, ok := outer.Get("quiz")
	require.True(t, ok)
	questions, ok := inner.(*Object).Get("questions")
	require.True(t, ok)
	arr := questions.([]any)
	require.Len(t, arr, 3)
	assert.IsType(t, &Object{}, arr[0])
	assert.Equal(t, json.Number("1"), arr[1])
	assert.Nil(t, arr[2])
}

func TestDecode_DuplicateKeysKeepFirstPosition(t *testing.T) {
	v, err := Decode([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)

	obj := v.(*Object)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	got, _ := obj.Get("a")
	assert.Equal(t, json.Number("3"), got)
}

func TestDecode_Errors(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a":}`, `[1,2`, `{} {}`, `<html>`} {
		_, err := Decode([]byte(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestObject_MarshalJSONPreservesOrder(t *testing.T) {
	obj := NewObject().
		Set("title", "T").
		Set("options", NewObject().Set("B", "b").Set("A", "a")).
		Set("list", []any{1, "x"})

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"T","options":{"B":"b","A":"a"},"list":[1,"x"]}`, string(data))
}

func TestObject_UnmarshalJSON(t *testing.T) {
	var holder struct {
		Quiz *Object `json:"quiz"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"quiz":{"z":1,"y":2}}`), &holder))
	assert.Equal(t, []string{"z", "y"}, holder.Quiz.Keys())

	var obj Object
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &obj))
}

func TestObject_NilSafe(t *testing.T) {
	var obj *Object
	_, ok := obj.Get("x")
	assert.False(t, ok)
	assert.Nil(t, obj.Keys())
	assert.Equal(t, 0, obj.Len())
}
