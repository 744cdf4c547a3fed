package util

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewULID_SortsInCreationOrder(t *testing.T) {
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = NewULID()
	}

	assert.True(t, sort.StringsAreSorted(ids))
	for _, id := range ids {
		assert.Len(t, id, 26)
		assert.True(t, IsULID(id))
	}
	assert.False(t, IsULID("not-a-ulid"))
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)
	assert.Equal(t, "x", NullStringToString(StringToNullString("x")))
	assert.Equal(t, "", NullStringToString(StringToNullString("")))

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("KST", 9*3600))
	assert.False(t, TimeToNullTime(time.Time{}).Valid)
	assert.True(t, NullTimeToTime(TimeToNullTime(now)).Equal(now))
	assert.Equal(t, time.UTC, NullTimeToTime(TimeToNullTime(now)).Location())
	assert.True(t, NullTimeToTime(TimeToNullTime(time.Time{})).IsZero())
}
