package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func queryRecord(actionType ActionType, entryType EntryType, ts time.Time) Record {
	return Record{Action: Action{Type: actionType, EntryType: entryType, Timestamp: ts}}
}

func TestQueryInput_Matches(t *testing.T) {
	base := time.Unix(1700000000, 0)
	post := queryRecord(ActionCreate, "post", base)

	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.True(t, QueryInput{}.Matches(post))
	})

	t.Run("entry type filter", func(t *testing.T) {
		assert.True(t, QueryInput{EntryTypes: []EntryType{"post"}}.Matches(post))
		assert.False(t, QueryInput{EntryTypes: []EntryType{"comment"}}.Matches(post))
	})

	t.Run("action type filter", func(t *testing.T) {
		assert.True(t, QueryInput{ActionTypes: []ActionType{ActionCreate}}.Matches(post))
		assert.False(t, QueryInput{ActionTypes: []ActionType{ActionDelete}}.Matches(post))
	})

	t.Run("time window", func(t *testing.T) {
		assert.True(t, QueryInput{After: base.Add(-time.Minute)}.Matches(post))
		assert.False(t, QueryInput{After: base}.Matches(post), "After is exclusive")
		assert.True(t, QueryInput{Before: base.Add(time.Minute)}.Matches(post))
		assert.False(t, QueryInput{Before: base}.Matches(post), "Before is exclusive")
	})

	t.Run("conjunction", func(t *testing.T) {
		filter := QueryInput{
			EntryTypes:  []EntryType{"post"},
			ActionTypes: []ActionType{ActionCreate},
			After:       base.Add(-time.Minute),
			Before:      base.Add(time.Minute),
		}
		assert.True(t, filter.Matches(post))

		filter.ActionTypes = []ActionType{ActionUpdate}
		assert.False(t, filter.Matches(post))
	})
}
