package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conwon99/twilio-webhook/internal/models"
)

func TestAppendFillsIDAndTimestamp(t *testing.T) {
	store := NewLogStore()

	entry := store.Append(Entry{
		Type:       EntryTypeSubmission,
		Method:     "POST",
		Submission: models.SubmissionFields{"name": "A"},
	})

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.At.IsZero())

	entries := store.List()
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
}

func TestListReturnsCopy(t *testing.T) {
	store := NewLogStore()
	store.Append(Entry{Type: EntryTypeHandshake, Method: "GET"})

	entries := store.List()
	entries[0].Type = "mutated"

	assert.Equal(t, EntryTypeHandshake, store.List()[0].Type)
}

func TestClear(t *testing.T) {
	store := NewLogStore()
	store.Append(Entry{Type: EntryTypeSubmission, Method: "POST"})
	store.Clear()
	assert.Empty(t, store.List())
}

func TestConcurrentAppends(t *testing.T) {
	store := NewLogStore()

	const goroutines = 16
	const perGoroutine = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				store.Append(Entry{Type: EntryTypeSubmission, Method: "POST"})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, store.List(), goroutines*perGoroutine)
}
