package pager

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHandler — минимальный обработчик для тестов реестра.
type stubHandler struct{}

func (stubHandler) Authorized(int64) bool         { return true }
func (stubHandler) HandleControl(Activation) bool { return true }

func TestRegistry(t *testing.T) {
	ref := MessageRef{ChatID: 1, MessageID: 10}

	t.Run("RegisterAndLookup", func(t *testing.T) {
		r := NewRegistry()
		h := stubHandler{}

		require.NoError(t, r.Register(ref, h))

		got, ok := r.Lookup(ref)
		require.True(t, ok)
		assert.Equal(t, h, got)
		assert.True(t, r.Contains(ref))
		assert.Equal(t, 1, r.Len())
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(ref, stubHandler{}))

		err := r.Register(ref, stubHandler{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateRegistration))
		assert.Equal(t, 1, r.Len())
	})

	t.Run("DeregisterIsIdempotent", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(ref, stubHandler{}))

		r.Deregister(ref)
		assert.False(t, r.Contains(ref))

		// Повторное снятие регистрации — не ошибка.
		r.Deregister(ref)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("LookupMissing", func(t *testing.T) {
		r := NewRegistry()
		_, ok := r.Lookup(MessageRef{ChatID: 9, MessageID: 99})
		assert.False(t, ok)
	})

	t.Run("Refs", func(t *testing.T) {
		r := NewRegistry()
		refs := []MessageRef{{ChatID: 1, MessageID: 1}, {ChatID: 2, MessageID: 2}}
		for _, ref := range refs {
			require.NoError(t, r.Register(ref, stubHandler{}))
		}
		assert.ElementsMatch(t, refs, r.Refs())
	})
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref := MessageRef{ChatID: int64(i), MessageID: i}
			if err := r.Register(ref, stubHandler{}); err != nil {
				panic(fmt.Sprintf("unexpected register error: %v", err))
			}
			r.Contains(ref)
			r.Lookup(ref)
			if i%2 == 0 {
				r.Deregister(ref)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, r.Len())
}
