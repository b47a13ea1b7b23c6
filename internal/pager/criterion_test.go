package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameUser(t *testing.T) {
	c := SameUser(42)
	assert.True(t, c.Matches(42))
	assert.False(t, c.Matches(7))
}

func TestAllOf(t *testing.T) {
	even := CriterionFunc(func(userID int64) bool { return userID%2 == 0 })

	t.Run("all criteria must match", func(t *testing.T) {
		c := AllOf(SameUser(42), even)
		assert.True(t, c.Matches(42))
		assert.False(t, c.Matches(41))
	})

	t.Run("empty combinator matches everyone", func(t *testing.T) {
		assert.True(t, AllOf().Matches(1))
	})
}
