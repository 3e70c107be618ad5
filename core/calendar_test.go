package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmorling/headcount/schema"
)

func TestWeekEndings(t *testing.T) {
	t.Run("three weeks ending on reference", func(t *testing.T) {
		reference := time.Date(2013, 1, 17, 0, 0, 0, 0, time.UTC)
		endings, err := WeekEndings(reference, 3)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{
			time.Date(2013, 1, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2013, 1, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2013, 1, 17, 0, 0, 0, 0, time.UTC),
		}, endings)
	})

	t.Run("single week is just the reference", func(t *testing.T) {
		reference := time.Date(2013, 4, 2, 0, 0, 0, 0, time.UTC)
		endings, err := WeekEndings(reference, 1)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{reference}, endings)
	})

	t.Run("window crosses a month boundary", func(t *testing.T) {
		reference := time.Date(2013, 1, 21, 0, 0, 0, 0, time.UTC)
		endings, err := WeekEndings(reference, 4)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{
			time.Date(2012, 12, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2013, 1, 7, 0, 0, 0, 0, time.UTC),
			time.Date(2013, 1, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2013, 1, 21, 0, 0, 0, 0, time.UTC),
		}, endings)
	})

	t.Run("zero weeks rejected", func(t *testing.T) {
		_, err := WeekEndings(time.Now(), 0)
		assert.ErrorIs(t, err, schema.ErrConfiguration)
	})

	t.Run("negative weeks rejected", func(t *testing.T) {
		_, err := WeekEndings(time.Now(), -5)
		assert.ErrorIs(t, err, schema.ErrConfiguration)
	})
}
