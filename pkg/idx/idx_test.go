package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/contentdeck/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	a := idx.New()
	b := idx.New()
	require.Less(t, a.String(), b.String())
	require.False(t, a.IsZero())
}

func TestNewAtEmbedsTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id := idx.NewAt(at)
	require.Equal(t, at, id.Time())
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("accepts generated ids", func(t *testing.T) {
		id := idx.New()
		parsed, err := idx.Parse("  " + id.String() + " ")
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := idx.Parse("not-a-ulid")
		require.ErrorIs(t, err, idx.ErrInvalid)

		_, err = idx.Parse("")
		require.ErrorIs(t, err, idx.ErrInvalid)
	})

	t.Run("invalid ids have zero time", func(t *testing.T) {
		require.True(t, idx.ID("nope").Time().IsZero())
	})
}
