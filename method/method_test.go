package method

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	require.Equal(t, 5, c.Len())

	m, err := c.Get("pomodoro")
	require.NoError(t, err)
	assert.Equal(t, 1500, m.DurationSeconds())
	assert.Equal(t, 25, m.DurationMinutes())

	_, err = c.Get("nap")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestNewCatalogRejectsInvalidMethods(t *testing.T) {
	cases := []struct {
		name    string
		methods []Method
	}{
		{"empty key", []Method{{Duration: time.Minute}}},
		{"zero duration", []Method{{Key: "a"}}},
		{"negative duration", []Method{{Key: "a", Duration: -time.Minute}}},
		{"duplicate", []Method{
			{Key: "a", Duration: time.Minute},
			{Key: "a", Duration: 2 * time.Minute},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.methods...)
			assert.Error(t, err)
		})
	}
}

func TestKeysNaturalOrder(t *testing.T) {
	c, err := NewCatalog(
		Method{Key: "block10", Duration: time.Minute},
		Method{Key: "block2", Duration: time.Minute},
		Method{Key: "block1", Duration: time.Minute},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"block1", "block2", "block10"}, c.Keys())
}

func TestSubsetOrderedByDuration(t *testing.T) {
	list, err := Default().Subset("deepwork", "pomodoro", "focus")
	require.NoError(t, err)

	keys := make([]string, len(list))
	for i, m := range list {
		keys[i] = m.Key
	}

	assert.Equal(t, []string{"pomodoro", "focus", "deepwork"}, keys)

	_, err = Default().Subset("pomodoro", "nope")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestNameDefaultsToKey(t *testing.T) {
	c, err := NewCatalog(Method{Key: "custom", Duration: time.Minute})
	require.NoError(t, err)

	m, _ := c.Get("custom")
	assert.Equal(t, "custom", m.Name)
}
