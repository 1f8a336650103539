package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/studyfocus/blocking"
)

func TestCollapserDropsRepeats(t *testing.T) {
	var got []blocking.Lifecycle

	c := newCollapser(func(l blocking.Lifecycle) {
		got = append(got, l)
	})

	for _, l := range []blocking.Lifecycle{
		blocking.Foreground,
		blocking.Background,
		blocking.Background,
		blocking.Foreground,
		blocking.Foreground,
		blocking.Background,
	} {
		c.emit(l)
	}

	assert.Equal(t, []blocking.Lifecycle{
		blocking.Background,
		blocking.Foreground,
		blocking.Background,
	}, got)
}
