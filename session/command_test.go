package session

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionCommandLeavesStdinToConsole(t *testing.T) {
	cmd := sessionCommand("notify-send", "Session complete")

	assert.Nil(t, cmd.Stdin)
	assert.Equal(t, os.Stdout, cmd.Stdout)
	assert.Equal(t, os.Stderr, cmd.Stderr)
	assert.Equal(t, []string{"notify-send", "Session complete"}, cmd.Args)
}
