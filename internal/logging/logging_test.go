package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_LevelGating(t *testing.T) {
	var quiet strings.Builder
	New(&quiet, false).Debug("hidden")
	assert.Empty(t, quiet.String())

	var verbose strings.Builder
	New(&verbose, true).Debug("visible", "key", "value")
	assert.Contains(t, verbose.String(), "visible")
	assert.Contains(t, verbose.String(), "key=value")
}
