package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithComponentEmitsField(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", JSONOutput: true, Output: &buf})

	log := WithComponent("ingredients")
	log.Warn().Msg("seed file missing")

	assert.Contains(t, buf.String(), `"component":"ingredients"`)
	assert.Contains(t, buf.String(), "seed file missing")
}

func TestInitDefaultsToInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "nonsense", JSONOutput: true, Output: &buf})

	Log.Debug().Msg("hidden")
	Log.Info().Msg("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}
