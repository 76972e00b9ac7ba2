package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(WarnLevel))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestConfigureWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Configure(Config{Level: InfoLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	l.Info().Str("component", "test").Msg("hello")

	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}
