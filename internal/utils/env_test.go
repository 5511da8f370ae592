package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("BAGEL_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("BAGEL_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BAGEL_TEST_MISSING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("BAGEL_TEST_INT", "42")
	assert.Equal(t, 42, GetEnvInt("BAGEL_TEST_INT", 7))

	t.Setenv("BAGEL_TEST_INT", "not a number")
	assert.Equal(t, 7, GetEnvInt("BAGEL_TEST_INT", 7))
	assert.Equal(t, 7, GetEnvInt("BAGEL_TEST_INT_MISSING", 7))
}

func TestGetEnvIntWarnsOnGarbage(t *testing.T) {
	var out bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&out)
	defer func() { log.Logger = prev }()

	t.Setenv("BAGEL_TEST_GARBAGE", "ten")
	assert.Equal(t, 3, GetEnvInt("BAGEL_TEST_GARBAGE", 3))
	assert.Contains(t, out.String(), "BAGEL_TEST_GARBAGE")
	assert.Contains(t, out.String(), "ignoring non-integer env value")

	// An unset key stays quiet.
	out.Reset()
	assert.Equal(t, 3, GetEnvInt("BAGEL_TEST_GARBAGE_MISSING", 3))
	assert.Empty(t, out.String())
}
