package webbot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/webbot"
)

func TestEnvironmentValid(t *testing.T) {
	for _, env := range []webbot.Environment{
		webbot.Development,
		webbot.Production,
		webbot.Review,
		webbot.Staging,
		webbot.Testing,
	} {
		require.Nil(t, env.Valid())
	}

	require.ErrorIs(t, webbot.Environment("LOCAL").Valid(), webbot.ErrNotValid)
}

func TestEnvVarOr(t *testing.T) {
	t.Run("Bool", func(t *testing.T) {
		t.Setenv("WEBBOT_TEST", "TRUE")
		require.True(t, webbot.EnvVarOrBool("WEBBOT_TEST", false))

		t.Setenv("WEBBOT_TEST", "nope")
		require.False(t, webbot.EnvVarOrBool("WEBBOT_TEST", false))
	})

	t.Run("Duration", func(t *testing.T) {
		t.Setenv("WEBBOT_TEST", "3s")
		require.Equal(t, 3*time.Second, webbot.EnvVarOrDuration("WEBBOT_TEST", time.Second))

		t.Setenv("WEBBOT_TEST", "")
		require.Equal(t, time.Second, webbot.EnvVarOrDuration("WEBBOT_TEST", time.Second))
	})

	t.Run("Env", func(t *testing.T) {
		t.Setenv("WEBBOT_TEST", "staging")
		require.Equal(t, webbot.Staging, webbot.EnvVarOrEnv("WEBBOT_TEST", webbot.Development))

		t.Setenv("WEBBOT_TEST", "moon")
		require.Equal(t, webbot.Development, webbot.EnvVarOrEnv("WEBBOT_TEST", webbot.Development))
	})

	t.Run("Int", func(t *testing.T) {
		t.Setenv("WEBBOT_TEST", "42")
		require.Equal(t, 42, webbot.EnvVarOrInt("WEBBOT_TEST", 1))

		t.Setenv("WEBBOT_TEST", "forty-two")
		require.Equal(t, 1, webbot.EnvVarOrInt("WEBBOT_TEST", 1))
	})

	t.Run("String", func(t *testing.T) {
		t.Setenv("WEBBOT_TEST", "")
		require.Equal(t, "def", webbot.EnvVarOrString("WEBBOT_TEST", "def"))
	})

	t.Run("URL", func(t *testing.T) {
		t.Setenv("WEBBOT_TEST", "https://example.com/app")
		require.Equal(t, "https://example.com/app", webbot.EnvVarOrURL("WEBBOT_TEST", "http://localhost:3000").String())

		t.Setenv("WEBBOT_TEST", "not a url")
		require.Equal(t, "http://localhost:3000", webbot.EnvVarOrURL("WEBBOT_TEST", "http://localhost:3000").String())

		require.Nil(t, webbot.EnvVarOrURL("WEBBOT_TEST", "::"))
	})
}
