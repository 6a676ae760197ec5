package internal

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for raw, want := range cases {
		require.Equal(t, want, ParseLevel(raw), raw)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, "pt-BR", cfg.Locale)
	require.Equal(t, "app-content", cfg.Router.ContainerID)
	require.Equal(t, 150*time.Millisecond, cfg.Router.FadeDelay)
	require.Equal(t, 50*time.Millisecond, cfg.Router.LoadDelay)
	require.Equal(t, "Perifa no Toque", cfg.Router.DefaultTitle)
	require.Equal(t, "Início - Perifa no Toque", cfg.Router.Titles["/"])
	require.Equal(t, "Projetos - Perifa no Toque", cfg.Router.Titles["/projeto"])
	require.Equal(t, "Cadastro - Perifa no Toque", cfg.Router.Titles["/cadastro"])
	require.Equal(t, 5, cfg.Toasts.Max)
	require.Equal(t, "top-right", cfg.Toasts.Position)
	require.Equal(t, "perifa-theme-preference", cfg.Theme.StorageKey)
	require.Equal(t, 300*time.Millisecond, cfg.Theme.Transition)
}

func TestLoadConfigOverride(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(`
locale = "en"

[router]
fade_delay = "1s"
container_id = ""

[toasts]
max = 2
`)
	require.NoError(t, err)

	require.Equal(t, "en", cfg.Locale)
	require.Equal(t, time.Second, cfg.Router.FadeDelay)
	require.Equal(t, 50*time.Millisecond, cfg.Router.LoadDelay)
	require.Equal(t, "app-content", cfg.Router.ContainerID)
	require.Equal(t, 2, cfg.Toasts.Max)
}

func TestLoadConfigRejectsMalformedOverride(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(`[router`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decoding config override")

	_, err = LoadConfig(`[router]
fade_delay = "soon"`)
	require.Error(t, err)
}

func TestMessages(t *testing.T) {
	t.Parallel()

	pt := DefaultMessages()
	require.Equal(t, "pt-BR", pt.Language().String())
	require.Equal(t, "Junte-se a nós!", pt.Get("HomeToastTitle"))
	require.Equal(t,
		"Por favor, preencha os seguintes campos: Nome *:, CPF *",
		pt.Format("FormRequiredMessage", map[string]any{"Fields": "Nome *:, CPF *"}),
	)

	en := NewMessages("en-US", "pt-BR")
	require.Equal(t, "en", en.Language().String())
	require.Equal(t, "Join us!", en.Get("HomeToastTitle"))

	fallback := NewMessages("fr-FR")
	require.Equal(t, "pt-BR", fallback.Language().String())
	require.Equal(t, "Cadastrar", fallback.Get("HomeActionRegister"))

	require.Equal(t, "NoSuchMessage", pt.Get("NoSuchMessage"))
	require.Same(t, pt, MessagesOr(nil))
}
