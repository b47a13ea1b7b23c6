package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullYAML = `
bot:
  token: "bot123:token"
  update_timeout_seconds: 30
  faq:
    - question: "Что ты умеешь?"
      answer: "Листать длинные ответы кнопками."
    - question: "Как остановить?"
      answer: "Кнопкой с крестиком."
pager:
  timeout_seconds: 90
  jump_reply_timeout_seconds: 10
  jump_min_pages: 5
  footer_format: "Страница {page} из {count}"
  labels:
    stop: "Стоп"
server:
  host: "127.0.0.1"
  port: 8081
  shutdown_timeout_seconds: 5
logging:
  level: "debug"
  format: "text"
`

const minimalYAML = `
bot:
  token: "bot123:token"
`

// writeConfig записывает временный файл конфигурации для теста.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot_config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, fullYAML))
		require.NoError(t, err)

		assert.Equal(t, "bot123:token", cfg.Bot.Token)
		assert.Equal(t, 30, cfg.Bot.UpdateTimeoutSeconds)
		require.Len(t, cfg.Bot.FAQ, 2)
		assert.Equal(t, "Что ты умеешь?", cfg.Bot.FAQ[0].Question)

		assert.Equal(t, 90, cfg.Pager.TimeoutSeconds)
		assert.Equal(t, 10, cfg.Pager.JumpReplyTimeoutSeconds)
		assert.Equal(t, 5, cfg.Pager.JumpMinPages)
		assert.Equal(t, "Страница {page} из {count}", cfg.Pager.FooterFormat)
		assert.Equal(t, "Стоп", cfg.Pager.Labels.Stop)
		assert.Empty(t, cfg.Pager.Labels.Next)

		assert.Equal(t, "127.0.0.1:8081", cfg.Server.Address())
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)

		require.NoError(t, cfg.Validate())
	})

	t.Run("defaults are applied", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, minimalYAML))
		require.NoError(t, err)

		assert.Equal(t, DefaultUpdateTimeoutSeconds, cfg.Bot.UpdateTimeoutSeconds)
		assert.Equal(t, DefaultPagerTimeoutSeconds, cfg.Pager.TimeoutSeconds)
		assert.Equal(t, DefaultJumpReplyTimeoutSeconds, cfg.Pager.JumpReplyTimeoutSeconds)
		assert.Equal(t, DefaultJumpMinPages, cfg.Pager.JumpMinPages)
		assert.Equal(t, DefaultFooterFormat, cfg.Pager.FooterFormat)
		assert.Equal(t, DefaultServerPort, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)

		require.NoError(t, cfg.Validate())
	})

	t.Run("env token overrides file", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "bot999:fromenv")
		cfg, err := LoadConfig(writeConfig(t, minimalYAML))
		require.NoError(t, err)
		assert.Equal(t, "bot999:fromenv", cfg.Bot.Token)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})

	t.Run("broken yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "bot: [broken"))
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		cfg, err := LoadConfig(writeConfig(t, fullYAML))
		require.NoError(t, err)
		return cfg
	}

	t.Run("missing token", func(t *testing.T) {
		cfg := valid(t)
		cfg.Bot.Token = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("placeholder token", func(t *testing.T) {
		cfg := valid(t)
		cfg.Bot.Token = "YOUR_TELEGRAM_BOT_TOKEN"
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative pager timeout", func(t *testing.T) {
		cfg := valid(t)
		cfg.Pager.TimeoutSeconds = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero pager timeout disables idle timeout", func(t *testing.T) {
		cfg := valid(t)
		cfg.Pager.TimeoutSeconds = 0
		assert.NoError(t, cfg.Validate())
	})

	t.Run("jump_min_pages below two", func(t *testing.T) {
		cfg := valid(t)
		cfg.Pager.JumpMinPages = 1
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := valid(t)
		cfg.Server.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad logging level", func(t *testing.T) {
		cfg := valid(t)
		cfg.Logging.Level = "trace"
		assert.Error(t, cfg.Validate())
	})
}
