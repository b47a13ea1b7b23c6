// Package config предоставляет управление конфигурацией бота.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// BotConfig содержит конфигурацию Telegram-бота.
type BotConfig struct {
	Token                string     `yaml:"token"`
	UpdateTimeoutSeconds int        `yaml:"update_timeout_seconds"`
	FAQ                  []FAQEntry `yaml:"faq"`
}

// FAQEntry — одна страница встроенной команды /faq.
type FAQEntry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// PagerLabels задает подписи кнопок навигации. Пустые значения заменяются
// стандартными подписями.
type PagerLabels struct {
	First string `yaml:"first"`
	Back  string `yaml:"back"`
	Next  string `yaml:"next"`
	Last  string `yaml:"last"`
	Stop  string `yaml:"stop"`
	Jump  string `yaml:"jump"`
}

// PagerConfig содержит конфигурацию сессий пагинации.
type PagerConfig struct {
	// TimeoutSeconds — время простоя до автозавершения сессии.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// JumpReplyTimeoutSeconds — сколько ждать ответа с номером страницы.
	JumpReplyTimeoutSeconds int `yaml:"jump_reply_timeout_seconds"`
	// JumpMinPages — минимум страниц, при котором предлагается переход
	// по номеру.
	JumpMinPages int         `yaml:"jump_min_pages"`
	FooterFormat string      `yaml:"footer_format"`
	Labels       PagerLabels `yaml:"labels"`
}

// ServerConfig содержит конфигурацию статусного HTTP-сервера.
type ServerConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

// LoggingConfig содержит конфигурацию логирования.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Config содержит конфигурацию приложения целиком.
type Config struct {
	Bot     BotConfig     `yaml:"bot"`
	Pager   PagerConfig   `yaml:"pager"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoadConfig загружает конфигурацию из YAML-файла. Переменные окружения
// (в том числе из .env файла) перекрывают токен: в репозитории его не
// хранят.
func LoadConfig(filename string) (*Config, error) {
	// Отсутствие .env файла — это нормально.
	_ = godotenv.Load()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if token := os.Getenv("BOT_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults устанавливает значения по умолчанию для незаданных полей.
func (c *Config) applyDefaults() {
	if c.Bot.UpdateTimeoutSeconds == 0 {
		c.Bot.UpdateTimeoutSeconds = DefaultUpdateTimeoutSeconds
	}
	if c.Pager.TimeoutSeconds == 0 {
		c.Pager.TimeoutSeconds = DefaultPagerTimeoutSeconds
	}
	if c.Pager.JumpReplyTimeoutSeconds == 0 {
		c.Pager.JumpReplyTimeoutSeconds = DefaultJumpReplyTimeoutSeconds
	}
	if c.Pager.JumpMinPages == 0 {
		c.Pager.JumpMinPages = DefaultJumpMinPages
	}
	if c.Pager.FooterFormat == "" {
		c.Pager.FooterFormat = DefaultFooterFormat
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultServerHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = DefaultShutdownTimeoutSeconds
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// Address возвращает адрес статусного сервера в формате "host:port".
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate проверяет корректность конфигурации.
func (c *Config) Validate() error {
	if c.Bot.Token == "" || c.Bot.Token == "YOUR_TELEGRAM_BOT_TOKEN" {
		return fmt.Errorf("bot.token is not configured")
	}
	if c.Bot.UpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("bot.update_timeout_seconds must be positive")
	}
	if c.Pager.TimeoutSeconds < 0 {
		return fmt.Errorf("pager.timeout_seconds must be non-negative")
	}
	if c.Pager.JumpReplyTimeoutSeconds <= 0 {
		return fmt.Errorf("pager.jump_reply_timeout_seconds must be positive")
	}
	if c.Pager.JumpMinPages < 2 {
		return fmt.Errorf("pager.jump_min_pages must be at least 2")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port number (1-65535)")
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("server.shutdown_timeout_seconds must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be one of: json, text")
	}
	return nil
}
