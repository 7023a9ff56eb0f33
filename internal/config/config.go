// Package config resolves the configuration directory and the settings
// loaded from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "ntask"

	// EnvFile is the dotenv filename looked up in the config directory
	// and in the working directory.
	EnvFile = ".env"

	// DefaultNotionBaseURL is the Notion API root.
	DefaultNotionBaseURL = "https://api.notion.com/v1"

	// DefaultNotionVersion is the Notion-Version header value.
	DefaultNotionVersion = "2022-06-28"

	// DefaultLLMBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultLLMBaseURL = "https://api.groq.com/openai/v1/"

	// DefaultLLMModel is the chat model used by the agent.
	DefaultLLMModel = "meta-llama/llama-4-scout-17b-16e-instruct"
)

// Environment variable names.
const (
	EnvNotionKey       = "NOTION_KEY"
	EnvDatabaseID      = "DATABASE_ID"
	EnvMediaDatabaseID = "IMAGE_DUMP_PAGE_ID"
	EnvNotionBaseURL   = "NOTION_BASE_URL"
	EnvNotionVersion   = "NOTION_VERSION"
	EnvLLMAPIKey       = "GROQ_API_KEY"
	EnvLLMBaseURL      = "LLM_BASE_URL"
	EnvLLMModel        = "LLM_MODEL"
	EnvTelegramToken   = "TELEGRAM_BOT_TOKEN"
	EnvDebug           = "NTASK_DEBUG"
)

// ErrMissingSetting is wrapped by the Require* methods.
var ErrMissingSetting = errors.New("missing setting")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	Notion   NotionConfig
	LLM      LLMConfig
	Telegram TelegramConfig
}

// NotionConfig holds the store credentials and endpoints.
type NotionConfig struct {
	Token           string
	DatabaseID      string
	MediaDatabaseID string
	BaseURL         string
	Version         string
}

// LLMConfig holds the chat completion endpoint settings.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// TelegramConfig holds the bot token.
type TelegramConfig struct {
	BotToken string
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/ntask or $HOME/.config/ntask.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EnvPath returns the path to the .env file in the config directory.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// HasEnvFile checks if the config directory holds a .env file.
func (c *Config) HasEnvFile() bool {
	_, err := os.Stat(c.EnvPath())
	return err == nil
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// ReadEnvFile returns the settings saved in the config directory's .env.
// A missing file yields an empty map.
func (c *Config) ReadEnvFile() (map[string]string, error) {
	vals, err := godotenv.Read(c.EnvPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", c.EnvPath(), err)
	}
	return vals, nil
}

// WriteEnvFile replaces the config directory's .env with vals.
// The file is written with mode 0600.
func (c *Config) WriteEnvFile(vals map[string]string) error {
	content, err := godotenv.Marshal(vals)
	if err != nil {
		return err
	}
	return os.WriteFile(c.EnvPath(), []byte(content+"\n"), 0600)
}

// RemoveEnvFile deletes the config directory's .env.
func (c *Config) RemoveEnvFile() error {
	return os.Remove(c.EnvPath())
}

// Load fills the settings. Process environment wins over .env files;
// the config directory's .env wins over the working directory's.
func (c *Config) Load() error {
	return c.LoadFrom(os.Getenv, c.EnvPath(), EnvFile)
}

// LoadFrom fills the settings from getenv and the given dotenv files.
// Missing files are skipped.
func (c *Config) LoadFrom(getenv func(string) string, envFiles ...string) error {
	fileVals := make(map[string]string)
	// Later files have lower precedence, so read them first.
	for i := len(envFiles) - 1; i >= 0; i-- {
		vals, err := godotenv.Read(envFiles[i])
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to read %s: %w", envFiles[i], err)
		}
		for k, v := range vals {
			fileVals[k] = v
		}
	}

	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		if v := fileVals[key]; v != "" {
			return v
		}
		return fallback
	}

	c.Notion = NotionConfig{
		Token:           get(EnvNotionKey, ""),
		DatabaseID:      get(EnvDatabaseID, ""),
		MediaDatabaseID: get(EnvMediaDatabaseID, ""),
		BaseURL:         get(EnvNotionBaseURL, DefaultNotionBaseURL),
		Version:         get(EnvNotionVersion, DefaultNotionVersion),
	}
	c.LLM = LLMConfig{
		APIKey:  get(EnvLLMAPIKey, ""),
		BaseURL: get(EnvLLMBaseURL, DefaultLLMBaseURL),
		Model:   get(EnvLLMModel, DefaultLLMModel),
	}
	c.Telegram = TelegramConfig{
		BotToken: get(EnvTelegramToken, ""),
	}
	if get(EnvDebug, "") != "" {
		c.Debug = true
	}
	return nil
}

// RequireNotion checks the settings needed to reach the task database.
func (c *Config) RequireNotion() error {
	if c.Notion.Token == "" {
		return fmt.Errorf("%w: %s", ErrMissingSetting, EnvNotionKey)
	}
	if c.Notion.DatabaseID == "" {
		return fmt.Errorf("%w: %s", ErrMissingSetting, EnvDatabaseID)
	}
	return nil
}

// RequireLLM checks the settings needed by the chat agent.
func (c *Config) RequireLLM() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w: %s", ErrMissingSetting, EnvLLMAPIKey)
	}
	return nil
}

// RequireTelegram checks the settings needed by the bot.
func (c *Config) RequireTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("%w: %s", ErrMissingSetting, EnvTelegramToken)
	}
	return nil
}
