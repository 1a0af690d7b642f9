package helpers

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/wickstudio/autoresponder/models"
)

// Config holds the bot configuration, read from the environment
type Config struct {
	// Token is the bot token, without the "Bot " prefix
	Token string
	// GuildID is the only guild the commands are registered in and accepted from
	GuildID string
	// RoleID is the role a member needs to add or remove responses
	RoleID string

	ResponseFile string
	Activity     string
	Debug        bool

	LogJSONFile       string
	LogDiscordWebhook string
	SentryDSN         string
	MetricsAddr       string
}

var (
	config      *Config
	configMutex sync.RWMutex
)

// LoadConfig loads $envFiles (missing files are skipped) into the environment,
// builds the config from it and keeps it for GetConfig
func LoadConfig(envFiles ...string) (*Config, error) {
	for _, envFile := range envFiles {
		err := godotenv.Load(envFile)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "loading %s", envFile)
		}
	}

	loaded, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	configMutex.Lock()
	config = loaded
	configMutex.Unlock()

	return loaded, nil
}

// ConfigFromEnv reads and validates the config from the process environment
func ConfigFromEnv() (*Config, error) {
	loaded := &Config{
		Token:             strings.TrimSpace(os.Getenv("TOKEN")),
		GuildID:           strings.TrimSpace(os.Getenv("GUILD_ID")),
		RoleID:            strings.TrimSpace(os.Getenv("ROLE_ID")),
		ResponseFile:      getEnv("RESPONSE_FILE", models.ResponsesFile),
		Activity:          getEnv("BOT_ACTIVITY", "Wick® Studio"),
		Debug:             getEnvBool("DEBUG", false),
		LogJSONFile:       getEnv("LOG_JSONFILE", ""),
		LogDiscordWebhook: getEnv("LOG_DISCORD_WEBHOOK", ""),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		MetricsAddr:       getEnv("METRICS_ADDR", ""),
	}

	if loaded.Token == "" {
		return nil, errors.New("TOKEN is not set")
	}
	if err := validateSnowflake("GUILD_ID", loaded.GuildID); err != nil {
		return nil, err
	}
	if err := validateSnowflake("ROLE_ID", loaded.RoleID); err != nil {
		return nil, err
	}

	return loaded, nil
}

// GetConfig is a config getter
func GetConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if config == nil {
		panic(errors.New("Tried to get config before helpers#LoadConfig() was called"))
	}

	return config
}

func validateSnowflake(key, value string) error {
	if value == "" {
		return errors.Errorf("%s is not set", key)
	}
	if _, err := strconv.ParseUint(value, 10, 64); err != nil {
		return errors.Errorf("%s must be a numeric discord id, got %q", key, value)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
