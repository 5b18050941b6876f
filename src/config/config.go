package config

import (
	"log"
	"os"

	"github.com/thronos-network/thronos-bot/src/data"
	"gorm.io/gorm"
)

type Config struct {
	Token          string
	GuildID        string
	MySQLDSN       string
	RedisURL       string
	APIPort        string
	JWTSecret      string
	ThronosAPIURL  string
	ThronosSiteURL string
}

// Load reads configuration from the settings table with env fallbacks.
func Load(db *gorm.DB) Config {
	settings, err := data.LoadSettings(db)
	if err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	setting := func(name, envKey, def string) string {
		if v := settings[name]; v != "" {
			return v
		}
		return getenv(envKey, def)
	}

	return Config{
		Token:          setting("discord_token", "DISCORD_TOKEN", ""),
		GuildID:        setting("guild_id", "GUILD_ID", ""),
		JWTSecret:      setting("jwt_secret", "JWT_SECRET", ""),
		ThronosAPIURL:  setting("thronos_api_url", "THRONOS_API_URL", "https://thrchain.up.railway.app/api"),
		ThronosSiteURL: setting("thronos_site_url", "THRONOS_SITE_URL", "https://thrchain.up.railway.app"),
		APIPort:        getenv("API_PORT", "8080"),
		MySQLDSN:       getenv("MYSQL_DSN", "thronos:thronos@tcp(127.0.0.1:3306)/thronos"),
		RedisURL:       getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
	}
}

// GetMySQLDSN returns the DSN before the settings table is reachable.
func GetMySQLDSN() string {
	return getenv("MYSQL_DSN", "thronos:thronos@tcp(127.0.0.1:3306)/thronos")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
