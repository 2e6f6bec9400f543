package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
	TMDB     TMDBConfig
	Gemini   GeminiConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	AllowedOrigins []string
}

type CatalogConfig struct {
	Source string
	Path   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type TMDBConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Timeout      time.Duration
	CBFailures   uint32
	CBTimeout    time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	RPS     int
}

type ChatConfig struct {
	RatePerSec     float64
	RateBurst      int
	TrustedProxies []netip.Prefix
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "cinema-chat")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("CATALOG_SOURCE", CatalogSourceFile)
	viper.SetDefault("CATALOG_PATH", "data/movies.json")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p")
	viper.SetDefault("TMDB_TIMEOUT", "5s")
	viper.SetDefault("TMDB_CB_FAILURES", 5)
	viper.SetDefault("TMDB_CB_TIMEOUT", "30s")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_TIMEOUT", "20s")
	viper.SetDefault("GEMINI_RPS", 2)
	viper.SetDefault("CHAT_RATE_PER_SEC", 1.0)
	viper.SetDefault("CHAT_RATE_BURST", 5)
	viper.SetDefault("CHAT_TRUSTED_PROXIES", "")

	viper.AutomaticEnv()

	// .env is optional, the environment alone is enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Catalog: CatalogConfig{
			Source: strings.ToLower(viper.GetString("CATALOG_SOURCE")),
			Path:   viper.GetString("CATALOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		TMDB: TMDBConfig{
			APIKey:       viper.GetString("TMDB_API_KEY"),
			BaseURL:      viper.GetString("TMDB_BASE_URL"),
			ImageBaseURL: viper.GetString("TMDB_IMAGE_BASE_URL"),
			Timeout:      viper.GetDuration("TMDB_TIMEOUT"),
			CBFailures:   viper.GetUint32("TMDB_CB_FAILURES"),
			CBTimeout:    viper.GetDuration("TMDB_CB_TIMEOUT"),
		},
		Gemini: GeminiConfig{
			APIKey:  viper.GetString("GOOGLE_API_KEY"),
			Model:   viper.GetString("GEMINI_MODEL"),
			Timeout: viper.GetDuration("GEMINI_TIMEOUT"),
			RPS:     viper.GetInt("GEMINI_RPS"),
		},
		Chat: ChatConfig{
			RatePerSec: viper.GetFloat64("CHAT_RATE_PER_SEC"),
			RateBurst:  viper.GetInt("CHAT_RATE_BURST"),
		},
	}

	proxies, err := parsePrefixes(viper.GetString("CHAT_TRUSTED_PROXIES"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHAT_TRUSTED_PROXIES: %w", err)
	}
	config.Chat.TrustedProxies = proxies

	switch config.Catalog.Source {
	case CatalogSourceFile, CatalogSourcePostgres:
	default:
		return nil, errors.New("invalid CATALOG_SOURCE: " + config.Catalog.Source)
	}

	return config, nil
}

// splitList turns "a, b,,c" into [a b c]; an empty value means wildcard.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// parsePrefixes reads a comma separated list of CIDRs or bare addresses
func parsePrefixes(raw string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, part := range strings.Split(raw, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		if strings.Contains(p, "/") {
			prefix, err := netip.ParsePrefix(p)
			if err != nil {
				return nil, err
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(p)
		if err != nil {
			return nil, err
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
