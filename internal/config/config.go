package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. RIDESHARE_DATA_PATH
const EnvPrefix = "RIDESHARE"

// Config holds application configuration
type Config struct {
	Port string `mapstructure:"port"`

	DataPath            string `mapstructure:"data_path"`
	DemandPath          string `mapstructure:"demand_path"`
	CachePath           string `mapstructure:"cache_path"`
	PreferCache         bool   `mapstructure:"prefer_cache"`
	LargeGroupThreshold int    `mapstructure:"large_group_threshold"`
	TimestampLayout     string `mapstructure:"timestamp_layout"`
	HotspotsFile        string `mapstructure:"hotspots_file"`

	AllowedOrigins []string `mapstructure:"allowed_origins"`

	LLMProvider     string        `mapstructure:"llm_provider"`
	LLMModel        string        `mapstructure:"llm_model"`
	LLMBaseURL      string        `mapstructure:"llm_base_url"`
	OpenAIAPIKey    string        `mapstructure:"openai_api_key"`
	AnthropicAPIKey string        `mapstructure:"anthropic_api_key"`
	LLMTimeout      time.Duration `mapstructure:"llm_timeout"`
	LLMMaxTokens    int           `mapstructure:"llm_max_tokens"`
	ExplainCacheTTL time.Duration `mapstructure:"explain_cache_ttl"`

	RateLimit  int           `mapstructure:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window"`

	Verbose bool `mapstructure:"verbose"`
}

var providers = []string{"openai", "anthropic", "none"}

// Load loads configuration from defaults, an optional config file, a .env
// file and the environment. Precedence: env > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", ":8000")
	v.SetDefault("data_path", "data/rides_processed_new.csv")
	v.SetDefault("demand_path", "")
	v.SetDefault("cache_path", "")
	v.SetDefault("prefer_cache", false)
	v.SetDefault("large_group_threshold", 6)
	v.SetDefault("timestamp_layout", "1/2/2006 15:04")
	v.SetDefault("hotspots_file", "")
	v.SetDefault("allowed_origins", []string{"http://localhost:3000", "https://rideshareai.vercel.app"})
	v.SetDefault("llm_provider", "openai")
	v.SetDefault("llm_model", "")
	v.SetDefault("llm_base_url", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("anthropic_api_key", "")
	v.SetDefault("llm_timeout", 30*time.Second)
	v.SetDefault("llm_max_tokens", 1024)
	v.SetDefault("explain_cache_ttl", 10*time.Minute)
	v.SetDefault("rate_limit", 30)
	v.SetDefault("rate_window", time.Minute)
	v.SetDefault("verbose", false)

	// provider keys are also read from their conventional names
	for key, env := range map[string]string{
		"openai_api_key":    "OPENAI_API_KEY",
		"anthropic_api_key": "ANTHROPIC_API_KEY",
		"port":              "PORT",
	} {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.normalize()
	return &c, nil
}

func (c *Config) normalize() {
	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	if c.Port != "" && !strings.Contains(c.Port, ":") {
		c.Port = ":" + c.Port
	}
	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.DataPath == "" && !(c.PreferCache && c.CachePath != "") {
		errs = append(errs, errors.New("data_path is required"))
	}
	if c.LargeGroupThreshold <= 0 {
		errs = append(errs, fmt.Errorf("large_group_threshold must be positive, got %d", c.LargeGroupThreshold))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, fmt.Errorf("llm_timeout must be positive, got %s", c.LLMTimeout))
	}
	if c.RateLimit <= 0 || c.RateWindow <= 0 {
		errs = append(errs, errors.New("rate_limit and rate_window must be positive"))
	}
	known := false
	for _, p := range providers {
		if c.LLMProvider == p {
			known = true
		}
	}
	if !known {
		errs = append(errs, fmt.Errorf("unknown llm_provider %q", c.LLMProvider))
	}
	for _, o := range c.AllowedOrigins {
		if err := validateOrigin(o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// validateOrigin accepts "*" or a scheme://host[:port] origin over http or https
func validateOrigin(origin string) error {
	if origin == "*" {
		return nil
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || strings.Contains(u.Host, "*") ||
		u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("allowed_origins: %q must be \"*\" or an http(s) origin such as http://localhost:3000", origin)
	}
	return nil
}

// APIKey returns the key for the configured provider
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "openai":
		return c.OpenAIAPIKey
	default:
		return ""
	}
}
