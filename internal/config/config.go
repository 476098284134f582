package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 4100
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "aiinasia"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisURL   = "redis://localhost:6379/0"
	defaultAIModel    = "claude-sonnet-4-20250514"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	DSN            string         `yaml:"dsn"` // MySQL DSN, overrides database block
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	JWTSecret      string         `yaml:"jwt_secret"`
	SiteURL        string         `yaml:"site_url"`
	AI             AIConfig       `yaml:"ai"`
}

type DatabaseConfig struct {
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"`
	Charset  string            `yaml:"charset"`
	Loc      string            `yaml:"loc"`
	Params   map[string]string `yaml:"params"`
}

// AIConfig configures the Anthropic-backed comment generator.
type AIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Load reads and normalizes the YAML config file. A missing file yields the
// defaults so development can start without one.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && path == DefaultConfigPath:
		// defaults only
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = defaultEnv
	}
	if strings.TrimSpace(c.RedisURL) == "" {
		c.RedisURL = defaultRedisURL
	}
	if strings.TrimSpace(c.AI.Model) == "" {
		c.AI.Model = defaultAIModel
	}
}

func (c *AppConfig) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("AIA_DSN")); v != "" {
		c.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("AIA_REDIS_URL")); v != "" {
		c.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("AIA_JWT_SECRET")); v != "" {
		c.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" && c.AI.APIKey == "" {
		c.AI.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("AIA_PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Port = port
		}
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

// DSNValue assembles the MySQL DSN, preferring an explicit dsn value.
func (c *AppConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	db := c.Database
	host := orDefault(db.Host, defaultDBHost)
	port := db.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := orDefault(db.User, defaultDBUser)
	password := orDefault(db.Password, defaultDBPassword)
	name := orDefault(db.Name, defaultDBName)
	charset := orDefault(db.Charset, defaultDBCharset)
	loc := orDefault(db.Loc, defaultDBLoc)

	params := neturl.Values{}
	params.Set("charset", charset)
	params.Set("parseTime", "True")
	params.Set("loc", loc)
	for key, value := range db.Params {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			params.Set(k, v)
		}
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s", user, password, addr, name, params.Encode())
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
