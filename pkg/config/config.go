package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultSMTPPort is the submission port used when SMTP_PORT is unset.
	DefaultSMTPPort = 587
	// DefaultListenPort is the HTTP listen port used when PORT is unset.
	DefaultListenPort = 3030
)

// defaultOrigins are always allowed regardless of environment overrides.
var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3001",
	"http://localhost:3000",
}

type Server struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type Mail struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	AdminMail string `yaml:"adminMail"`
}

type Telegram struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatID"`
}

// Config is built once at startup and passed read-only into every component.
type Config struct {
	Server   Server   `yaml:"server"`
	Mail     Mail     `yaml:"mail"`
	Telegram Telegram `yaml:"telegram"`
}

// Configured reports whether both the bot token and chat id are set.
// Absence soft-disables outbound notifications.
func (t Telegram) Configured() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// ListenAddress returns the HTTP listen address derived from the port.
func (s Server) ListenAddress() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Load builds the configuration from, in increasing precedence:
// an optional YAML config file, a .env file in the working directory,
// and process environment variables.
//
// The config file path defaults to "./config.yaml" and can be overridden
// via the CONTACT_CONFIG_PATH environment variable; a missing file is not
// an error.
func Load(configPath ...string) (Config, error) {
	var path string
	if len(configPath) > 0 && configPath[0] != "" {
		path = configPath[0]
	} else if p := os.Getenv("CONTACT_CONFIG_PATH"); p != "" {
		path = p
	} else {
		path = "./config.yaml"
	}

	var config Config

	if content, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(content, &config); err != nil {
			return config, fmt.Errorf("error unmarshaling YAML %s: %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		return config, fmt.Errorf("trying to open config file %s: %v", path, err)
	}

	// .env values become environment variables unless already set.
	_ = godotenv.Load()

	config.applyEnv()
	config.applyDefaults()
	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.Mail.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		c.Mail.Port = atoiOrZero(v)
	}
	if v := os.Getenv("EMAIL_USER"); v != "" {
		c.Mail.User = v
	}
	if v := os.Getenv("EMAIL_PASS"); v != "" {
		c.Mail.Password = v
	}
	if v := os.Getenv("ADMIN_MAIL"); v != "" {
		c.Mail.AdminMail = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = atoiOrZero(v)
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}

	for _, key := range []string{
		"CORS_FRONTEND_URL",
		"CORS_FRONTEND_URL_2",
		"CORS_SECONDARY_URL",
		"CORS_SECONDARY_URL_2",
		"CORS_DEV_URL",
	} {
		if origin := strings.TrimSpace(os.Getenv(key)); origin != "" {
			c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, origin)
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Mail.Port == 0 {
		c.Mail.Port = DefaultSMTPPort
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultListenPort
	}
	c.Server.AllowedOrigins = mergeOrigins(defaultOrigins, c.Server.AllowedOrigins)
}

// mergeOrigins prepends the built-in origins and drops duplicates and blanks,
// preserving order.
func mergeOrigins(defaults, extra []string) []string {
	seen := make(map[string]struct{}, len(defaults)+len(extra))
	merged := make([]string, 0, len(defaults)+len(extra))
	for _, origin := range append(append([]string{}, defaults...), extra...) {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if _, ok := seen[origin]; ok {
			continue
		}
		seen[origin] = struct{}{}
		merged = append(merged, origin)
	}
	return merged
}

// atoiOrZero parses a port value, falling back to zero (and therefore the
// default) on malformed input.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
