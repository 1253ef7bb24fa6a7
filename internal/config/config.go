package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Server is the relay configuration.
type Server struct {
	Port              string        `validate:"required,numeric"`
	RasaURL           string        `validate:"required,url"`
	RasaTimeout       time.Duration `validate:"gt=0"`
	RasaStatusTimeout time.Duration `validate:"gt=0"`
	ConversationLimit int           `validate:"gte=1"`
	CORSOrigins       []string      `validate:"min=1"`
	GinMode           string        `validate:"omitempty,oneof=debug release test"`
	Log               Log
}

// Client is the terminal front-end configuration.
type Client struct {
	ServerURL      string        `validate:"required,url"`
	RequestTimeout time.Duration `validate:"gt=0"`
	StatusInterval time.Duration `validate:"gt=0"`
	PaymentDelay   time.Duration `validate:"gte=0"`
	Log            Log
}

type Log struct {
	Level  string `validate:"oneof=trace debug info warn error"`
	Format string `validate:"oneof=console json"`
	File   string
}

var validate = validator.New()

// loadEnv reads a .env file outside production. A missing file is fine.
func loadEnv(path string) error {
	if os.Getenv("APP_ENV") == "production" {
		return nil
	}
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadServer reads env (and optional .env) into a validated Server config.
func LoadServer(envPath string) (*Server, error) {
	if err := loadEnv(envPath); err != nil {
		return nil, err
	}

	var errs []error
	cfg := &Server{
		Port:              getString("PORT", "3000"),
		RasaURL:           getString("RASA_SERVER_URL", "http://localhost:5005"),
		RasaTimeout:       getDuration("RASA_TIMEOUT", 30*time.Second, &errs),
		RasaStatusTimeout: getDuration("RASA_STATUS_TIMEOUT", 5*time.Second, &errs),
		ConversationLimit: getInt("CONVERSATION_LIMIT", 50, &errs),
		CORSOrigins:       getList("CORS_ORIGINS", []string{"*"}),
		GinMode:           getString("GIN_MODE", ""),
		Log:               loadLog(),
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}
	return cfg, nil
}

// LoadClient reads env (and optional .env) into a validated Client config.
func LoadClient(envPath string) (*Client, error) {
	if err := loadEnv(envPath); err != nil {
		return nil, err
	}

	var errs []error
	cfg := &Client{
		ServerURL:      getString("CHAT_SERVER_URL", "http://localhost:3000"),
		RequestTimeout: getDuration("CHAT_TIMEOUT", 35*time.Second, &errs),
		StatusInterval: getDuration("STATUS_INTERVAL", 30*time.Second, &errs),
		PaymentDelay:   getDuration("PAYMENT_DELAY", 2*time.Second, &errs),
		Log:            loadLog(),
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}
	return cfg, nil
}

func loadLog() Log {
	return Log{
		Level:  strings.ToLower(getString("LOG_LEVEL", "info")),
		Format: strings.ToLower(getString("LOG_FORMAT", "console")),
		File:   getString("LOG_FILE", ""),
	}
}

// Addr is the listen address for the HTTP server.
func (s *Server) Addr() string {
	return ":" + s.Port
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int, errs *[]error) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
