package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EndpointStudents     = "STUDENTS"
	EndpointMothers      = "MOTHERS"
	EndpointFathers      = "FATHERS"
	EndpointObservations = "OBSERVATIONS"
	EndpointInfo         = "INFO"
)

type Config struct {
	UserToken           string
	APIBase             string
	Endpoints           map[string]string
	ReadSuffix          string
	Timeout             time.Duration
	RetryDelay          time.Duration
	MaxRetries          int
	DebounceDelay       time.Duration
	PageSize            int
	ListenAddr          string
	SpreadsheetID       string
	CredentialsFilePath string
	SheetName           string
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		APIBase: "http://localhost:8080",
		Endpoints: map[string]string{
			EndpointStudents:     "/alunos",
			EndpointMothers:      "/maes",
			EndpointFathers:      "/pais",
			EndpointObservations: "/observacoes",
			EndpointInfo:         "/info",
		},
		Timeout:       10 * time.Second,
		RetryDelay:    2000 * time.Millisecond,
		MaxRetries:    0,
		DebounceDelay: 300 * time.Millisecond,
		PageSize:      50,
		ListenAddr:    ":3000",
		SheetName:     "Pré-matrículas",
	}
}

// Load reads .env (when present) and the process environment on top of
// Default.
func Load() (*Config, error) {
	fmt.Println("Initializing configuration...")
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
		log.Println("Loaded .env file successfully")
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error checking .env file: %w", err)
	}

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	def := Default()

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("API_BASE", def.APIBase)
	v.SetDefault("USER_TOKEN", "")
	v.SetDefault("READ_SUFFIX", "")
	v.SetDefault("HTTP_TIMEOUT", def.Timeout)
	v.SetDefault("RETRY_DELAY", def.RetryDelay)
	v.SetDefault("MAX_RETRIES", def.MaxRetries)
	v.SetDefault("DEBOUNCE_DELAY", def.DebounceDelay)
	v.SetDefault("PAGE_SIZE", def.PageSize)
	v.SetDefault("LISTEN_ADDR", def.ListenAddr)
	v.SetDefault("SPREADSHEET_ID", "")
	v.SetDefault("CREDENTIALS_FILE_PATH", "")
	v.SetDefault("SHEET_NAME", def.SheetName)
	for name, path := range def.Endpoints {
		v.SetDefault("ENDPOINT_"+name, path)
	}
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config out of an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := Default()
	cfg.APIBase = strings.TrimRight(v.GetString("API_BASE"), "/")
	cfg.UserToken = v.GetString("USER_TOKEN")
	cfg.ReadSuffix = v.GetString("READ_SUFFIX")
	cfg.Timeout = v.GetDuration("HTTP_TIMEOUT")
	cfg.RetryDelay = v.GetDuration("RETRY_DELAY")
	cfg.MaxRetries = v.GetInt("MAX_RETRIES")
	cfg.DebounceDelay = v.GetDuration("DEBOUNCE_DELAY")
	cfg.PageSize = v.GetInt("PAGE_SIZE")
	cfg.ListenAddr = v.GetString("LISTEN_ADDR")
	cfg.SpreadsheetID = v.GetString("SPREADSHEET_ID")
	cfg.CredentialsFilePath = v.GetString("CREDENTIALS_FILE_PATH")
	cfg.SheetName = v.GetString("SHEET_NAME")
	for name := range cfg.Endpoints {
		cfg.Endpoints[name] = v.GetString("ENDPOINT_" + name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIBase == "" {
		return fmt.Errorf("API_BASE must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES must not be negative, got %d", c.MaxRetries)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	for name, path := range c.Endpoints {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("ENDPOINT_%s must start with '/', got %q", name, path)
		}
	}
	return nil
}

// ReadPath is the collection path used for full-collection reads.
func (c *Config) ReadPath(name string) string {
	return c.Endpoints[name] + c.ReadSuffix
}
