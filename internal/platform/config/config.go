package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del proceso.
// Se construye una vez en main y se inyecta; el dominio nunca lee env directamente.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	AI      AIConfig      `mapstructure:"ai"`
}

type AppConfig struct {
	Name      string `mapstructure:"name"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DBConfig: driver = memory | postgres | sqlite.
type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type CatalogConfig struct {
	// SeedFile es un YAML con alimentos y razas. Vacío = catálogo embebido
	// (en postgres, vacío = no tocar el catálogo existente).
	SeedFile string `mapstructure:"seed_file"`
}

// AIConfig: provider = gemini | openai.
type AIConfig struct {
	Provider      string        `mapstructure:"provider"`
	GeminiAPIKey  string        `mapstructure:"gemini_api_key"`
	OpenAIAPIKey  string        `mapstructure:"openai_api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	PrimaryModel  string        `mapstructure:"primary_model"`
	FallbackModel string        `mapstructure:"fallback_model"`
	Temperature   float64       `mapstructure:"temperature"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// APIKey devuelve la credencial del proveedor seleccionado.
func (c AIConfig) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return strings.TrimSpace(c.OpenAIAPIKey)
	}
	return strings.TrimSpace(c.GeminiAPIKey)
}

// envBindings mapea keys de config a los nombres de env históricos del servicio.
var envBindings = map[string]string{
	"app.name":          "APP_NAME",
	"app.log_level":     "LOG_LEVEL",
	"app.log_format":    "LOG_FORMAT",
	"server.port":       "PORT",
	"db.driver":         "DB_DRIVER",
	"db.dsn":            "DB_DSN",
	"catalog.seed_file": "CATALOG_SEED_FILE",
	"ai.provider":       "AI_PROVIDER",
	"ai.gemini_api_key": "GEMINI_API_KEY",
	"ai.openai_api_key": "OPENAI_API_KEY",
	"ai.base_url":       "AI_BASE_URL",
	"ai.primary_model":  "AI_PRIMARY_MODEL",
	"ai.fallback_model": "AI_FALLBACK_MODEL",
	"ai.temperature":    "AI_TEMPERATURE",
	"ai.timeout":        "AI_TIMEOUT",
}

// Load lee config.yaml (opcional) + env. path vacío = busca ./config.yaml.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Sin archivo está bien (defaults + env), salvo que se haya pedido uno explícito.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pet-diet-planner")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "text")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "5s")
	// la generación espera al modelo (primario + fallback)
	v.SetDefault("server.write_timeout", "90s")

	v.SetDefault("db.driver", "memory")

	v.SetDefault("ai.provider", ProviderGemini)
	v.SetDefault("ai.primary_model", "gemini-2.5-flash")
	v.SetDefault("ai.fallback_model", "gemini-2.0-flash")
	v.SetDefault("ai.temperature", 0.2)
	v.SetDefault("ai.timeout", "30s")
}

func (c *Config) normalize() {
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))

	// Si el proveedor es openai y los modelos siguen en default de gemini, usar defaults openai.
	if c.AI.Provider == ProviderOpenAI {
		if strings.HasPrefix(c.AI.PrimaryModel, "gemini") {
			c.AI.PrimaryModel = "gpt-4o-mini"
		}
		if strings.HasPrefix(c.AI.FallbackModel, "gemini") {
			c.AI.FallbackModel = "gpt-4o"
		}
	}
}

// Validate no exige la API key: su ausencia se reporta como ConfigurationError
// recién al generar, para que el resto del servicio pueda levantar.
func (c Config) Validate() error {
	switch c.DB.Driver {
	case "memory", "postgres", "sqlite":
	default:
		return fmt.Errorf("config: db.driver must be memory|postgres|sqlite, got %q", c.DB.Driver)
	}
	if c.DB.Driver != "memory" && strings.TrimSpace(c.DB.DSN) == "" {
		return fmt.Errorf("config: db.dsn is required for driver %s", c.DB.Driver)
	}
	switch c.AI.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("config: ai.provider must be gemini|openai, got %q", c.AI.Provider)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port out of range: %d", c.Server.Port)
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("config: ai.temperature out of range: %v", c.AI.Temperature)
	}
	return nil
}
