package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`

	// BaseURL is the public origin viewer URLs are built from.
	BaseURL        string   `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:4001"`
	AllowedOrigins []string `yaml:"allowed_origins" env-default:"http://localhost:3000,http://localhost:5173"`

	// History backend: "file" (default) or "mysql".
	HistoryBackend string `yaml:"history_backend" env-default:"file"`
	HistoryPath    string `yaml:"history_path" env-default:"qr_history.json"`
	HistoryLimit   int    `yaml:"history_limit" env-default:"50"`
	MySQLDSN       string `yaml:"mysql_dsn" env:"MYSQL_DSN"`

	AdminLogin string `yaml:"admin_login" env-default:"admin"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS" env-default:"1922K1396s*"`

	GenAIKey   string `yaml:"genai_key" env:"GENAI_API_KEY"`
	GenAIModel string `yaml:"genai_model" env-default:"gemini-2.0-flash"`

	// OverflowLimit is the serialized-text size in characters past which
	// summarization kicks in. QRSize/QRLevel tune the rendered symbol.
	OverflowLimit int    `yaml:"overflow_limit" env-default:"2000"`
	QRSize        int    `yaml:"qr_size" env-default:"300"`
	QRLevel       string `yaml:"qr_level" env-default:"medium"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// No config file: run on env vars and defaults alone.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from env: %s", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
