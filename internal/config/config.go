package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type API struct {
	BaseURL string        `yaml:"base_url" env:"API_BASE" env-required:"true"`
	Path    string        `yaml:"path" env:"API_PATH" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"10s"`
}

type Session struct {
	CookiePath string `yaml:"cookie_path" env:"SESSION_COOKIE_PATH" env-default:".hexsession"`
}

type Config struct {
	Env         string  `yaml:"env" env:"ENV" env-default:"local"`
	MetricsAddr string  `yaml:"metrics_addr" env:"METRICS_ADDR" env-default:""`
	API         API     `yaml:"api"`
	Session     Session `yaml:"session"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {

			log.Fatal("Config path is not set")

		}

	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
