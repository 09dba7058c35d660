package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends for the credential pair.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
	StorageNone   = "none"
)

type MQTTConfig struct {
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"client_id"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	QoS         byte   `mapstructure:"qos"`
}

type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type ScrapeConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type Config struct {
	APIURL      string        `mapstructure:"api_url"`
	StateDir    string        `mapstructure:"state_dir"`
	Storage     string        `mapstructure:"storage"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	LogLevel    string        `mapstructure:"log_level"`
	LogJSON     bool          `mapstructure:"log_json"`
	Capacity    float64       `mapstructure:"capacity"`
	MQTT        MQTTConfig    `mapstructure:"mqtt"`
	Watch       WatchConfig   `mapstructure:"watch"`
	Scrape      ScrapeConfig  `mapstructure:"scrape"`
}

// Overrides carries values from command-line flags; empty fields are ignored.
type Overrides struct {
	ConfigFile string
	APIURL     string
	StateDir   string
	Storage    string
	LogLevel   string
}

// Load layers defaults, the YAML config file, a .env file, POOLWATCH_*
// environment variables and finally flag overrides.
func Load(o Overrides) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("POOLWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	stateDir := o.StateDir
	if stateDir == "" {
		stateDir = v.GetString("state_dir")
	}
	if o.ConfigFile != "" {
		v.SetConfigFile(o.ConfigFile)
	} else {
		v.AddConfigPath(stateDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.ConfigFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	for key, val := range map[string]string{
		"api_url":   o.APIURL,
		"state_dir": o.StateDir,
		"storage":   o.Storage,
		"log_level": o.LogLevel,
	} {
		if val != "" {
			v.Set(key, val)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	switch c.Storage {
	case StorageFile, StorageSQLite, StorageMemory, StorageNone:
	default:
		return fmt.Errorf("unknown storage %q: want file|sqlite|memory|none", c.Storage)
	}
	if c.StateDir == "" && (c.Storage == StorageFile || c.Storage == StorageSQLite) {
		return fmt.Errorf("state_dir is required for %s storage", c.Storage)
	}
	return nil
}

func (c Config) CredentialsPath() string {
	return filepath.Join(c.StateDir, "credentials.json")
}

func (c Config) DBPath() string {
	return filepath.Join(c.StateDir, "poolwatch.db")
}

func (c Config) LogPath() string {
	return filepath.Join(c.StateDir, "poolwatch.log")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "http://localhost:8000")
	v.SetDefault("state_dir", defaultStateDir())
	v.SetDefault("storage", StorageFile)
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
	v.SetDefault("capacity", 100.0)

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "poolwatch")
	v.SetDefault("mqtt.topic_prefix", "poolwatch")
	v.SetDefault("mqtt.qos", 0)

	v.SetDefault("watch.interval", time.Minute)
	v.SetDefault("scrape.interval", 2*time.Second)
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".poolwatch"
	}
	return filepath.Join(home, ".poolwatch")
}
