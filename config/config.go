package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	"gopkg.in/yaml.v2"
)

const (
	BrokerSQS   = "sqs"
	BrokerRedis = "redis"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Broker                string        `yaml:"broker"`
	Aws                   *AWSsqsConfig `yaml:"aws"`
	Redis                 *RedisConfig  `yaml:"redis"`
	LogFilePath           string        `yaml:"logFile"`
	LogLevel              string        `yaml:"logLevel"`
	ClientsInputPath      string        `yaml:"clientsInputPath"`
	ServerWaitTimeSeconds int64         `yaml:"serverWaitTimeSeconds"`
	Shards                int           `yaml:"shards"`
	ClientIdleSeconds     int           `yaml:"clientIdleSeconds"`
}

type AWSsqsConfig struct {
	QueueUrl     string `yaml:"url"`
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	ClientId     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	ClientToken  string `yaml:"clientToken"`
}

type RedisConfig struct {
	Addr         string `yaml:"addr"`
	Password     string `yaml:"password"`
	DB           int    `yaml:"db"`
	Key          string `yaml:"key"`
	MaxRetries   int    `yaml:"maxRetries"`
	BlockSeconds int    `yaml:"blockSeconds"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	// Substitute from environmental vars
	confContent := []byte(os.ExpandEnv(string(data)))

	config := &Config{}

	err = yaml.Unmarshal(confContent, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Broker == "" {
		cfg.Broker = BrokerSQS
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ServerWaitTimeSeconds == 0 {
		cfg.ServerWaitTimeSeconds = 20
	}
	if cfg.Shards == 0 {
		cfg.Shards = 16
	}
	if cfg.ClientIdleSeconds == 0 {
		cfg.ClientIdleSeconds = 10
	}
	if cfg.Redis != nil {
		if cfg.Redis.Addr == "" {
			cfg.Redis.Addr = "localhost:6379"
		}
		if cfg.Redis.Key == "" {
			cfg.Redis.Key = "listqueue:items"
		}
		if cfg.Redis.MaxRetries == 0 {
			cfg.Redis.MaxRetries = 3
		}
		if cfg.Redis.BlockSeconds == 0 {
			cfg.Redis.BlockSeconds = 5
		}
	}
}

func (c *Config) Validate() error {
	switch c.Broker {
	case BrokerSQS:
		if c.Aws == nil || c.Aws.QueueUrl == "" {
			return fmt.Errorf("%w: aws.url is required for the sqs broker", ErrInvalid)
		}
		if c.Aws.Region == "" {
			return fmt.Errorf("%w: aws.region is required for the sqs broker", ErrInvalid)
		}
	case BrokerRedis:
		if c.Redis == nil {
			return fmt.Errorf("%w: redis section is required for the redis broker", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unsupported broker %q", ErrInvalid, c.Broker)
	}

	if _, err := log15.LvlFromString(c.LogLevel); err != nil {
		return fmt.Errorf("%w: logLevel: %v", ErrInvalid, err)
	}
	if c.ServerWaitTimeSeconds < 0 || c.ServerWaitTimeSeconds > 20 {
		return fmt.Errorf("%w: serverWaitTimeSeconds must be within 0..20", ErrInvalid)
	}
	if c.Shards < 0 {
		return fmt.Errorf("%w: negative shards", ErrInvalid)
	}
	if c.ClientIdleSeconds < 0 {
		return fmt.Errorf("%w: negative clientIdleSeconds", ErrInvalid)
	}

	return nil
}
