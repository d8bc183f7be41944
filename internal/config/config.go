package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost         = "server.veloren.net"
	DefaultPort         = 14004
	DefaultUsername     = "veloren_user"
	DefaultViewDistance = 12
	DefaultTPS          = 60
)

// Config is the client configuration. Defaults are overlaid by the optional
// YAML file, which is overlaid by command-line flags.
type Config struct {
	Server    ServerConfig  `yaml:"server"`
	Account   AccountConfig `yaml:"account"`
	Character string        `yaml:"character"`
	Client    ClientConfig  `yaml:"client"`
	Logging   LoggingConfig `yaml:"logging"`

	// AskPassword prompts for the password on the terminal; flag only.
	AskPassword bool `yaml:"-"`
}

type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	PreferIPv6 bool   `yaml:"prefer_ipv6"`
}

type AccountConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type ClientConfig struct {
	ViewDistance uint32 `yaml:"view_distance"`
	TPS          int    `yaml:"tps"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Server:  ServerConfig{Host: DefaultHost, Port: DefaultPort},
		Account: AccountConfig{Username: DefaultUsername},
		Client:  ClientConfig{ViewDistance: DefaultViewDistance, TPS: DefaultTPS},
		Logging: LoggingConfig{Level: "info", File: "veloterm.log", Format: "console"},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsWebSocket reports whether Host is a ws:// or wss:// URL rather than a
// host name.
func (s ServerConfig) IsWebSocket() bool {
	return strings.HasPrefix(s.Host, "ws://") || strings.HasPrefix(s.Host, "wss://")
}
