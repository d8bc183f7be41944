package config

import (
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DevServerConfig configures the local development server.
type DevServerConfig struct {
	Listen       ListenConfig      `yaml:"listen"`
	WebSocket    WebSocketConfig   `yaml:"websocket"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description"`
	AuthProvider string            `yaml:"auth_provider"`
	Compression  int               `yaml:"compression_threshold"`
	Accounts     map[string]string `yaml:"accounts"`
	Characters   []CharacterConfig `yaml:"characters"`
	World        WorldConfig       `yaml:"world"`
	Logging      LoggingConfig     `yaml:"logging"`
}

type ListenConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (l ListenConfig) Address() string {
	return net.JoinHostPort(l.Host, strconv.Itoa(l.Port))
}

// WebSocketConfig enables the ws endpoint when Port is non-zero.
type WebSocketConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}

func (w WebSocketConfig) Enabled() bool { return w.Port != 0 }

func (w WebSocketConfig) Address() string {
	return net.JoinHostPort(w.Host, strconv.Itoa(w.Port))
}

type CharacterConfig struct {
	ID    int64  `yaml:"id"`
	Alias string `yaml:"alias"`
	Level int32  `yaml:"level"`
}

type WorldConfig struct {
	Seed int64 `yaml:"seed"`
	NPCs int   `yaml:"npcs"`
}

func DefaultDevServer() *DevServerConfig {
	return &DevServerConfig{
		Listen:      ListenConfig{Host: "127.0.0.1", Port: DefaultPort},
		WebSocket:   WebSocketConfig{Host: "127.0.0.1", Path: "/ws"},
		Name:        "veloterm dev server",
		Description: "local development world",
		Compression: 256,
		Characters: []CharacterConfig{
			{ID: 1, Alias: "Wanderer", Level: 1},
		},
		World:   WorldConfig{Seed: 1, NPCs: 8},
		Logging: LoggingConfig{Level: "info", File: "-", Format: "console"},
	}
}

// LoadServer reads the dev server YAML over its defaults.
func LoadServer(path string) (*DevServerConfig, error) {
	cfg := DefaultDevServer()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
