package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  *string
		wantErr  bool
		validate func(t *testing.T, cfg *Config, err error)
	}{
		{
			name: "valid yaml",
			content: ptr(`server:
  host: "play.example.net"
  port: 14005
  prefer_ipv6: true
account:
  username: "alice"
character: "Hero"
client:
  view_distance: 8
logging:
  level: "debug"
  file: "client.log"
`),
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Server.Host != "play.example.net" || cfg.Server.Port != 14005 || !cfg.Server.PreferIPv6 {
					t.Errorf("Server = %+v", cfg.Server)
				}
				if cfg.Account.Username != "alice" || cfg.Character != "Hero" {
					t.Errorf("Account = %+v, Character = %q", cfg.Account, cfg.Character)
				}
				if cfg.Client.ViewDistance != 8 || cfg.Client.TPS != DefaultTPS {
					t.Errorf("Client = %+v", cfg.Client)
				}
				if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
					t.Errorf("Logging = %+v", cfg.Logging)
				}
			},
		},
		{
			name:    "missing file",
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if !os.IsNotExist(err) {
					t.Errorf("error = %v, want not-exist", err)
				}
			},
		},
		{
			name:    "malformed yaml",
			content: ptr("server:\n  port: [14004\n"),
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "yaml") {
					t.Errorf("error = %v, want a yaml error", err)
				}
			},
		},
		{
			name:    "empty file keeps defaults",
			content: ptr(""),
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Server.Host != DefaultHost || cfg.Server.Port != DefaultPort || cfg.Account.Username != DefaultUsername {
					t.Errorf("cfg = %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "absent.yaml")
			if tt.content != nil {
				path = writeFile(t, *tt.content)
			}
			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg == nil {
				t.Fatal("Load() returned a nil config")
			}
			tt.validate(t, cfg, err)
		})
	}
}

func ptr(s string) *string { return &s }

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := ParseArgs([]string{"--character", "Hero"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.Server.Host != "server.veloren.net" || cfg.Server.Port != 14004 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Account.Username != "veloren_user" || cfg.Account.Password != "" {
		t.Errorf("account = %+v", cfg.Account)
	}
	if cfg.Character != "Hero" {
		t.Errorf("character = %q", cfg.Character)
	}
	if cfg.Address() != "server.veloren.net:14004" {
		t.Errorf("Address() = %q", cfg.Address())
	}
}

func TestParseArgsMissingCharacter(t *testing.T) {
	_, err := ParseArgs([]string{"--username", "alice"})
	if !errors.Is(err, ErrMissingCharacter) {
		t.Fatalf("ParseArgs() error = %v, want ErrMissingCharacter", err)
	}
	var usageErr *UsageError
	if !errors.As(err, &usageErr) || !strings.Contains(usageErr.Usage, "-character") {
		t.Fatalf("usage not attached: %#v", err)
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"unknown flag", []string{"--character", "x", "--bogus"}, nil},
		{"help", []string{"-h"}, flag.ErrHelp},
		{"stray argument", []string{"--character", "x", "extra"}, nil},
		{"bad port", []string{"--character", "x", "--port", "70000"}, nil},
		{"non numeric port", []string{"--character", "x", "--port", "abc"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			var usageErr *UsageError
			if !errors.As(err, &usageErr) {
				t.Fatalf("ParseArgs() error = %v, want a UsageError", err)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("ParseArgs() error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestParseArgsPrecedence(t *testing.T) {
	path := writeFile(t, `server:
  host: "file.example.net"
  port: 15000
account:
  username: "from-file"
  password: "file-secret"
character: "FileHero"
`)
	cfg, err := ParseArgs([]string{"--config", path, "--username", "from-flag", "--port", "16000"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.Account.Username != "from-flag" || cfg.Account.Password != "file-secret" {
		t.Errorf("account = %+v", cfg.Account)
	}
	if cfg.Server.Host != "file.example.net" || cfg.Server.Port != 16000 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Character != "FileHero" {
		t.Errorf("character = %q", cfg.Character)
	}
}

func TestParseArgsMissingConfigFile(t *testing.T) {
	_, err := ParseArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "--character", "x"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ParseArgs() error = %v, want not-exist", err)
	}
}

func TestWebSocketAddress(t *testing.T) {
	cfg, err := ParseArgs([]string{"--character", "x", "--server", "ws://127.0.0.1:14005/ws", "--ask-password"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if !cfg.Server.IsWebSocket() || cfg.Address() != "ws://127.0.0.1:14005/ws" {
		t.Fatalf("Address() = %q", cfg.Address())
	}
	if !cfg.AskPassword {
		t.Fatal("AskPassword not set")
	}
}

func TestLoadServer(t *testing.T) {
	path := writeFile(t, `listen:
  port: 15004
websocket:
  port: 15005
accounts:
  alice: "pw"
characters:
  - id: 3
    alias: "Hero"
    level: 9
world:
  seed: 42
`)
	cfg, err := LoadServer(path)
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.Listen.Address() != "127.0.0.1:15004" {
		t.Errorf("Listen.Address() = %q", cfg.Listen.Address())
	}
	if !cfg.WebSocket.Enabled() || cfg.WebSocket.Path != "/ws" {
		t.Errorf("WebSocket = %+v", cfg.WebSocket)
	}
	if cfg.Accounts["alice"] != "pw" || len(cfg.Characters) != 1 || cfg.Characters[0].Alias != "Hero" {
		t.Errorf("accounts = %v characters = %+v", cfg.Accounts, cfg.Characters)
	}
	if cfg.World.Seed != 42 || cfg.World.NPCs != 8 {
		t.Errorf("World = %+v", cfg.World)
	}
	if DefaultDevServer().WebSocket.Enabled() {
		t.Error("websocket enabled by default")
	}
}
