package session

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Versifine/veloterm/internal/client"
	"github.com/Versifine/veloterm/internal/config"
	"github.com/Versifine/veloterm/internal/devserver"
)

func startServer(t *testing.T, mutate func(*config.DevServerConfig)) (host string, port int) {
	t.Helper()
	cfg := config.DefaultDevServer()
	cfg.World.NPCs = 2
	cfg.Characters = []config.CharacterConfig{{ID: 1, Alias: "Wanderer", Level: 3}, {ID: 2, Alias: "Smith", Level: 9}}
	if mutate != nil {
		mutate(cfg)
	}
	srv := devserver.NewServer(cfg)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, ln)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	h, p, _ := net.SplitHostPort(ln.Addr().String())
	port, _ = strconv.Atoi(p)
	return h, port
}

func clientConfig(host string, port int, character string) *config.Config {
	cfg := config.Default()
	cfg.Server.Host = host
	cfg.Server.Port = port
	cfg.Account.Username = "tester"
	cfg.Character = character
	return cfg
}

func TestBootstrap(t *testing.T) {
	host, port := startServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, clk, err := Bootstrap(ctx, clientConfig(host, port, "Smith"))
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	defer c.Close()

	p, ok := c.Presence()
	if !ok || p.CharacterID != 2 {
		t.Fatalf("Presence() = %+v, %v", p, ok)
	}
	if c.ViewDistance() != config.DefaultViewDistance {
		t.Errorf("ViewDistance() = %d, want %d", c.ViewDistance(), config.DefaultViewDistance)
	}
	if clk.Target() != time.Second/config.DefaultTPS {
		t.Errorf("clock target = %v", clk.Target())
	}
}

func TestBootstrapUnknownCharacter(t *testing.T) {
	host, port := startServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, clk, err := Bootstrap(ctx, clientConfig(host, port, "Nobody"))
	if !errors.Is(err, ErrCharacterNotFound) {
		t.Fatalf("Bootstrap() error = %v, want ErrCharacterNotFound", err)
	}
	if c != nil || clk != nil {
		t.Fatal("Bootstrap() returned a client on failure")
	}
}

func TestBootstrapTrustsAuthProvider(t *testing.T) {
	host, port := startServer(t, func(cfg *config.DevServerConfig) {
		cfg.AuthProvider = "auth.example.net"
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, _, err := Bootstrap(ctx, clientConfig(host, port, "Wanderer"))
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	c.Close()
}

func TestBootstrapRegisterRejected(t *testing.T) {
	host, port := startServer(t, func(cfg *config.DevServerConfig) {
		cfg.Accounts = map[string]string{"tester": "secret"}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := clientConfig(host, port, "Wanderer")
	cfg.Account.Password = "wrong"
	if _, _, err := Bootstrap(ctx, cfg); !errors.Is(err, client.ErrRegisterFailed) {
		t.Fatalf("Bootstrap() error = %v, want ErrRegisterFailed", err)
	}
}

func TestBootstrapConnectFails(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	h, p, _ := net.SplitHostPort(addr)
	port, _ := strconv.Atoi(p)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _, err = Bootstrap(ctx, clientConfig(h, port, "Wanderer"))
	if err == nil || !strings.Contains(err.Error(), "connect") {
		t.Fatalf("Bootstrap() error = %v, want connect failure", err)
	}
}
