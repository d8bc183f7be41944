// Package session connects the client to a server and blocks until the
// requested character is in the world.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Versifine/veloterm/internal/client"
	"github.com/Versifine/veloterm/internal/clock"
	"github.com/Versifine/veloterm/internal/comp"
	"github.com/Versifine/veloterm/internal/config"
)

var ErrCharacterNotFound = errors.New("character not found")

// Bootstrap dials, registers, selects cfg.Character and sets the view
// distance. It does not retry; any failure closes the connection.
func Bootstrap(ctx context.Context, cfg *config.Config) (*client.Client, *clock.Clock, error) {
	args := client.ConnectionArgs{
		Kind:       client.TCP,
		Hostname:   cfg.Address(),
		PreferIPv6: cfg.Server.PreferIPv6,
	}
	if cfg.Server.IsWebSocket() {
		args.Kind = client.WebSocket
	}
	c, err := client.New(ctx, args)
	if err != nil {
		return nil, nil, err
	}
	info := c.ServerInfo()
	slog.Info("Server info", "name", info.Name, "description", info.Description, "version", info.GitHash)
	slog.Info("Players online", "players", c.Players())

	clk := clock.New(cfg.Client.TPS)
	if err := enter(ctx, c, cfg, clk); err != nil {
		c.Close()
		return nil, nil, err
	}
	return c, clk, nil
}

func enter(ctx context.Context, c *client.Client, cfg *config.Config, clk *clock.Clock) error {
	trustAll := func(provider string) bool {
		slog.Info("Trusting auth provider", "provider", provider)
		return true
	}
	if err := c.Register(ctx, cfg.Account.Username, cfg.Account.Password, trustAll); err != nil {
		return err
	}
	if err := c.LoadCharacterList(); err != nil {
		return fmt.Errorf("request character list: %w", err)
	}

	spin := newSpinner(ctx, c)
	var id int64
	err := spin.until(func() (bool, error) {
		list := c.CharacterList()
		if list.Loading || len(list.Characters) == 0 {
			return false, nil
		}
		for _, ch := range list.Characters {
			if ch.Alias == cfg.Character {
				id = ch.ID
				return true, nil
			}
		}
		return false, fmt.Errorf("%w: %q", ErrCharacterNotFound, cfg.Character)
	})
	if err != nil {
		return err
	}
	if err := c.RequestCharacter(id); err != nil {
		return fmt.Errorf("request character: %w", err)
	}
	if err := spin.until(func() (bool, error) {
		_, ok := c.Presence()
		return ok, nil
	}); err != nil {
		return err
	}

	distance := cfg.Client.ViewDistance
	if distance == 0 {
		distance = config.DefaultViewDistance
	}
	if err := c.SetViewDistance(distance); err != nil {
		return fmt.Errorf("set view distance: %w", err)
	}
	slog.Info("Character selected",
		"character", cfg.Character,
		"view_distance", c.ViewDistance(),
		"chunks_loaded", c.Terrain().LoadedChunkCount(),
		"tps", 1/clk.Target().Seconds(),
	)
	return nil
}

// spinner ticks the client back to back. Dt is measured between ticks so
// the client's keepalive and timeout accounting follow real time.
type spinner struct {
	ctx  context.Context
	c    *client.Client
	last time.Time
}

func newSpinner(ctx context.Context, c *client.Client) *spinner {
	return &spinner{ctx: ctx, c: c, last: time.Now()}
}

func (s *spinner) until(done func() (bool, error)) error {
	for {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		now := time.Now()
		events, err := s.c.Tick(comp.ControllerInputs{}, now.Sub(s.last))
		s.last = now
		if err != nil {
			return fmt.Errorf("tick: %w", err)
		}
		for _, e := range events {
			if d, ok := e.(client.DisconnectEvent); ok {
				return fmt.Errorf("%w: %s", client.ErrServerDisconnected, d.Reason)
			}
		}
		ok, err := done()
		if err != nil || ok {
			return err
		}
	}
}
