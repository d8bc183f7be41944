package frontend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Versifine/veloterm/internal/client"
	"github.com/Versifine/veloterm/internal/comp"
	"github.com/gdamore/tcell/v2"
)

// ErrWorldAdvance wraps a failed client tick. The loop does not retry:
// the caller restores the terminal and exits.
var ErrWorldAdvance = errors.New("failed to advance the world")

const eventBuffer = 64

// Run drives the frame loop until the player quits, ctx ends or the client
// fails. Each frame consumes at most one key press; further presses wait
// for later frames. The screen must already be initialised and stays
// owned by the caller.
func Run(ctx context.Context, screen tcell.Screen, res *Resources, st *State) error {
	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	v := &view{screen: screen, game: res.Client}
	slog.Info("Frontend started", "tps", int(1/res.Clock.Target().Seconds()))
	for {
		if ctx.Err() != nil {
			slog.Info("Frontend stopped", "reason", ctx.Err())
			return nil
		}
		in := &input{st: st, game: res.Client}
		if ev := nextKey(screen, events); ev != nil && in.handleKey(ev) {
			slog.Info("Quit requested")
			return nil
		}
		in.applyInventory()

		if err := advance(res.Client, st, in.inputs, res.Clock.Dt()); err != nil {
			return err
		}
		render(v, st, res)
		res.Client.Cleanup()
		res.Clock.Tick()
	}
}

// pollEvents feeds screen events into out until the screen is finalised
// or done closes.
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// nextKey returns the next queued key press, applying any resize events
// ahead of it. nil when no key is waiting.
func nextKey(screen tcell.Screen, events <-chan tcell.Event) *tcell.EventKey {
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				return ev
			case *tcell.EventResize:
				screen.Sync()
			}
		default:
			return nil
		}
	}
}

func advance(g Game, st *State, inputs comp.ControllerInputs, dt time.Duration) error {
	events, err := g.Tick(inputs.Normalized(), dt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWorldAdvance, err)
	}
	for _, e := range events {
		switch e := e.(type) {
		case client.ChatEvent:
			if !st.appendChat(e.Msg) {
				slog.Debug("Chat message not shown", "type", e.Msg.Type, "message", e.Msg.Message)
			}
		case client.DisconnectEvent:
			return fmt.Errorf("%w: %w: %s", ErrWorldAdvance, client.ErrServerDisconnected, e.Reason)
		case client.NotificationEvent:
			slog.Info("Notification", "text", e.Text)
		default:
			slog.Debug("Event", "event", fmt.Sprintf("%T", e))
		}
	}
	return nil
}

func render(v *view, st *State, res *Resources) {
	v.screen.Clear()
	player, _ := res.Client.PlayerPos()
	v.drawTerrain(player, st.Zoom)
	v.drawEntities(player, st.Zoom)
	v.drawHUD(st, res.Clock.Stats())
	v.screen.Show()
}
