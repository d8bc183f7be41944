package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/Versifine/veloterm/internal/config"
	"github.com/Versifine/veloterm/internal/frontend"
	"github.com/Versifine/veloterm/internal/logger"
	"github.com/Versifine/veloterm/internal/session"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.ParseArgs(args)
	if err != nil {
		var usage *config.UsageError
		if errors.As(err, &usage) {
			if errors.Is(err, flag.ErrHelp) {
				fmt.Fprint(os.Stderr, "Usage of veloterm:\n"+usage.Usage)
				return 0
			}
			fmt.Fprintf(os.Stderr, "veloterm: %v\nUsage of veloterm:\n%s", err, usage.Usage)
			return 2
		}
		fmt.Fprintf(os.Stderr, "veloterm: load config: %v\n", err)
		return 2
	}

	out, err := logger.OpenOutput(cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "veloterm: %v\n", err)
		return 2
	}
	defer out.Close()
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: out,
	})

	if cfg.AskPassword {
		pw, err := readPassword()
		if err != nil {
			fmt.Fprintf(os.Stderr, "veloterm: %v\n", err)
			return 2
		}
		cfg.Account.Password = pw
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Connecting", "server", cfg.Address(), "username", cfg.Account.Username, "character", cfg.Character)
	c, clk, err := session.Bootstrap(ctx, cfg)
	if err != nil {
		slog.Error("Failed to start session", "error", err)
		fmt.Fprintf(os.Stderr, "veloterm: %v\n", err)
		return 1
	}
	defer c.Close()

	if err := runFrontend(ctx, &frontend.Resources{Client: c, Clock: clk}); err != nil {
		slog.Error("Frontend stopped", "error", err)
		fmt.Fprintf(os.Stderr, "veloterm: %v\n", err)
		return 1
	}
	return 0
}

func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--ask-password needs an interactive terminal")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

// runFrontend owns the terminal for the lifetime of the render loop. A
// panic restores the terminal before it is reported as an error.
func runFrontend(ctx context.Context, res *frontend.Resources) (err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer func() {
		screen.Fini()
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	screen.HideCursor()
	return frontend.Run(ctx, screen, res, frontend.NewState())
}
