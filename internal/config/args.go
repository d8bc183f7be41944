package config

import (
	"bytes"
	"errors"
	"flag"
	"net"
	"strconv"
)

var ErrMissingCharacter = errors.New("missing required flag --character")

// UsageError is a command-line mistake; Usage holds the flag summary to
// print with it.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// ParseArgs builds the client configuration from process arguments
// (without the program name). It performs no I/O other than reading the
// file named by --config.
func ParseArgs(args []string) (*Config, error) {
	var usage bytes.Buffer
	fs := flag.NewFlagSet("veloterm", flag.ContinueOnError)
	fs.SetOutput(&usage)
	fs.Usage = func() {}

	def := Default()
	var (
		configPath  = fs.String("config", "", "optional YAML configuration file")
		username    = fs.String("username", def.Account.Username, "account name")
		password    = fs.String("password", def.Account.Password, "account password")
		server      = fs.String("server", def.Server.Host, "server host name, or a ws:// URL")
		port        = fs.Int("port", def.Server.Port, "server port")
		character   = fs.String("character", "", "character to play (required)")
		preferIPv6  = fs.Bool("ipv6", def.Server.PreferIPv6, "prefer IPv6 addresses when resolving the server")
		logLevel    = fs.String("log-level", def.Logging.Level, "log level: debug, info, warn, error")
		logFile     = fs.String("log-file", def.Logging.File, "log file, - for stderr")
		logFormat   = fs.String("log-format", def.Logging.Format, "log format: console, text, json")
		askPassword = fs.Bool("ask-password", false, "prompt for the password on the terminal")
	)

	fail := func(err error) (*Config, error) {
		usage.Reset()
		fs.PrintDefaults()
		return nil, &UsageError{Err: err, Usage: usage.String()}
	}

	if err := fs.Parse(args); err != nil {
		return fail(err)
	}
	if fs.NArg() > 0 {
		return fail(errors.New("unexpected argument " + strconv.Quote(fs.Arg(0))))
	}

	cfg := def
	if *configPath != "" {
		loaded, err := Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "username":
			cfg.Account.Username = *username
		case "password":
			cfg.Account.Password = *password
		case "server":
			cfg.Server.Host = *server
		case "port":
			cfg.Server.Port = *port
		case "character":
			cfg.Character = *character
		case "ipv6":
			cfg.Server.PreferIPv6 = *preferIPv6
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-file":
			cfg.Logging.File = *logFile
		case "log-format":
			cfg.Logging.Format = *logFormat
		}
	})
	cfg.AskPassword = *askPassword

	if cfg.Character == "" {
		return fail(ErrMissingCharacter)
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fail(errors.New("invalid --port " + strconv.Itoa(cfg.Server.Port)))
	}
	return cfg, nil
}

// Address is what the client dials: the URL itself for WebSocket servers,
// host:port otherwise.
func (c *Config) Address() string {
	if c.Server.IsWebSocket() {
		return c.Server.Host
	}
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
