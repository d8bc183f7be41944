package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sort"

	"github.com/Versifine/veloterm/internal/transport"
	"github.com/gorilla/websocket"
)

type ConnectionKind int

const (
	TCP ConnectionKind = iota
	WebSocket
)

func (k ConnectionKind) String() string {
	switch k {
	case TCP:
		return "tcp"
	case WebSocket:
		return "websocket"
	default:
		return "unknown"
	}
}

// ConnectionArgs selects how to reach the server. For TCP, Hostname is
// host:port; for WebSocket it is a ws:// or wss:// URL.
type ConnectionArgs struct {
	Kind       ConnectionKind
	Hostname   string
	PreferIPv6 bool
}

func dial(ctx context.Context, args ConnectionArgs) (transport.Conn, error) {
	switch args.Kind {
	case TCP:
		conn, err := dialTCP(ctx, args.Hostname, args.PreferIPv6)
		if err != nil {
			return nil, err
		}
		return transport.NewStream(conn), nil
	case WebSocket:
		ws, _, err := websocket.DefaultDialer.DialContext(ctx, args.Hostname, nil)
		if err != nil {
			return nil, err
		}
		return transport.NewWebSocket(ws), nil
	default:
		return nil, fmt.Errorf("unsupported connection kind %d", args.Kind)
	}
}

// dialTCP resolves the host and tries every address, preferred family first.
func dialTCP(ctx context.Context, hostport string, preferIPv6 bool) (net.Conn, error) {
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}
	var d net.Dialer
	if ip := net.ParseIP(host); ip != nil {
		return d.DialContext(ctx, "tcp", hostport)
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	sortByFamily(addrs, preferIPv6)

	var errs []error
	for _, addr := range addrs {
		target := net.JoinHostPort(addr.IP.String(), port)
		conn, err := d.DialContext(ctx, "tcp", target)
		if err == nil {
			slog.Debug("Dialed server", "address", target)
			return conn, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("no addresses for %s", host)
	}
	return nil, errors.Join(errs...)
}

func sortByFamily(addrs []net.IPAddr, preferIPv6 bool) {
	sort.SliceStable(addrs, func(i, j int) bool {
		iv6 := addrs[i].IP.To4() == nil
		jv6 := addrs[j].IP.To4() == nil
		if iv6 == jv6 {
			return false
		}
		return iv6 == preferIPv6
	})
}
