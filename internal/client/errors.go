package client

import "errors"

var (
	ErrNotConnected       = errors.New("client is not connected")
	ErrRegisterFailed     = errors.New("registration rejected by server")
	ErrAuthNotTrusted     = errors.New("auth provider not trusted")
	ErrNotInGame          = errors.New("no character is active")
	ErrNoInvite           = errors.New("no pending invite")
	ErrServerTimeout      = errors.New("server stopped responding")
	ErrServerDisconnected = errors.New("server closed the session")
)
