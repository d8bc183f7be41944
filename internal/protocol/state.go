package protocol

import "sync"

type State int

const (
	Handshaking State = iota
	Registering
	CharacterScreen
	InGame
)

func (s State) String() string {
	switch s {
	case Handshaking:
		return "Handshaking"
	case Registering:
		return "Registering"
	case CharacterScreen:
		return "CharacterScreen"
	case InGame:
		return "InGame"
	default:
		return "Unknown"
	}
}

type ConnState struct {
	mu        sync.Mutex
	state     State
	threshold int
	username  string
}

func NewConnState() *ConnState {
	return &ConnState{
		threshold: -1,
	}
}

func (cs *ConnState) Set(state State) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.state = state
}

func (cs *ConnState) Get() State {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.state
}

func (cs *ConnState) SetThreshold(t int) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.threshold = t
}

func (cs *ConnState) GetThreshold() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.threshold
}

func (cs *ConnState) SetUsername(name string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.username = name
}

func (cs *ConnState) GetUsername() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.username
}
