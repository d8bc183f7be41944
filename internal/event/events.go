package event

// Topics.
const (
	TopicBroadcast = "broadcast"
	playerPrefix   = "player/"
)

// PlayerTopic addresses a single logged-in account.
func PlayerTopic(username string) string { return playerPrefix + username }

type SourceType int

const (
	SourceSystem SourceType = iota
	SourcePlayer
	SourceCommand
)

func (st SourceType) String() string {
	switch st {
	case SourceSystem:
		return "System"
	case SourcePlayer:
		return "Player"
	case SourceCommand:
		return "Command"
	default:
		return "Unknown"
	}
}

// ChatEvent is a chat line routed to sessions. Scope is a protocol chat
// type.
type ChatEvent struct {
	From    string
	FromUID uint64
	Scope   byte
	Group   string
	Message string
	Source  SourceType
}

func NewChatEvent(from string, uid uint64, scope byte, message string, source SourceType) *ChatEvent {
	return &ChatEvent{
		From:    from,
		FromUID: uid,
		Scope:   scope,
		Message: message,
		Source:  source,
	}
}

// InviteEvent asks the addressed player to join From's group.
type InviteEvent struct {
	From    string
	FromUID uint64
	Kind    byte
}

// InviteAnswerEvent goes back to the inviter.
type InviteAnswerEvent struct {
	From    string
	FromUID uint64
	Kind    byte
	Answer  byte
	Group   string
}

// PlayersChangedEvent is broadcast when someone joins or leaves.
type PlayersChangedEvent struct {
	Players []string
}
