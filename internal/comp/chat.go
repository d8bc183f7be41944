package comp

import "fmt"

// ChatType is the scope a chat line was delivered in.
type ChatType uint8

const (
	ChatWorld ChatType = iota
	ChatGroup
	ChatTell
	ChatSay
	ChatRegion
	ChatFaction
	ChatOnline
	ChatOffline
	ChatCommandInfo
	ChatCommandError
	ChatKill
	ChatNpc
	ChatMeta

	ChatTypeCount
)

var chatTypeNames = [ChatTypeCount]string{
	ChatWorld:        "World",
	ChatGroup:        "Group",
	ChatTell:         "Tell",
	ChatSay:          "Say",
	ChatRegion:       "Region",
	ChatFaction:      "Faction",
	ChatOnline:       "Online",
	ChatOffline:      "Offline",
	ChatCommandInfo:  "CommandInfo",
	ChatCommandError: "CommandError",
	ChatKill:         "Kill",
	ChatNpc:          "Npc",
	ChatMeta:         "Meta",
}

func (c ChatType) String() string {
	if c < ChatTypeCount {
		return chatTypeNames[c]
	}
	return fmt.Sprintf("ChatType(%d)", uint8(c))
}

type ChatMsg struct {
	Type    ChatType
	Sender  uint64
	Group   string
	Message string
}
