package protocol

const CurrentProtocolVersion = 3

const (
	// Handshaking (C→S)
	C2SHello = 0x00

	// Handshaking (S→C)
	S2CServerInfo     = 0x00
	S2CPlayerList     = 0x01
	S2CSetCompression = 0x02

	// Registering (C→S)
	C2SRegister = 0x01

	// Registering (S→C)
	S2CRegisterResult = 0x03

	// Character screen (C→S)
	C2SRequestCharacterList = 0x02
	C2SSelectCharacter      = 0x03

	// Character screen (S→C)
	S2CCharacterList   = 0x04
	S2CCharacterActive = 0x05

	// In game (C→S)
	C2SSetViewDistance  = 0x04
	C2SControllerInputs = 0x05
	C2SControlAction    = 0x06
	C2SChatMessage      = 0x07
	C2SChatCommand      = 0x08
	C2SInviteResponse   = 0x09
	C2SInventoryAction  = 0x0a
	C2SKeepAlive        = 0x0b

	// In game (S→C)
	S2CChatMessage     = 0x06
	S2CEntitySync      = 0x07
	S2CEntityPosition  = 0x08
	S2CEntityRemove    = 0x09
	S2CEntityStats     = 0x0a
	S2CTerrainChunk    = 0x0b
	S2CBlockUpdate     = 0x0c
	S2CInvite          = 0x0d
	S2CInviteComplete  = 0x0e
	S2CInventoryUpdate = 0x0f
	S2CNotification    = 0x10
	S2CKeepAlive       = 0x11
	S2CDisconnect      = 0x12
)

var s2cNames = map[int32]string{
	S2CServerInfo:      "ServerInfo",
	S2CPlayerList:      "PlayerList",
	S2CSetCompression:  "SetCompression",
	S2CRegisterResult:  "RegisterResult",
	S2CCharacterList:   "CharacterList",
	S2CCharacterActive: "CharacterActive",
	S2CChatMessage:     "ChatMessage",
	S2CEntitySync:      "EntitySync",
	S2CEntityPosition:  "EntityPosition",
	S2CEntityRemove:    "EntityRemove",
	S2CEntityStats:     "EntityStats",
	S2CTerrainChunk:    "TerrainChunk",
	S2CBlockUpdate:     "BlockUpdate",
	S2CInvite:          "Invite",
	S2CInviteComplete:  "InviteComplete",
	S2CInventoryUpdate: "InventoryUpdate",
	S2CNotification:    "Notification",
	S2CKeepAlive:       "KeepAlive",
	S2CDisconnect:      "Disconnect",
}

// PacketName names a clientbound packet id for logs.
func PacketName(id int32) string {
	if name, ok := s2cNames[id]; ok {
		return name
	}
	return "Unknown"
}
