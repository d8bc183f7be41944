package devserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"strings"
	"time"

	"github.com/Versifine/veloterm/internal/comp"
	"github.com/Versifine/veloterm/internal/event"
	"github.com/Versifine/veloterm/internal/physics"
	"github.com/Versifine/veloterm/internal/protocol"
	"github.com/Versifine/veloterm/internal/terrain"
	"github.com/Versifine/veloterm/internal/transport"
)

const (
	tickInterval     = 50 * time.Millisecond
	handshakeTimeout = 10 * time.Second
	keepAliveEvery   = 10 * time.Second
	clientTimeout    = 40 * time.Second
	wanderEvery      = time.Second
	inviteTimeout    = 30 * time.Second

	maxStreamRadius = 3
	chunksPerTick   = 4

	maxStat      = 1000
	energyRegen  = 5
	attackCost   = 150
	attackRange  = 3.0
	attackDamage = 200
	inboxSize    = 256
)

var errSessionDone = errors.New("session finished")

var playerBody = comp.BodyData{Kind: comp.BodyHumanoid, Species: comp.SpeciesHuman}

type readResult struct {
	packet *protocol.Packet
	err    error
}

type pendingInvite struct {
	from     string
	fromUID  uint64
	kind     byte
	deadline time.Time
}

// session is one connected client. All fields are owned by the run loop;
// bus handlers only push into inbox.
type session struct {
	srv   *Server
	conn  transport.Conn
	state *protocol.ConnState

	username string
	joined   bool
	unsubs   []func()
	inbox    chan any

	uid          uint64
	alias        string
	pos          protocol.Vec3
	spawn        protocol.Vec3
	body         physics.State
	move         physics.Input
	dead         bool
	health       float32
	energy       float32
	inventory    []protocol.ItemStack
	npcs         []*npc
	rng          *rng
	sent         map[terrain.ChunkPos]bool
	viewDistance uint32

	invite        *pendingInvite
	lastRecv      time.Time
	lastKeepAlive time.Time
	lastWander    time.Time
	keepAliveID   int64
}

// ServeConn runs one client session to completion and closes conn.
func (s *Server) ServeConn(ctx context.Context, conn transport.Conn) {
	ss := &session{
		srv:          s,
		conn:         conn,
		state:        protocol.NewConnState(),
		inbox:        make(chan any, inboxSize),
		sent:         make(map[terrain.ChunkPos]bool),
		viewDistance: maxStreamRadius,
	}
	defer conn.Close()
	remote := conn.RemoteAddr()
	slog.Info("Session opened", "remote", remote)

	err := ss.run(ctx)
	switch {
	case err == nil, errors.Is(err, errSessionDone), errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		slog.Info("Session closed", "remote", remote, "user", ss.username)
	default:
		slog.Warn("Session ended with error", "remote", remote, "user", ss.username, "error", err)
	}
}

func (ss *session) run(ctx context.Context) error {
	if err := ss.handshake(); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	defer ss.logout()

	packets := make(chan readResult, 64)
	done := make(chan struct{})
	defer close(done)
	go ss.readLoop(packets, done)

	start := time.Now()
	ss.lastRecv, ss.lastKeepAlive, ss.lastWander = start, start, start
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = ss.send(protocol.CreateDisconnectPacket("server shutting down"))
			return nil
		case res := <-packets:
			if res.err != nil {
				return res.err
			}
			ss.lastRecv = time.Now()
			if err := ss.handle(res.packet); err != nil {
				return err
			}
		case evt := <-ss.inbox:
			if err := ss.deliver(evt); err != nil {
				return err
			}
		case now := <-ticker.C:
			if err := ss.tick(now); err != nil {
				return err
			}
		}
	}
}

func (ss *session) readLoop(out chan<- readResult, done <-chan struct{}) {
	for {
		p, err := ss.conn.ReadPacket(ss.state.GetThreshold())
		select {
		case out <- readResult{packet: p, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (ss *session) send(p *protocol.Packet) error {
	return ss.conn.WritePacket(p, ss.state.GetThreshold())
}

func (ss *session) handshake() error {
	_ = ss.conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	defer ss.conn.SetReadDeadline(time.Time{})

	p, err := ss.conn.ReadPacket(-1)
	if err != nil {
		return err
	}
	if p.ID != protocol.C2SHello {
		return fmt.Errorf("%w: packet %#x before hello", protocol.ErrUnexpectedPacket, p.ID)
	}
	hello, err := protocol.ParseHello(p.Reader())
	if err != nil {
		return err
	}
	slog.Info("Hello", "client", hello.ClientName, "protocol", hello.ProtocolVersion)

	cfg := ss.srv.cfg
	if cfg.Compression >= 0 {
		if err := ss.conn.WritePacket(protocol.CreateSetCompressionPacket(int32(cfg.Compression)), -1); err != nil {
			return err
		}
		ss.state.SetThreshold(cfg.Compression)
	}
	info := protocol.ServerInfo{
		ProtocolVersion: protocol.CurrentProtocolVersion,
		Name:            cfg.Name,
		Description:     cfg.Description,
		GitHash:         "devserver",
		AuthProvider:    cfg.AuthProvider,
	}
	if err := ss.send(protocol.CreateServerInfoPacket(info)); err != nil {
		return err
	}
	if err := ss.send(protocol.CreatePlayerListPacket(ss.srv.Players())); err != nil {
		return err
	}
	if hello.ProtocolVersion != protocol.CurrentProtocolVersion {
		return fmt.Errorf("%w: client speaks %d", protocol.ErrProtocolMismatch, hello.ProtocolVersion)
	}
	ss.state.Set(protocol.Registering)
	return nil
}

func (ss *session) handle(p *protocol.Packet) error {
	r := p.Reader()
	st := ss.state.Get()
	switch {
	case p.ID == protocol.C2SKeepAlive:
		return nil
	case p.ID == protocol.C2SRegister && st == protocol.Registering:
		reg, err := protocol.ParseRegister(r)
		if err != nil {
			return err
		}
		return ss.register(reg)
	case st == protocol.Registering:
		return fmt.Errorf("%w: packet %#x before register", protocol.ErrUnexpectedPacket, p.ID)
	case p.ID == protocol.C2SSetViewDistance:
		d, err := protocol.ParseSetViewDistance(r)
		if err != nil {
			return err
		}
		ss.viewDistance = max(1, min(d, 65))
		return nil
	case p.ID == protocol.C2SRequestCharacterList:
		items := make([]protocol.CharacterItem, 0, len(ss.srv.cfg.Characters))
		for _, c := range ss.srv.cfg.Characters {
			items = append(items, protocol.CharacterItem{ID: c.ID, Alias: c.Alias, Level: c.Level})
		}
		return ss.send(protocol.CreateCharacterListPacket(items))
	case p.ID == protocol.C2SSelectCharacter && st == protocol.CharacterScreen:
		id, err := protocol.ParseSelectCharacter(r)
		if err != nil {
			return err
		}
		return ss.selectCharacter(id)
	case st != protocol.InGame:
		slog.Debug("Ignoring packet outside the game", "id", p.ID, "state", st)
		return nil
	}

	switch p.ID {
	case protocol.C2SControllerInputs:
		in, err := protocol.ParseControllerInputs(r)
		if err != nil {
			return err
		}
		ss.move.MoveX, ss.move.MoveY = float64(in.MoveX), float64(in.MoveY)
	case protocol.C2SControlAction:
		ca, err := protocol.ParseControlAction(r)
		if err != nil {
			return err
		}
		return ss.controlAction(ca)
	case protocol.C2SChatMessage:
		msg, err := protocol.ParseChatMessage(r)
		if err != nil {
			return err
		}
		if msg = strings.TrimSpace(msg); msg != "" {
			ss.srv.bus.Publish(event.TopicBroadcast,
				event.NewChatEvent(ss.alias, ss.uid, protocol.ChatWorld, ss.alias+": "+msg, event.SourcePlayer))
		}
	case protocol.C2SChatCommand:
		cmd, err := protocol.ParseChatCommand(r)
		if err != nil {
			return err
		}
		return ss.command(cmd)
	case protocol.C2SInviteResponse:
		accept, err := protocol.ParseInviteResponse(r)
		if err != nil {
			return err
		}
		return ss.answerInvite(accept)
	case protocol.C2SInventoryAction:
		ia, err := protocol.ParseInventoryAction(r)
		if err != nil {
			return err
		}
		return ss.inventoryAction(ia)
	default:
		slog.Debug("Unhandled packet", "id", p.ID, "user", ss.username)
	}
	return nil
}

func (ss *session) register(reg *protocol.Register) error {
	ok, reason := ss.srv.checkCredentials(reg.Username, reg.Password)
	if ok && !ss.srv.join(reg.Username) {
		ok, reason = false, "already logged in"
	}
	if !ok {
		slog.Info("Registration rejected", "username", reg.Username, "reason", reason)
		return ss.send(protocol.CreateRegisterResultPacket(false, reason))
	}
	ss.username = reg.Username
	ss.joined = true
	ss.subscribe(event.TopicBroadcast)
	ss.subscribe(event.PlayerTopic(reg.Username))
	ss.state.SetUsername(reg.Username)
	ss.state.Set(protocol.CharacterScreen)
	slog.Info("Registered", "username", reg.Username)
	if err := ss.send(protocol.CreateRegisterResultPacket(true, "")); err != nil {
		return err
	}
	return ss.send(protocol.CreatePlayerListPacket(ss.srv.Players()))
}

func (ss *session) subscribe(topic string) {
	ss.unsubs = append(ss.unsubs, ss.srv.bus.Subscribe(topic, func(evt any) {
		select {
		case ss.inbox <- evt:
		default:
			slog.Warn("Session inbox full, dropping event", "user", ss.username, "topic", topic)
		}
	}))
}

func (ss *session) logout() {
	for _, unsub := range ss.unsubs {
		unsub()
	}
	if ss.joined {
		ss.srv.leave(ss.username)
	}
}

func (ss *session) selectCharacter(id int64) error {
	var alias string
	for _, c := range ss.srv.cfg.Characters {
		if c.ID == id {
			alias = c.Alias
		}
	}
	if alias == "" {
		return ss.send(protocol.CreateNotificationPacket(fmt.Sprintf("No character with id %d", id)))
	}

	ss.alias = alias
	ss.uid = ss.srv.allocUID()
	ss.spawn = ss.srv.gen.SpawnPoint()
	ss.pos = ss.spawn
	ss.body = physics.State{Position: physics.Vec3(ss.pos)}
	ss.health, ss.energy = maxStat, maxStat
	ss.inventory = starterInventory()
	ss.rng = newRNG(uint64(ss.srv.cfg.World.Seed) ^ ss.uid)
	ss.npcs = spawnNPCs(ss.srv.gen, ss.rng, ss.srv.allocUID, ss.spawn, ss.srv.cfg.World.NPCs)
	ss.state.Set(protocol.InGame)
	slog.Info("Character spawned", "user", ss.username, "alias", alias, "uid", ss.uid, "position", ss.pos)

	bodyKind, species := playerBody.Wire()
	packets := []*protocol.Packet{
		protocol.CreateCharacterActivePacket(ss.uid, ss.pos),
		protocol.CreateEntitySyncPacket(protocol.EntitySync{
			UID: ss.uid, Position: ss.pos, BodyKind: bodyKind, Species: species, Alias: alias,
		}),
		ss.statsPacket(),
		protocol.CreateInventoryUpdatePacket(ss.inventory),
	}
	for _, n := range ss.npcs {
		packets = append(packets, n.sync(), n.stats())
	}
	packets = append(packets, protocol.CreateServerChatPacket(protocol.ServerChat{
		Type:    protocol.ChatMeta,
		Message: "Welcome to " + ss.srv.cfg.Name + ", " + alias,
	}))
	for _, p := range packets {
		if err := ss.send(p); err != nil {
			return err
		}
	}
	return nil
}

func (ss *session) statsPacket() *protocol.Packet {
	return protocol.CreateEntityStatsPacket(protocol.EntityStats{
		UID:           ss.uid,
		HealthCurrent: ss.health,
		HealthMaximum: maxStat,
		EnergyCurrent: ss.energy,
		EnergyMaximum: maxStat,
	})
}

func (ss *session) notify(text string) error {
	return ss.send(protocol.CreateNotificationPacket(text))
}

func (ss *session) controlAction(ca *protocol.ControlAction) error {
	switch ca.Action {
	case protocol.ActionJump:
		ss.move.Jump = ca.Pressed
	case protocol.ActionPrimary:
		if ca.Pressed {
			return ss.attack()
		}
	case protocol.ActionSecondary:
		slog.Debug("Secondary action", "user", ss.username, "pressed", ca.Pressed)
	case protocol.ActionToggleGlide:
		ss.move.Glide = !ss.move.Glide
		if ss.move.Glide {
			return ss.notify("Glider deployed")
		}
		return ss.notify("Glider stowed")
	case protocol.ActionRespawn:
		return ss.respawn()
	}
	return nil
}

func (ss *session) attack() error {
	if ss.dead {
		return nil
	}
	if ss.energy < attackCost {
		return ss.notify("Not enough energy")
	}
	ss.energy -= attackCost
	if err := ss.send(ss.statsPacket()); err != nil {
		return err
	}

	var target *npc
	best := attackRange
	for _, n := range ss.npcs {
		if d := distance2D(n.pos, ss.pos); d <= best && !n.static() {
			target, best = n, d
		}
	}
	if target == nil {
		return nil
	}
	target.health -= attackDamage
	if target.health > 0 {
		return ss.send(target.stats())
	}
	return ss.defeat(target)
}

func (ss *session) defeat(target *npc) error {
	for i, n := range ss.npcs {
		if n == target {
			ss.npcs = append(ss.npcs[:i], ss.npcs[i+1:]...)
			break
		}
	}
	if err := ss.send(protocol.CreateEntityRemovePacket([]uint64{target.uid})); err != nil {
		return err
	}
	if err := ss.send(protocol.CreateServerChatPacket(protocol.ServerChat{
		Type: protocol.ChatKill, Sender: ss.uid, Message: ss.alias + " defeated " + target.kind.alias,
	})); err != nil {
		return err
	}
	if target.kind.loot != "" && addItem(ss.inventory, target.kind.loot) {
		return ss.send(protocol.CreateInventoryUpdatePacket(ss.inventory))
	}
	return nil
}

func (ss *session) respawn() error {
	ss.dead = false
	ss.pos = ss.spawn
	ss.body = physics.State{Position: physics.Vec3(ss.pos)}
	ss.health, ss.energy = maxStat, maxStat
	if err := ss.send(protocol.CreateEntityPositionPacket(ss.uid, ss.pos)); err != nil {
		return err
	}
	return ss.send(ss.statsPacket())
}

func (ss *session) command(cmd *protocol.ChatCommand) error {
	slog.Debug("Command", "user", ss.username, "command", cmd.String())
	switch cmd.Name {
	case "group", "g":
		group, ok := ss.srv.groupOf(ss.username)
		if !ok {
			return ss.commandReply(protocol.ChatCommandError, "You are not in a group.")
		}
		msg := strings.Join(cmd.Args, " ")
		if msg == "" {
			return nil
		}
		evt := event.NewChatEvent(ss.alias, ss.uid, protocol.ChatGroup, ss.alias+": "+msg, event.SourceCommand)
		evt.Group = group
		for _, member := range ss.srv.groupMembers(group) {
			ss.srv.bus.Publish(event.PlayerTopic(member), evt)
		}
	case "invite":
		return ss.sendInvite(cmd.Args)
	case "players", "online":
		return ss.commandReply(protocol.ChatCommandInfo, "Online: "+strings.Join(ss.srv.Players(), ", "))
	case "help":
		return ss.commandReply(protocol.ChatCommandInfo,
			"Commands: /group <msg>, /invite [player], /players, /help")
	default:
		return ss.commandReply(protocol.ChatCommandError, "Unknown command /"+cmd.Name)
	}
	return nil
}

func (ss *session) commandReply(kind byte, msg string) error {
	return ss.send(protocol.CreateServerChatPacket(protocol.ServerChat{Type: kind, Message: msg}))
}

// sendInvite invites the named player, or with no argument has a nearby
// NPC invite the caller.
func (ss *session) sendInvite(args []string) error {
	if len(args) == 0 {
		var inviter uint64
		if len(ss.npcs) > 0 {
			inviter = ss.npcs[0].uid
		}
		return ss.receiveInvite(&pendingInvite{fromUID: inviter, kind: protocol.InviteGroup})
	}
	target := args[0]
	switch {
	case target == ss.username:
		return ss.commandReply(protocol.ChatCommandError, "You cannot invite yourself.")
	case !ss.srv.bus.HasSubscribers(event.PlayerTopic(target)):
		return ss.commandReply(protocol.ChatCommandError, target+" is not online.")
	}
	ss.srv.bus.Publish(event.PlayerTopic(target), &event.InviteEvent{
		From: ss.username, FromUID: ss.uid, Kind: protocol.InviteGroup,
	})
	return ss.commandReply(protocol.ChatCommandInfo, "Invite sent to "+target)
}

func (ss *session) receiveInvite(inv *pendingInvite) error {
	if ss.invite != nil {
		if inv.from != "" {
			ss.answerTo(inv, protocol.InviteDeclined, "")
		}
		return nil
	}
	inv.deadline = time.Now().Add(inviteTimeout)
	ss.invite = inv
	return ss.send(protocol.CreateInvitePacket(protocol.Invite{
		InviterUID: inv.fromUID,
		Kind:       inv.kind,
		TimeoutMs:  int32(inviteTimeout / time.Millisecond),
	}))
}

func (ss *session) answerInvite(accept bool) error {
	inv := ss.invite
	if inv == nil {
		return nil
	}
	ss.invite = nil
	if inv.from == "" {
		if !accept {
			return ss.notify("Invite declined")
		}
		ss.srv.setGroup(ss.username, "Wanderers")
		return ss.notify("You joined the Wanderers")
	}

	group, ok := ss.srv.groupOf(inv.from)
	if !ok {
		group = inv.from + "'s group"
	}
	if !accept {
		ss.answerTo(inv, protocol.InviteDeclined, group)
		return nil
	}
	ss.srv.setGroup(ss.username, group)
	ss.answerTo(inv, protocol.InviteAccepted, group)
	return ss.notify("You joined " + group)
}

func (ss *session) answerTo(inv *pendingInvite, answer byte, group string) {
	ss.srv.bus.Publish(event.PlayerTopic(inv.from), &event.InviteAnswerEvent{
		From: ss.username, FromUID: ss.uid, Kind: inv.kind, Answer: answer, Group: group,
	})
}

// deliver forwards a bus event to the client.
func (ss *session) deliver(evt any) error {
	switch e := evt.(type) {
	case *event.ChatEvent:
		if ss.state.Get() != protocol.InGame {
			return nil
		}
		return ss.send(protocol.CreateServerChatPacket(protocol.ServerChat{
			Type: e.Scope, Sender: e.FromUID, Group: e.Group, Message: e.Message,
		}))
	case *event.InviteEvent:
		if ss.state.Get() != protocol.InGame {
			ss.answerTo(&pendingInvite{from: e.From, kind: e.Kind}, protocol.InviteDeclined, "")
			return nil
		}
		return ss.receiveInvite(&pendingInvite{from: e.From, fromUID: e.FromUID, kind: e.Kind})
	case *event.InviteAnswerEvent:
		if e.Answer == protocol.InviteAccepted {
			ss.srv.setGroup(ss.username, e.Group)
		}
		return ss.send(protocol.CreateInviteCompletePacket(protocol.InviteComplete{
			TargetUID: e.FromUID, Answer: e.Answer, Kind: e.Kind,
		}))
	case *event.PlayersChangedEvent:
		return ss.send(protocol.CreatePlayerListPacket(e.Players))
	default:
		slog.Warn("Unknown event", "type", fmt.Sprintf("%T", evt))
	}
	return nil
}

func (ss *session) tick(now time.Time) error {
	if now.Sub(ss.lastRecv) > clientTimeout {
		_ = ss.send(protocol.CreateDisconnectPacket("timed out"))
		return fmt.Errorf("%w: client timed out", errSessionDone)
	}
	if now.Sub(ss.lastKeepAlive) >= keepAliveEvery {
		ss.lastKeepAlive = now
		ss.keepAliveID++
		if err := ss.send(protocol.CreateKeepAlivePacket(ss.keepAliveID, protocol.S2CKeepAlive)); err != nil {
			return err
		}
	}
	if ss.state.Get() != protocol.InGame {
		return nil
	}

	if err := ss.movePlayer(); err != nil {
		return err
	}
	if ss.energy < maxStat && !ss.dead {
		ss.energy = min(ss.energy+energyRegen, maxStat)
		if err := ss.send(ss.statsPacket()); err != nil {
			return err
		}
	}
	if err := ss.streamChunks(); err != nil {
		return err
	}
	if now.Sub(ss.lastWander) >= wanderEvery {
		ss.lastWander = now
		if err := ss.wanderNPCs(); err != nil {
			return err
		}
	}
	if ss.invite != nil && now.After(ss.invite.deadline) {
		inv := ss.invite
		ss.invite = nil
		if inv.from != "" {
			ss.answerTo(inv, protocol.InviteTimedOut, "")
		}
	}
	return nil
}

func (ss *session) movePlayer() error {
	if ss.dead {
		return nil
	}
	colliders := make([]physics.Collider, 0, len(ss.npcs))
	for _, n := range ss.npcs {
		colliders = append(colliders, physics.Collider{Position: physics.Vec3(n.pos)})
	}
	physics.TickWithColliders(&ss.body, ss.move, ss.srv.gen, colliders)

	next := protocol.Vec3(ss.body.Position)
	if next == ss.pos {
		return nil
	}
	ss.pos = next
	return ss.send(protocol.CreateEntityPositionPacket(ss.uid, ss.pos))
}

// streamChunks sends the nearest missing chunks within the stream radius,
// a few per tick, and forgets chunks the client will have pruned.
func (ss *session) streamChunks() error {
	radius := int32(min(ss.viewDistance, maxStreamRadius))
	center := terrain.ChunkPosOf(int32(math.Floor(ss.pos.X)), int32(math.Floor(ss.pos.Y)))
	for pos := range ss.sent {
		if max(abs(pos.X-center.X), abs(pos.Y-center.Y)) > radius+1 {
			delete(ss.sent, pos)
		}
	}

	budget := chunksPerTick
	for r := int32(0); r <= radius && budget > 0; r++ {
		for dy := -r; dy <= r && budget > 0; dy++ {
			for dx := -r; dx <= r && budget > 0; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				pos := terrain.ChunkPos{X: center.X + dx, Y: center.Y + dy}
				if ss.sent[pos] {
					continue
				}
				p, err := ss.srv.chunkPacket(pos)
				if err != nil {
					return err
				}
				if err := ss.send(p); err != nil {
					return err
				}
				ss.sent[pos] = true
				budget--
			}
		}
	}
	return nil
}

func (ss *session) wanderNPCs() error {
	for _, n := range ss.npcs {
		n.wander(ss.srv.gen, ss.rng)
		if err := ss.send(protocol.CreateEntityPositionPacket(n.uid, n.pos)); err != nil {
			return err
		}
		if n.kind.hostile && !ss.dead && distance2D(n.pos, ss.pos) <= hostileReach {
			if err := ss.damage(hostileDamage, n.kind.alias); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ss *session) damage(amount float32, source string) error {
	ss.health = max(ss.health-amount, 0)
	if err := ss.send(ss.statsPacket()); err != nil {
		return err
	}
	if ss.health > 0 {
		return nil
	}
	ss.dead = true
	ss.move.MoveX, ss.move.MoveY = 0, 0
	return ss.send(protocol.CreateServerChatPacket(protocol.ServerChat{
		Type: protocol.ChatKill, Sender: ss.uid, Message: source + " defeated " + ss.alias,
	}))
}
