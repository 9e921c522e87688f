// Package server contains the request dispatch loop and the broker that
// fans requests out to a fixed pool of dispatch workers.
package server

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"

	"seabattle/internal/archive"
	"seabattle/internal/dependencies/clock"
	"seabattle/internal/engine"
	"seabattle/internal/model"
	"seabattle/internal/protocol"
	"seabattle/internal/registry"
)

// Dispatcher handles one decoded request at a time: it validates the acting
// identity, performs the registry or engine operation, and piggy-backs the
// user's pending notifications onto the reply.
type Dispatcher struct {
	users   *registry.Users
	games   *registry.Games
	archive archive.Archive
	clock   clock.Clock
	logger  *slog.Logger
}

// NewDispatcher wires a dispatcher over the shared registries.
func NewDispatcher(
	users *registry.Users,
	games *registry.Games,
	arch archive.Archive,
	clk clock.Clock,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		users:   users,
		games:   games,
		archive: arch,
		clock:   clk,
		logger:  logger.With(slog.String("component", "dispatcher")),
	}
}

// Handle processes one request payload and returns the complete reply,
// including any drained mailbox content. It never panics: a malformed
// request yields a failure reply, not a dead worker.
func (d *Dispatcher) Handle(ctx context.Context, payload []byte) (reply []byte) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic in request handler",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())))
			reply = []byte(protocol.Failure())
		}
	}()

	msg := protocol.Decode(string(payload))

	var out string
	switch msg.Op {
	case protocol.OpLogin:
		out = d.handleLogin(msg)
	case protocol.OpCreateGame:
		out = d.handleCreateGame(msg)
	case protocol.OpListGames:
		out = d.handleListGames(msg)
	case protocol.OpJoinGame:
		out = d.handleJoinGame(msg)
	case protocol.OpInvitePlayer:
		out = d.handleInvitePlayer(msg)
	case protocol.OpSubmitField:
		out = d.handleSubmitField(msg)
	case protocol.OpMakeMove:
		out = d.handleMakeMove(ctx, msg)
	case protocol.OpPoll:
		out = d.handlePoll(msg)
	default:
		// Unknown opcodes get the idle reply; the drain below still runs.
		out = protocol.Ack(protocol.OpPoll)
	}

	// Drain the acting user's mailbox into the reply. This runs for every
	// identified request, so no queued notification is starved as long as
	// the client keeps issuing requests, including idle polls.
	if msg.Op != protocol.OpLogin && len(msg.Fields) > 0 {
		if pending, ok := d.users.Drain(model.UserID(msg.Fields[0])); ok {
			out = protocol.JoinBatch(append([]string{out}, pending...))
		}
	}

	return []byte(out)
}

// actingUser resolves the identity field every request except Login carries.
func (d *Dispatcher) actingUser(msg protocol.Message) (model.User, bool) {
	if len(msg.Fields) < 1 {
		return model.User{}, false
	}
	return d.users.ByID(model.UserID(msg.Fields[0]))
}

func (d *Dispatcher) handleLogin(msg protocol.Message) string {
	if len(msg.Fields) != 1 || msg.Fields[0] == "" {
		return protocol.Failure()
	}

	user, err := d.users.Register(model.Login(msg.Fields[0]))
	if err != nil {
		return protocol.Failure()
	}

	return protocol.Message{Op: protocol.OpLogin, Fields: []string{string(user.ID)}}.Encode()
}

func (d *Dispatcher) handleCreateGame(msg protocol.Message) string {
	if len(msg.Fields) != 2 {
		return protocol.Failure()
	}
	user, ok := d.actingUser(msg)
	if !ok {
		return protocol.Failure()
	}

	name := model.GameName(msg.Fields[1])
	if err := d.games.Create(name, user.ID); err != nil {
		return protocol.Failure()
	}
	d.users.SetGame(user.ID, name)

	return protocol.Ack(protocol.OpCreateGame)
}

func (d *Dispatcher) handleListGames(msg protocol.Message) string {
	if _, ok := d.actingUser(msg); !ok {
		return protocol.Failure()
	}

	open := d.games.ListOpen()
	fields := make([]string, len(open))
	for i, name := range open {
		fields[i] = string(name)
	}

	return protocol.Message{Op: protocol.OpListGames, Fields: fields}.Encode()
}

func (d *Dispatcher) handleJoinGame(msg protocol.Message) string {
	if len(msg.Fields) != 2 {
		return protocol.Failure()
	}
	user, ok := d.actingUser(msg)
	if !ok {
		return protocol.Failure()
	}

	name := model.GameName(msg.Fields[1])
	host, err := d.games.Join(name, user.ID)
	if err != nil {
		return protocol.Failure()
	}
	d.users.SetGame(user.ID, name)

	// Tell the waiting creator who joined, on their next request.
	d.users.Enqueue(host, protocol.Message{
		Op:     protocol.OpPlayerJoined,
		Fields: []string{string(user.Login)},
	}.Encode())

	return protocol.Ack(protocol.OpJoinGame)
}

func (d *Dispatcher) handleInvitePlayer(msg protocol.Message) string {
	if len(msg.Fields) != 3 {
		return protocol.Failure()
	}
	user, ok := d.actingUser(msg)
	if !ok {
		return protocol.Failure()
	}

	target, ok := d.users.ByLogin(model.Login(msg.Fields[1]))
	if !ok {
		return protocol.Failure()
	}

	d.users.Enqueue(target.ID, protocol.Message{
		Op:     protocol.OpInvitePlayer,
		Fields: []string{string(user.Login), msg.Fields[2]},
	}.Encode())

	return protocol.Ack(protocol.OpInvitePlayer)
}

func (d *Dispatcher) handleSubmitField(msg protocol.Message) string {
	if len(msg.Fields) != 2+model.FieldRows {
		return protocol.Failure()
	}
	user, ok := d.actingUser(msg)
	if !ok {
		return protocol.Failure()
	}

	fleet, err := engine.ParseFleet(msg.Fields[2:])
	if err != nil {
		return protocol.Failure()
	}

	name := model.GameName(msg.Fields[1])
	notice, err := d.games.PlaceFleet(name, user.ID, fleet)
	if err != nil {
		return protocol.Failure()
	}

	if notice != nil {
		// Second fleet just landed: assign turns. The recipients learn of
		// this on their own next request, not as part of this reply.
		d.users.Enqueue(notice.First, protocol.Message{
			Op:     protocol.OpGameStart,
			Fields: []string{"Y"},
		}.Encode())
		d.users.Enqueue(notice.Second, protocol.Message{
			Op:     protocol.OpGameStart,
			Fields: []string{"N"},
		}.Encode())
	}

	return protocol.Ack(protocol.OpSubmitField)
}

func (d *Dispatcher) handleMakeMove(ctx context.Context, msg protocol.Message) string {
	if len(msg.Fields) != 3 {
		return protocol.Failure()
	}
	user, ok := d.actingUser(msg)
	if !ok {
		return protocol.Failure()
	}

	row, col, ok := parseShot(msg.Fields[2])
	if !ok {
		return protocol.Failure()
	}

	name := model.GameName(msg.Fields[1])
	report, err := d.games.Shoot(name, user.ID, row, col)
	if err != nil {
		return protocol.Failure()
	}

	// Report the shot to the opponent regardless of the outcome.
	d.users.Enqueue(report.Opponent, protocol.Message{
		Op:     protocol.OpOpponentMove,
		Fields: []string{shotDigits(report)},
	}.Encode())

	if report.GameOver {
		d.finishGame(ctx, name, user, report)
	}

	return protocol.Message{
		Op:     protocol.OpMakeMove,
		Fields: []string{string(report.Result.Digit())},
	}.Encode()
}

func (d *Dispatcher) handlePoll(msg protocol.Message) string {
	if _, ok := d.actingUser(msg); !ok {
		return protocol.Failure()
	}
	return protocol.Ack(protocol.OpPoll)
}

// finishGame notifies both players of the winner, detaches them from the
// game and records the result. The game itself was already removed by the
// registry when the last segment fell.
func (d *Dispatcher) finishGame(ctx context.Context, name model.GameName, winner model.User, report registry.ShotReport) {
	end := protocol.Message{
		Op:     protocol.OpGameEnd,
		Fields: []string{string(winner.Login)},
	}.Encode()
	d.users.Enqueue(winner.ID, end)
	d.users.Enqueue(report.Opponent, end)

	d.users.ClearGame(winner.ID, name)
	d.users.ClearGame(report.Opponent, name)

	result := &model.GameResult{
		Name:       name,
		Winner:     winner.Login,
		Moves:      report.Moves,
		FinishedAt: d.clock.Now(),
	}
	if loser, ok := d.users.ByID(report.Opponent); ok {
		result.Loser = loser.Login
	}

	if err := d.archive.Record(ctx, result); err != nil && !errors.Is(err, context.Canceled) {
		d.logger.Warn("failed to archive game result",
			slog.String("game", string(name)),
			slog.String("error", err.Error()))
	}
}

// parseShot decodes the two-digit row+column move field.
func parseShot(action string) (row, col int, ok bool) {
	if len(action) != 2 {
		return 0, 0, false
	}
	if action[0] < '0' || action[0] > '9' || action[1] < '0' || action[1] > '9' {
		return 0, 0, false
	}
	return int(action[0] - '0'), int(action[1] - '0'), true
}

// shotDigits encodes an opponent-move report as <row><col><result> digits.
func shotDigits(report registry.ShotReport) string {
	return string([]byte{
		byte('0' + report.Row),
		byte('0' + report.Col),
		report.Result.Digit(),
	})
}
