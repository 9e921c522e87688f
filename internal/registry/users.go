// Package registry holds the two process-wide registries: connected users
// and active games. Each registry is guarded by a single registry-wide
// mutex; contention is low and a trivially correct locking protocol is
// preferred over per-entity locks.
//
// Lock ordering: no operation ever holds both registry locks at once. A
// logical operation that touches both registries always completes its game
// registry critical section before taking the user registry lock, which
// preserves the game-before-user ordering and makes deadlock impossible.
package registry

import (
	"log/slog"
	"sync"

	"seabattle/internal/dependencies/clock"
	"seabattle/internal/dependencies/random"
	"seabattle/internal/model"
)

// IdentityLength is the number of digits in a generated user identity.
const IdentityLength = 10

// Users is the registry of connected users. It owns every user's outbound
// mailbox; mailboxes are only ever touched under the registry lock.
type Users struct {
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	mu      sync.Mutex
	byID    map[model.UserID]*model.User
	byLogin map[model.Login]model.UserID
	mailbox map[model.UserID][]string
}

// NewUsers creates an empty user registry.
func NewUsers(clk clock.Clock, rnd random.Random, logger *slog.Logger) *Users {
	return &Users{
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "users")),
		byID:    make(map[model.UserID]*model.User),
		byLogin: make(map[model.Login]model.UserID),
		mailbox: make(map[model.UserID][]string),
	}
}

// Register creates a user for the given login and assigns a fresh identity.
// The identity is drawn from a wide random space, but uniqueness is still
// checked under the lock and generation retried on collision.
func (u *Users) Register(login model.Login) (model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, taken := u.byLogin[login]; taken {
		return model.User{}, model.ErrLoginTaken
	}

	var id model.UserID
	for {
		id = model.UserID(u.random.Digits(IdentityLength))
		if _, taken := u.byID[id]; !taken {
			break
		}
	}

	user := &model.User{
		ID:        id,
		Login:     login,
		CreatedAt: u.clock.Now(),
	}
	u.byID[id] = user
	u.byLogin[login] = id

	u.logger.Info("user registered",
		slog.String("login", string(login)),
		slog.String("user_id", string(id)))

	return *user, nil
}

// ByID returns a copy of the user with the given identity.
func (u *Users) ByID(id model.UserID) (model.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, ok := u.byID[id]
	if !ok {
		return model.User{}, false
	}
	return *user, true
}

// ByLogin returns a copy of the user with the given login.
func (u *Users) ByLogin(login model.Login) (model.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id, ok := u.byLogin[login]
	if !ok {
		return model.User{}, false
	}
	return *u.byID[id], true
}

// SetGame records the game the user currently occupies.
func (u *Users) SetGame(id model.UserID, name model.GameName) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, ok := u.byID[id]
	if !ok {
		return false
	}
	user.GameName = name
	return true
}

// ClearGame resets the user's current game if it matches name. Called when
// a game is destroyed.
func (u *Users) ClearGame(id model.UserID, name model.GameName) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if user, ok := u.byID[id]; ok && user.GameName == name {
		user.GameName = ""
	}
}

// Enqueue appends an encoded message to the user's mailbox. Messages for an
// unknown user are dropped; the registry never fails an enqueue.
func (u *Users) Enqueue(id model.UserID, encoded string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.byID[id]; !ok {
		u.logger.Warn("dropping message for unknown user", slog.String("user_id", string(id)))
		return
	}
	u.mailbox[id] = append(u.mailbox[id], encoded)
}

// Drain returns and clears the user's pending messages in FIFO order.
func (u *Users) Drain(id model.UserID) ([]string, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	pending, ok := u.mailbox[id]
	if !ok || len(pending) == 0 {
		return nil, false
	}
	delete(u.mailbox, id)
	return pending, true
}
