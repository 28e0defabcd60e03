// Package engine runs every sea battle operation as one storage transaction.
//
// Each exported method resolves the caller's player, reads the snapshot the
// pure domain packages need, and commits their writes atomically. Domain
// failures come back as *apperrors.Error; anything else is wrapped as
// STORAGE_UNAVAILABLE.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/seabattle/internal/platform/errors"
	"github.com/louisbranch/seabattle/internal/platform/id"
	"github.com/louisbranch/seabattle/internal/services/game/domain/board"
	"github.com/louisbranch/seabattle/internal/services/game/domain/match"
	"github.com/louisbranch/seabattle/internal/services/game/storage"
)

var (
	// ErrStoreRequired indicates a missing game store.
	ErrStoreRequired = errors.New("game store is required")
)

// Config tunes an Engine. Zero fields take defaults.
type Config struct {
	Rules   board.Rules
	Options match.Options
	Now     func() time.Time
	NewID   func() (string, error)
}

// Engine orchestrates game operations over a transactional store.
type Engine struct {
	store storage.Store
	rules board.Rules
	opts  match.Options
	now   func() time.Time
	newID func() (string, error)
}

// New builds an engine. An empty Config.Rules means the classic board.
func New(store storage.Store, cfg Config) (*Engine, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	rules := cfg.Rules
	if rules.Width == 0 && rules.Height == 0 && len(rules.Fleet) == 0 {
		rules = board.Classic()
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("game rules: %w", err)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = id.NewID
	}
	return &Engine{store: store, rules: rules, opts: cfg.Options, now: now, newID: newID}, nil
}

// Rules returns the board and fleet rules the engine plays with.
func (e *Engine) Rules() board.Rules {
	return e.rules
}

// Options returns the rule switches the engine plays with.
func (e *Engine) Options() match.Options {
	return e.opts
}

// atomically runs fn in one transaction and normalizes its failure.
func (e *Engine) atomically(ctx context.Context, op string, fn func(storage.Tx) error) error {
	err := e.store.Atomically(ctx, fn)
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperrors.Wrap(apperrors.CodeStorageUnavailable, fmt.Sprintf("%s: %v", op, err), err)
}

func (e *Engine) clock() time.Time {
	return e.now().UTC()
}

// ensurePlayer returns the player for username, creating it on first contact.
func (e *Engine) ensurePlayer(ctx context.Context, tx storage.Tx, username string) (storage.Player, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return storage.Player{}, apperrors.New(apperrors.CodePlayerNotFound, "caller username is empty")
	}
	player, err := tx.GetPlayerByUsername(ctx, username)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return storage.Player{}, err
	}
	playerID, err := e.newID()
	if err != nil {
		return storage.Player{}, fmt.Errorf("new player id: %w", err)
	}
	player = storage.Player{ID: playerID, Username: username, CreatedAt: e.clock()}
	if err := tx.CreatePlayer(ctx, player); err != nil {
		return storage.Player{}, fmt.Errorf("create player %s: %w", username, err)
	}
	return player, nil
}

// seat loads the caller and the pairing they sit in.
func (e *Engine) seat(ctx context.Context, tx storage.Tx, username string) (storage.Player, match.Pairing, error) {
	player, err := e.ensurePlayer(ctx, tx, username)
	if err != nil {
		return storage.Player{}, match.Pairing{}, err
	}
	p, err := tx.GetGameByPlayer(ctx, player.ID)
	if err != nil {
		return storage.Player{}, match.Pairing{}, lookupError(err, apperrors.CodeGameNotFound, fmt.Sprintf("player %s has no game", username))
	}
	return player, p, nil
}

// seedBoard creates playerID's board with an all-empty grid unless it exists.
func (e *Engine) seedBoard(ctx context.Context, tx storage.Tx, gameID, playerID string) (board.Board, error) {
	existing, err := tx.GetBoard(ctx, gameID, playerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return board.Board{}, err
	}

	boardID, err := e.newID()
	if err != nil {
		return board.Board{}, fmt.Errorf("new board id: %w", err)
	}
	groupID, err := e.newID()
	if err != nil {
		return board.Board{}, fmt.Errorf("new group id: %w", err)
	}
	b := board.Board{ID: boardID, GameID: gameID, PlayerID: playerID}
	placeholder := board.Group{ID: groupID, BoardID: boardID}
	if err := tx.CreateBoard(ctx, b, placeholder, board.NewGrid(e.rules)); err != nil {
		return board.Board{}, fmt.Errorf("seed board: %w", err)
	}
	return b, nil
}

// boardCells loads the cells of playerID's board in pairing p.
func boardCells(ctx context.Context, tx storage.Tx, p match.Pairing, playerID string) (board.Board, []board.Cell, error) {
	b, err := tx.GetBoard(ctx, p.ID, playerID)
	if err != nil {
		return board.Board{}, nil, lookupError(err, apperrors.CodeBoardNotFound, fmt.Sprintf("player %s has no board in game %s", playerID, p.ID))
	}
	cells, err := tx.ListCells(ctx, b.ID)
	if err != nil {
		return board.Board{}, nil, err
	}
	return b, cells, nil
}

// lookupError turns storage.ErrNotFound into a domain not-found code.
func lookupError(err error, code apperrors.Code, message string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.New(code, message)
	}
	return err
}
