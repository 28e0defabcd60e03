// Package storage defines persistence contracts for the sea battle engine.
//
// Every read and write runs inside Store.Atomically, which hands out a Tx
// scoped to one transaction. The transaction commits when the callback
// returns nil and rolls back on any error or panic, so a unit of work never
// leaves partial state behind.
//
// Common error types:
//   - ErrNotFound: requested record is missing
//   - ErrAlreadyExists: a uniqueness constraint rejected the write
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/seabattle/internal/services/game/domain/board"
	"github.com/louisbranch/seabattle/internal/services/game/domain/history"
	"github.com/louisbranch/seabattle/internal/services/game/domain/match"
	"github.com/louisbranch/seabattle/internal/services/game/storage/filter"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Player is an identity known to the engine.
type Player struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// HistoryQuery selects one page of finished games, newest first.
type HistoryQuery struct {
	PageSize  int
	PageToken string
	Filter    filter.Condition
}

// HistoryPage is one page of finished games.
type HistoryPage struct {
	Records       []history.Record
	NextPageToken string
}

// PlayerStore persists players.
type PlayerStore interface {
	CreatePlayer(ctx context.Context, player Player) error
	GetPlayerByUsername(ctx context.Context, username string) (Player, error)
}

// GameStore persists pairings.
type GameStore interface {
	CreateGame(ctx context.Context, pairing match.Pairing) error
	GetGame(ctx context.Context, gameID string) (match.Pairing, error)
	// GetGameByPlayer returns the pairing playerID sits in.
	GetGameByPlayer(ctx context.Context, playerID string) (match.Pairing, error)
	UpdateGame(ctx context.Context, pairing match.Pairing) error
	// ListGamesExcluding returns every pairing playerID does not sit in,
	// oldest first.
	ListGamesExcluding(ctx context.Context, playerID string) ([]match.Pairing, error)
	// DeleteGame removes the pairing and everything it owns. It returns the
	// number of rows removed across all tables.
	DeleteGame(ctx context.Context, gameID string) (int64, error)
}

// BoardStore persists boards, ships, placement groups, and cells.
type BoardStore interface {
	// CreateBoard inserts the board, its placeholder group, and its cells. The
	// cells are attached to the placeholder group and receive storage ids.
	CreateBoard(ctx context.Context, b board.Board, placeholder board.Group, cells []board.Cell) error
	GetBoard(ctx context.Context, gameID, playerID string) (board.Board, error)
	// DeleteBoard removes the board and everything it owns, returning the
	// number of rows removed across all tables.
	DeleteBoard(ctx context.Context, boardID string) (int64, error)

	ListCells(ctx context.Context, boardID string) ([]board.Cell, error)
	GetCell(ctx context.Context, boardID string, p board.Point) (board.Cell, error)
	ListGroupCells(ctx context.Context, groupID string) ([]board.Cell, error)
	// UpdateCells writes the state and group of each cell by id.
	UpdateCells(ctx context.Context, cells []board.Cell) error

	ListShips(ctx context.Context, boardID string) ([]board.Ship, error)
	// CreateShip inserts the ship together with its placement group.
	CreateShip(ctx context.Context, ship board.Ship, group board.Group) error
	GetGroup(ctx context.Context, groupID string) (board.Group, error)
	UpdateShipState(ctx context.Context, shipID string, state board.ShipState) error
}

// HistoryStore persists terminal game records.
type HistoryStore interface {
	// CreateHistory appends a record. A second record for the same game
	// fails with ErrAlreadyExists.
	CreateHistory(ctx context.Context, record history.Record) error
	GetHistoryByGame(ctx context.Context, gameID string) (history.Record, error)
	ListHistory(ctx context.Context, query HistoryQuery) (HistoryPage, error)
	ListWinners(ctx context.Context) ([]history.Record, error)
}

// Tx is the set of operations available inside one transaction.
type Tx interface {
	PlayerStore
	GameStore
	BoardStore
	HistoryStore
}

// Store runs units of work.
type Store interface {
	// Atomically runs fn in a single transaction.
	Atomically(ctx context.Context, fn func(Tx) error) error
	Close() error
}
