package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/seabattle/internal/platform/errors"
	"github.com/louisbranch/seabattle/internal/services/game/domain/match"
	"github.com/louisbranch/seabattle/internal/services/game/storage"
)

// GameSummary is one row of the open-games listing.
type GameSummary struct {
	GameID           string
	FirstPlayerName  string
	SecondPlayerName string
	StateName        string
	PlayerCount      int
}

// Ownership describes the caller's seat.
type Ownership struct {
	IsOwner                 bool
	IsSecondPlayerConnected bool
}

// DeleteResult reports a deletion. Err is set instead of being returned.
type DeleteResult struct {
	AffectedRows int64
	Err          error
}

// ClearPhase is the teardown step a ClearCompletedGame call ran.
type ClearPhase int

const (
	// ClearNone means nothing was removed.
	ClearNone ClearPhase = iota
	// ClearOpponentBoard removed the opponent's board and kept the pairing.
	ClearOpponentBoard
	// ClearGame removed the pairing and the caller's board.
	ClearGame
)

// ClearResult reports a teardown step. Err is set instead of being returned.
type ClearResult struct {
	Phase        ClearPhase
	AffectedRows int64
	Err          error
}

// ListOpenGames lists every pairing the caller does not sit in, oldest first.
func (e *Engine) ListOpenGames(ctx context.Context, username string) ([]GameSummary, error) {
	var summaries []GameSummary
	err := e.atomically(ctx, "list games", func(tx storage.Tx) error {
		player, err := e.ensurePlayer(ctx, tx, username)
		if err != nil {
			return err
		}
		games, err := tx.ListGamesExcluding(ctx, player.ID)
		if err != nil {
			return err
		}
		summaries = make([]GameSummary, 0, len(games))
		for _, p := range games {
			summaries = append(summaries, GameSummary{
				GameID:           p.ID,
				FirstPlayerName:  p.FirstPlayerName,
				SecondPlayerName: p.SecondPlayerName,
				StateName:        p.State.String(),
				PlayerCount:      p.PlayerCount(),
			})
		}
		return nil
	})
	return summaries, err
}

// CreateGame seats the caller as first player of a new pairing and seeds
// their board.
func (e *Engine) CreateGame(ctx context.Context, username string) (string, error) {
	var gameID string
	err := e.atomically(ctx, "create game", func(tx storage.Tx) error {
		player, err := e.ensurePlayer(ctx, tx, username)
		if err != nil {
			return err
		}
		if err := ensureUnseated(ctx, tx, player); err != nil {
			return err
		}

		gameID, err = e.newID()
		if err != nil {
			return fmt.Errorf("new game id: %w", err)
		}
		p := match.New(gameID, player.ID, player.Username, e.clock())
		if err := tx.CreateGame(ctx, p); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				return alreadyInGame(player)
			}
			return err
		}
		_, err = e.seedBoard(ctx, tx, p.ID, player.ID)
		return err
	})
	if err != nil {
		return "", err
	}
	return gameID, nil
}

// IsOwner reports whether the caller created their pairing and whether the
// second seat is taken. A caller without a pairing gets false/false.
func (e *Engine) IsOwner(ctx context.Context, username string) (Ownership, error) {
	var ownership Ownership
	err := e.atomically(ctx, "is owner", func(tx storage.Tx) error {
		player, p, err := e.seatOrNone(ctx, tx, username)
		if err != nil || p == nil {
			return err
		}
		ownership.IsOwner = p.SlotOf(player.ID) == match.SlotFirst
		ownership.IsSecondPlayerConnected = !ownership.IsOwner || p.HasSecondPlayer()
		return nil
	})
	return ownership, err
}

// JoinSecondPlayer seats the caller in gameID's second slot and seeds their
// board.
func (e *Engine) JoinSecondPlayer(ctx context.Context, username, gameID string) error {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return apperrors.New(apperrors.CodeGameIDRequired, "game id is required to join")
	}
	return e.atomically(ctx, "join game", func(tx storage.Tx) error {
		player, err := e.ensurePlayer(ctx, tx, username)
		if err != nil {
			return err
		}
		p, err := tx.GetGame(ctx, gameID)
		if err != nil {
			return lookupError(err, apperrors.CodeGameNotFound, fmt.Sprintf("game %s does not exist", gameID))
		}
		// Join itself rejects the creator joining their own game.
		if p.SlotOf(player.ID) == match.SlotNone {
			if err := ensureUnseated(ctx, tx, player); err != nil {
				return err
			}
		}
		joined, err := match.Join(p, player.ID, player.Username, e.clock())
		if err != nil {
			return err
		}
		if err := tx.UpdateGame(ctx, joined); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				return alreadyInGame(player)
			}
			return err
		}
		_, err = e.seedBoard(ctx, tx, joined.ID, player.ID)
		return err
	})
}

// DeleteGame removes the caller's pairing with both boards. Failures are
// reported in the result.
func (e *Engine) DeleteGame(ctx context.Context, username string) DeleteResult {
	var result DeleteResult
	err := e.atomically(ctx, "delete game", func(tx storage.Tx) error {
		_, p, err := e.seat(ctx, tx, username)
		if err != nil {
			return err
		}
		n, err := tx.DeleteGame(ctx, p.ID)
		if err != nil {
			return lookupError(err, apperrors.CodeGameNotFound, fmt.Sprintf("game %s does not exist", p.ID))
		}
		result.AffectedRows = n
		return nil
	})
	if err != nil {
		return DeleteResult{Err: err}
	}
	return result
}

// ClearCompletedGame runs one step of the two-phase teardown of a finished or
// abandoned pairing. While the opponent's board still has cells it is removed
// and the pairing kept; otherwise the pairing and the caller's board go.
// Failures are reported in the result.
func (e *Engine) ClearCompletedGame(ctx context.Context, username string) ClearResult {
	var result ClearResult
	err := e.atomically(ctx, "clear game", func(tx storage.Tx) error {
		player, p, err := e.seat(ctx, tx, username)
		if err != nil {
			return err
		}
		if !match.Completed(p) {
			return apperrors.New(apperrors.CodeGameNotCompleted, fmt.Sprintf("game %s is %s", p.ID, p.State))
		}

		if opponentID := p.OpponentOf(player.ID); opponentID != "" {
			opponentBoard, err := tx.GetBoard(ctx, p.ID, opponentID)
			switch {
			case err == nil:
				cells, err := tx.ListCells(ctx, opponentBoard.ID)
				if err != nil {
					return err
				}
				if len(cells) > 0 {
					n, err := tx.DeleteBoard(ctx, opponentBoard.ID)
					if err != nil {
						return err
					}
					result = ClearResult{Phase: ClearOpponentBoard, AffectedRows: n}
					return nil
				}
			case !errors.Is(err, storage.ErrNotFound):
				return err
			}
		}

		n, err := tx.DeleteGame(ctx, p.ID)
		if err != nil {
			return lookupError(err, apperrors.CodeGameNotFound, fmt.Sprintf("game %s does not exist", p.ID))
		}
		result = ClearResult{Phase: ClearGame, AffectedRows: n}
		return nil
	})
	if err != nil {
		return ClearResult{Err: err}
	}
	return result
}

// seatOrNone is seat for queries where having no pairing is an answer.
func (e *Engine) seatOrNone(ctx context.Context, tx storage.Tx, username string) (storage.Player, *match.Pairing, error) {
	player, err := e.ensurePlayer(ctx, tx, username)
	if err != nil {
		return storage.Player{}, nil, err
	}
	p, err := tx.GetGameByPlayer(ctx, player.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return player, nil, nil
		}
		return storage.Player{}, nil, err
	}
	return player, &p, nil
}

func ensureUnseated(ctx context.Context, tx storage.Tx, player storage.Player) error {
	current, err := tx.GetGameByPlayer(ctx, player.ID)
	switch {
	case err == nil:
		return apperrors.New(apperrors.CodeAlreadyInGame, fmt.Sprintf("player %s already sits in game %s", player.Username, current.ID))
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return err
	}
}

func alreadyInGame(player storage.Player) error {
	return apperrors.New(apperrors.CodeAlreadyInGame, fmt.Sprintf("player %s already sits in a game", player.Username))
}
