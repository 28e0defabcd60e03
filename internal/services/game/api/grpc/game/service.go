// Package game serves the sea battle engine over gRPC.
//
// Messages are plain structs carried by the platform JSON codec, so the
// service descriptors below are written by hand instead of generated.
// Correctable failures travel in each response's Failure and Message fields;
// everything else is a gRPC status error.
package game

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/seabattle/internal/platform/requestctx"
	"github.com/louisbranch/seabattle/internal/services/game/domain/board"
	"github.com/louisbranch/seabattle/internal/services/game/domain/history"
	"github.com/louisbranch/seabattle/internal/services/game/domain/match"
	"github.com/louisbranch/seabattle/internal/services/game/domain/placement"
	"github.com/louisbranch/seabattle/internal/services/game/domain/shot"
	"github.com/louisbranch/seabattle/internal/services/game/engine"
	gamei18n "github.com/louisbranch/seabattle/internal/services/game/i18n"
	"github.com/louisbranch/seabattle/internal/services/game/storage"
)

// ErrEngineRequired indicates a missing engine.
var ErrEngineRequired = errors.New("game engine is required")

// GameEngine is the engine surface the game service calls.
type GameEngine interface {
	ListOpenGames(ctx context.Context, username string) ([]engine.GameSummary, error)
	CreateGame(ctx context.Context, username string) (string, error)
	IsOwner(ctx context.Context, username string) (engine.Ownership, error)
	JoinSecondPlayer(ctx context.Context, username, gameID string) error
	DeleteGame(ctx context.Context, username string) engine.DeleteResult
	ClearCompletedGame(ctx context.Context, username string) engine.ClearResult
	Cells(ctx context.Context, username string) ([]board.Cell, error)
	OpponentCells(ctx context.Context, username string) ([]board.Cell, error)
	PlaceShip(ctx context.Context, username string, req placement.Request) (board.Ship, error)
	SetReady(ctx context.Context, username string) error
	ReadinessQuery(ctx context.Context, username string) (int, error)
	Fire(ctx context.Context, username string, target board.Point) (shot.Outcome, error)
	Priority(ctx context.Context, username string) (bool, error)
	EvaluateEndOfGame(ctx context.Context, username string) (match.End, error)
}

// HistoryEngine is the engine surface the history service calls.
type HistoryEngine interface {
	History(ctx context.Context, req engine.HistoryRequest) (storage.HistoryPage, error)
	TopPlayers(ctx context.Context) ([]history.Standing, error)
}

// GameService implements seabattle.game.v1.GameService.
type GameService struct {
	engine GameEngine
}

// NewGameService creates a game service over engine.
func NewGameService(engine GameEngine) (*GameService, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}
	return &GameService{engine: engine}, nil
}

// GetAllGames lists the games the caller could join.
func (s *GameService) GetAllGames(ctx context.Context, _ *TokenRequest) (*GameListResponse, error) {
	games, err := s.engine.ListOpenGames(ctx, requestctx.UsernameFromContext(ctx))
	failure, text, err := describe(ctx, err)
	if err != nil {
		return nil, err
	}
	resp := &GameListResponse{Games: make([]GameListItem, 0, len(games)), Message: text, Failure: failure}
	for _, g := range games {
		resp.Games = append(resp.Games, GameListItem{
			Id:              g.GameID,
			FirstPlayer:     g.FirstPlayerName,
			SecondPlayer:    g.SecondPlayerName,
			GameState:       g.StateName,
			NumberOfPlayers: g.PlayerCount,
		})
	}
	return resp, nil
}

// CreateGame opens a game with the caller as first player.
func (s *GameService) CreateGame(ctx context.Context, _ *TokenRequest) (*CreateGameResponse, error) {
	gameID, err := s.engine.CreateGame(ctx, requestctx.UsernameFromContext(ctx))
	failure, text, err := describe(ctx, err)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &CreateGameResponse{Message: text, Failure: failure}, nil
	}
	return &CreateGameResponse{GameId: gameID, Message: printer(ctx).Sprintf(gamei18n.GameCreatedKey)}, nil
}

// IsGameOwner reports the caller's seat.
func (s *GameService) IsGameOwner(ctx context.Context, _ *TokenRequest) (*IsGameOwnerResponse, error) {
	own, err := s.engine.IsOwner(ctx, requestctx.UsernameFromContext(ctx))
	failure, text, err := describe(ctx, err)
	if err != nil {
		return nil, err
	}
	return &IsGameOwnerResponse{
		IsGameOwner:             own.IsOwner,
		IsSecondPlayerConnected: own.IsSecondPlayerConnected,
		Message:                 text,
		Failure:                 failure,
	}, nil
}

// JoinSecondPlayer seats the caller in the requested game.
func (s *GameService) JoinSecondPlayer(ctx context.Context, in *JoinSecondPlayerRequest) (*MessageResponse, error) {
	err := s.engine.JoinSecondPlayer(ctx, requestctx.UsernameFromContext(ctx), in.GetGameId())
	return s.messageResponse(ctx, err, gamei18n.SecondPlayerJoinedKey)
}

// DeleteGame removes the caller's game. It never fails at the transport
// level.
func (s *GameService) DeleteGame(ctx context.Context, _ *TokenRequest) (*DeleteGameResponse, error) {
	result := s.engine.DeleteGame(ctx, requestctx.UsernameFromContext(ctx))
	if result.Err != nil {
		failure, text := report(ctx, result.Err)
		return &DeleteGameResponse{Message: text, Failure: failure}, nil
	}
	return &DeleteGameResponse{
		AffectedRows: result.AffectedRows,
		Message:      printer(ctx).Sprintf(gamei18n.GameDeletedKey, result.AffectedRows),
	}, nil
}

// ClearingDB runs the next teardown step of a finished game. It never fails
// at the transport level.
func (s *GameService) ClearingDB(ctx context.Context, _ *TokenRequest) (*ClearingDBResponse, error) {
	result := s.engine.ClearCompletedGame(ctx, requestctx.UsernameFromContext(ctx))
	if result.Err != nil {
		failure, text := report(ctx, result.Err)
		return &ClearingDBResponse{Message: text, Failure: failure}, nil
	}
	p := printer(ctx)
	resp := &ClearingDBResponse{AffectedRows: result.AffectedRows}
	switch result.Phase {
	case engine.ClearOpponentBoard:
		resp.Step = 1
		resp.Message = p.Sprintf(gamei18n.ClearFirstStepKey, result.AffectedRows)
	case engine.ClearGame:
		resp.Step = 2
		resp.Message = p.Sprintf(gamei18n.ClearSecondStepKey, result.AffectedRows)
	default:
		resp.Message = p.Sprintf(gamei18n.ClearNothingToDoKey)
	}
	return resp, nil
}

// GetAllCells lists the caller's own board.
func (s *GameService) GetAllCells(ctx context.Context, _ *TokenRequest) (*CellListResponse, error) {
	cells, err := s.engine.Cells(ctx, requestctx.UsernameFromContext(ctx))
	return cellList(ctx, cells, err)
}

// GetAllCellForSecondPlayer lists the opponent's board with ships hidden.
func (s *GameService) GetAllCellForSecondPlayer(ctx context.Context, _ *TokenRequest) (*CellListResponse, error) {
	cells, err := s.engine.OpponentCells(ctx, requestctx.UsernameFromContext(ctx))
	return cellList(ctx, cells, err)
}

// CreateShipOnField places one ship on the caller's board.
func (s *GameService) CreateShipOnField(ctx context.Context, in *CreateShipRequest) (*MessageResponse, error) {
	_, err := s.engine.PlaceShip(ctx, requestctx.UsernameFromContext(ctx), placement.Request{
		Origin:    board.Point{X: in.X, Y: in.Y},
		Size:      in.ShipSize,
		Direction: board.Direction(in.ShipDirection),
	})
	return s.messageResponse(ctx, err, gamei18n.ShipCreatedKey)
}

// SetPlayerReady marks the caller ready once their fleet is complete.
func (s *GameService) SetPlayerReady(ctx context.Context, _ *TokenRequest) (*MessageResponse, error) {
	err := s.engine.SetReady(ctx, requestctx.UsernameFromContext(ctx))
	return s.messageResponse(ctx, err, gamei18n.PlayerReadyKey)
}

// IsTwoPlayersReady counts the ready players in the caller's game.
func (s *GameService) IsTwoPlayersReady(ctx context.Context, _ *TokenRequest) (*IsTwoPlayersReadyResponse, error) {
	n, err := s.engine.ReadinessQuery(ctx, requestctx.UsernameFromContext(ctx))
	failure, text, err := describe(ctx, err)
	if err != nil {
		return nil, err
	}
	return &IsTwoPlayersReadyResponse{NumberOfReadyPlayers: n, Message: text, Failure: failure}, nil
}

// Fire shoots at the opponent's board.
func (s *GameService) Fire(ctx context.Context, in *ShootRequest) (*ShootResponse, error) {
	outcome, err := s.engine.Fire(ctx, requestctx.UsernameFromContext(ctx), board.Point{X: in.X, Y: in.Y})
	failure, text, err := describe(ctx, err)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &ShootResponse{Message: text, Failure: failure}, nil
	}
	return &ShootResponse{Outcome: outcome.String(), Message: printer(ctx).Sprintf(outcomeKey(outcome))}, nil
}

// GetPriority reports whether the caller may fire now.
func (s *GameService) GetPriority(ctx context.Context, _ *TokenRequest) (*HitResponse, error) {
	ok, err := s.engine.Priority(ctx, requestctx.UsernameFromContext(ctx))
	failure, text, err := describe(ctx, err)
	if err != nil {
		return nil, err
	}
	return &HitResponse{IsHit: ok, Message: text, Failure: failure}, nil
}

// IsEndOfTheGame finishes the game when one fleet is gone.
func (s *GameService) IsEndOfTheGame(ctx context.Context, _ *TokenRequest) (*IsEndOfTheGameResponse, error) {
	end, err := s.engine.EvaluateEndOfGame(ctx, requestctx.UsernameFromContext(ctx))
	failure, text, err := describe(ctx, err)
	if err != nil {
		return nil, err
	}
	return &IsEndOfTheGameResponse{
		IsEndOfTheGame: end.Finished,
		WinnerUserName: end.WinnerName,
		Message:        text,
		Failure:        failure,
	}, nil
}

func (s *GameService) messageResponse(ctx context.Context, err error, successKey string) (*MessageResponse, error) {
	failure, text, err := describe(ctx, err)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &MessageResponse{Message: text, Failure: failure}, nil
	}
	return &MessageResponse{Message: printer(ctx).Sprintf(successKey)}, nil
}

func cellList(ctx context.Context, cells []board.Cell, err error) (*CellListResponse, error) {
	failure, text, err := describe(ctx, err)
	if err != nil {
		return nil, err
	}
	resp := &CellListResponse{Cells: make([]CellResponse, 0, len(cells)), Message: text, Failure: failure}
	for _, c := range cells {
		resp.Cells = append(resp.Cells, CellResponse{Id: c.ID, X: c.X, Y: c.Y, CellStateId: int(c.State)})
	}
	return resp, nil
}

func outcomeKey(outcome shot.Outcome) string {
	switch outcome {
	case shot.Hit:
		return gamei18n.ShotHitKey
	case shot.Destroyed:
		return gamei18n.ShotDestroyedKey
	default:
		return gamei18n.ShotMissedKey
	}
}

// HistoryService implements seabattle.history.v1.HistoryService.
type HistoryService struct {
	engine HistoryEngine
}

// NewHistoryService creates a history service over engine.
func NewHistoryService(engine HistoryEngine) (*HistoryService, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}
	return &HistoryService{engine: engine}, nil
}

// GetAllGameHistories lists finished games newest first.
func (s *HistoryService) GetAllGameHistories(ctx context.Context, in *GameHistoryRequest) (*GameHistoryResponse, error) {
	page, err := s.engine.History(ctx, engine.HistoryRequest{
		PageSize:  in.PageSize,
		PageToken: in.PageToken,
		Filter:    in.Filter,
	})
	failure, text, err := describe(ctx, err)
	if err != nil {
		return nil, err
	}
	resp := &GameHistoryResponse{
		Games:         make([]GameHistoryItem, 0, len(page.Records)),
		NextPageToken: page.NextPageToken,
		Message:       text,
		Failure:       failure,
	}
	for _, r := range page.Records {
		resp.Games = append(resp.Games, GameHistoryItem{
			Id:               r.ID,
			GameId:           r.GameID,
			FirstPlayerName:  r.FirstPlayerName,
			SecondPlayerName: r.SecondPlayerName,
			GameStateName:    r.StateName,
			WinnerName:       r.WinnerName,
			FinishedAt:       r.FinishedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

// GetTopPlayers names the three players with the most wins.
func (s *HistoryService) GetTopPlayers(ctx context.Context, _ *TokenRequest) (*TopPlayersResponse, error) {
	standings, err := s.engine.TopPlayers(ctx)
	failure, text, err := describe(ctx, err)
	if err != nil {
		return nil, err
	}
	resp := &TopPlayersResponse{Message: text, Failure: failure}
	places := []struct {
		name *string
		wins *int
	}{
		{&resp.FirstPlacePlayer, &resp.FirstPlaceNumberOfWins},
		{&resp.SecondPlacePlayer, &resp.SecondPlaceNumberOfWins},
		{&resp.ThirdPlacePlayer, &resp.ThirdPlaceNumberOfWins},
	}
	for i, standing := range standings {
		if i >= len(places) {
			break
		}
		*places[i].name = standing.PlayerName
		*places[i].wins = standing.Wins
	}
	return resp, nil
}
