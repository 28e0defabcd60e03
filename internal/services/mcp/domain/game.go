package domain

import (
	"context"
	"fmt"
	"strings"

	gamegrpc "github.com/louisbranch/seabattle/internal/services/game/api/grpc/game"
	"github.com/louisbranch/seabattle/internal/services/game/domain/board"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// GameClient is the GameService surface the tools call.
type GameClient interface {
	GetAllGames(ctx context.Context, in *gamegrpc.TokenRequest, opts ...grpc.CallOption) (*gamegrpc.GameListResponse, error)
	CreateGame(ctx context.Context, in *gamegrpc.TokenRequest, opts ...grpc.CallOption) (*gamegrpc.CreateGameResponse, error)
	IsGameOwner(ctx context.Context, in *gamegrpc.TokenRequest, opts ...grpc.CallOption) (*gamegrpc.IsGameOwnerResponse, error)
	JoinSecondPlayer(ctx context.Context, in *gamegrpc.JoinSecondPlayerRequest, opts ...grpc.CallOption) (*gamegrpc.MessageResponse, error)
	DeleteGame(ctx context.Context, in *gamegrpc.TokenRequest, opts ...grpc.CallOption) (*gamegrpc.DeleteGameResponse, error)
	GetAllCells(ctx context.Context, in *gamegrpc.TokenRequest, opts ...grpc.CallOption) (*gamegrpc.CellListResponse, error)
	GetAllCellForSecondPlayer(ctx context.Context, in *gamegrpc.TokenRequest, opts ...grpc.CallOption) (*gamegrpc.CellListResponse, error)
	CreateShipOnField(ctx context.Context, in *gamegrpc.CreateShipRequest, opts ...grpc.CallOption) (*gamegrpc.MessageResponse, error)
	SetPlayerReady(ctx context.Context, in *gamegrpc.TokenRequest, opts ...grpc.CallOption) (*gamegrpc.MessageResponse, error)
	IsTwoPlayersReady(ctx context.Context, in *gamegrpc.TokenRequest, opts ...grpc.CallOption) (*gamegrpc.IsTwoPlayersReadyResponse, error)
	Fire(ctx context.Context, in *gamegrpc.ShootRequest, opts ...grpc.CallOption) (*gamegrpc.ShootResponse, error)
	GetPriority(ctx context.Context, in *gamegrpc.TokenRequest, opts ...grpc.CallOption) (*gamegrpc.HitResponse, error)
	IsEndOfTheGame(ctx context.Context, in *gamegrpc.TokenRequest, opts ...grpc.CallOption) (*gamegrpc.IsEndOfTheGameResponse, error)
}

// Player is who the tools act as.
type Player struct {
	Token  string
	Locale string
}

func (p Player) request() *gamegrpc.TokenRequest {
	return &gamegrpc.TokenRequest{Token: p.Token}
}

// invoke runs one game call with correlation metadata and the call timeout.
func invoke[Resp any](ctx context.Context, player Player, call func(context.Context, ...grpc.CallOption) (*Resp, error)) (*Resp, ToolCallMetadata, error) {
	invocationID, err := NewInvocationID()
	if err != nil {
		return nil, ToolCallMetadata{}, fmt.Errorf("generate invocation id: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
	defer cancel()

	callCtx, callMeta, err := NewOutgoingContext(runCtx, invocationID, player.Locale)
	if err != nil {
		return nil, ToolCallMetadata{}, fmt.Errorf("create request metadata: %w", err)
	}

	var header metadata.MD
	response, err := call(callCtx, grpc.Header(&header))
	if err != nil {
		return nil, ToolCallMetadata{}, err
	}
	if response == nil {
		return nil, ToolCallMetadata{}, fmt.Errorf("response is missing")
	}
	return response, MergeResponseMetadata(callMeta, header), nil
}

// failed turns a response-level failure into a tool error.
func failed(failure *gamegrpc.Failure, message string) error {
	if failure == nil {
		return nil
	}
	return fmt.Errorf("%s: %s", failure.Code, message)
}

// GamesListInput represents the MCP tool input for listing open games.
type GamesListInput struct{}

// GameEntry is one open game.
type GameEntry struct {
	ID           string `json:"id" jsonschema:"game identifier"`
	FirstPlayer  string `json:"first_player" jsonschema:"username of the game creator"`
	SecondPlayer string `json:"second_player,omitempty" jsonschema:"username of the second player, if any"`
	State        string `json:"state" jsonschema:"game state name"`
	Players      int    `json:"players" jsonschema:"number of seated players"`
}

// GamesListResult represents the MCP tool output for listing open games.
type GamesListResult struct {
	Games []GameEntry `json:"games" jsonschema:"games the player is not part of"`
}

// GamesListTool defines the MCP tool schema for listing open games.
func GamesListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "games_list",
		Description: "Lists the games the player is not part of",
	}
}

// GamesListHandler executes a game list request.
func GamesListHandler(client GameClient, player Player) mcp.ToolHandlerFor[GamesListInput, GamesListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GamesListInput) (*mcp.CallToolResult, GamesListResult, error) {
		resp, meta, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.GameListResponse, error) {
			return client.GetAllGames(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, GamesListResult{}, fmt.Errorf("games list failed: %w", err)
		}
		if err := failed(resp.Failure, resp.Message); err != nil {
			return nil, GamesListResult{}, err
		}
		result := GamesListResult{Games: make([]GameEntry, 0, len(resp.Games))}
		for _, g := range resp.Games {
			result.Games = append(result.Games, GameEntry{
				ID:           g.Id,
				FirstPlayer:  g.FirstPlayer,
				SecondPlayer: g.SecondPlayer,
				State:        g.GameState,
				Players:      g.NumberOfPlayers,
			})
		}
		return CallToolResultWithMetadata(meta), result, nil
	}
}

// GameCreateInput represents the MCP tool input for creating a game.
type GameCreateInput struct{}

// GameCreateResult represents the MCP tool output for creating a game.
type GameCreateResult struct {
	GameID  string `json:"game_id" jsonschema:"identifier of the new game"`
	Message string `json:"message" jsonschema:"game service message"`
}

// GameCreateTool defines the MCP tool schema for creating a game.
func GameCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_create",
		Description: "Creates a game with the player as first player and seeds an empty board",
	}
}

// GameCreateHandler executes a game create request.
func GameCreateHandler(client GameClient, player Player) mcp.ToolHandlerFor[GameCreateInput, GameCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GameCreateInput) (*mcp.CallToolResult, GameCreateResult, error) {
		resp, meta, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.CreateGameResponse, error) {
			return client.CreateGame(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, GameCreateResult{}, fmt.Errorf("game create failed: %w", err)
		}
		if err := failed(resp.Failure, resp.Message); err != nil {
			return nil, GameCreateResult{}, err
		}
		return CallToolResultWithMetadata(meta), GameCreateResult{GameID: resp.GameId, Message: resp.Message}, nil
	}
}

// GameJoinInput represents the MCP tool input for joining a game.
type GameJoinInput struct {
	GameID string `json:"game_id" jsonschema:"game identifier from games_list"`
}

// MessageResult is the output of tools that only report what happened.
type MessageResult struct {
	Message string `json:"message" jsonschema:"game service message"`
}

// GameJoinTool defines the MCP tool schema for joining a game.
func GameJoinTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_join",
		Description: "Joins an open game as its second player",
	}
}

// GameJoinHandler executes a game join request.
func GameJoinHandler(client GameClient, player Player) mcp.ToolHandlerFor[GameJoinInput, MessageResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameJoinInput) (*mcp.CallToolResult, MessageResult, error) {
		gameID := strings.TrimSpace(input.GameID)
		if gameID == "" {
			return nil, MessageResult{}, fmt.Errorf("game_id is required")
		}
		resp, meta, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.MessageResponse, error) {
			return client.JoinSecondPlayer(ctx, &gamegrpc.JoinSecondPlayerRequest{Token: player.Token, GameId: gameID}, opts...)
		})
		if err != nil {
			return nil, MessageResult{}, fmt.Errorf("game join failed: %w", err)
		}
		if err := failed(resp.Failure, resp.Message); err != nil {
			return nil, MessageResult{}, err
		}
		return CallToolResultWithMetadata(meta), MessageResult{Message: resp.Message}, nil
	}
}

// GameDeleteInput represents the MCP tool input for deleting a game.
type GameDeleteInput struct{}

// GameDeleteResult represents the MCP tool output for deleting a game.
type GameDeleteResult struct {
	AffectedRows int64  `json:"affected_rows" jsonschema:"rows removed, including cells, ships, and boards"`
	Message      string `json:"message" jsonschema:"game service message"`
}

// GameDeleteTool defines the MCP tool schema for deleting a game.
func GameDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_delete",
		Description: "Deletes the player's game with both boards",
	}
}

// GameDeleteHandler executes a game delete request.
func GameDeleteHandler(client GameClient, player Player) mcp.ToolHandlerFor[GameDeleteInput, GameDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GameDeleteInput) (*mcp.CallToolResult, GameDeleteResult, error) {
		resp, meta, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.DeleteGameResponse, error) {
			return client.DeleteGame(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, GameDeleteResult{}, fmt.Errorf("game delete failed: %w", err)
		}
		if err := failed(resp.Failure, resp.Message); err != nil {
			return nil, GameDeleteResult{}, err
		}
		return CallToolResultWithMetadata(meta), GameDeleteResult{AffectedRows: resp.AffectedRows, Message: resp.Message}, nil
	}
}

// ShipPlaceInput represents the MCP tool input for placing a ship.
type ShipPlaceInput struct {
	X         int    `json:"x" jsonschema:"zero-based column of the ship's first cell"`
	Y         int    `json:"y" jsonschema:"zero-based row of the ship's first cell"`
	Size      int    `json:"size" jsonschema:"ship length in cells"`
	Direction string `json:"direction" jsonschema:"horizontal or vertical"`
}

// ShipPlaceTool defines the MCP tool schema for placing a ship.
func ShipPlaceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "ship_place",
		Description: "Places one ship on the player's board. Horizontal ships grow to the right, vertical ships grow down.",
	}
}

// ShipPlaceHandler executes a ship placement request.
func ShipPlaceHandler(client GameClient, player Player) mcp.ToolHandlerFor[ShipPlaceInput, MessageResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ShipPlaceInput) (*mcp.CallToolResult, MessageResult, error) {
		direction, err := parseDirection(input.Direction)
		if err != nil {
			return nil, MessageResult{}, err
		}
		resp, meta, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.MessageResponse, error) {
			return client.CreateShipOnField(ctx, &gamegrpc.CreateShipRequest{
				Token:         player.Token,
				X:             input.X,
				Y:             input.Y,
				ShipSize:      input.Size,
				ShipDirection: int(direction),
			}, opts...)
		})
		if err != nil {
			return nil, MessageResult{}, fmt.Errorf("ship place failed: %w", err)
		}
		if err := failed(resp.Failure, resp.Message); err != nil {
			return nil, MessageResult{}, err
		}
		return CallToolResultWithMetadata(meta), MessageResult{Message: resp.Message}, nil
	}
}

func parseDirection(value string) (board.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "horizontal", "h", "1":
		return board.Horizontal, nil
	case "vertical", "v", "2":
		return board.Vertical, nil
	default:
		return 0, fmt.Errorf("direction %q must be horizontal or vertical", value)
	}
}

// PlayerReadyInput represents the MCP tool input for marking the player ready.
type PlayerReadyInput struct{}

// PlayerReadyResult represents the MCP tool output for marking the player ready.
type PlayerReadyResult struct {
	Message      string `json:"message" jsonschema:"game service message"`
	ReadyPlayers int    `json:"ready_players" jsonschema:"number of ready players, 0 to 2"`
}

// PlayerReadyTool defines the MCP tool schema for marking the player ready.
func PlayerReadyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "player_ready",
		Description: "Marks the player ready once their fleet is complete",
	}
}

// PlayerReadyHandler executes a player ready request.
func PlayerReadyHandler(client GameClient, player Player) mcp.ToolHandlerFor[PlayerReadyInput, PlayerReadyResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ PlayerReadyInput) (*mcp.CallToolResult, PlayerReadyResult, error) {
		resp, meta, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.MessageResponse, error) {
			return client.SetPlayerReady(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, PlayerReadyResult{}, fmt.Errorf("player ready failed: %w", err)
		}
		if err := failed(resp.Failure, resp.Message); err != nil {
			return nil, PlayerReadyResult{}, err
		}
		ready, _, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.IsTwoPlayersReadyResponse, error) {
			return client.IsTwoPlayersReady(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, PlayerReadyResult{}, fmt.Errorf("ready count failed: %w", err)
		}
		return CallToolResultWithMetadata(meta), PlayerReadyResult{Message: resp.Message, ReadyPlayers: ready.NumberOfReadyPlayers}, nil
	}
}

// FireInput represents the MCP tool input for firing a shot.
type FireInput struct {
	X int `json:"x" jsonschema:"zero-based column on the opponent's board"`
	Y int `json:"y" jsonschema:"zero-based row on the opponent's board"`
}

// FireResult represents the MCP tool output for firing a shot.
type FireResult struct {
	Outcome  string `json:"outcome" jsonschema:"Miss, Hit, or Destroyed"`
	Message  string `json:"message" jsonschema:"game service message"`
	GameOver bool   `json:"game_over" jsonschema:"whether the shot ended the game"`
	Winner   string `json:"winner,omitempty" jsonschema:"winner username when the game is over"`
}

// FireTool defines the MCP tool schema for firing a shot.
func FireTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fire",
		Description: "Fires at a cell of the opponent's board and reports whether the game ended",
	}
}

// FireHandler executes a fire request.
func FireHandler(client GameClient, player Player) mcp.ToolHandlerFor[FireInput, FireResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FireInput) (*mcp.CallToolResult, FireResult, error) {
		resp, meta, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.ShootResponse, error) {
			return client.Fire(ctx, &gamegrpc.ShootRequest{Token: player.Token, X: input.X, Y: input.Y}, opts...)
		})
		if err != nil {
			return nil, FireResult{}, fmt.Errorf("fire failed: %w", err)
		}
		if err := failed(resp.Failure, resp.Message); err != nil {
			return nil, FireResult{}, err
		}
		result := FireResult{Outcome: resp.Outcome, Message: resp.Message}
		end, _, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.IsEndOfTheGameResponse, error) {
			return client.IsEndOfTheGame(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, FireResult{}, fmt.Errorf("end of game check failed: %w", err)
		}
		result.GameOver = end.IsEndOfTheGame
		result.Winner = end.WinnerUserName
		return CallToolResultWithMetadata(meta), result, nil
	}
}

// GameStatusInput represents the MCP tool input for the game status.
type GameStatusInput struct{}

// GameStatusResult represents the MCP tool output for the game status.
type GameStatusResult struct {
	IsOwner               bool   `json:"is_owner" jsonschema:"whether the player created the game"`
	SecondPlayerConnected bool   `json:"second_player_connected" jsonschema:"whether the game has two players"`
	ReadyPlayers          int    `json:"ready_players" jsonschema:"number of ready players, 0 to 2"`
	MyTurn                bool   `json:"my_turn" jsonschema:"whether the player may fire now"`
	GameOver              bool   `json:"game_over" jsonschema:"whether the game has ended"`
	Winner                string `json:"winner,omitempty" jsonschema:"winner username when the game is over"`
}

// GameStatusTool defines the MCP tool schema for the game status.
func GameStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_status",
		Description: "Reports the player's seat, readiness, turn, and whether the game is over",
	}
}

// GameStatusHandler executes a game status request.
func GameStatusHandler(client GameClient, player Player) mcp.ToolHandlerFor[GameStatusInput, GameStatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GameStatusInput) (*mcp.CallToolResult, GameStatusResult, error) {
		owner, meta, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.IsGameOwnerResponse, error) {
			return client.IsGameOwner(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, GameStatusResult{}, fmt.Errorf("game owner check failed: %w", err)
		}
		if err := failed(owner.Failure, owner.Message); err != nil {
			return nil, GameStatusResult{}, err
		}
		result := GameStatusResult{IsOwner: owner.IsGameOwner, SecondPlayerConnected: owner.IsSecondPlayerConnected}
		if !result.IsOwner && !result.SecondPlayerConnected {
			return CallToolResultWithMetadata(meta), result, nil
		}

		ready, _, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.IsTwoPlayersReadyResponse, error) {
			return client.IsTwoPlayersReady(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, GameStatusResult{}, fmt.Errorf("ready count failed: %w", err)
		}
		result.ReadyPlayers = ready.NumberOfReadyPlayers

		priority, _, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.HitResponse, error) {
			return client.GetPriority(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, GameStatusResult{}, fmt.Errorf("priority check failed: %w", err)
		}
		result.MyTurn = priority.IsHit

		end, _, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.IsEndOfTheGameResponse, error) {
			return client.IsEndOfTheGame(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, GameStatusResult{}, fmt.Errorf("end of game check failed: %w", err)
		}
		result.GameOver = end.IsEndOfTheGame
		result.Winner = end.WinnerUserName
		return CallToolResultWithMetadata(meta), result, nil
	}
}

// BoardViewInput represents the MCP tool input for viewing a board.
type BoardViewInput struct {
	Opponent bool `json:"opponent,omitempty" jsonschema:"show the opponent's board with ships hidden instead of the player's own"`
}

// BoardViewResult represents the MCP tool output for viewing a board.
type BoardViewResult struct {
	Rows   []string `json:"rows" jsonschema:"one string per row: . empty, S ship, X hit, # destroyed, o miss"`
	Legend string   `json:"legend" jsonschema:"cell symbol legend"`
}

const boardLegend = ". empty, S ship, X hit, # destroyed, o miss"

// BoardViewTool defines the MCP tool schema for viewing a board.
func BoardViewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "board_view",
		Description: "Renders the player's board, or the opponent's board with unhit ships hidden",
	}
}

// BoardViewHandler executes a board view request.
func BoardViewHandler(client GameClient, player Player) mcp.ToolHandlerFor[BoardViewInput, BoardViewResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BoardViewInput) (*mcp.CallToolResult, BoardViewResult, error) {
		list := client.GetAllCells
		if input.Opponent {
			list = client.GetAllCellForSecondPlayer
		}
		resp, meta, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.CellListResponse, error) {
			return list(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, BoardViewResult{}, fmt.Errorf("board view failed: %w", err)
		}
		if err := failed(resp.Failure, resp.Message); err != nil {
			return nil, BoardViewResult{}, err
		}
		return CallToolResultWithMetadata(meta), BoardViewResult{Rows: RenderRows(resp.Cells), Legend: boardLegend}, nil
	}
}

// RenderRows draws cells as one string per row.
func RenderRows(cells []gamegrpc.CellResponse) []string {
	width, height := 0, 0
	for _, c := range cells {
		width = max(width, c.X+1)
		height = max(height, c.Y+1)
	}
	grid := make([][]byte, height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(" ", width))
	}
	for _, c := range cells {
		if c.X < 0 || c.Y < 0 {
			continue
		}
		grid[c.Y][c.X] = cellSymbol(board.CellState(c.CellStateId))
	}
	rows := make([]string, 0, height)
	for _, row := range grid {
		rows = append(rows, string(row))
	}
	return rows
}

func cellSymbol(state board.CellState) byte {
	switch state {
	case board.CellOccupied:
		return 'S'
	case board.CellHit:
		return 'X'
	case board.CellDestroyed:
		return '#'
	case board.CellMiss:
		return 'o'
	default:
		return '.'
	}
}
