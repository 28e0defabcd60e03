package domain

import (
	"context"
	"fmt"

	gamegrpc "github.com/louisbranch/seabattle/internal/services/game/api/grpc/game"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

// HistoryClient is the HistoryService surface the tools call.
type HistoryClient interface {
	GetTopPlayers(ctx context.Context, in *gamegrpc.TokenRequest, opts ...grpc.CallOption) (*gamegrpc.TopPlayersResponse, error)
}

// HistoryTopInput represents the MCP tool input for the leaderboard.
type HistoryTopInput struct{}

// Standing is one leaderboard place.
type Standing struct {
	Place  int    `json:"place" jsonschema:"1 to 3"`
	Player string `json:"player" jsonschema:"username"`
	Wins   int    `json:"wins" jsonschema:"number of games won"`
}

// HistoryTopResult represents the MCP tool output for the leaderboard.
type HistoryTopResult struct {
	Players []Standing `json:"players" jsonschema:"up to three players with the most wins"`
}

// HistoryTopTool defines the MCP tool schema for the leaderboard.
func HistoryTopTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "history_top",
		Description: "Lists the three players with the most wins",
	}
}

// HistoryTopHandler executes a leaderboard request.
func HistoryTopHandler(client HistoryClient, player Player) mcp.ToolHandlerFor[HistoryTopInput, HistoryTopResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ HistoryTopInput) (*mcp.CallToolResult, HistoryTopResult, error) {
		resp, meta, err := invoke(ctx, player, func(ctx context.Context, opts ...grpc.CallOption) (*gamegrpc.TopPlayersResponse, error) {
			return client.GetTopPlayers(ctx, player.request(), opts...)
		})
		if err != nil {
			return nil, HistoryTopResult{}, fmt.Errorf("history top failed: %w", err)
		}
		if err := failed(resp.Failure, resp.Message); err != nil {
			return nil, HistoryTopResult{}, err
		}
		places := []Standing{
			{Place: 1, Player: resp.FirstPlacePlayer, Wins: resp.FirstPlaceNumberOfWins},
			{Place: 2, Player: resp.SecondPlacePlayer, Wins: resp.SecondPlaceNumberOfWins},
			{Place: 3, Player: resp.ThirdPlacePlayer, Wins: resp.ThirdPlaceNumberOfWins},
		}
		result := HistoryTopResult{Players: []Standing{}}
		for _, place := range places {
			if place.Player == "" {
				break
			}
			result.Players = append(result.Players, place)
		}
		return CallToolResultWithMetadata(meta), result, nil
	}
}
