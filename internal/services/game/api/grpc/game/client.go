package game

import (
	"context"

	"google.golang.org/grpc"
)

// GameClient calls GameService.
type GameClient struct {
	cc grpc.ClientConnInterface
}

// NewGameClient creates a GameService client over cc.
func NewGameClient(cc grpc.ClientConnInterface) *GameClient {
	return &GameClient{cc: cc}
}

// HistoryClient calls HistoryService.
type HistoryClient struct {
	cc grpc.ClientConnInterface
}

// NewHistoryClient creates a HistoryService client over cc.
func NewHistoryClient(cc grpc.ClientConnInterface) *HistoryClient {
	return &HistoryClient{cc: cc}
}

// GetAllGames calls GameService.GetAllGames.
func (c *GameClient) GetAllGames(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*GameListResponse, error) {
	out := new(GameListResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "GetAllGames"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateGame calls GameService.CreateGame.
func (c *GameClient) CreateGame(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*CreateGameResponse, error) {
	out := new(CreateGameResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "CreateGame"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// IsGameOwner calls GameService.IsGameOwner.
func (c *GameClient) IsGameOwner(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*IsGameOwnerResponse, error) {
	out := new(IsGameOwnerResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "IsGameOwner"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// JoinSecondPlayer calls GameService.JoinSecondPlayer.
func (c *GameClient) JoinSecondPlayer(ctx context.Context, in *JoinSecondPlayerRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	out := new(MessageResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "JoinSecondPlayer"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteGame calls GameService.DeleteGame.
func (c *GameClient) DeleteGame(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*DeleteGameResponse, error) {
	out := new(DeleteGameResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "DeleteGame"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ClearingDB calls GameService.ClearingDB.
func (c *GameClient) ClearingDB(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*ClearingDBResponse, error) {
	out := new(ClearingDBResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "ClearingDB"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAllCells calls GameService.GetAllCells.
func (c *GameClient) GetAllCells(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*CellListResponse, error) {
	out := new(CellListResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "GetAllCells"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAllCellForSecondPlayer calls GameService.GetAllCellForSecondPlayer.
func (c *GameClient) GetAllCellForSecondPlayer(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*CellListResponse, error) {
	out := new(CellListResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "GetAllCellForSecondPlayer"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateShipOnField calls GameService.CreateShipOnField.
func (c *GameClient) CreateShipOnField(ctx context.Context, in *CreateShipRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	out := new(MessageResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "CreateShipOnField"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SetPlayerReady calls GameService.SetPlayerReady.
func (c *GameClient) SetPlayerReady(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	out := new(MessageResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "SetPlayerReady"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// IsTwoPlayersReady calls GameService.IsTwoPlayersReady.
func (c *GameClient) IsTwoPlayersReady(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*IsTwoPlayersReadyResponse, error) {
	out := new(IsTwoPlayersReadyResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "IsTwoPlayersReady"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Fire calls GameService.Fire.
func (c *GameClient) Fire(ctx context.Context, in *ShootRequest, opts ...grpc.CallOption) (*ShootResponse, error) {
	out := new(ShootResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "Fire"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPriority calls GameService.GetPriority.
func (c *GameClient) GetPriority(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*HitResponse, error) {
	out := new(HitResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "GetPriority"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// IsEndOfTheGame calls GameService.IsEndOfTheGame.
func (c *GameClient) IsEndOfTheGame(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*IsEndOfTheGameResponse, error) {
	out := new(IsEndOfTheGameResponse)
	if err := c.cc.Invoke(ctx, FullMethod(GameServiceName, "IsEndOfTheGame"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAllGameHistories calls HistoryService.GetAllGameHistories.
func (c *HistoryClient) GetAllGameHistories(ctx context.Context, in *GameHistoryRequest, opts ...grpc.CallOption) (*GameHistoryResponse, error) {
	out := new(GameHistoryResponse)
	if err := c.cc.Invoke(ctx, FullMethod(HistoryServiceName, "GetAllGameHistories"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTopPlayers calls HistoryService.GetTopPlayers.
func (c *HistoryClient) GetTopPlayers(ctx context.Context, in *TokenRequest, opts ...grpc.CallOption) (*TopPlayersResponse, error) {
	out := new(TopPlayersResponse)
	if err := c.cc.Invoke(ctx, FullMethod(HistoryServiceName, "GetTopPlayers"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
