package game

import (
	"context"

	"google.golang.org/grpc"
)

const (
	// GameServiceName is the full name of the game service.
	GameServiceName = "seabattle.game.v1.GameService"
	// HistoryServiceName is the full name of the history service.
	HistoryServiceName = "seabattle.history.v1.HistoryService"
)

// GameServer is the server API of GameService.
type GameServer interface {
	GetAllGames(context.Context, *TokenRequest) (*GameListResponse, error)
	CreateGame(context.Context, *TokenRequest) (*CreateGameResponse, error)
	IsGameOwner(context.Context, *TokenRequest) (*IsGameOwnerResponse, error)
	JoinSecondPlayer(context.Context, *JoinSecondPlayerRequest) (*MessageResponse, error)
	DeleteGame(context.Context, *TokenRequest) (*DeleteGameResponse, error)
	ClearingDB(context.Context, *TokenRequest) (*ClearingDBResponse, error)
	GetAllCells(context.Context, *TokenRequest) (*CellListResponse, error)
	GetAllCellForSecondPlayer(context.Context, *TokenRequest) (*CellListResponse, error)
	CreateShipOnField(context.Context, *CreateShipRequest) (*MessageResponse, error)
	SetPlayerReady(context.Context, *TokenRequest) (*MessageResponse, error)
	IsTwoPlayersReady(context.Context, *TokenRequest) (*IsTwoPlayersReadyResponse, error)
	Fire(context.Context, *ShootRequest) (*ShootResponse, error)
	GetPriority(context.Context, *TokenRequest) (*HitResponse, error)
	IsEndOfTheGame(context.Context, *TokenRequest) (*IsEndOfTheGameResponse, error)
}

// HistoryServer is the server API of HistoryService.
type HistoryServer interface {
	GetAllGameHistories(context.Context, *GameHistoryRequest) (*GameHistoryResponse, error)
	GetTopPlayers(context.Context, *TokenRequest) (*TopPlayersResponse, error)
}

var (
	_ GameServer    = (*GameService)(nil)
	_ HistoryServer = (*HistoryService)(nil)
)

// GameServiceDesc describes GameService for grpc.ServiceRegistrar.
var GameServiceDesc = grpc.ServiceDesc{
	ServiceName: GameServiceName,
	HandlerType: (*GameServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(GameServiceName, "GetAllGames", GameServer.GetAllGames),
		unary(GameServiceName, "CreateGame", GameServer.CreateGame),
		unary(GameServiceName, "IsGameOwner", GameServer.IsGameOwner),
		unary(GameServiceName, "JoinSecondPlayer", GameServer.JoinSecondPlayer),
		unary(GameServiceName, "DeleteGame", GameServer.DeleteGame),
		unary(GameServiceName, "ClearingDB", GameServer.ClearingDB),
		unary(GameServiceName, "GetAllCells", GameServer.GetAllCells),
		unary(GameServiceName, "GetAllCellForSecondPlayer", GameServer.GetAllCellForSecondPlayer),
		unary(GameServiceName, "CreateShipOnField", GameServer.CreateShipOnField),
		unary(GameServiceName, "SetPlayerReady", GameServer.SetPlayerReady),
		unary(GameServiceName, "IsTwoPlayersReady", GameServer.IsTwoPlayersReady),
		unary(GameServiceName, "Fire", GameServer.Fire),
		unary(GameServiceName, "GetPriority", GameServer.GetPriority),
		unary(GameServiceName, "IsEndOfTheGame", GameServer.IsEndOfTheGame),
	},
	Metadata: "seabattle/game/v1/game.json",
}

// HistoryServiceDesc describes HistoryService for grpc.ServiceRegistrar.
var HistoryServiceDesc = grpc.ServiceDesc{
	ServiceName: HistoryServiceName,
	HandlerType: (*HistoryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(HistoryServiceName, "GetAllGameHistories", HistoryServer.GetAllGameHistories),
		unary(HistoryServiceName, "GetTopPlayers", HistoryServer.GetTopPlayers),
	},
	Metadata: "seabattle/history/v1/history.json",
}

// RegisterGameServer registers srv on s.
func RegisterGameServer(s grpc.ServiceRegistrar, srv GameServer) {
	s.RegisterService(&GameServiceDesc, srv)
}

// RegisterHistoryServer registers srv on s.
func RegisterHistoryServer(s grpc.ServiceRegistrar, srv HistoryServer) {
	s.RegisterService(&HistoryServiceDesc, srv)
}

// FullMethod returns the gRPC path of a method on service.
func FullMethod(service, method string) string {
	return "/" + service + "/" + method
}

func unary[S any, Req any, Resp any](service, method string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(service, method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
