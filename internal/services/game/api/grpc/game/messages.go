package game

// Field names mirror the JSON contract existing sea battle clients speak, so
// every field carries an explicit tag.

// Failure names why an operation was rejected. It is nil on success.
type Failure struct {
	Kind string `json:"Kind"`
	Code string `json:"Code"`
}

// TokenRequest is the request of every call that needs only the caller.
type TokenRequest struct {
	Token string `json:"Token"`
}

// GetToken returns the caller's bearer token.
func (r *TokenRequest) GetToken() string {
	if r == nil {
		return ""
	}
	return r.Token
}

// GameListItem is one open game.
type GameListItem struct {
	Id              string `json:"Id"`
	FirstPlayer     string `json:"FirstPlayer"`
	SecondPlayer    string `json:"SecondPlayer,omitempty"`
	GameState       string `json:"GameState"`
	NumberOfPlayers int    `json:"NumberOfPlayers"`
}

// GameListResponse lists the games the caller is not part of.
type GameListResponse struct {
	Games   []GameListItem `json:"Games"`
	Message string         `json:"Message,omitempty"`
	Failure *Failure       `json:"Failure,omitempty"`
}

// CreateGameResponse carries the new game id.
type CreateGameResponse struct {
	GameId  string   `json:"GameId,omitempty"`
	Message string   `json:"Message"`
	Failure *Failure `json:"Failure,omitempty"`
}

// IsGameOwnerResponse describes the caller's seat.
type IsGameOwnerResponse struct {
	IsGameOwner             bool     `json:"IsGameOwner"`
	IsSecondPlayerConnected bool     `json:"IsSecondPlayerConnected"`
	Message                 string   `json:"Message,omitempty"`
	Failure                 *Failure `json:"Failure,omitempty"`
}

// JoinSecondPlayerRequest seats the caller in a game.
type JoinSecondPlayerRequest struct {
	Token  string `json:"Token"`
	GameId string `json:"GameId"`
}

// GetToken returns the caller's bearer token.
func (r *JoinSecondPlayerRequest) GetToken() string {
	if r == nil {
		return ""
	}
	return r.Token
}

// GetGameId returns the game to join.
func (r *JoinSecondPlayerRequest) GetGameId() string {
	if r == nil {
		return ""
	}
	return r.GameId
}

// MessageResponse is the reply of calls that only report what happened.
type MessageResponse struct {
	Message string   `json:"Message"`
	Failure *Failure `json:"Failure,omitempty"`
}

// DeleteGameResponse reports a deletion.
type DeleteGameResponse struct {
	AffectedRows int64    `json:"AffectedRows"`
	Message      string   `json:"Message"`
	Failure      *Failure `json:"Failure,omitempty"`
}

// ClearingDBResponse reports one teardown step. Step is 1 or 2, or 0 when
// nothing ran.
type ClearingDBResponse struct {
	Step         int      `json:"Step"`
	AffectedRows int64    `json:"AffectedRows"`
	Message      string   `json:"Message"`
	Failure      *Failure `json:"Failure,omitempty"`
}

// CellResponse is one board cell.
type CellResponse struct {
	Id          int64 `json:"Id"`
	X           int   `json:"X"`
	Y           int   `json:"Y"`
	CellStateId int   `json:"CellStateId"`
}

// CellListResponse lists a board in cell id order.
type CellListResponse struct {
	Cells   []CellResponse `json:"Cells"`
	Message string         `json:"Message,omitempty"`
	Failure *Failure       `json:"Failure,omitempty"`
}

// CreateShipRequest places one ship on the caller's board.
type CreateShipRequest struct {
	Token         string `json:"Token"`
	X             int    `json:"X"`
	Y             int    `json:"Y"`
	ShipSize      int    `json:"ShipSize"`
	ShipDirection int    `json:"ShipDirection"`
}

// GetToken returns the caller's bearer token.
func (r *CreateShipRequest) GetToken() string {
	if r == nil {
		return ""
	}
	return r.Token
}

// IsTwoPlayersReadyResponse counts ready players.
type IsTwoPlayersReadyResponse struct {
	NumberOfReadyPlayers int      `json:"NumberOfReadyPlayers"`
	Message              string   `json:"Message,omitempty"`
	Failure              *Failure `json:"Failure,omitempty"`
}

// ShootRequest fires at the opponent's board.
type ShootRequest struct {
	Token string `json:"Token"`
	X     int    `json:"X"`
	Y     int    `json:"Y"`
}

// GetToken returns the caller's bearer token.
func (r *ShootRequest) GetToken() string {
	if r == nil {
		return ""
	}
	return r.Token
}

// ShootResponse reports a shot. Outcome is Miss, Hit, or Destroyed.
type ShootResponse struct {
	Outcome string   `json:"Outcome,omitempty"`
	Message string   `json:"Message"`
	Failure *Failure `json:"Failure,omitempty"`
}

// HitResponse reports whether the caller may fire.
type HitResponse struct {
	IsHit   bool     `json:"IsHit"`
	Message string   `json:"Message,omitempty"`
	Failure *Failure `json:"Failure,omitempty"`
}

// IsEndOfTheGameResponse reports whether the game is over.
type IsEndOfTheGameResponse struct {
	IsEndOfTheGame bool     `json:"IsEndOfTheGame"`
	WinnerUserName string   `json:"WinnerUserName"`
	Message        string   `json:"Message,omitempty"`
	Failure        *Failure `json:"Failure,omitempty"`
}

// GameHistoryRequest selects a page of finished games.
type GameHistoryRequest struct {
	Token     string `json:"Token"`
	PageSize  int    `json:"PageSize,omitempty"`
	PageToken string `json:"PageToken,omitempty"`
	Filter    string `json:"Filter,omitempty"`
}

// GetToken returns the caller's bearer token.
func (r *GameHistoryRequest) GetToken() string {
	if r == nil {
		return ""
	}
	return r.Token
}

// GameHistoryItem is one finished game.
type GameHistoryItem struct {
	Id               int64  `json:"Id"`
	GameId           string `json:"GameId"`
	FirstPlayerName  string `json:"FirstPlayerName"`
	SecondPlayerName string `json:"SecondPlayerName"`
	GameStateName    string `json:"GameStateName"`
	WinnerName       string `json:"WinnerName"`
	FinishedAt       string `json:"FinishedAt"`
}

// GameHistoryResponse is one page of finished games, newest first.
type GameHistoryResponse struct {
	Games         []GameHistoryItem `json:"Games"`
	NextPageToken string            `json:"NextPageToken,omitempty"`
	Message       string            `json:"Message,omitempty"`
	Failure       *Failure          `json:"Failure,omitempty"`
}

// TopPlayersResponse names the three players with the most wins. Missing
// places are empty.
type TopPlayersResponse struct {
	FirstPlacePlayer        string   `json:"FirstPlacePlayer"`
	SecondPlacePlayer       string   `json:"SecondPlacePlayer"`
	ThirdPlacePlayer        string   `json:"ThirdPlacePlayer"`
	FirstPlaceNumberOfWins  int      `json:"FirstPlaceNumberOfWins"`
	SecondPlaceNumberOfWins int      `json:"SecondPlaceNumberOfWins"`
	ThirdPlaceNumberOfWins  int      `json:"ThirdPlaceNumberOfWins"`
	Message                 string   `json:"Message,omitempty"`
	Failure                 *Failure `json:"Failure,omitempty"`
}
