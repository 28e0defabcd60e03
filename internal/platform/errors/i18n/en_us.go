package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeOutOfBounds        = "OUT_OF_BOUNDS"
	CodeInvalidShipSize    = "INVALID_SHIP_SIZE"
	CodeInvalidDirection   = "INVALID_DIRECTION"
	CodeGameIDRequired     = "GAME_ID_REQUIRED"
	CodeInvalidFilter      = "INVALID_FILTER"
	CodeFleetFull          = "FLEET_FULL"
	CodeSizeQuotaExceeded  = "SIZE_QUOTA_EXCEEDED"
	CodeCellBusy           = "CELL_BUSY"
	CodeFleetIncomplete    = "FLEET_INCOMPLETE"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeAlreadyInGame      = "ALREADY_IN_GAME"
	CodeGameFull           = "GAME_FULL"
	CodeGameNotCompleted   = "GAME_NOT_COMPLETED"
	CodeGameFinished       = "GAME_FINISHED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeBoardNotFound      = "BOARD_NOT_FOUND"
	CodeOpponentNotFound   = "OPPONENT_NOT_FOUND"
	CodeCellNotFound       = "CELL_NOT_FOUND"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeInvalidToken: "The token is invalid!",

		// Validation errors
		CodeOutOfBounds:      "The ship does not fit on the field at ({{.X}}, {{.Y}})!",
		CodeInvalidShipSize:  "The ship size must be between 1 and {{.MaxSize}}!",
		CodeInvalidDirection: "The ship direction is invalid!",
		CodeGameIDRequired:   "The game id is required!",
		CodeInvalidFilter:    "The filter is invalid: {{.Reason}}",

		// Placement conflicts
		CodeFleetFull:         "There are already {{.Limit}} ships on the field!",
		CodeSizeQuotaExceeded: "The maximum number of ships with the size {{.Size}} on the field is {{.Quota}}!",
		CodeCellBusy:          "One of Cells is busy!",

		// Match conflicts
		CodeFleetIncomplete:  "Number of ships must be {{.Required}}!",
		CodeNotYourTurn:      "It is not your turn to fire!",
		CodeAlreadyInGame:    "The player is already in a game!",
		CodeGameFull:         "The game already has two players!",
		CodeGameNotCompleted: "The game is not finished yet!",
		CodeGameFinished:     "The game is already over!",

		// Lookup errors
		CodePlayerNotFound:   "The player was not found!",
		CodeGameNotFound:     "The game was not found!",
		CodeBoardNotFound:    "The field was not found!",
		CodeOpponentNotFound: "The second player was not found!",
		CodeCellNotFound:     "The cell ({{.X}}, {{.Y}}) was not found!",

		CodeStorageUnavailable: "The game storage is unavailable!",
	},
}
