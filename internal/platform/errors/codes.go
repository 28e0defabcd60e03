// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

// Kind groups codes by how callers are expected to react to them.
type Kind string

const (
	// KindValidation rejects malformed input before any write.
	KindValidation Kind = "VALIDATION"
	// KindStateConflict rejects an operation the current game state disallows.
	KindStateConflict Kind = "STATE_CONFLICT"
	// KindNotFound reports a missing player, pairing, or board.
	KindNotFound Kind = "NOT_FOUND"
	// KindInfrastructure is not user-correctable.
	KindInfrastructure Kind = "INFRASTRUCTURE"
)

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Identity errors
	CodeInvalidToken Code = "INVALID_TOKEN"

	// Validation errors
	CodeOutOfBounds      Code = "OUT_OF_BOUNDS"
	CodeInvalidShipSize  Code = "INVALID_SHIP_SIZE"
	CodeInvalidDirection Code = "INVALID_DIRECTION"
	CodeGameIDRequired   Code = "GAME_ID_REQUIRED"
	CodeInvalidFilter    Code = "INVALID_FILTER"

	// Placement conflicts
	CodeFleetFull         Code = "FLEET_FULL"
	CodeSizeQuotaExceeded Code = "SIZE_QUOTA_EXCEEDED"
	CodeCellBusy          Code = "CELL_BUSY"

	// Match conflicts
	CodeFleetIncomplete  Code = "FLEET_INCOMPLETE"
	CodeNotYourTurn      Code = "NOT_YOUR_TURN"
	CodeAlreadyInGame    Code = "ALREADY_IN_GAME"
	CodeGameFull         Code = "GAME_FULL"
	CodeGameNotCompleted Code = "GAME_NOT_COMPLETED"
	CodeGameFinished     Code = "GAME_FINISHED"

	// Lookup errors
	CodePlayerNotFound   Code = "PLAYER_NOT_FOUND"
	CodeGameNotFound     Code = "GAME_NOT_FOUND"
	CodeBoardNotFound    Code = "BOARD_NOT_FOUND"
	CodeOpponentNotFound Code = "OPPONENT_NOT_FOUND"
	CodeCellNotFound     Code = "CELL_NOT_FOUND"

	// Storage errors
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
)

// Kind classifies the code into the error taxonomy.
func (c Code) Kind() Kind {
	switch c {
	case CodeInvalidToken,
		CodeOutOfBounds,
		CodeInvalidShipSize,
		CodeInvalidDirection,
		CodeGameIDRequired,
		CodeInvalidFilter:
		return KindValidation

	case CodeFleetFull,
		CodeSizeQuotaExceeded,
		CodeCellBusy,
		CodeFleetIncomplete,
		CodeNotYourTurn,
		CodeAlreadyInGame,
		CodeGameFull,
		CodeGameNotCompleted,
		CodeGameFinished:
		return KindStateConflict

	case CodePlayerNotFound,
		CodeGameNotFound,
		CodeBoardNotFound,
		CodeOpponentNotFound,
		CodeCellNotFound:
		return KindNotFound

	default:
		return KindInfrastructure
	}
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	if c == CodeInvalidToken {
		return codes.Unauthenticated
	}
	switch c.Kind() {
	// InvalidArgument - validation failures, bad input
	case KindValidation:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case KindStateConflict:
		if c == CodeAlreadyInGame {
			return codes.AlreadyExists
		}
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case KindNotFound:
		return codes.NotFound

	default:
		if c == CodeStorageUnavailable {
			return codes.Unavailable
		}
		return codes.Internal
	}
}
