// Package match holds the lifecycle of a pairing: joining, readiness, turn
// priority, and end-of-game detection.
//
// Functions take a Pairing snapshot and return the next snapshot. They never
// touch storage, so the engine decides which reads and writes share a
// transaction.
package match

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/seabattle/internal/platform/errors"
)

// State is the lifecycle position of a pairing.
type State int

const (
	// StateAwaitingSecondPlayer has only the creator seated.
	StateAwaitingSecondPlayer State = 1
	// StateAwaitingReadiness has both players seated and at least one not ready.
	StateAwaitingReadiness State = 2
	// StateInProgress has both players ready.
	StateInProgress State = 3
	// StateFinished has a winner.
	StateFinished State = 4
)

var stateNames = map[State]string{
	StateAwaitingSecondPlayer: "AwaitingSecondPlayer",
	StateAwaitingReadiness:    "AwaitingReadiness",
	StateInProgress:           "InProgress",
	StateFinished:             "Finished",
}

// String returns the textual state name used in listings and game records.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseState resolves a textual state name.
func ParseState(name string) (State, error) {
	for state, stateName := range stateNames {
		if strings.EqualFold(stateName, strings.TrimSpace(name)) {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unknown game state %q", name)
}

// Slot is the seat a player occupies in a pairing.
type Slot int

const (
	// SlotNone means the player is not part of the pairing.
	SlotNone Slot = iota
	// SlotFirst is the creator's seat.
	SlotFirst
	// SlotSecond is the joiner's seat.
	SlotSecond
)

// Options are the rule switches a deployment may flip.
type Options struct {
	// LegacyReadyCascade keeps the historical readiness shortcut: when the
	// second player readies after the first, the call sets both flags.
	LegacyReadyCascade bool
	// StrictTurns rejects fire from a player who does not hold priority.
	StrictTurns bool
}

// DefaultOptions matches the behavior existing clients were built against.
func DefaultOptions() Options {
	return Options{LegacyReadyCascade: true}
}

// Pairing is a game snapshot.
type Pairing struct {
	ID               string
	FirstPlayerID    string
	FirstPlayerName  string
	SecondPlayerID   string
	SecondPlayerName string
	FirstReady       bool
	SecondReady      bool
	State            State
	// NextShooter is the player id holding fire priority.
	NextShooter string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New seats playerID as the first player of a fresh pairing.
func New(id, playerID, playerName string, now time.Time) Pairing {
	return Pairing{
		ID:              id,
		FirstPlayerID:   playerID,
		FirstPlayerName: playerName,
		State:           StateAwaitingSecondPlayer,
		NextShooter:     playerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasSecondPlayer reports whether both seats are taken.
func (p Pairing) HasSecondPlayer() bool {
	return p.SecondPlayerID != ""
}

// PlayerCount is 1 or 2.
func (p Pairing) PlayerCount() int {
	if p.HasSecondPlayer() {
		return 2
	}
	return 1
}

// SlotOf returns the seat playerID occupies.
func (p Pairing) SlotOf(playerID string) Slot {
	switch {
	case playerID == "":
		return SlotNone
	case playerID == p.FirstPlayerID:
		return SlotFirst
	case playerID == p.SecondPlayerID:
		return SlotSecond
	default:
		return SlotNone
	}
}

// OpponentOf returns the other player's id, or "" when the seat is empty.
func (p Pairing) OpponentOf(playerID string) string {
	switch p.SlotOf(playerID) {
	case SlotFirst:
		return p.SecondPlayerID
	case SlotSecond:
		return p.FirstPlayerID
	default:
		return ""
	}
}

// OpponentNameOf returns the other player's username.
func (p Pairing) OpponentNameOf(playerID string) string {
	switch p.SlotOf(playerID) {
	case SlotFirst:
		return p.SecondPlayerName
	case SlotSecond:
		return p.FirstPlayerName
	default:
		return ""
	}
}

// Join seats playerID in the second slot.
func Join(p Pairing, playerID, playerName string, now time.Time) (Pairing, error) {
	if p.SlotOf(playerID) != SlotNone {
		return p, apperrors.New(apperrors.CodeAlreadyInGame, fmt.Sprintf("player %s already sits in game %s", playerID, p.ID))
	}
	if p.HasSecondPlayer() {
		return p, apperrors.New(apperrors.CodeGameFull, fmt.Sprintf("game %s already has two players", p.ID))
	}
	p.SecondPlayerID = playerID
	p.SecondPlayerName = playerName
	p.State = nextState(p)
	p.UpdatedAt = now
	return p, nil
}

// ApplyReady marks the player in slot ready. The caller must have checked
// that the player's fleet is complete.
//
// A repeated call re-asserts the caller's flag and never sets the opponent's.
func ApplyReady(p Pairing, slot Slot, opts Options, now time.Time) (Pairing, error) {
	if slot == SlotNone {
		return p, apperrors.New(apperrors.CodeGameNotFound, fmt.Sprintf("player is not seated in game %s", p.ID))
	}

	if opts.LegacyReadyCascade && slot == SlotSecond && p.HasSecondPlayer() && p.FirstReady {
		p.FirstReady = true
		p.SecondReady = true
	} else if slot == SlotFirst {
		p.FirstReady = true
	} else {
		p.SecondReady = true
	}
	p.State = nextState(p)
	p.UpdatedAt = now
	return p, nil
}

// ReadyCount reports 0 when neither flag is set, 1 when only the first is,
// and 2 otherwise.
func ReadyCount(p Pairing) int {
	switch {
	case !p.FirstReady && !p.SecondReady:
		return 0
	case p.FirstReady && !p.SecondReady:
		return 1
	default:
		return 2
	}
}

// End is the result of an end-of-game check.
type End struct {
	Finished   bool
	WinnerID   string
	WinnerName string
}

// EvaluateEnd decides whether the pairing is over. firstFighting and
// secondFighting report whether each board still has a ship afloat.
//
// A pairing without a second player, or with either flag unset, is never over.
func EvaluateEnd(p Pairing, firstFighting, secondFighting bool) End {
	if !p.HasSecondPlayer() || !p.FirstReady || !p.SecondReady {
		return End{}
	}
	switch {
	case !firstFighting:
		return End{Finished: true, WinnerID: p.SecondPlayerID, WinnerName: p.SecondPlayerName}
	case !secondFighting:
		return End{Finished: true, WinnerID: p.FirstPlayerID, WinnerName: p.FirstPlayerName}
	default:
		return End{}
	}
}

// Finish moves the pairing to its terminal state.
func Finish(p Pairing, now time.Time) Pairing {
	p.State = StateFinished
	p.UpdatedAt = now
	return p
}

// Completed reports whether the pairing may be torn down by its players.
func Completed(p Pairing) bool {
	return p.State == StateFinished || !p.HasSecondPlayer()
}

// HasPriority reports whether playerID may fire next.
func HasPriority(p Pairing, playerID string) bool {
	if p.SlotOf(playerID) == SlotNone {
		return false
	}
	if p.NextShooter == "" {
		return playerID == p.FirstPlayerID
	}
	return p.NextShooter == playerID
}

// CheckTurn rejects out-of-turn fire when strict turns are enabled.
func CheckTurn(p Pairing, playerID string, opts Options) error {
	if !opts.StrictTurns || HasPriority(p, playerID) {
		return nil
	}
	return apperrors.New(apperrors.CodeNotYourTurn, fmt.Sprintf("player %s does not hold priority in game %s", playerID, p.ID))
}

// AfterShot passes priority to the defender unless the shot kept it.
func AfterShot(p Pairing, attackerID string, keepsPriority bool, now time.Time) Pairing {
	if keepsPriority {
		p.NextShooter = attackerID
	} else if defender := p.OpponentOf(attackerID); defender != "" {
		p.NextShooter = defender
	}
	p.UpdatedAt = now
	return p
}

func nextState(p Pairing) State {
	switch {
	case p.State == StateFinished:
		return StateFinished
	case !p.HasSecondPlayer():
		return StateAwaitingSecondPlayer
	case p.FirstReady && p.SecondReady:
		return StateInProgress
	default:
		return StateAwaitingReadiness
	}
}
