package match

import (
	"testing"
	"time"

	apperrors "github.com/louisbranch/seabattle/internal/platform/errors"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seated(t *testing.T) Pairing {
	t.Helper()
	p := New("game-1", "p1", "alice", now)
	p, err := Join(p, "p2", "bob", now)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	return p
}

func TestNewAndJoin(t *testing.T) {
	p := New("game-1", "p1", "alice", now)
	if p.State != StateAwaitingSecondPlayer {
		t.Fatalf("state = %v, want %v", p.State, StateAwaitingSecondPlayer)
	}
	if p.PlayerCount() != 1 {
		t.Fatalf("player count = %d, want 1", p.PlayerCount())
	}
	if p.NextShooter != "p1" {
		t.Fatalf("next shooter = %q, want creator", p.NextShooter)
	}

	p, err := Join(p, "p2", "bob", now)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if p.State != StateAwaitingReadiness {
		t.Fatalf("state = %v, want %v", p.State, StateAwaitingReadiness)
	}
	if p.PlayerCount() != 2 {
		t.Fatalf("player count = %d, want 2", p.PlayerCount())
	}
	if p.OpponentOf("p1") != "p2" || p.OpponentOf("p2") != "p1" || p.OpponentOf("p3") != "" {
		t.Fatal("unexpected opponent mapping")
	}
	if p.OpponentNameOf("p2") != "alice" {
		t.Fatalf("opponent name = %q, want alice", p.OpponentNameOf("p2"))
	}
}

func TestJoinRejections(t *testing.T) {
	p := New("game-1", "p1", "alice", now)
	if _, err := Join(p, "p1", "alice", now); apperrors.CodeOf(err) != apperrors.CodeAlreadyInGame {
		t.Fatalf("join own game err = %v, want %s", err, apperrors.CodeAlreadyInGame)
	}
	p = seated(t)
	if _, err := Join(p, "p3", "carol", now); apperrors.CodeOf(err) != apperrors.CodeGameFull {
		t.Fatalf("join full game err = %v, want %s", err, apperrors.CodeGameFull)
	}
}

func TestApplyReadyWithoutCascade(t *testing.T) {
	opts := Options{}
	p := seated(t)

	p, err := ApplyReady(p, SlotSecond, opts, now)
	if err != nil {
		t.Fatalf("ready: %v", err)
	}
	if p.FirstReady || !p.SecondReady {
		t.Fatalf("flags = %v/%v, want false/true", p.FirstReady, p.SecondReady)
	}
	if ReadyCount(p) != 2 {
		t.Fatalf("ready count = %d, want 2 when only second is set", ReadyCount(p))
	}

	p, err = ApplyReady(p, SlotSecond, opts, now)
	if err != nil {
		t.Fatalf("repeat ready: %v", err)
	}
	if p.FirstReady {
		t.Fatal("repeat ready must not touch the first flag")
	}
	if p.State != StateAwaitingReadiness {
		t.Fatalf("state = %v, want %v", p.State, StateAwaitingReadiness)
	}

	p, _ = ApplyReady(p, SlotFirst, opts, now)
	if p.State != StateInProgress {
		t.Fatalf("state = %v, want %v", p.State, StateInProgress)
	}
}

func TestApplyReadyLegacyCascade(t *testing.T) {
	opts := DefaultOptions()
	if !opts.LegacyReadyCascade {
		t.Fatal("expected cascade on by default")
	}

	p := seated(t)
	p, _ = ApplyReady(p, SlotFirst, opts, now)
	if !p.FirstReady || p.SecondReady {
		t.Fatalf("flags = %v/%v, want true/false", p.FirstReady, p.SecondReady)
	}
	if ReadyCount(p) != 1 {
		t.Fatalf("ready count = %d, want 1", ReadyCount(p))
	}

	// A repeated first-player call only re-asserts the first flag.
	p, _ = ApplyReady(p, SlotFirst, opts, now)
	if !p.FirstReady || p.SecondReady {
		t.Fatalf("flags after repeat = %v/%v, want true/false", p.FirstReady, p.SecondReady)
	}
	if p.State != StateAwaitingReadiness {
		t.Fatalf("state = %v, want %v", p.State, StateAwaitingReadiness)
	}

	p, _ = ApplyReady(p, SlotSecond, opts, now)
	if !p.FirstReady || !p.SecondReady {
		t.Fatalf("flags = %v/%v, want both set", p.FirstReady, p.SecondReady)
	}
	if p.State != StateInProgress {
		t.Fatalf("state = %v, want %v", p.State, StateInProgress)
	}
}

func TestApplyReadyCascadeNeedsSecondSeat(t *testing.T) {
	p := New("g1", "p1", "alice", now)
	for i := 0; i < 2; i++ {
		p, _ = ApplyReady(p, SlotFirst, DefaultOptions(), now)
	}
	if p.SecondReady {
		t.Fatal("second flag set before a second player joined")
	}
	if p.State != StateAwaitingSecondPlayer {
		t.Fatalf("state = %v, want %v", p.State, StateAwaitingSecondPlayer)
	}
}

func TestApplyReadyRejectsOutsider(t *testing.T) {
	p := seated(t)
	if _, err := ApplyReady(p, SlotNone, DefaultOptions(), now); err == nil {
		t.Fatal("expected error for unseated player")
	}
}

func TestReadyCount(t *testing.T) {
	tests := []struct {
		first, second bool
		want          int
	}{
		{false, false, 0},
		{true, false, 1},
		{false, true, 2},
		{true, true, 2},
	}
	for _, tc := range tests {
		p := Pairing{FirstReady: tc.first, SecondReady: tc.second}
		if got := ReadyCount(p); got != tc.want {
			t.Fatalf("ReadyCount(%v,%v) = %d, want %d", tc.first, tc.second, got, tc.want)
		}
	}
}

func TestEvaluateEnd(t *testing.T) {
	ready := seated(t)
	ready.FirstReady, ready.SecondReady = true, true

	tests := []struct {
		name           string
		pairing        Pairing
		firstFighting  bool
		secondFighting bool
		want           End
	}{
		{name: "both fighting", pairing: ready, firstFighting: true, secondFighting: true, want: End{}},
		{name: "second sunk", pairing: ready, firstFighting: true, secondFighting: false, want: End{Finished: true, WinnerID: "p1", WinnerName: "alice"}},
		{name: "first sunk", pairing: ready, firstFighting: false, secondFighting: true, want: End{Finished: true, WinnerID: "p2", WinnerName: "bob"}},
		{name: "no second player", pairing: New("g", "p1", "alice", now), firstFighting: false, secondFighting: false, want: End{}},
		{name: "not ready", pairing: seated(t), firstFighting: true, secondFighting: false, want: End{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EvaluateEnd(tc.pairing, tc.firstFighting, tc.secondFighting); got != tc.want {
				t.Fatalf("EvaluateEnd = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestFinishAndCompleted(t *testing.T) {
	p := seated(t)
	if Completed(p) {
		t.Fatal("seated running game must not be completed")
	}
	p = Finish(p, now)
	if p.State != StateFinished || !Completed(p) {
		t.Fatalf("state = %v, want finished and completed", p.State)
	}
	p, _ = ApplyReady(p, SlotFirst, DefaultOptions(), now)
	if p.State != StateFinished {
		t.Fatal("finished state must be terminal")
	}
	if !Completed(New("g", "p1", "alice", now)) {
		t.Fatal("game without opponent counts as completed")
	}
}

func TestTurnPriority(t *testing.T) {
	p := seated(t)
	if !HasPriority(p, "p1") || HasPriority(p, "p2") || HasPriority(p, "p3") {
		t.Fatal("creator must fire first")
	}

	strict := Options{StrictTurns: true}
	if err := CheckTurn(p, "p2", strict); apperrors.CodeOf(err) != apperrors.CodeNotYourTurn {
		t.Fatalf("check turn err = %v, want %s", err, apperrors.CodeNotYourTurn)
	}
	if err := CheckTurn(p, "p2", Options{}); err != nil {
		t.Fatalf("advisory turns must not reject: %v", err)
	}

	p = AfterShot(p, "p1", true, now)
	if !HasPriority(p, "p1") {
		t.Fatal("hit keeps priority")
	}
	p = AfterShot(p, "p1", false, now)
	if !HasPriority(p, "p2") || HasPriority(p, "p1") {
		t.Fatal("miss passes priority")
	}
	if err := CheckTurn(p, "p2", strict); err != nil {
		t.Fatalf("check turn: %v", err)
	}
}

func TestStateNames(t *testing.T) {
	for _, state := range []State{StateAwaitingSecondPlayer, StateAwaitingReadiness, StateInProgress, StateFinished} {
		parsed, err := ParseState(state.String())
		if err != nil {
			t.Fatalf("parse %q: %v", state, err)
		}
		if parsed != state {
			t.Fatalf("parse %q = %v", state, parsed)
		}
	}
	if StateFinished.String() != "Finished" {
		t.Fatalf("finished name = %q", StateFinished.String())
	}
	if _, err := ParseState("Paused"); err == nil {
		t.Fatal("expected unknown state error")
	}
}
