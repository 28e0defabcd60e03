package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/seabattle/internal/services/game/domain/board"
	"github.com/louisbranch/seabattle/internal/services/game/domain/history"
	"github.com/louisbranch/seabattle/internal/services/game/domain/match"
	"github.com/louisbranch/seabattle/internal/services/game/storage"
	"github.com/louisbranch/seabattle/internal/services/game/storage/filter"
)

var testNow = time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "game.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func atomically(t *testing.T, store *Store, fn func(storage.Tx) error) {
	t.Helper()
	if err := store.Atomically(context.Background(), fn); err != nil {
		t.Fatalf("atomically: %v", err)
	}
}

// seedGame creates two players, a pairing, and a 3x3 board for the first player.
func seedGame(t *testing.T, store *Store) (match.Pairing, board.Board) {
	t.Helper()
	p := match.New("game-1", "p1", "alice", testNow)
	b := board.Board{ID: "board-1", GameID: p.ID, PlayerID: "p1"}
	atomically(t, store, func(tx storage.Tx) error {
		ctx := context.Background()
		for _, player := range []storage.Player{{ID: "p1", Username: "alice"}, {ID: "p2", Username: "bob"}} {
			if err := tx.CreatePlayer(ctx, player); err != nil {
				return err
			}
		}
		if err := tx.CreateGame(ctx, p); err != nil {
			return err
		}
		rules := board.Rules{Width: 3, Height: 3, Fleet: board.Fleet{1: 1}}
		return tx.CreateBoard(ctx, b, board.Group{ID: "placeholder-1", BoardID: b.ID}, board.NewGrid(rules))
	})
	return p, b
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestAtomicallyRequiresStore(t *testing.T) {
	t.Parallel()

	var store *Store
	if err := store.Atomically(context.Background(), func(storage.Tx) error { return nil }); err == nil {
		t.Fatal("expected unconfigured store error")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}

func TestAtomicallyRollsBackOnError(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	boom := errors.New("boom")
	err := store.Atomically(context.Background(), func(tx storage.Tx) error {
		if err := tx.CreatePlayer(context.Background(), storage.Player{ID: "p1", Username: "alice"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	atomically(t, store, func(tx storage.Tx) error {
		_, err := tx.GetPlayerByUsername(context.Background(), "alice")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get player err = %v, want ErrNotFound", err)
		}
		return nil
	})
}

func TestAtomicallyRollsBackOnPanic(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	func() {
		defer func() { _ = recover() }()
		_ = store.Atomically(context.Background(), func(tx storage.Tx) error {
			_ = tx.CreatePlayer(context.Background(), storage.Player{ID: "p1", Username: "alice"})
			panic("mid-transaction")
		})
	}()

	atomically(t, store, func(tx storage.Tx) error {
		if _, err := tx.GetPlayerByUsername(context.Background(), "alice"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get player err = %v, want ErrNotFound", err)
		}
		return nil
	})
}

func TestCreatePlayerRejectsDuplicateUsername(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	atomically(t, store, func(tx storage.Tx) error {
		return tx.CreatePlayer(context.Background(), storage.Player{ID: "p1", Username: "alice"})
	})
	err := store.Atomically(context.Background(), func(tx storage.Tx) error {
		return tx.CreatePlayer(context.Background(), storage.Player{ID: "p2", Username: "alice"})
	})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestGameRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	p, _ := seedGame(t, store)

	atomically(t, store, func(tx storage.Tx) error {
		ctx := context.Background()
		got, err := tx.GetGameByPlayer(ctx, "p1")
		if err != nil {
			return err
		}
		if got.ID != p.ID || got.FirstPlayerName != "alice" || got.HasSecondPlayer() {
			t.Fatalf("game = %+v", got)
		}
		if got.FirstReady || got.SecondReady {
			t.Fatal("ready flags must start unset")
		}

		joined, err := match.Join(got, "p2", "bob", testNow)
		if err != nil {
			return err
		}
		joined.FirstReady = true
		return tx.UpdateGame(ctx, joined)
	})

	atomically(t, store, func(tx storage.Tx) error {
		got, err := tx.GetGameByPlayer(context.Background(), "p2")
		if err != nil {
			return err
		}
		if got.SecondPlayerName != "bob" || !got.FirstReady || got.SecondReady {
			t.Fatalf("game = %+v", got)
		}
		if got.State != match.StateAwaitingReadiness {
			t.Fatalf("state = %v, want %v", got.State, match.StateAwaitingReadiness)
		}
		return nil
	})
}

func TestListGamesExcluding(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	seedGame(t, store)

	atomically(t, store, func(tx storage.Tx) error {
		ctx := context.Background()
		own, err := tx.ListGamesExcluding(ctx, "p1")
		if err != nil {
			return err
		}
		if len(own) != 0 {
			t.Fatalf("creator sees %d games, want 0", len(own))
		}
		others, err := tx.ListGamesExcluding(ctx, "p2")
		if err != nil {
			return err
		}
		if len(others) != 1 || others[0].PlayerCount() != 1 {
			t.Fatalf("games = %+v, want one open game", others)
		}
		return nil
	})
}

func TestBoardCellsAndShips(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, b := seedGame(t, store)

	atomically(t, store, func(tx storage.Tx) error {
		ctx := context.Background()
		cells, err := tx.ListCells(ctx, b.ID)
		if err != nil {
			return err
		}
		if len(cells) != 9 {
			t.Fatalf("cells = %d, want 9", len(cells))
		}
		for i := 1; i < len(cells); i++ {
			if cells[i-1].ID >= cells[i].ID {
				t.Fatal("cells must be ordered by id")
			}
		}
		placeholder, err := tx.ListGroupCells(ctx, "placeholder-1")
		if err != nil {
			return err
		}
		if len(placeholder) != 9 {
			t.Fatalf("placeholder cells = %d, want 9", len(placeholder))
		}

		ship := board.Ship{ID: "ship-1", BoardID: b.ID, Size: 1, Direction: board.Horizontal, State: board.ShipPlaced}
		group := board.Group{ID: "group-1", BoardID: b.ID, ShipID: ship.ID}
		if err := tx.CreateShip(ctx, ship, group); err != nil {
			return err
		}
		cell, err := tx.GetCell(ctx, b.ID, board.Point{X: 1, Y: 2})
		if err != nil {
			return err
		}
		cell.State = board.CellOccupied
		cell.GroupID = group.ID
		if err := tx.UpdateCells(ctx, []board.Cell{cell}); err != nil {
			return err
		}

		groupCells, err := tx.ListGroupCells(ctx, group.ID)
		if err != nil {
			return err
		}
		if len(groupCells) != 1 || groupCells[0].Point != (board.Point{X: 1, Y: 2}) {
			t.Fatalf("group cells = %+v", groupCells)
		}
		gotGroup, err := tx.GetGroup(ctx, group.ID)
		if err != nil {
			return err
		}
		if gotGroup.ShipID != ship.ID || gotGroup.Placeholder() {
			t.Fatalf("group = %+v", gotGroup)
		}
		if err := tx.UpdateShipState(ctx, ship.ID, board.ShipSunk); err != nil {
			return err
		}
		ships, err := tx.ListShips(ctx, b.ID)
		if err != nil {
			return err
		}
		if len(ships) != 1 || ships[0].State != board.ShipSunk {
			t.Fatalf("ships = %+v", ships)
		}
		return nil
	})
}

func TestGetCellMissing(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, b := seedGame(t, store)
	atomically(t, store, func(tx storage.Tx) error {
		_, err := tx.GetCell(context.Background(), b.ID, board.Point{X: 7, Y: 7})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		return nil
	})
}

func TestDeleteGameCountsEveryRow(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	p, b := seedGame(t, store)
	atomically(t, store, func(tx storage.Tx) error {
		ship := board.Ship{ID: "ship-1", BoardID: b.ID, Size: 1, Direction: board.Vertical, State: board.ShipPlaced}
		return tx.CreateShip(context.Background(), ship, board.Group{ID: "group-1", BoardID: b.ID, ShipID: ship.ID})
	})

	atomically(t, store, func(tx storage.Tx) error {
		n, err := tx.DeleteGame(context.Background(), p.ID)
		if err != nil {
			return err
		}
		// 9 cells, 2 groups, 1 ship, 1 board, 1 game.
		if n != 14 {
			t.Fatalf("affected rows = %d, want 14", n)
		}
		return nil
	})

	atomically(t, store, func(tx storage.Tx) error {
		ctx := context.Background()
		if _, err := tx.GetGame(ctx, p.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get game err = %v, want ErrNotFound", err)
		}
		if _, err := tx.GetBoard(ctx, p.ID, "p1"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get board err = %v, want ErrNotFound", err)
		}
		if _, err := tx.DeleteGame(ctx, p.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("second delete err = %v, want ErrNotFound", err)
		}
		return nil
	})
}

func TestCreateHistoryRejectsDuplicateGame(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	record := history.Record{GameID: "game-1", FirstPlayerName: "alice", SecondPlayerName: "bob", StateName: "Finished", WinnerName: "alice", FinishedAt: testNow}
	atomically(t, store, func(tx storage.Tx) error {
		return tx.CreateHistory(context.Background(), record)
	})
	err := store.Atomically(context.Background(), func(tx storage.Tx) error {
		return tx.CreateHistory(context.Background(), record)
	})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}

	atomically(t, store, func(tx storage.Tx) error {
		got, err := tx.GetHistoryByGame(context.Background(), "game-1")
		if err != nil {
			return err
		}
		if got.WinnerName != "alice" || !got.FinishedAt.Equal(testNow) {
			t.Fatalf("record = %+v", got)
		}
		return nil
	})
}

func TestListHistoryPagesNewestFirstWithFilter(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	winners := []string{"alice", "bob", "alice", "alice", "carol"}
	atomically(t, store, func(tx storage.Tx) error {
		for i, winner := range winners {
			record := history.Record{
				GameID:           "game-" + string(rune('a'+i)),
				FirstPlayerName:  "alice",
				SecondPlayerName: "other",
				StateName:        "Finished",
				WinnerName:       winner,
				FinishedAt:       testNow.Add(time.Duration(i) * time.Minute),
			}
			if err := tx.CreateHistory(context.Background(), record); err != nil {
				return err
			}
		}
		return nil
	})

	cond, err := filter.ParseHistory(`winner_name = "alice"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}

	var first, second storage.HistoryPage
	atomically(t, store, func(tx storage.Tx) error {
		var err error
		first, err = tx.ListHistory(context.Background(), storage.HistoryQuery{PageSize: 2, Filter: cond})
		if err != nil {
			return err
		}
		second, err = tx.ListHistory(context.Background(), storage.HistoryQuery{PageSize: 2, PageToken: first.NextPageToken, Filter: cond})
		return err
	})

	if len(first.Records) != 2 || first.NextPageToken == "" {
		t.Fatalf("first page = %+v", first)
	}
	if first.Records[0].GameID != "game-d" || first.Records[1].GameID != "game-c" {
		t.Fatalf("first page order = %s, %s", first.Records[0].GameID, first.Records[1].GameID)
	}
	if len(second.Records) != 1 || second.Records[0].GameID != "game-a" || second.NextPageToken != "" {
		t.Fatalf("second page = %+v", second)
	}

	atomically(t, store, func(tx storage.Tx) error {
		records, err := tx.ListWinners(context.Background())
		if err != nil {
			return err
		}
		top := history.TopPlayers(records, 3)
		if len(top) != 3 || top[0].PlayerName != "alice" || top[0].Wins != 3 {
			t.Fatalf("top = %+v", top)
		}
		return nil
	})
}

func TestListHistoryRejectsBadInput(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.Atomically(context.Background(), func(tx storage.Tx) error {
		_, err := tx.ListHistory(context.Background(), storage.HistoryQuery{PageSize: 0})
		return err
	})
	if err == nil {
		t.Fatal("expected page size error")
	}
	err = store.Atomically(context.Background(), func(tx storage.Tx) error {
		_, err := tx.ListHistory(context.Background(), storage.HistoryQuery{PageSize: 5, PageToken: "nope"})
		return err
	})
	if err == nil {
		t.Fatal("expected page token error")
	}
}
