// Package history describes finished games and the standings derived from them.
package history

import (
	"sort"
	"time"
)

// Record is the immutable summary written once when a pairing finishes.
type Record struct {
	ID               int64
	GameID           string
	FirstPlayerName  string
	SecondPlayerName string
	StateName        string
	WinnerName       string
	FinishedAt       time.Time
}

// Standing is a player's win tally.
type Standing struct {
	PlayerName string
	Wins       int
}

// TopPlayers ranks winners by number of wins, highest first, with ties broken
// by name. At most n standings are returned.
func TopPlayers(records []Record, n int) []Standing {
	if n <= 0 {
		return nil
	}
	wins := make(map[string]int)
	for _, record := range records {
		if record.WinnerName == "" {
			continue
		}
		wins[record.WinnerName]++
	}

	standings := make([]Standing, 0, len(wins))
	for name, count := range wins {
		standings = append(standings, Standing{PlayerName: name, Wins: count})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].PlayerName < standings[j].PlayerName
	})
	if len(standings) > n {
		standings = standings[:n]
	}
	return standings
}
