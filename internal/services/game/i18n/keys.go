// Package i18n registers the success messages the game service returns.
//
// Keys are the en-US wording existing clients display, so the English entries
// are identity translations kept for clarity.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	ShipCreatedKey        = "Create ship was successful!"
	PlayerReadyKey        = "The Player is ready!"
	ShotMissedKey         = "Missed the fire!"
	ShotHitKey            = "The ship is hit!"
	ShotDestroyedKey      = "The ship is destroyed!"
	GameDeletedKey        = "Delete game was successful! Affected rows: %d"
	ClearFirstStepKey     = "The first step of clearing DB was successful! Affected rows = %d"
	ClearSecondStepKey    = "The second step of clearing DB was successful! Affected rows = %d"
	ClearNothingToDoKey   = "There is nothing to clear!"
	GameCreatedKey        = "The game was created!"
	SecondPlayerJoinedKey = "The second player joined the game!"
)

// Printer returns a message printer for locale, falling back to English.
func Printer(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		index = 0
	}
	return message.NewPrinter(supported[index])
}

var (
	supported = []language.Tag{language.English, language.MustParse("pt-BR")}
	matcher   = language.NewMatcher(supported)
)
