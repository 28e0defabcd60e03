package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	for _, key := range []string{
		ShipCreatedKey,
		PlayerReadyKey,
		ShotMissedKey,
		ShotHitKey,
		ShotDestroyedKey,
		GameDeletedKey,
		ClearFirstStepKey,
		ClearSecondStepKey,
		ClearNothingToDoKey,
		GameCreatedKey,
		SecondPlayerJoinedKey,
	} {
		message.SetString(lang, key, key)
	}
}
