package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	message.SetString(lang, ShipCreatedKey, "O navio foi criado com sucesso!")
	message.SetString(lang, PlayerReadyKey, "O jogador está pronto!")
	message.SetString(lang, ShotMissedKey, "O tiro errou!")
	message.SetString(lang, ShotHitKey, "O navio foi atingido!")
	message.SetString(lang, ShotDestroyedKey, "O navio foi destruído!")
	message.SetString(lang, GameDeletedKey, "O jogo foi apagado com sucesso! Linhas afetadas: %d")
	message.SetString(lang, ClearFirstStepKey, "A primeira etapa da limpeza foi concluída! Linhas afetadas = %d")
	message.SetString(lang, ClearSecondStepKey, "A segunda etapa da limpeza foi concluída! Linhas afetadas = %d")
	message.SetString(lang, ClearNothingToDoKey, "Não há nada para limpar!")
	message.SetString(lang, GameCreatedKey, "O jogo foi criado!")
	message.SetString(lang, SecondPlayerJoinedKey, "O segundo jogador entrou no jogo!")
}
