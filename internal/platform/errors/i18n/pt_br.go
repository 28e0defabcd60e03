package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		CodeInvalidToken: "O token é inválido!",

		CodeOutOfBounds:      "O navio não cabe no campo em ({{.X}}, {{.Y}})!",
		CodeInvalidShipSize:  "O tamanho do navio deve estar entre 1 e {{.MaxSize}}!",
		CodeInvalidDirection: "A direção do navio é inválida!",
		CodeGameIDRequired:   "O id do jogo é obrigatório!",
		CodeInvalidFilter:    "O filtro é inválido: {{.Reason}}",

		CodeFleetFull:         "Já existem {{.Limit}} navios no campo!",
		CodeSizeQuotaExceeded: "O número máximo de navios de tamanho {{.Size}} no campo é {{.Quota}}!",
		CodeCellBusy:          "Uma das células está ocupada!",

		CodeFleetIncomplete:  "O número de navios deve ser {{.Required}}!",
		CodeNotYourTurn:      "Não é a sua vez de atirar!",
		CodeAlreadyInGame:    "O jogador já está em um jogo!",
		CodeGameFull:         "O jogo já tem dois jogadores!",
		CodeGameNotCompleted: "O jogo ainda não terminou!",
		CodeGameFinished:     "O jogo já terminou!",

		CodePlayerNotFound:   "O jogador não foi encontrado!",
		CodeGameNotFound:     "O jogo não foi encontrado!",
		CodeBoardNotFound:    "O campo não foi encontrado!",
		CodeOpponentNotFound: "O segundo jogador não foi encontrado!",
		CodeCellNotFound:     "A célula ({{.X}}, {{.Y}}) não foi encontrada!",

		CodeStorageUnavailable: "O armazenamento do jogo está indisponível!",
	},
}
