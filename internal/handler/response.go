package handler

const (
	msgPromptRequired = "O campo 'prompt' é obrigatório."
	msgInvalidBody    = "Corpo da requisição inválido."
	msgBackendFailed  = "Erro ao comunicar com o backend."
	msgInternal       = "Ocorreu um erro interno no servidor."
)

type ErrorResponse struct {
	Error string `json:"error"`
}
