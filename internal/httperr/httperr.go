package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type HTTPError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var businessStatus = map[string]struct {
	status  int
	message string
}{
	CodeInvalidRequest:       {http.StatusBadRequest, "Dados inválidos."},
	CodeInvalidServiceSet:    {http.StatusBadRequest, "Serviço inválido para esta loja."},
	CodeInvalidConfiguration: {http.StatusInternalServerError, "Horário de funcionamento mal configurado."},
	CodeAlreadyServing:       {http.StatusConflict, "Profissional já está atendendo um cliente."},
	CodeInvalidState:         {http.StatusConflict, "Transição de status não permitida."},
	CodeNotFound:             {http.StatusNotFound, "Registro não encontrado."},
	CodeConflict:             {http.StatusConflict, "Conflito de concorrência, tente novamente."},
	CodeTimeConflict:         {http.StatusConflict, "Conflito de horário."},
	CodeOutsideWorkingHours:  {http.StatusBadRequest, "Fora do horário de atendimento."},
	CodeTooSoon:              {http.StatusBadRequest, "Horário inválido."},
	CodeServiceInUse:         {http.StatusConflict, "Serviço em uso por agendamentos ou fila."},
}

// Respond converte um erro de caso de uso na resposta HTTP correspondente.
func Respond(c *gin.Context, err error) {
	if code, ok := BusinessCode(err); ok {
		if m, found := businessStatus[code]; found {
			Write(c, m.status, code, m.message)
			return
		}
		BadRequest(c, code, "Requisição rejeitada.")
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, CodeNotFound, "Registro não encontrado.")
		return
	}

	if IsUniqueViolation(err) || IsExclusionConflict(err) {
		Conflict(c, CodeConflict, "Conflito de concorrência, tente novamente.")
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")

	if IsUpstream(err) {
		Internal(c, "upstream_fetch_failed", "Falha ao consultar dados.")
		return
	}
	Internal(c, "internal_error", "Erro interno.")
}
