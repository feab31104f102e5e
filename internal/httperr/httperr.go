package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
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

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError writes a business error with the status of its kind.
// It reports false when err is not a BusinessError so the caller can
// log it and answer 500.
func FromError(c *gin.Context, err error) bool {
	kind := KindOf(err)
	if kind == "" {
		return false
	}

	code := err.Error()
	msg := messages[code]
	if msg == "" {
		msg = code
	}

	switch kind {
	case KindConflict:
		Conflict(c, code, msg)
	case KindNotFound:
		NotFound(c, code, msg)
	case KindForbidden:
		Forbidden(c, code, msg)
	default:
		BadRequest(c, code, msg)
	}
	return true
}

var messages = map[string]string{
	"invalid_request":        "Dados inválidos.",
	"missing_fields":         "Preencha todos os campos obrigatórios.",
	"missing_id":             "Identificador obrigatório.",
	"date_required":          "Data obrigatória.",
	"times_required":         "Selecione ao menos um horário.",
	"invalid_date":           "Data inválida.",
	"invalid_time":           "Horário inválido.",
	"date_in_past":           "Não é possível agendar em datas passadas.",
	"invalid_manicure_type":  "Tipo de manicure inválido.",
	"manicure_not_offered":   "Este profissional não atende manicure.",
	"slot_unavailable":       "Horário não está mais disponível.",
	"booking_not_found":      "Reserva não encontrada.",
	"professional_not_found": "Profissional não encontrado.",
	"user_not_found":         "Usuário não encontrado.",
	"email_already_exists":   "E-mail já cadastrado.",
	"invalid_email":          "E-mail inválido.",
	"invalid_email_domain":   "O domínio do e-mail informado não parece ser válido.",
	"password_too_short":     "A senha deve ter ao menos 6 caracteres.",
	"forbidden":              "Ação não permitida para este perfil.",
	"not_owner":              "Esta reserva pertence a outro usuário.",
	"invalid_gender":         "Gênero inválido.",
	"invalid_role":           "Perfil inválido.",
}
