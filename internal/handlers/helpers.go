package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medcare-api/internal/httperr"
)

// --------------------------------------------------
// Params
// --------------------------------------------------

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// --------------------------------------------------
// Business errors -> HTTP
// --------------------------------------------------

type businessReply struct {
	status  int
	message string
}

var businessReplies = map[string]businessReply{
	"appointment_not_found": {http.StatusNotFound, "Consulta não encontrada."},
	"medication_not_found":  {http.StatusNotFound, "Medicamento não encontrado."},
	"user_not_found":        {http.StatusNotFound, "Usuário não encontrado."},

	"invalid_state":        {http.StatusConflict, "A consulta não está mais agendada."},
	"dose_too_soon":        {http.StatusConflict, "Ainda não é hora da próxima dose."},
	"medication_expired":   {http.StatusConflict, "Medicamento vencido."},
	"invalid_date_or_time": {http.StatusBadRequest, "Data ou hora inválida."},
	"invalid_month":        {http.StatusBadRequest, "Mês inválido."},
	"invalid_time_of_day":  {http.StatusBadRequest, "Horário inválido."},
	"invalid_expiry_date":  {http.StatusBadRequest, "Data de validade inválida."},
	"invalid_frequency":    {http.StatusBadRequest, "Frequência diária deve ser entre 1 e 24."},
	"invalid_reason":       {http.StatusBadRequest, "Motivo inválido."},
	"missing_fields":       {http.StatusBadRequest, "Campos obrigatórios ausentes."},
	"invalid_image":        {http.StatusBadRequest, "Imagem inválida."},
	"image_too_large":      {http.StatusRequestEntityTooLarge, "Imagem muito grande."},
	"storage_disabled":     {http.StatusServiceUnavailable, "Armazenamento de fotos indisponível."},
}

// respondError writes a business error with its mapped status, anything
// else as a 500 under fallbackCode.
func respondError(c *gin.Context, err error, fallbackCode string) {
	if code := httperr.BusinessCode(err); code != "" {
		if r, ok := businessReplies[code]; ok {
			httperr.Write(c, r.status, code, r.message)
			return
		}
		httperr.BadRequest(c, code, "Requisição inválida.")
		return
	}

	log.Printf("[%s] %v", fallbackCode, err)
	httperr.Internal(c, fallbackCode, "Erro interno.")
}

// --------------------------------------------------
// Pagination (?page=&limit=)
// --------------------------------------------------

type page struct {
	page  int
	limit int
}

func (p page) offset() int {
	return (p.page - 1) * p.limit
}

func parsePage(c *gin.Context, defLimit, maxLimit int) page {
	p := page{page: 1, limit: defLimit}

	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		p.page = n
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 && n <= maxLimit {
		p.limit = n
	}
	return p
}
