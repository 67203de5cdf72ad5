package api

import (
	"net/http"
	"strconv"
)

// Limites de paginação das listagens de pacientes e responsáveis. A
// aplicação original carregava a lista inteira; aqui a resposta vem em
// páginas com envelope {items, limit, offset, total}.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func positiveParam(r *http.Request, name string) (int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// pageParams lê limit/offset da query string. Ausente ou inválido cai no
// default; limit nunca passa de maxPageSize.
func pageParams(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if n, ok := positiveParam(r, "limit"); ok && n > 0 {
		limit = n
		if limit > maxPageSize {
			limit = maxPageSize
		}
	}
	if n, ok := positiveParam(r, "offset"); ok {
		offset = n
	}
	return limit, offset
}
