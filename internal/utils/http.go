package utils

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ParseID lê o parâmetro {id} da rota.
func ParseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// WriteJSON responde com o status e o corpo JSON informados.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteDetalhe responde no formato {"detail": "..."} esperado pelo frontend.
func WriteDetalhe(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"detail": msg})
}

// WriteErros responde 400 com os erros por campo.
func WriteErros(w http.ResponseWriter, erros ErrosCampo) {
	WriteJSON(w, http.StatusBadRequest, erros)
}
