package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-manager-api/internal/usecases/selection"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
)

type ToggleSelectionRequest struct {
	ID string `json:"id"`
}

type SetSelectionRequest struct {
	IDs []string `json:"ids"`
}

type SelectionResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

func writeSelection(w http.ResponseWriter, checked *selection.Controller, level string) {
	entityType, _ := parseEntityType(level)
	ids := setToSlice(checked.Checked(entityType))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SelectionResponse{
		IDs:   ids,
		Count: len(ids),
	})
}

// GetSelection lista os ids marcados no nível.
func GetSelection(checked *selection.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if _, ok := parseEntityType(rawType); !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidEntityType, "Nível de entidade inválido: "+rawType, nil)
			return
		}

		writeSelection(w, checked, rawType)
	})
}

// ToggleSelection inverte a marcação de um id. Mudar a seleção de um nível
// pai limpa a seleção dos níveis descendentes.
func ToggleSelection(checked *selection.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		entityType, ok := parseEntityType(rawType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidEntityType, "Nível de entidade inválido: "+rawType, nil)
			return
		}

		var req ToggleSelectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "ID da entidade não fornecido", nil)
			return
		}

		checked.Toggle(entityType, req.ID)
		writeSelection(w, checked, rawType)
	})
}

// SetSelection substitui a seleção do nível pelos ids informados
// (select-all sobre as linhas visíveis no filtro atual).
func SetSelection(checked *selection.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		entityType, ok := parseEntityType(rawType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidEntityType, "Nível de entidade inválido: "+rawType, nil)
			return
		}

		var req SetSelectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		checked.SetAll(entityType, req.IDs)
		writeSelection(w, checked, rawType)
	})
}

// ClearSelection esvazia a seleção do nível e de todos os descendentes.
func ClearSelection(checked *selection.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		entityType, ok := parseEntityType(rawType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidEntityType, "Nível de entidade inválido: "+rawType, nil)
			return
		}

		checked.Clear(entityType)
		writeSelection(w, checked, rawType)
	})
}
