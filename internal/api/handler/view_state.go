package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/infrastructure/repository"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ads-manager-api/pkg/middleware"
)

// GetViewState devolve o estado de interface persistido do usuário para a
// visão informada. Sem estado salvo (ou com JSON corrompido) a resposta é o
// estado padrão, nunca um erro.
func GetViewState(repo repository.ViewStateRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		view := httprouter.ParamsFromContext(r.Context()).ByName("view")
		if view == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da visão não fornecido", nil)
			return
		}

		state, err := repo.Get(userClaims.UserID, view)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar estado da visão", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// SaveViewState persiste o estado de interface do usuário para a visão.
func SaveViewState(repo repository.ViewStateRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		view := httprouter.ParamsFromContext(r.Context()).ByName("view")
		if view == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da visão não fornecido", nil)
			return
		}

		var state domain.ViewState
		if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		// A URL manda sobre o corpo.
		state.View = view
		state.UpdatedAt = time.Now()

		if err := repo.Save(userClaims.UserID, &state); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar estado da visão", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(&state); err != nil {
			logrus.Error(err)
		}
	})
}
