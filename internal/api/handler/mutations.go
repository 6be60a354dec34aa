package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-manager-api/internal/usecases/mutation"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ads-manager-api/pkg/log"
)

// ToggleStatusRequest carrega o status corrente visto pelo cliente no
// momento do clique e a ordem visível das linhas, que vira a trava de
// ordenação enquanto a mutação está em voo.
type ToggleStatusRequest struct {
	CurrentStatus string   `json:"currentStatus"`
	VisibleOrder  []string `json:"visibleOrder,omitempty"`
}

type ToggleStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type OrderLockResponse struct {
	Locked bool     `json:"locked"`
	Order  []string `json:"order,omitempty"`
}

// ToggleEntityStatus executa o flip otimista ACTIVE<->PAUSED de uma
// entidade. Em caso de falha remota o estado local já foi revertido pelo
// toggler; aqui só traduzimos o erro.
func ToggleEntityStatus(toggler *mutation.Toggler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		params := httprouter.ParamsFromContext(r.Context())
		entityType, ok := parseEntityType(params.ByName("type"))
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidEntityType, "Nível de entidade inválido: "+params.ByName("type"), nil)
			return
		}

		id := params.ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da entidade não fornecido", nil)
			return
		}

		var req ToggleStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if _, err := mutation.NextStatus(req.CurrentStatus); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrStatusNotToggleable, err.Error(), map[string]any{
				"entity_id":      id,
				"current_status": req.CurrentStatus,
			})
			return
		}

		next, err := toggler.Toggle(r.Context(), entityType, id, req.CurrentStatus, req.VisibleOrder)
		if err != nil {
			logger.WithFields(log.Fields{
				"entity_type": entityType,
				"entity_id":   id,
				"error":       err.Error(),
			}).Error("mutations: status toggle rejected by platform")

			apiErrors.WriteError(w, apiErrors.ErrMutationRejected, "A plataforma rejeitou a alteração de status", map[string]any{
				"entity_id": id,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ToggleStatusResponse{ID: id, Status: next}); err != nil {
			logger.WithError(err).Error("mutations: failed to encode response")
		}
	})
}

// GetOrderLock informa se a aba está com a ordenação travada por uma
// mutação recente e qual a ordem congelada.
func GetOrderLock(toggler *mutation.Toggler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		entityType, ok := parseEntityType(rawType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidEntityType, "Nível de entidade inválido: "+rawType, nil)
			return
		}

		order := toggler.LockedOrder(entityType)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(OrderLockResponse{
			Locked: order != nil,
			Order:  order,
		})
	})
}
