package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/internal/usecases/account"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
)

type SyncAccountsRequest struct {
	AccountIDs []string `json:"accountIds,omitempty"`
}

type UpdateSpendingLimitRequest struct {
	// Em unidades menores da moeda; nil remove o limite.
	SpendCap *int64 `json:"spendCap"`
}

type CreateCampaignRequest struct {
	Name        string `json:"name"`
	Objective   string `json:"objective"`
	DailyBudget *int64 `json:"dailyBudget,omitempty"`
}

type CreateCampaignResponse struct {
	ID string `json:"id"`
}

// writeAccountError traduz erros do usecase de contas para a resposta da
// API, preservando o código quando é um AccountError.
func writeAccountError(w http.ResponseWriter, err error, fallbackMessage string) {
	var accountErr *account.AccountError
	if errors.As(err, &accountErr) {
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, account.ErrAccountIDRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)

	case errors.Is(err, account.ErrInvalidSpendCap):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Limite de gastos inválido", nil)

	case errors.Is(err, account.ErrMetaIntegration):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao obter contas do serviço Meta", nil)

	case errors.Is(err, account.ErrFetchAccounts) || errors.Is(err, account.ErrDatabaseOperation):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar contas no banco de dados", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMessage, nil)
	}
}

// AdAccountList lista as contas conhecidas com o status de entrega já
// resolvido.
func AdAccountList(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adAccounts, err := service.ListAdAccounts()
		if err != nil {
			logrus.Error("Error listing accounts:", err)
			writeAccountError(w, err, "Erro ao listar contas")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(adAccounts); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetAdAccount devolve uma conta específica com status resolvido.
func GetAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		adAccount, err := service.GetAccount(id)
		if err != nil {
			logrus.Error("Error getting account:", err)
			writeAccountError(w, err, "Erro ao buscar conta")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(adAccount); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// SyncAccounts dispara a sincronização das contas com a Graph API. O corpo
// pode restringir a sincronização a um subconjunto de contas.
func SyncAccounts(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SyncAccounts")

		var req SyncAccountsRequest
		if r.Body != nil {
			// Corpo vazio sincroniza todas as contas configuradas.
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		resp, err := service.SyncAccounts(req.AccountIDs)
		if err != nil {
			logrus.Error("Error syncing accounts:", err)
			writeAccountError(w, err, "Erro ao sincronizar contas")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// UpdateSpendingLimit altera o limite de gastos de uma conta.
func UpdateSpendingLimit(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateSpendingLimit")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		var req UpdateSpendingLimitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := service.UpdateSpendCap(id, req.SpendCap); err != nil {
			logrus.Error("Error updating spending limit:", err)
			writeAccountError(w, err, "Erro ao atualizar limite de gastos")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	})
}

// CreateCampaign cria uma campanha pausada na conta informada.
func CreateCampaign(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCampaign")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		var req CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if req.Name == "" || req.Objective == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome e objetivo da campanha são obrigatórios", nil)
			return
		}

		campaignID, err := service.CreateCampaign(id, req.Name, req.Objective, req.DailyBudget)
		if err != nil {
			logrus.Error("Error creating campaign:", err)
			writeAccountError(w, err, "Erro ao criar campanha")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(CreateCampaignResponse{ID: campaignID}); err != nil {
			logrus.Error(err)
		}
	})
}
