package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/account"
	"github.com/vfg2006/ads-manager-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-manager-api/internal/usecases/listing"
	"github.com/vfg2006/ads-manager-api/internal/usecases/selection"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ads-manager-api/pkg/log"
	"github.com/vfg2006/ads-manager-api/pkg/middleware"
	"github.com/vfg2006/ads-manager-api/pkg/utils"
)

// EntityRow é uma linha da tabela já passada pela pipeline de listagem: a
// entidade original mais o status de entrega resolvido.
type EntityRow struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	DeliveryStatus domain.StatusResult `json:"deliveryStatus"`
	Entity         any                 `json:"entity"`
}

// EntityListResponse é a resposta das abas do painel.
type EntityListResponse struct {
	Type      domain.EntityType `json:"type"`
	Rows      []EntityRow       `json:"rows"`
	Total     int               `json:"total"`
	FetchedAt time.Time         `json:"fetchedAt"`
}

func parseEntityType(raw string) (domain.EntityType, bool) {
	switch domain.EntityType(raw) {
	case domain.EntityTypeAccount, domain.EntityTypeCampaign, domain.EntityTypeAdSet, domain.EntityTypeAd:
		return domain.EntityType(raw), true
	}
	return "", false
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

func intersect(ids []string, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		allowedSet[id] = struct{}{}
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := allowedSet[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func setToSlice(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// ListEntities serve as quatro abas do painel. O nível vem da URL; contas,
// período, encadeamento hierárquico e a consulta da pipeline vêm da query
// string. Quando campaign_ids/adset_ids não são informados, o encadeamento
// usa a seleção marcada no servidor.
func ListEntities(
	snapshots insighting.Snapshoter,
	accounts account.AccountService,
	checked *selection.Controller,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rawType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		entityType, ok := parseEntityType(rawType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidEntityType, "Nível de entidade inválido: "+rawType, nil)
			return
		}

		accountIDs := splitIDs(r.URL.Query().Get("accounts"))
		if len(accountIDs) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhuma conta selecionada", nil)
			return
		}

		// Usuários não-admin só enxergam as contas vinculadas a eles.
		if claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims); ok && claims.UserRoleID != middleware.RoleAdmin {
			accountIDs = intersect(accountIDs, claims.UserAccounts)
			if len(accountIDs) == 0 {
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Nenhuma das contas informadas está vinculada ao usuário", nil)
				return
			}
		}

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida", nil)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida", nil)
			return
		}

		campaignIDs := splitIDs(r.URL.Query().Get("campaign_ids"))
		if campaignIDs == nil {
			campaignIDs = setToSlice(checked.Checked(domain.EntityTypeCampaign))
		}

		adSetIDs := splitIDs(r.URL.Query().Get("adset_ids"))
		if adSetIDs == nil {
			adSetIDs = setToSlice(checked.Checked(domain.EntityTypeAdSet))
		}

		req := &domain.SnapshotRequest{
			Type:        entityType,
			AccountIDs:  accountIDs,
			CampaignIDs: campaignIDs,
			AdSetIDs:    adSetIDs,
			Filters: domain.SnapshotFilters{
				StartDate: startDate,
				EndDate:   endDate,
			},
			NoCache: r.URL.Query().Get("no_cache") == "true",
		}

		snapshot, err := snapshots.GetSnapshot(r.Context(), req)
		if err != nil {
			logger.WithFields(log.Fields{
				"entity_type": entityType,
				"accounts":    strings.Join(accountIDs, ","),
				"error":       err.Error(),
			}).Error("entities: failed to load snapshot")

			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao carregar dados das entidades", nil)
			return
		}

		registry := accounts.Registry()

		var rows []listing.Row
		switch entityType {
		case domain.EntityTypeAccount:
			rows = listing.AccountRows(snapshot.Accounts)
		case domain.EntityTypeCampaign:
			rows = listing.CampaignRows(snapshot.Campaigns, registry)
		case domain.EntityTypeAdSet:
			rows = listing.AdSetRows(snapshot.AdSets, registry)
		case domain.EntityTypeAd:
			rows = listing.AdRows(snapshot.Ads, registry)
		}

		sortDir := listing.SortDirection(r.URL.Query().Get("sort_dir"))
		if sortDir != listing.SortAsc && sortDir != listing.SortDesc {
			sortDir = listing.SortNone
		}

		query := listing.Query{
			Search:       r.URL.Query().Get("search"),
			StatusFilter: r.URL.Query().Get("status_filter"),
			Sort: listing.SortConfig{
				Key:       r.URL.Query().Get("sort_key"),
				Direction: sortDir,
			},
		}

		filtered := listing.Apply(rows, query)

		response := EntityListResponse{
			Type:      entityType,
			Rows:      make([]EntityRow, 0, len(filtered)),
			Total:     len(rows),
			FetchedAt: snapshot.FetchedAt,
		}
		for _, row := range filtered {
			response.Rows = append(response.Rows, EntityRow{
				ID:             row.ID,
				Name:           row.Name,
				DeliveryStatus: row.Status,
				Entity:         row.Entity,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("entities: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
