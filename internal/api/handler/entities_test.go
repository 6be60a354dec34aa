package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/internal/api/handler/router"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/mutation"
	"github.com/vfg2006/ads-manager-api/internal/usecases/selection"
	"github.com/vfg2006/ads-manager-api/pkg/middleware"
)

type fakeSnapshoter struct {
	snapshot *domain.Snapshot
	lastReq  *domain.SnapshotRequest
}

func (f *fakeSnapshoter) GetSnapshot(ctx context.Context, req *domain.SnapshotRequest) (*domain.Snapshot, error) {
	f.lastReq = req
	return f.snapshot, nil
}

func (f *fakeSnapshoter) RecentRequests(window time.Duration) []*domain.SnapshotRequest {
	return nil
}

func (f *fakeSnapshoter) SetEntityStatus(entityType domain.EntityType, entityID string, status string) {
}

func (f *fakeSnapshoter) RefreshEntity(ctx context.Context, entityType domain.EntityType, entityID string) error {
	return nil
}

type fakeAccountService struct {
	registry domain.AccountRegistry
}

func (f *fakeAccountService) ListAdAccounts() ([]*domain.AdAccountResponse, error) { return nil, nil }
func (f *fakeAccountService) GetAccount(accountID string) (*domain.AdAccountResponse, error) {
	return nil, nil
}
func (f *fakeAccountService) Registry() domain.AccountRegistry { return f.registry }
func (f *fakeAccountService) SyncAccounts(accountIDs []string) (*domain.SyncAccountsResponse, error) {
	return nil, nil
}
func (f *fakeAccountService) UpdateSpendCap(accountID string, spendCap *int64) error { return nil }
func (f *fakeAccountService) CreateCampaign(accountID, name, objective string, dailyBudget *int64) (string, error) {
	return "", nil
}

func newEntitiesRouter(snapshots *fakeSnapshoter, accounts *fakeAccountService) router.Router {
	checked := selection.NewController()
	return router.New(router.WithRoutes(router.Route{
		Path:    "/v1/entities/:type",
		Method:  http.MethodGet,
		Handler: ListEntities(snapshots, accounts, checked),
	}))
}

func metricsWithSpend(spend float64) *domain.EntityMetrics {
	m := domain.EmptyMetrics("OUTCOME_SALES")
	m.Spend = spend
	return m
}

func TestListEntities_AplicaBuscaEOrdenacao(t *testing.T) {
	registry := domain.AccountRegistry{
		"act1": {ID: "act1", Name: "Conta", AccountStatus: domain.AccountStatusActive},
	}

	snapshots := &fakeSnapshoter{
		snapshot: &domain.Snapshot{
			Type: domain.EntityTypeCampaign,
			Campaigns: []*domain.Campaign{
				{ID: "c1", Name: "Promo Verão", Status: "ACTIVE", EffectiveStatus: "ACTIVE", ConfiguredStatus: "ACTIVE", AdAccountID: "act1", Metrics: metricsWithSpend(10)},
				{ID: "c2", Name: "Promo Inverno", Status: "ACTIVE", EffectiveStatus: "ACTIVE", ConfiguredStatus: "ACTIVE", AdAccountID: "act1", Metrics: metricsWithSpend(30)},
				{ID: "c3", Name: "Institucional", Status: "PAUSED", EffectiveStatus: "PAUSED", ConfiguredStatus: "PAUSED", AdAccountID: "act1", Metrics: metricsWithSpend(20)},
			},
			FetchedAt: time.Now(),
		},
	}

	rt := newEntitiesRouter(snapshots, &fakeAccountService{registry: registry})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/entities/campaign?accounts=act1&search=promo&sort_key=spend&sort_dir=desc", nil)
	rec := httptest.NewRecorder()

	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response EntityListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

	// A busca descarta "Institucional"; a ordenação por spend desc põe c2 antes de c1
	require.Len(t, response.Rows, 2)
	assert.Equal(t, "c2", response.Rows[0].ID)
	assert.Equal(t, "c1", response.Rows[1].ID)
	assert.Equal(t, 3, response.Total)
	assert.Equal(t, domain.StatusTypeActive, response.Rows[0].DeliveryStatus.Type)
}

func TestListEntities_FiltroDeStatus(t *testing.T) {
	registry := domain.AccountRegistry{
		"act1": {ID: "act1", Name: "Conta", AccountStatus: domain.AccountStatusActive},
	}

	snapshots := &fakeSnapshoter{
		snapshot: &domain.Snapshot{
			Type: domain.EntityTypeCampaign,
			Campaigns: []*domain.Campaign{
				{ID: "c1", Name: "Ativa", Status: "ACTIVE", EffectiveStatus: "ACTIVE", ConfiguredStatus: "ACTIVE", AdAccountID: "act1"},
				{ID: "c2", Name: "Pausada", Status: "PAUSED", EffectiveStatus: "PAUSED", ConfiguredStatus: "PAUSED", AdAccountID: "act1"},
			},
		},
	}

	rt := newEntitiesRouter(snapshots, &fakeAccountService{registry: registry})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/entities/campaign?accounts=act1&status_filter=paused", nil)
	rec := httptest.NewRecorder()

	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response EntityListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

	require.Len(t, response.Rows, 1)
	assert.Equal(t, "c2", response.Rows[0].ID)
}

func TestListEntities_NivelInvalido(t *testing.T) {
	rt := newEntitiesRouter(&fakeSnapshoter{}, &fakeAccountService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/entities/banners?accounts=act1", nil)
	rec := httptest.NewRecorder()

	rt.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ENT_003")
}

func TestListEntities_SemContasSelecionadas(t *testing.T) {
	rt := newEntitiesRouter(&fakeSnapshoter{}, &fakeAccountService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/entities/campaign", nil)
	rec := httptest.NewRecorder()

	rt.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEntities_RepassaPeriodoEEncadeamento(t *testing.T) {
	snapshots := &fakeSnapshoter{snapshot: &domain.Snapshot{Type: domain.EntityTypeAdSet}}
	rt := newEntitiesRouter(snapshots, &fakeAccountService{})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/entities/adset?accounts=act1,act2&start_date=2026-08-01&end_date=2026-08-31&campaign_ids=c1,c2", nil)
	rec := httptest.NewRecorder()

	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, snapshots.lastReq)
	assert.Equal(t, []string{"act1", "act2"}, snapshots.lastReq.AccountIDs)
	assert.Equal(t, []string{"c1", "c2"}, snapshots.lastReq.CampaignIDs)
	require.NotNil(t, snapshots.lastReq.Filters.StartDate)
	assert.Equal(t, "2026-08-01", snapshots.lastReq.Filters.StartDate.Format(time.DateOnly))
}

func TestListEntities_RestringeContasVinculadas(t *testing.T) {
	snapshots := &fakeSnapshoter{snapshot: &domain.Snapshot{Type: domain.EntityTypeCampaign}}
	rt := newEntitiesRouter(snapshots, &fakeAccountService{})

	claims := &domain.Claims{UserID: 7, UserRoleID: middleware.RoleSupervisor, UserAccounts: []string{"act1"}}

	req := httptest.NewRequest(http.MethodGet, "/v1/entities/campaign?accounts=act1,act2", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	rec := httptest.NewRecorder()

	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, snapshots.lastReq)
	assert.Equal(t, []string{"act1"}, snapshots.lastReq.AccountIDs)

	// Sem nenhuma conta vinculada entre as pedidas, a resposta é 403
	req = httptest.NewRequest(http.MethodGet, "/v1/entities/campaign?accounts=act2", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	rec = httptest.NewRecorder()

	rt.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_008")
}

type fakeRemote struct {
	mu     sync.Mutex
	err    error
	called []string
}

func (f *fakeRemote) SetEntityStatus(ctx context.Context, entityType domain.EntityType, id string, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called = append(f.called, id+":"+status)
	return f.err
}

type fakeLocal struct{}

func (f *fakeLocal) SetEntityStatus(entityType domain.EntityType, id string, status string) {}

func (f *fakeLocal) ClearEntityStatus(entityType domain.EntityType, id string) {}

type fakeReconciler struct{}

func (f *fakeReconciler) RefreshEntity(ctx context.Context, entityType domain.EntityType, id string) error {
	return nil
}

func newToggleRouter(remote *fakeRemote) router.Router {
	toggler := mutation.NewToggler(remote, &fakeLocal{}, &fakeReconciler{}).
		WithDelays(time.Millisecond, time.Millisecond)

	return router.New(router.WithRoutes(router.Route{
		Path:    "/v1/entities/:type/:id/toggle-status",
		Method:  http.MethodPost,
		Handler: ToggleEntityStatus(toggler),
	}))
}

func TestToggleEntityStatus_FlipComSucesso(t *testing.T) {
	remote := &fakeRemote{}
	rt := newToggleRouter(remote)

	body := strings.NewReader(`{"currentStatus":"ACTIVE"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/entities/campaign/c1/toggle-status", body)
	rec := httptest.NewRecorder()

	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response ToggleStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "PAUSED", response.Status)
	assert.Equal(t, []string{"c1:PAUSED"}, remote.called)
}

func TestToggleEntityStatus_StatusNaoAlternavel(t *testing.T) {
	remote := &fakeRemote{}
	rt := newToggleRouter(remote)

	body := strings.NewReader(`{"currentStatus":"DELETED"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/entities/campaign/c1/toggle-status", body)
	rec := httptest.NewRecorder()

	rt.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "MUT_001")
	assert.Empty(t, remote.called)
}

func TestToggleEntityStatus_FalhaRemotaRetorna502(t *testing.T) {
	remote := &fakeRemote{err: assert.AnError}
	rt := newToggleRouter(remote)

	body := strings.NewReader(`{"currentStatus":"ACTIVE"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/entities/campaign/c1/toggle-status", body)
	rec := httptest.NewRecorder()

	rt.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "MUT_002")
}
