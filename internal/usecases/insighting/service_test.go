package insighting

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

type fakeFetcher struct {
	mu            sync.Mutex
	campaignCalls int32
	fetchDelay    time.Duration
	metricsErr    error
	metrics       map[string]*domain.EntityMetrics
	campaigns     []*domain.Campaign
}

func (f *fakeFetcher) ListCampaigns(accountID string) ([]*domain.Campaign, error) {
	atomic.AddInt32(&f.campaignCalls, 1)
	if f.fetchDelay > 0 {
		time.Sleep(f.fetchDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.campaigns, nil
}

func (f *fakeFetcher) ListAdSets(accountID string) ([]*domain.AdSet, error) {
	return nil, nil
}

func (f *fakeFetcher) ListAds(accountID string) ([]*domain.Ad, error) {
	return nil, nil
}

func (f *fakeFetcher) GetMetrics(level domain.EntityType, accountID string, filters *domain.SnapshotFilters) (map[string]*domain.EntityMetrics, error) {
	if f.metricsErr != nil {
		return nil, f.metricsErr
	}
	return f.metrics, nil
}

type fakeCache struct {
	mu          sync.Mutex
	setDelay    time.Duration
	entries     map[string]*domain.Snapshot
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.Snapshot)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (*domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *fakeCache) Set(ctx context.Context, key string, snapshot *domain.Snapshot) error {
	if c.setDelay > 0 {
		time.Sleep(c.setDelay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = snapshot
	return nil
}

func (c *fakeCache) InvalidateAccount(ctx context.Context, accountID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, accountID)
	for key := range c.entries {
		delete(c.entries, key)
	}
	return nil
}

func emptyRegistry() domain.AccountRegistry {
	return domain.AccountRegistry{}
}

func newTestService(fetcher *fakeFetcher, cache *fakeCache) *Service {
	return NewService(&config.Config{}, fetcher, cache, emptyRegistry)
}

func campaignRequest(noCache bool) *domain.SnapshotRequest {
	return &domain.SnapshotRequest{
		Type:       domain.EntityTypeCampaign,
		AccountIDs: []string{"act_1"},
		NoCache:    noCache,
	}
}

func TestGetSnapshot_UsaCacheQuandoDisponivel(t *testing.T) {
	fetcher := &fakeFetcher{
		campaigns: []*domain.Campaign{{ID: "c1", Name: "Campanha", AdAccountID: "act_1"}},
	}
	cache := newFakeCache()
	service := newTestService(fetcher, cache)

	// Primeira chamada busca da API e preenche o cache
	first, err := service.GetSnapshot(context.Background(), campaignRequest(false))
	require.NoError(t, err)
	require.Len(t, first.Campaigns, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetcher.campaignCalls))

	// Segunda chamada identica vem do cache, sem nova busca
	second, err := service.GetSnapshot(context.Background(), campaignRequest(false))
	require.NoError(t, err)
	require.Len(t, second.Campaigns, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetcher.campaignCalls))
}

func TestGetSnapshot_NoCacheIgnoraLeituraMasGravaCache(t *testing.T) {
	fetcher := &fakeFetcher{
		campaigns: []*domain.Campaign{{ID: "c1", AdAccountID: "act_1"}},
	}
	cache := newFakeCache()
	service := newTestService(fetcher, cache)

	_, err := service.GetSnapshot(context.Background(), campaignRequest(false))
	require.NoError(t, err)

	_, err = service.GetSnapshot(context.Background(), campaignRequest(true))
	require.NoError(t, err)

	// NoCache força nova busca mesmo com entrada valida no cache
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetcher.campaignCalls))
}

func TestGetSnapshot_FalhaNosInsightsDegradaParaMetricasZeradas(t *testing.T) {
	fetcher := &fakeFetcher{
		campaigns:  []*domain.Campaign{{ID: "c1", Objective: "OUTCOME_SALES", AdAccountID: "act_1"}},
		metricsErr: errors.New("limite de requisicoes excedido"),
	}
	service := newTestService(fetcher, newFakeCache())

	snapshot, err := service.GetSnapshot(context.Background(), campaignRequest(false))
	require.NoError(t, err)
	require.Len(t, snapshot.Campaigns, 1)

	metrics := snapshot.Campaigns[0].Metrics
	require.NotNil(t, metrics)
	assert.Equal(t, float64(0), metrics.Spend)
	assert.Equal(t, "OUTCOME_SALES", metrics.Objective)
}

func TestGetSnapshot_RequisicoesConcorrentesCompartilhamUmaBusca(t *testing.T) {
	fetcher := &fakeFetcher{
		campaigns:  []*domain.Campaign{{ID: "c1", AdAccountID: "act_1"}},
		fetchDelay: 50 * time.Millisecond,
	}
	service := newTestService(fetcher, newFakeCache())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snapshot, err := service.GetSnapshot(context.Background(), campaignRequest(false))
			assert.NoError(t, err)
			assert.Len(t, snapshot.Campaigns, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetcher.campaignCalls))
}

func TestGetSnapshot_ConcorrentesLeemDoCacheAposGravacaoLenta(t *testing.T) {
	fetcher := &fakeFetcher{
		campaigns:  []*domain.Campaign{{ID: "c1", AdAccountID: "act_1"}},
		fetchDelay: 20 * time.Millisecond,
	}
	cache := newFakeCache()
	cache.setDelay = 100 * time.Millisecond
	service := newTestService(fetcher, cache)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snapshot, err := service.GetSnapshot(context.Background(), campaignRequest(false))
			assert.NoError(t, err)
			assert.Len(t, snapshot.Campaigns, 1)
		}()
	}
	wg.Wait()

	// Quem esperou a busca em voo só acorda depois que o resultado está no
	// cache; a segunda requisição deve ler de lá, não buscar de novo.
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetcher.campaignCalls))
}

func TestSetEntityStatus_AplicaStatusOtimistaSobreOSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{
		campaigns: []*domain.Campaign{{ID: "c1", Status: "ACTIVE", EffectiveStatus: "ACTIVE", AdAccountID: "act_1"}},
	}
	cache := newFakeCache()
	service := newTestService(fetcher, cache)

	_, err := service.GetSnapshot(context.Background(), campaignRequest(false))
	require.NoError(t, err)

	service.SetEntityStatus(domain.EntityTypeCampaign, "c1", "PAUSED")

	snapshot, err := service.GetSnapshot(context.Background(), campaignRequest(false))
	require.NoError(t, err)
	assert.Equal(t, "PAUSED", snapshot.Campaigns[0].EffectiveStatus)
}

func TestClearEntityStatus_NaoMascaraTransicoesDaPlataforma(t *testing.T) {
	fetcher := &fakeFetcher{
		campaigns: []*domain.Campaign{{ID: "c1", Status: "ACTIVE", EffectiveStatus: "ACTIVE", AdAccountID: "act_1"}},
	}
	cache := newFakeCache()
	service := newTestService(fetcher, cache)

	_, err := service.GetSnapshot(context.Background(), campaignRequest(false))
	require.NoError(t, err)

	// Flip otimista seguido de reversão por falha remota
	service.SetEntityStatus(domain.EntityTypeCampaign, "c1", "PAUSED")
	service.ClearEntityStatus(domain.EntityTypeCampaign, "c1")

	// A plataforma muda o estado por conta própria depois da reversão
	fetcher.mu.Lock()
	fetcher.campaigns = []*domain.Campaign{{ID: "c1", Status: "ACTIVE", EffectiveStatus: "DISAPPROVED", AdAccountID: "act_1"}}
	fetcher.mu.Unlock()

	snapshot, err := service.GetSnapshot(context.Background(), campaignRequest(true))
	require.NoError(t, err)
	assert.Equal(t, "DISAPPROVED", snapshot.Campaigns[0].EffectiveStatus)
}

func TestRefreshEntity_DescartaOverrideEInvalidaCacheDaConta(t *testing.T) {
	fetcher := &fakeFetcher{
		campaigns: []*domain.Campaign{{ID: "c1", Status: "ACTIVE", EffectiveStatus: "ACTIVE", AdAccountID: "act_1"}},
	}
	cache := newFakeCache()
	service := newTestService(fetcher, cache)

	_, err := service.GetSnapshot(context.Background(), campaignRequest(false))
	require.NoError(t, err)

	service.SetEntityStatus(domain.EntityTypeCampaign, "c1", "PAUSED")
	require.NoError(t, service.RefreshEntity(context.Background(), domain.EntityTypeCampaign, "c1"))

	assert.Equal(t, []string{"act_1"}, cache.invalidated)

	// A proxima carga busca o estado confirmado, sem o override
	snapshot, err := service.GetSnapshot(context.Background(), campaignRequest(false))
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", snapshot.Campaigns[0].EffectiveStatus)
}

func TestRecentRequests_DescartaConsumosForaDaJanela(t *testing.T) {
	fetcher := &fakeFetcher{
		campaigns: []*domain.Campaign{{ID: "c1", AdAccountID: "act_1"}},
	}
	service := newTestService(fetcher, newFakeCache())

	_, err := service.GetSnapshot(context.Background(), campaignRequest(false))
	require.NoError(t, err)

	assert.Len(t, service.RecentRequests(time.Minute), 1)
	assert.Len(t, service.RecentRequests(-time.Second), 0)
}
