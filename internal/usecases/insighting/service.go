package insighting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

// consumption registra a última vez em que uma chave de snapshot foi pedida
// por um cliente. O poll só renova chaves consumidas recentemente.
type consumption struct {
	req *domain.SnapshotRequest
	at  time.Time
}

type Service struct {
	cfg      *config.Config
	fetcher  EntityFetcher
	cache    SnapshotCache
	registry func() domain.AccountRegistry

	// Dedup de buscas em voo: a primeira requisição de uma chave busca, as
	// demais esperam e leem do cache.
	inflightMu sync.Mutex
	inflight   map[string]chan struct{}

	consumedMu sync.RWMutex
	consumed   map[string]consumption

	// Status otimistas aplicados por cima dos snapshots até a
	// reconciliação confirmar ou reverter.
	overrideMu     sync.RWMutex
	overrides      map[string]string
	entityAccounts map[string]string
}

func NewService(
	cfg *config.Config,
	fetcher EntityFetcher,
	cache SnapshotCache,
	registry func() domain.AccountRegistry,
) *Service {
	return &Service{
		cfg:            cfg,
		fetcher:        fetcher,
		cache:          cache,
		registry:       registry,
		inflight:       make(map[string]chan struct{}),
		consumed:       make(map[string]consumption),
		overrides:      make(map[string]string),
		entityAccounts: make(map[string]string),
	}
}

// GetSnapshot devolve o snapshot da requisição. A ordem é cache, espera por
// busca em voo, busca na API; NoCache pula a leitura do cache mas ainda
// grava o resultado.
func (s *Service) GetSnapshot(ctx context.Context, req *domain.SnapshotRequest) (*domain.Snapshot, error) {
	if len(req.AccountIDs) == 0 {
		return nil, fmt.Errorf("é necessário informar ao menos uma conta")
	}

	if req.Filters.StartDate != nil && req.Filters.EndDate != nil && req.Filters.StartDate.After(*req.Filters.EndDate) {
		return nil, fmt.Errorf("a data de início não pode ser posterior à data de fim")
	}

	key := cacheKey(req)

	// Rebuscas do poll chegam com NoCache e não contam como consumo; sem
	// isso o poll renovaria as próprias chaves para sempre.
	if !req.NoCache {
		s.recordConsumption(key, req)
	}

	for {
		if !req.NoCache {
			snapshot, err := s.cache.Get(ctx, key)
			if err != nil {
				logrus.WithError(err).Warn("snapshot: falha ao ler cache, buscando direto da API")
			}
			if snapshot != nil {
				return s.applyOverrides(snapshot), nil
			}
		}

		release, joined := s.acquireInflight(ctx, key)
		if joined {
			// Outra requisição da mesma chave buscou enquanto esperávamos;
			// volta ao topo para ler o resultado dela do cache.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		snapshot, err := s.fetch(ctx, req)
		if err != nil {
			release()
			return nil, err
		}

		// O resultado precisa estar legível no cache antes de liberar a
		// chave; quem espera acorda e lê do cache em vez de rebuscar.
		if err := s.cache.Set(ctx, key, snapshot); err != nil {
			logrus.WithError(err).Warn("snapshot: falha ao gravar cache")
		}

		s.indexSnapshot(snapshot)
		release()

		return s.applyOverrides(snapshot), nil
	}
}

// RecentRequests devolve as requisições consumidas dentro da janela.
func (s *Service) RecentRequests(window time.Duration) []*domain.SnapshotRequest {
	s.consumedMu.Lock()
	defer s.consumedMu.Unlock()

	cutoff := time.Now().Add(-window)
	requests := make([]*domain.SnapshotRequest, 0, len(s.consumed))
	for key, c := range s.consumed {
		if c.at.Before(cutoff) {
			delete(s.consumed, key)
			continue
		}
		requests = append(requests, c.req)
	}

	return requests
}

// SetEntityStatus registra um status otimista para a entidade. Os snapshots
// devolvidos passam a refletir o novo status imediatamente.
func (s *Service) SetEntityStatus(entityType domain.EntityType, entityID string, status string) {
	s.overrideMu.Lock()
	s.overrides[entityID] = status
	s.overrideMu.Unlock()
}

// ClearEntityStatus descarta o status otimista da entidade. O próximo
// snapshot volta a refletir o estado que a plataforma reportar.
func (s *Service) ClearEntityStatus(entityType domain.EntityType, entityID string) {
	s.overrideMu.Lock()
	delete(s.overrides, entityID)
	s.overrideMu.Unlock()
}

// RefreshEntity descarta o status otimista e invalida o cache da conta da
// entidade, forçando a próxima carga a trazer o estado confirmado.
func (s *Service) RefreshEntity(ctx context.Context, entityType domain.EntityType, entityID string) error {
	s.overrideMu.Lock()
	delete(s.overrides, entityID)
	accountID := s.entityAccounts[entityID]
	s.overrideMu.Unlock()

	if accountID == "" {
		return nil
	}

	if err := s.cache.InvalidateAccount(ctx, accountID); err != nil {
		return fmt.Errorf("erro ao invalidar cache da conta %s: %w", accountID, err)
	}

	return nil
}

func (s *Service) recordConsumption(key string, req *domain.SnapshotRequest) {
	s.consumedMu.Lock()
	s.consumed[key] = consumption{req: req, at: time.Now()}
	s.consumedMu.Unlock()
}

// acquireInflight marca a chave como em voo. Quando outra goroutine chegou
// primeiro, espera ela terminar e devolve joined=true.
func (s *Service) acquireInflight(ctx context.Context, key string) (release func(), joined bool) {
	s.inflightMu.Lock()
	if ch, ok := s.inflight[key]; ok {
		s.inflightMu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
		}
		return func() {}, true
	}

	ch := make(chan struct{})
	s.inflight[key] = ch
	s.inflightMu.Unlock()

	return func() {
		s.inflightMu.Lock()
		delete(s.inflight, key)
		s.inflightMu.Unlock()
		close(ch)
	}, false
}

// fetch busca os dados básicos e os insights em paralelo e mescla por id.
// Falha nos dados básicos é erro; falha nos insights degrada para métricas
// zeradas, a tabela ainda renderiza.
func (s *Service) fetch(ctx context.Context, req *domain.SnapshotRequest) (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{
		Type:      req.Type,
		FetchedAt: time.Now(),
	}

	if req.Type == domain.EntityTypeAccount {
		registry := s.registry()
		wanted := stringSet(req.AccountIDs)
		accounts := make([]*domain.AdAccount, 0, len(wanted))
		for id := range wanted {
			if acc := registry.Get(id); acc != nil {
				accounts = append(accounts, acc)
			}
		}
		sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
		snapshot.Accounts = accounts
		return snapshot, nil
	}

	for _, accountID := range req.AccountIDs {
		var (
			campaigns  []*domain.Campaign
			adSets     []*domain.AdSet
			ads        []*domain.Ad
			metrics    map[string]*domain.EntityMetrics
			basicErr   error
			metricsErr error
		)

		// Usar WaitGroup para buscar dados básicos e insights em paralelo
		wg := sync.WaitGroup{}
		wg.Add(2)

		go func() {
			defer wg.Done()
			switch req.Type {
			case domain.EntityTypeCampaign:
				campaigns, basicErr = s.fetcher.ListCampaigns(accountID)
			case domain.EntityTypeAdSet:
				adSets, basicErr = s.fetcher.ListAdSets(accountID)
			case domain.EntityTypeAd:
				ads, basicErr = s.fetcher.ListAds(accountID)
			default:
				basicErr = fmt.Errorf("nível de entidade desconhecido: %s", req.Type)
			}
		}()

		go func() {
			defer wg.Done()
			metrics, metricsErr = s.fetcher.GetMetrics(req.Type, accountID, &req.Filters)
		}()

		wg.Wait()

		if basicErr != nil {
			return nil, fmt.Errorf("erro ao buscar entidades da conta %s: %w", accountID, basicErr)
		}

		if metricsErr != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"level":      req.Type,
				"error":      metricsErr.Error(),
			}).Warn("snapshot: falha ao buscar insights, seguindo com métricas zeradas")
			metrics = map[string]*domain.EntityMetrics{}
		}

		switch req.Type {
		case domain.EntityTypeCampaign:
			for _, c := range campaigns {
				c.Metrics = metricsOrEmpty(metrics, c.ID, c.Objective)
			}
			snapshot.Campaigns = append(snapshot.Campaigns, campaigns...)
		case domain.EntityTypeAdSet:
			for _, a := range adSets {
				a.Metrics = metricsOrEmpty(metrics, a.ID, "")
			}
			snapshot.AdSets = append(snapshot.AdSets, filterAdSets(adSets, req.CampaignIDs)...)
		case domain.EntityTypeAd:
			for _, a := range ads {
				a.Metrics = metricsOrEmpty(metrics, a.ID, "")
			}
			snapshot.Ads = append(snapshot.Ads, filterAds(ads, req.CampaignIDs, req.AdSetIDs)...)
		}
	}

	return snapshot, nil
}

// metricsOrEmpty devolve as métricas da entidade ou métricas zeradas quando
// os insights não trouxeram a linha (entidade sem entrega no período).
func metricsOrEmpty(metrics map[string]*domain.EntityMetrics, entityID string, objective string) *domain.EntityMetrics {
	if m, ok := metrics[entityID]; ok {
		if m.Objective == "" {
			m.Objective = objective
		}
		return m
	}
	return domain.EmptyMetrics(objective)
}

// filterAdSets restringe a carga aos conjuntos das campanhas selecionadas;
// sem seleção, a aba mostra a conta inteira.
func filterAdSets(adSets []*domain.AdSet, campaignIDs []string) []*domain.AdSet {
	if len(campaignIDs) == 0 {
		return adSets
	}

	wanted := stringSet(campaignIDs)
	filtered := make([]*domain.AdSet, 0, len(adSets))
	for _, a := range adSets {
		if _, ok := wanted[a.CampaignID]; ok {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// filterAds prioriza a seleção de conjuntos; sem ela, cai para a seleção de
// campanhas; sem ambas, devolve tudo.
func filterAds(ads []*domain.Ad, campaignIDs []string, adSetIDs []string) []*domain.Ad {
	if len(adSetIDs) > 0 {
		wanted := stringSet(adSetIDs)
		filtered := make([]*domain.Ad, 0, len(ads))
		for _, a := range ads {
			if _, ok := wanted[a.AdSetID]; ok {
				filtered = append(filtered, a)
			}
		}
		return filtered
	}

	if len(campaignIDs) > 0 {
		wanted := stringSet(campaignIDs)
		filtered := make([]*domain.Ad, 0, len(ads))
		for _, a := range ads {
			if _, ok := wanted[a.CampaignID]; ok {
				filtered = append(filtered, a)
			}
		}
		return filtered
	}

	return ads
}

// indexSnapshot guarda a conta de cada entidade vista, para a invalidação
// por conta na reconciliação de mutações.
func (s *Service) indexSnapshot(snapshot *domain.Snapshot) {
	s.overrideMu.Lock()
	defer s.overrideMu.Unlock()

	for _, c := range snapshot.Campaigns {
		s.entityAccounts[c.ID] = c.AdAccountID
		for _, as := range c.AdSets {
			s.entityAccounts[as.ID] = c.AdAccountID
			for _, ad := range as.Ads {
				s.entityAccounts[ad.ID] = c.AdAccountID
			}
		}
	}
	for _, a := range snapshot.AdSets {
		s.entityAccounts[a.ID] = a.AdAccountID
		for _, ad := range a.Ads {
			s.entityAccounts[ad.ID] = a.AdAccountID
		}
	}
	for _, a := range snapshot.Ads {
		s.entityAccounts[a.ID] = a.AdAccountID
	}
}

// applyOverrides aplica os status otimistas pendentes por cima do snapshot.
func (s *Service) applyOverrides(snapshot *domain.Snapshot) *domain.Snapshot {
	s.overrideMu.RLock()
	defer s.overrideMu.RUnlock()

	if len(s.overrides) == 0 {
		return snapshot
	}

	for _, c := range snapshot.Campaigns {
		if st, ok := s.overrides[c.ID]; ok {
			c.Status = st
			c.ConfiguredStatus = st
			c.EffectiveStatus = st
		}
		for _, as := range c.AdSets {
			if st, ok := s.overrides[as.ID]; ok {
				as.EffectiveStatus = st
			}
			for _, ad := range as.Ads {
				if st, ok := s.overrides[ad.ID]; ok {
					ad.EffectiveStatus = st
				}
			}
		}
	}
	for _, a := range snapshot.AdSets {
		if st, ok := s.overrides[a.ID]; ok {
			a.Status = st
			a.ConfiguredStatus = st
			a.EffectiveStatus = st
		}
		for _, ad := range a.Ads {
			if st, ok := s.overrides[ad.ID]; ok {
				ad.EffectiveStatus = st
			}
		}
	}
	for _, a := range snapshot.Ads {
		if st, ok := s.overrides[a.ID]; ok {
			a.Status = st
			a.ConfiguredStatus = st
			a.EffectiveStatus = st
		}
	}

	return snapshot
}

// cacheKey identifica uma carga: nível, contas, período e escopo de
// seleção. Os ids entram ordenados para a mesma carga gerar a mesma chave.
func cacheKey(req *domain.SnapshotRequest) string {
	accounts := sortedCopy(req.AccountIDs)
	campaigns := sortedCopy(req.CampaignIDs)
	adSets := sortedCopy(req.AdSetIDs)

	start, end := "", ""
	if req.Filters.StartDate != nil {
		start = req.Filters.StartDate.Format(time.DateOnly)
	}
	if req.Filters.EndDate != nil {
		end = req.Filters.EndDate.Format(time.DateOnly)
	}

	return fmt.Sprintf("%s:%s:%s:%s:%s:%s",
		req.Type,
		strings.Join(accounts, ","),
		start,
		end,
		strings.Join(campaigns, ","),
		strings.Join(adSets, ","),
	)
}

func sortedCopy(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}

func stringSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
