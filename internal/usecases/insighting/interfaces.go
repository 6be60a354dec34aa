package insighting

import (
	"context"
	"time"

	"github.com/vfg2006/ads-manager-api/internal/domain"
)

// EntityFetcher define o que o serviço de snapshots precisa da integração
// com a Graph API: os dados básicos por nível e os insights do período.
type EntityFetcher interface {
	ListCampaigns(accountID string) ([]*domain.Campaign, error)
	ListAdSets(accountID string) ([]*domain.AdSet, error)
	ListAds(accountID string) ([]*domain.Ad, error)
	GetMetrics(level domain.EntityType, accountID string, filters *domain.SnapshotFilters) (map[string]*domain.EntityMetrics, error)
}

// SnapshotCache é o cache de snapshots com TTL e invalidação por conta.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (*domain.Snapshot, error)
	Set(ctx context.Context, key string, snapshot *domain.Snapshot) error
	InvalidateAccount(ctx context.Context, accountID string) error
}

// Snapshoter é a interface consumida pelos handlers e pelo scheduler.
type Snapshoter interface {
	// GetSnapshot devolve o snapshot mesclado (básico + insights) da
	// requisição, servindo do cache quando possível.
	GetSnapshot(ctx context.Context, req *domain.SnapshotRequest) (*domain.Snapshot, error)

	// RecentRequests devolve as requisições consumidas dentro da janela,
	// para o poll renovar apenas o que alguém ainda olha.
	RecentRequests(window time.Duration) []*domain.SnapshotRequest

	// SetEntityStatus aplica um status otimista local a uma entidade, antes
	// da confirmação da plataforma.
	SetEntityStatus(entityType domain.EntityType, entityID string, status string)

	// RefreshEntity descarta o estado local e o cache que cobrem a
	// entidade, forçando a próxima carga a buscar o estado confirmado.
	RefreshEntity(ctx context.Context, entityType domain.EntityType, entityID string) error
}
