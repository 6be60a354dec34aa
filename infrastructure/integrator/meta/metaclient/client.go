package metaclient

import (
	"errors"
	"net/http"

	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

// errTokenRenewed sinaliza que o token expirou e foi renovado durante a
// chamada; o chamador deve tentar a requisição novamente uma única vez.
var errTokenRenewed = errors.New("token expirado e renovado, por favor tente novamente")

type Client interface {
	GetAdAccounts(accountIDs []string) ([]metadomain.AdAccount, error)
	GetCampaignsByAccountID(accountID string) ([]metadomain.Campaign, error)
	GetAdSetsByAccountID(accountID string) ([]metadomain.AdSet, error)
	GetAdsByAccountID(accountID string) ([]metadomain.Ad, error)
	GetInsights(level domain.EntityType, accountID string, filters *domain.SnapshotFilters) ([]metadomain.Insight, error)
	UpdateStatus(entityID string, status string) error
	UpdateSpendCap(accountID string, spendCap *int64) error
	CreateCampaign(accountID string, req *CreateCampaignRequest) (string, error)
	RefreshToken() error
	EnsureValidToken() error
	HandleResponse(resp *http.Response) ([]byte, error)
}

type MetaClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	return &MetaClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
	}
}

// RefreshToken obtém um novo token de longa duração
func (c *MetaClient) RefreshToken() error {
	return c.TokenManager.RefreshToken()
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (c *MetaClient) EnsureValidToken() error {
	return c.TokenManager.EnsureValidToken()
}

// HandleResponse manipula a resposta HTTP e verifica erros de token expirado
func (c *MetaClient) HandleResponse(resp *http.Response) ([]byte, error) {
	return c.TokenManager.HandleResponse(resp)
}
