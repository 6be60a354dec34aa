package account

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-manager-api/infrastructure/repository"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/status"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ads-manager-api/pkg/utils"
)

type AccountService interface {
	ListAdAccounts() ([]*domain.AdAccountResponse, error)
	GetAccount(accountID string) (*domain.AdAccountResponse, error)
	Registry() domain.AccountRegistry
	SyncAccounts(accountIDs []string) (*domain.SyncAccountsResponse, error)
	UpdateSpendCap(accountID string, spendCap *int64) error
	CreateCampaign(accountID, name, objective string, dailyBudget *int64) (string, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	metaService       *meta.MetaIntegrator
	cfg               *config.Config

	mu       sync.RWMutex
	registry domain.AccountRegistry
}

func NewService(
	accountRepository repository.AccountRepository,
	metaService *meta.MetaIntegrator,
	cfg *config.Config,
) (*Service, error) {
	// O registro em memória nasce do que foi persistido na última
	// sincronização, para a resolução de status funcionar antes do
	// primeiro sync.
	registry, err := accountRepository.LoadRegistry()
	if err != nil {
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao carregar registro de contas do banco de dados")
	}

	return &Service{
		accountRepository: accountRepository,
		metaService:       metaService,
		cfg:               cfg,
		registry:          registry,
	}, nil
}

// Registry devolve o registro de contas corrente. A resolução de status e a
// pipeline de listagem consultam este mapa por id.
func (s *Service) Registry() domain.AccountRegistry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	registry := make(domain.AccountRegistry, len(s.registry))
	for id, acc := range s.registry {
		registry[id] = acc
	}

	return registry
}

func (s *Service) ListAdAccounts() ([]*domain.AdAccountResponse, error) {
	accounts, err := s.accountRepository.ListAccounts()
	if err != nil {
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	// Transforma os accounts para o formato de resposta da API
	adAccountsResponse := make([]*domain.AdAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		deliveryStatus := status.ResolveAccount(account)
		adAccountsResponse = append(adAccountsResponse, &domain.AdAccountResponse{
			AdAccount:      account,
			DeliveryStatus: &deliveryStatus,
		})
	}

	return adAccountsResponse, nil
}

func (s *Service) GetAccount(accountID string) (*domain.AdAccountResponse, error) {
	if accountID == "" {
		return nil, ErrAccountIDRequired
	}

	account, err := s.accountRepository.GetAccountByID(accountID)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Erro ao buscar conta no banco de dados")
	}

	if account == nil {
		return nil, NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrAccountNotFound, accountID, "Conta não encontrada")
	}

	deliveryStatus := status.ResolveAccount(account)

	return &domain.AdAccountResponse{
		AdAccount:      account,
		DeliveryStatus: &deliveryStatus,
	}, nil
}

// SyncAccounts busca as contas na Graph API, persiste e substitui o
// registro em memória. amount_spent e spend_cap mudam a cada chamada, então
// toda conta é sempre atualizada.
func (s *Service) SyncAccounts(accountIDs []string) (*domain.SyncAccountsResponse, error) {
	response := &domain.SyncAccountsResponse{
		Quantity: 0,
		Message:  "Erro ao sincronizar contas",
		Error:    true,
	}

	syncID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Warn("Falha ao gerar identificador da sincronização")
	}
	logrus.Infof("Iniciando sincronização de contas [%s]", syncID)

	accounts, err := s.metaService.ListAdAccounts(accountIDs)
	if err != nil {
		logrus.Error("Error getting ad accounts from integrator meta:", err)
		return response, NewAccountError(ErrMetaIntegration, apiErrors.ErrExternalService, "Falha ao obter contas da API do Meta")
	}

	if err := s.accountRepository.SaveOrUpdate(accounts); err != nil {
		return response, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar contas")
	}

	registry := make(domain.AccountRegistry, len(accounts))
	for _, acc := range accounts {
		registry[acc.ID] = acc
	}

	s.mu.Lock()
	s.registry = registry
	s.mu.Unlock()

	quantity := len(accounts)

	logrus.Infof("%d accounts were successfully synced [%s]", quantity, syncID)

	response.Quantity = quantity
	response.Message = fmt.Sprintf("%d contas foram sincronizadas com sucesso", quantity)
	response.Error = false

	return response, nil
}

// CreateCampaign cria uma campanha pausada na conta informada. A campanha
// nova entra nas listagens na próxima carga de snapshot.
func (s *Service) CreateCampaign(accountID, name, objective string, dailyBudget *int64) (string, error) {
	if accountID == "" {
		return "", ErrAccountIDRequired
	}

	account, err := s.accountRepository.GetAccountByID(accountID)
	if err != nil {
		return "", NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Erro ao buscar conta no banco de dados")
	}

	if account == nil {
		return "", NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrAccountNotFound, accountID, "Conta não encontrada")
	}

	campaignID, err := s.metaService.CreateCampaign(accountID, name, objective, dailyBudget)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("Erro ao criar campanha na API do Meta")
		return "", NewAccountErrorWithID(ErrCreateCampaign, apiErrors.ErrExternalService, accountID, "Falha ao criar campanha na API do Meta")
	}

	return campaignID, nil
}

// UpdateSpendCap altera o limite de gastos na Graph API e reflete a mudança
// no registro local sem esperar a próxima sincronização.
func (s *Service) UpdateSpendCap(accountID string, spendCap *int64) error {
	if accountID == "" {
		return ErrAccountIDRequired
	}

	if spendCap != nil && *spendCap < 0 {
		return ErrInvalidSpendCap
	}

	account, err := s.accountRepository.GetAccountByID(accountID)
	if err != nil {
		return NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Erro ao buscar conta no banco de dados")
	}

	if account == nil {
		return NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrAccountNotFound, accountID, "Conta não encontrada")
	}

	if err := s.metaService.UpdateAccountSpendCap(accountID, spendCap); err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("Erro ao atualizar limite de gastos na API do Meta")
		return NewAccountErrorWithID(ErrUpdateAccount, apiErrors.ErrExternalService, accountID, "Falha ao atualizar limite de gastos na API do Meta")
	}

	account.SpendCap = spendCap
	if err := s.accountRepository.SaveOrUpdate([]*domain.AdAccount{account}); err != nil {
		return NewAccountErrorWithID(ErrUpdateAccount, apiErrors.ErrDatabaseOperation, accountID, "Falha ao persistir limite de gastos")
	}

	s.mu.Lock()
	if current, ok := s.registry[accountID]; ok {
		current.SpendCap = spendCap
	} else {
		s.registry[accountID] = account
	}
	s.mu.Unlock()

	return nil
}
