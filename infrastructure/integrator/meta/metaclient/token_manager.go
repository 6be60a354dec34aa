package metaclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-manager-api/internal/config"
)

// TokenManager gerencia tokens de acesso da API do Meta
type TokenManager struct {
	cfg               *config.Config
	TokenRefreshMutex sync.Mutex
	stopRefresh       chan struct{}
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		cfg:         cfg,
		stopRefresh: make(chan struct{}),
	}
}

// StartAutoRefresh inicia uma goroutine que renova o token periodicamente,
// antes da janela de expiração de 24h dos tokens de longa duração.
func (tm *TokenManager) StartAutoRefresh() {
	refreshInterval := 23 * time.Hour
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica do token da Meta")
			if err := tm.RefreshToken(); err != nil {
				logrus.Errorf("Erro na renovação periódica do token: %v", err)

				// Se falhar, tenta novamente em um intervalo mais curto
				ticker.Reset(1 * time.Hour)
			} else {
				ticker.Reset(refreshInterval)
			}

		case <-tm.stopRefresh:
			logrus.Info("Renovação automática de token encerrada")
			return
		}
	}
}

// StopAutoRefresh encerra a goroutine de renovação automática
func (tm *TokenManager) StopAutoRefresh() {
	close(tm.stopRefresh)
}

type tokenExchangeResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// RefreshToken troca o token atual por um novo token de longa duração
func (tm *TokenManager) RefreshToken() error {
	tm.TokenRefreshMutex.Lock()
	defer tm.TokenRefreshMutex.Unlock()

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", tm.cfg.Meta.AppID)
	params.Add("client_secret", tm.cfg.Meta.AppSecret)
	params.Add("fb_exchange_token", tm.cfg.Meta.AccessToken)

	exchangeURL := fmt.Sprintf("%s/oauth/access_token?%s", tm.cfg.Meta.URL, params.Encode())

	resp, err := http.Get(exchangeURL)
	if err != nil {
		return fmt.Errorf("erro ao solicitar novo token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta da troca de token: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("troca de token falhou com status %s: %s", resp.Status, string(body))
	}

	var exchange tokenExchangeResponse
	if err := json.Unmarshal(body, &exchange); err != nil {
		return fmt.Errorf("erro ao decodificar resposta da troca de token: %w", err)
	}

	tm.cfg.Meta.AccessToken = exchange.AccessToken
	if exchange.ExpiresIn > 0 {
		tm.cfg.Meta.TokenExpiresAt = time.Now().Add(time.Duration(exchange.ExpiresIn) * time.Second)
	} else {
		// Tokens de longa duração valem ~60 dias quando a API não informa
		tm.cfg.Meta.TokenExpiresAt = time.Now().Add(60 * 24 * time.Hour)
	}

	logrus.WithField("expires_at", tm.cfg.Meta.TokenExpiresAt).Info("Token da Meta renovado com sucesso")
	return nil
}

// EnsureValidToken renova o token quando a expiração conhecida está próxima
func (tm *TokenManager) EnsureValidToken() error {
	if tm.cfg.Meta.AccessToken == "" {
		return fmt.Errorf("token de acesso da Meta não configurado")
	}

	expiresAt := tm.cfg.Meta.TokenExpiresAt
	if expiresAt.IsZero() {
		// Sem data conhecida: assume válido e deixa o HandleResponse
		// detectar expiração pela resposta da API
		return nil
	}

	if time.Until(expiresAt) < 24*time.Hour {
		logrus.Info("Token da Meta próximo de expirar, renovando")
		return tm.RefreshToken()
	}

	return nil
}

// HandleResponse lê o corpo e converte erros da API. Quando o erro é de
// token expirado, renova o token e devolve errTokenRenewed para o chamador
// repetir a requisição.
func (tm *TokenManager) HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta da API: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	var errorResponse metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResponse); err != nil {
		return nil, fmt.Errorf("erro da API Meta (status %s): %s", resp.Status, string(body))
	}

	if errorResponse.IsTokenExpired() {
		logrus.Warn("Token da Meta expirado detectado na resposta, renovando")
		if refreshErr := tm.RefreshToken(); refreshErr != nil {
			return nil, fmt.Errorf("erro ao renovar token expirado: %w", refreshErr)
		}
		return nil, errTokenRenewed
	}

	return nil, fmt.Errorf(
		"erro da API Meta: %s (code %d, subcode %d, fbtrace %s)",
		errorResponse.Error.Message,
		errorResponse.Error.Code,
		errorResponse.Error.ErrorSubcode,
		errorResponse.Error.FBTraceID,
	)
}
