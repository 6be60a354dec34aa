package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
)

const adAccountFields = "id,account_id,name,account_status,disable_reason,spend_cap,amount_spent,currency"

// GetAdAccounts busca os campos de registro de cada conta de anúncios. A
// Graph API não tem listagem em lote por ids arbitrários neste nível, então
// cada conta é uma chamada.
func (c *MetaClient) GetAdAccounts(accountIDs []string) ([]metadomain.AdAccount, error) {
	accounts := make([]metadomain.AdAccount, 0, len(accountIDs))

	for _, accountID := range accountIDs {
		baseURL := fmt.Sprintf("%s/act_%s", c.Cfg.Meta.URL, accountID)

		params := url.Values{}
		params.Add("fields", adAccountFields)

		body, err := c.doGet(baseURL, params)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("Erro ao buscar conta de anúncios")
			return nil, err
		}

		var account metadomain.AdAccount
		if err := json.Unmarshal(body, &account); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON")
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, nil
}
