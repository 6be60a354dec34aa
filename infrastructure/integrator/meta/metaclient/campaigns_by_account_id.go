package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
)

type ResponseCampaigns struct {
	Data   []metadomain.Campaign `json:"data"`
	Paging metadomain.Paging     `json:"paging"`
}

// GetCampaignsByAccountID lista as campanhas de uma conta com os conjuntos
// e anúncios aninhados que o rollup de status consome.
func (c *MetaClient) GetCampaignsByAccountID(accountID string) ([]metadomain.Campaign, error) {
	baseURL := fmt.Sprintf("%s/act_%s/campaigns", c.Cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("fields", "id,name,status,effective_status,configured_status,objective,spend_cap,amount_spent,adsets.limit(100){id,effective_status,ads.limit(100){id,effective_status}}")
	params.Add("limit", "200")

	campaigns := make([]metadomain.Campaign, 0)

	// Percorre todas as páginas até o cursor acabar.
	for {
		body, err := c.doGet(baseURL, params)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("Erro ao buscar campanhas da conta")
			return nil, err
		}

		var response ResponseCampaigns
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON")
			return nil, err
		}

		campaigns = append(campaigns, response.Data...)

		if response.Paging.Cursors.After == "" || len(response.Data) == 0 || response.Paging.Next == "" {
			break
		}
		params.Set("after", response.Paging.Cursors.After)
	}

	return campaigns, nil
}
