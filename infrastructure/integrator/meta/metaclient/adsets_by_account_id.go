package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
)

type ResponseAdSets struct {
	Data   []metadomain.AdSet `json:"data"`
	Paging metadomain.Paging  `json:"paging"`
}

// GetAdSetsByAccountID lista os conjuntos de anúncios de uma conta com a
// segmentação e os anúncios aninhados.
func (c *MetaClient) GetAdSetsByAccountID(accountID string) ([]metadomain.AdSet, error) {
	baseURL := fmt.Sprintf("%s/act_%s/adsets", c.Cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("fields", "id,name,status,effective_status,configured_status,campaign_id,daily_budget,lifetime_budget,targeting,ads.limit(100){id,effective_status}")
	params.Add("limit", "200")

	adSets := make([]metadomain.AdSet, 0)

	for {
		body, err := c.doGet(baseURL, params)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("Erro ao buscar conjuntos de anúncios da conta")
			return nil, err
		}

		var response ResponseAdSets
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON")
			return nil, err
		}

		adSets = append(adSets, response.Data...)

		if response.Paging.Cursors.After == "" || len(response.Data) == 0 || response.Paging.Next == "" {
			break
		}
		params.Set("after", response.Paging.Cursors.After)
	}

	return adSets, nil
}
