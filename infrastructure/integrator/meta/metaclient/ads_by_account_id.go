package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
)

type ResponseAds struct {
	Data   []metadomain.Ad   `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

// GetAdsByAccountID lista os anúncios de uma conta com os campos criativos
// exibidos na tabela.
func (c *MetaClient) GetAdsByAccountID(accountID string) ([]metadomain.Ad, error) {
	baseURL := fmt.Sprintf("%s/act_%s/ads", c.Cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("fields", "id,name,status,effective_status,configured_status,adset_id,campaign_id,creative{title,body,image_url,object_story_id}")
	params.Add("limit", "200")

	ads := make([]metadomain.Ad, 0)

	for {
		body, err := c.doGet(baseURL, params)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("Erro ao buscar anúncios da conta")
			return nil, err
		}

		var response ResponseAds
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON")
			return nil, err
		}

		ads = append(ads, response.Data...)

		if response.Paging.Cursors.After == "" || len(response.Data) == 0 || response.Paging.Next == "" {
			break
		}
		params.Set("after", response.Paging.Cursors.After)
	}

	return ads, nil
}
