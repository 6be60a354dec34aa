package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

type ResponseInsights struct {
	Data   []metadomain.Insight `json:"data"`
	Paging metadomain.Paging    `json:"paging"`
}

var insightLevels = map[domain.EntityType]string{
	domain.EntityTypeAccount:  "account",
	domain.EntityTypeCampaign: "campaign",
	domain.EntityTypeAdSet:    "adset",
	domain.EntityTypeAd:       "ad",
}

// GetInsights busca as métricas de uma conta no nível pedido, uma linha por
// entidade do nível dentro do período.
func (c *MetaClient) GetInsights(level domain.EntityType, accountID string, filters *domain.SnapshotFilters) ([]metadomain.Insight, error) {
	apiLevel, ok := insightLevels[level]
	if !ok {
		return nil, fmt.Errorf("nível de insights inválido: %s", level)
	}

	baseURL := fmt.Sprintf("%s/act_%s/insights", c.Cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("fields", "account_id,campaign_id,adset_id,ad_id,objective,spend,impressions,clicks,reach,frequency,ctr,cpm,actions,cost_per_action_type")
	params.Add("level", apiLevel)
	params.Add("limit", "500")

	if filters != nil && filters.StartDate != nil && filters.EndDate != nil {
		timeRange := fmt.Sprintf(
			"{\"since\":\"%s\",\"until\":\"%s\"}",
			filters.StartDate.Format(time.DateOnly),
			filters.EndDate.Format(time.DateOnly),
		)
		params.Add("time_range", timeRange)
	}

	insights := make([]metadomain.Insight, 0)

	for {
		body, err := c.doGet(baseURL, params)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"level":      apiLevel,
				"error":      err.Error(),
			}).Error("Erro ao buscar insights da conta")
			return nil, err
		}

		var response ResponseInsights
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON")
			return nil, err
		}

		insights = append(insights, response.Data...)

		if response.Paging.Cursors.After == "" || len(response.Data) == 0 || response.Paging.Next == "" {
			break
		}
		params.Set("after", response.Paging.Cursors.After)
	}

	return insights, nil
}
