package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
)

// CreateCampaignRequest são os campos mínimos que o assistente de criação
// envia para a Graph API. A campanha nasce pausada; a ativação é um toggle
// separado depois da revisão.
type CreateCampaignRequest struct {
	Name        string
	Objective   string
	DailyBudget *int64
	SpendCap    *int64
}

type createCampaignResponse struct {
	ID string `json:"id"`
}

// CreateCampaign cria uma campanha na conta e devolve o id gerado.
func (c *MetaClient) CreateCampaign(accountID string, req *CreateCampaignRequest) (string, error) {
	baseURL := fmt.Sprintf("%s/act_%s/campaigns", c.Cfg.Meta.URL, accountID)

	form := url.Values{}
	form.Add("name", req.Name)
	form.Add("objective", req.Objective)
	form.Add("status", "PAUSED")
	form.Add("special_ad_categories", "[]")

	if req.DailyBudget != nil {
		form.Add("daily_budget", strconv.FormatInt(*req.DailyBudget, 10))
	}
	if req.SpendCap != nil {
		form.Add("spend_cap", strconv.FormatInt(*req.SpendCap, 10))
	}

	body, err := c.doPost(baseURL, form)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"name":       req.Name,
			"error":      err.Error(),
		}).Error("Erro ao criar campanha")
		return "", err
	}

	var response createCampaignResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return "", err
	}

	if response.ID == "" {
		return "", fmt.Errorf("a API Meta não devolveu o id da campanha criada")
	}

	return response.ID, nil
}
