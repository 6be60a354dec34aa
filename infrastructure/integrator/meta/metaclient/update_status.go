package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
)

type mutationResponse struct {
	Success bool `json:"success"`
}

// UpdateStatus muda o status configurado de uma campanha, conjunto ou
// anúncio. O endpoint é o mesmo nos três níveis: POST no id da entidade.
func (c *MetaClient) UpdateStatus(entityID string, status string) error {
	baseURL := fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, entityID)

	form := url.Values{}
	form.Add("status", status)

	body, err := c.doPost(baseURL, form)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"entity_id": entityID,
			"status":    status,
			"error":     err.Error(),
		}).Error("Erro ao atualizar status da entidade")
		return err
	}

	var response mutationResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return err
	}

	if !response.Success {
		return fmt.Errorf("a API Meta não confirmou a mudança de status da entidade %s", entityID)
	}

	return nil
}
