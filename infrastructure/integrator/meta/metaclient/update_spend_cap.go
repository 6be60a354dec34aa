package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
)

// UpdateSpendCap altera ou remove o limite de gastos de uma conta. Passar
// nil remove o limite (a API espera o valor 0 para resetar).
func (c *MetaClient) UpdateSpendCap(accountID string, spendCap *int64) error {
	baseURL := fmt.Sprintf("%s/act_%s", c.Cfg.Meta.URL, accountID)

	form := url.Values{}
	if spendCap == nil {
		form.Add("spend_cap", "0")
	} else {
		form.Add("spend_cap", strconv.FormatInt(*spendCap, 10))
	}

	body, err := c.doPost(baseURL, form)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("Erro ao atualizar limite de gastos da conta")
		return err
	}

	var response mutationResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return err
	}

	if !response.Success {
		return fmt.Errorf("a API Meta não confirmou a mudança de limite da conta %s", accountID)
	}

	return nil
}
