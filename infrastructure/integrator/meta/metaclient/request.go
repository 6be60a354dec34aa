package metaclient

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// doGet executa um GET autenticado na Graph API. Quando o token expira no
// meio da chamada, renova e repete a requisição uma única vez.
func (c *MetaClient) doGet(baseURL string, params url.Values) ([]byte, error) {
	// Garantir que o token seja válido antes de fazer a requisição
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params.Set("access_token", c.Cfg.Meta.AccessToken)
	fullURL := baseURL + "?" + params.Encode()

	body, err := c.execute(http.MethodGet, fullURL, nil)
	if errors.Is(err, errTokenRenewed) {
		params.Set("access_token", c.Cfg.Meta.AccessToken)
		return c.execute(http.MethodGet, baseURL+"?"+params.Encode(), nil)
	}

	return body, err
}

// doPost executa um POST autenticado com corpo form-encoded, com a mesma
// repetição única quando o token é renovado no caminho.
func (c *MetaClient) doPost(baseURL string, form url.Values) ([]byte, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	form.Set("access_token", c.Cfg.Meta.AccessToken)

	body, err := c.executeForm(baseURL, form)
	if errors.Is(err, errTokenRenewed) {
		form.Set("access_token", c.Cfg.Meta.AccessToken)
		return c.executeForm(baseURL, form)
	}

	return body, err
}

func (c *MetaClient) execute(method, fullURL string, reqBody []byte) ([]byte, error) {
	req, err := http.NewRequest(method, fullURL, bytes.NewReader(reqBody))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	return c.HandleResponse(resp)
}

func (c *MetaClient) executeForm(fullURL string, form url.Values) ([]byte, error) {
	resp, err := http.PostForm(fullURL, form)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	return c.HandleResponse(resp)
}
