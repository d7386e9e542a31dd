package ga4client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	ga4domain "github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RunReport executa uma consulta runReport na API de dados do GA4 para a
// propriedade informada
func (c *GA4Client) RunReport(ctx context.Context, propertyID string, request *ga4domain.RunReportRequest) (*ga4domain.RunReportResponse, error) {
	// Garantir que o token seja válido antes de fazer a requisição
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	url := fmt.Sprintf("%s/%s/properties/%s:runReport", c.Cfg.GA4.BaseURL, c.Cfg.GA4.Version, propertyID)

	payload, err := json.Marshal(request)
	if err != nil {
		logrus.WithError(err).Error("Erro ao codificar o corpo da requisição")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.TokenManager.AccessToken())
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	// Usar o manipulador de resposta que verifica tokens expirados
	body, err := c.HandleResponse(resp)
	if err != nil {
		// Se o erro indica que o token foi renovado, tentar novamente
		if err.Error() == "token expirado e renovado, por favor tente novamente" {
			return c.RunReport(ctx, propertyID, request)
		}
		return nil, err
	}

	var response ga4domain.RunReportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	if len(response.Rows) == 0 {
		return nil, errors.New("no data found")
	}

	return &response, nil
}
