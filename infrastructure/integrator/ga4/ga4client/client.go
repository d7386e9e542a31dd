package ga4client

import (
	"context"
	"net/http"

	ga4domain "github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
)

type Client interface {
	RunReport(ctx context.Context, propertyID string, request *ga4domain.RunReportRequest) (*ga4domain.RunReportResponse, error)
	RefreshToken() error
	EnsureValidToken() error
	HandleResponse(resp *http.Response) ([]byte, error)
}

type GA4Client struct {
	Cfg          *config.Config
	TokenManager *TokenManager
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	client := &GA4Client{
		Cfg:          cfg,
		TokenManager: tokenManager,
	}
	return client
}

// RefreshToken obtém um novo token de acesso da service account
func (c *GA4Client) RefreshToken() error {
	return c.TokenManager.RefreshToken()
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (c *GA4Client) EnsureValidToken() error {
	return c.TokenManager.EnsureValidToken()
}

// HandleResponse manipula a resposta HTTP e verifica erros de token expirado
func (c *GA4Client) HandleResponse(resp *http.Response) ([]byte, error) {
	return c.TokenManager.HandleResponse(resp)
}
