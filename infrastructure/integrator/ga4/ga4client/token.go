package ga4client

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
)

const (
	// AnalyticsReadScope é o escopo OAuth2 de leitura da API de dados do GA4
	AnalyticsReadScope = "https://www.googleapis.com/auth/analytics.readonly"

	// DefaultTokenURI é o endpoint de troca de token do Google quando o
	// arquivo de credenciais não informa outro
	DefaultTokenURI = "https://oauth2.googleapis.com/token"

	jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"
)

// ServiceAccountCredentials representa o arquivo de credenciais de uma
// service account do Google
type ServiceAccountCredentials struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`
}

// TokenResponse representa a resposta do Google ao trocar uma assertion por
// um token de acesso
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// LoadCredentials carrega as credenciais da service account. Em ambientes
// hospedados o conteúdo chega como secret file já lido para a configuração;
// localmente é lido do caminho em GOOGLE_APPLICATION_CREDENTIALS
func LoadCredentials(cfg *config.Config) (*ServiceAccountCredentials, error) {
	content := cfg.GA4.CredentialsJSON

	if content == "" {
		if cfg.GA4.CredentialsFile == "" {
			return nil, fmt.Errorf("credenciais do GA4 não configuradas: defina GOOGLE_APPLICATION_CREDENTIALS")
		}

		data, err := os.ReadFile(cfg.GA4.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler arquivo de credenciais: %w", err)
		}
		content = string(data)
	}

	var creds ServiceAccountCredentials
	if err := json.Unmarshal([]byte(content), &creds); err != nil {
		return nil, fmt.Errorf("erro ao decodificar credenciais: %w", err)
	}

	if creds.ClientEmail == "" || creds.PrivateKey == "" {
		return nil, fmt.Errorf("credenciais incompletas: client_email e private_key são obrigatórios")
	}

	if creds.TokenURI == "" {
		creds.TokenURI = DefaultTokenURI
	}

	return &creds, nil
}

// BuildAssertion assina a assertion JWT (RS256) usada para obter um token de
// acesso da service account
func BuildAssertion(creds *ServiceAccountCredentials, now time.Time) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(creds.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("erro ao interpretar chave privada da service account: %w", err)
	}

	claims := jwt.MapClaims{
		"iss":   creds.ClientEmail,
		"scope": AnalyticsReadScope,
		"aud":   creds.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(1 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	assertion, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("erro ao assinar assertion JWT: %w", err)
	}

	return assertion, nil
}

// ExchangeToken troca a assertion assinada por um token de acesso no
// endpoint de token do Google
func ExchangeToken(creds *ServiceAccountCredentials) (*TokenResponse, error) {
	assertion, err := BuildAssertion(creds, time.Now())
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("grant_type", jwtBearerGrantType)
	params.Add("assertion", assertion)

	// Usar um cliente HTTP com timeout adequado
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Post(creds.TokenURI, "application/x-www-form-urlencoded", strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("erro ao obter token de acesso: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logrus.Errorf("Erro obtendo token de acesso do GA4. Status: %d, Resposta: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("erro ao obter token de acesso. Status: %d, Resposta: %s", resp.StatusCode, body)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	logrus.Infof("Token de acesso do GA4 obtido com sucesso. Expira em %s.", FormatDuration(tokenResp.ExpiresIn))

	return &tokenResp, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	hours := duration / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	if hours == 0 {
		return fmt.Sprintf("%d minutos", minutes)
	}

	return fmt.Sprintf("%d horas e %d minutos", hours, minutes)
}

// CalculateTokenExpiration calcula a data de expiração do token com base no
// tempo de expiração em segundos
func CalculateTokenExpiration(expiresIn int64) time.Time {
	// Subtraímos 10 minutos para renovar antes da expiração real
	buffer := int64(10 * 60)
	safeExpiresIn := expiresIn - buffer

	if safeExpiresIn < 0 {
		safeExpiresIn = expiresIn / 2 // Se for muito curto, usamos metade do tempo
	}

	return time.Now().Add(time.Duration(safeExpiresIn) * time.Second)
}
