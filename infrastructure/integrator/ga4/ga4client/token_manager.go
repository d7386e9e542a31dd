package ga4client

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	ga4domain "github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
)

// refreshInterval renova o token de acesso antes da expiração de 1 hora
const refreshInterval = 50 * time.Minute

// retryInterval é o intervalo de nova tentativa quando a renovação falha
const retryInterval = 5 * time.Minute

// TokenManager gerencia o token de acesso da API de dados do GA4
type TokenManager struct {
	cfg               *config.Config
	creds             *ServiceAccountCredentials
	accessToken       string
	expiresAt         time.Time
	TokenRefreshMutex sync.Mutex
	stopRefresh       chan struct{}
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		cfg:               cfg,
		TokenRefreshMutex: sync.Mutex{},
		stopRefresh:       make(chan struct{}),
	}
}

// InitToken carrega as credenciais da service account e obtém o primeiro
// token de acesso
func (tm *TokenManager) InitToken() {
	logrus.Info("Inicializando token de acesso do GA4...")

	if err := tm.InitiateToken(); err != nil {
		logrus.Errorf("Falha ao inicializar token de acesso do GA4: %v", err)
		logrus.Warn("A API do GA4 pode ter funcionalidade limitada até que as credenciais sejam configuradas corretamente")
		return
	}

	logrus.Info("Token de acesso do GA4 inicializado com sucesso")
}

// StartAutoRefresh inicia uma goroutine que renova o token periodicamente
func (tm *TokenManager) StartAutoRefresh() {
	if err := tm.InitiateToken(); err != nil {
		logrus.Errorf("Erro ao iniciar o token: %v", err)
	}

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica do token do GA4")
			if err := tm.RefreshToken(); err != nil {
				logrus.Errorf("Erro na renovação periódica do token: %v", err)

				// Se falhar, tente novamente em um intervalo mais curto
				ticker.Reset(retryInterval)
			} else {
				logrus.Info("Renovação periódica do token concluída com sucesso")

				// Restaurar para o intervalo normal
				ticker.Reset(refreshInterval)
			}
		case <-tm.stopRefresh:
			logrus.Info("Encerrando goroutine de renovação periódica do token")
			return
		}
	}
}

// StopAutoRefresh para a goroutine de renovação automática
func (tm *TokenManager) StopAutoRefresh() {
	close(tm.stopRefresh)
}

// InitiateToken carrega as credenciais (se necessário) e obtém um token de
// acesso inicial
func (tm *TokenManager) InitiateToken() error {
	tm.TokenRefreshMutex.Lock()
	defer tm.TokenRefreshMutex.Unlock()

	// Verificar novamente se o token já foi inicializado por outra goroutine
	if tm.accessToken != "" && time.Until(tm.expiresAt) > retryInterval {
		return nil
	}

	if tm.creds == nil {
		creds, err := LoadCredentials(tm.cfg)
		if err != nil {
			return fmt.Errorf("erro ao carregar credenciais da service account: %w", err)
		}
		tm.creds = creds
	}

	return tm.exchangeAndStore()
}

// RefreshToken obtém um novo token de acesso
func (tm *TokenManager) RefreshToken() error {
	return tm.refreshTokenInternal()
}

// refreshTokenInternal é a implementação interna do refresh de token
func (tm *TokenManager) refreshTokenInternal() error {
	tm.TokenRefreshMutex.Lock()
	defer tm.TokenRefreshMutex.Unlock()

	if tm.creds == nil {
		creds, err := LoadCredentials(tm.cfg)
		if err != nil {
			return fmt.Errorf("erro ao carregar credenciais da service account: %w", err)
		}
		tm.creds = creds
	}

	logrus.Info("Iniciando renovação do token...")

	return tm.exchangeAndStore()
}

// exchangeAndStore troca uma nova assertion por um token e guarda o
// resultado. Deve ser chamado com o mutex adquirido
func (tm *TokenManager) exchangeAndStore() error {
	tokenResponse, err := ExchangeToken(tm.creds)
	if err != nil {
		return fmt.Errorf("erro ao obter token de acesso: %w", err)
	}

	tm.accessToken = tokenResponse.AccessToken
	tm.expiresAt = CalculateTokenExpiration(tokenResponse.ExpiresIn)

	logrus.Infof("Token de acesso atualizado com sucesso. Expira em: %s",
		tm.expiresAt.Format(time.RFC3339))

	return nil
}

// EnsureValidToken verifica se o token atual é válido e o renova se necessário
func (tm *TokenManager) EnsureValidToken() error {
	tm.TokenRefreshMutex.Lock()
	initialized := tm.accessToken != ""
	expiresSoon := time.Until(tm.expiresAt) < retryInterval
	tm.TokenRefreshMutex.Unlock()

	if !initialized {
		logrus.Info("Token não inicializado. Inicializando...")
		return tm.InitiateToken()
	}

	if expiresSoon {
		logrus.Info("Token próximo da expiração. Renovando proativamente...")
		return tm.RefreshToken()
	}

	return nil
}

// AccessToken retorna o token de acesso atual
func (tm *TokenManager) AccessToken() string {
	tm.TokenRefreshMutex.Lock()
	defer tm.TokenRefreshMutex.Unlock()
	return tm.accessToken
}

// ParseErrorResponse tenta parsear um erro da API do GA4
func ParseErrorResponse(body []byte) (*ga4domain.ErrorResponse, error) {
	var errorResp ga4domain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}

// HandleResponse manipula a resposta HTTP e verifica erros de token expirado
func (tm *TokenManager) HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	// Se a resposta for bem-sucedida, retorna o corpo
	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	// Processa erro na resposta da API
	return tm.handleErrorResponse(resp.StatusCode, body)
}

// handleErrorResponse processa erros nas respostas da API
func (tm *TokenManager) handleErrorResponse(statusCode int, body []byte) ([]byte, error) {
	errorResp, parseErr := ParseErrorResponse(body)

	// Verificar se é erro de token expirado pela estrutura JSON
	if parseErr == nil && errorResp.IsTokenExpired() {
		return tm.handleExpiredToken(errorResp)
	}

	return nil, fmt.Errorf("erro na resposta da API. Status: %d, Corpo: %s", statusCode, string(body))
}

// handleExpiredToken trata um token expirado detectado via estrutura de erro
func (tm *TokenManager) handleExpiredToken(errorResp *ga4domain.ErrorResponse) ([]byte, error) {
	logrus.Warnf("Token expirado detectado pela API do GA4. Código: %d, Status: %s",
		errorResp.Error.Code, errorResp.Error.Status)

	// Tenta renovar o token
	if refreshErr := tm.RefreshToken(); refreshErr != nil {
		return nil, fmt.Errorf("erro ao renovar token expirado: %w", refreshErr)
	}

	return nil, fmt.Errorf("token expirado e renovado, por favor tente novamente")
}
