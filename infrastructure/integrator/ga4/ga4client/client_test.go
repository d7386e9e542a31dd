package ga4client

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ga4domain "github.com/vfg2006/sixsigma-analytics-api/infrastructure/integrator/ga4/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
)

// testRSAKeyPEM gera um par de chaves descartável para assinar assertions nos
// testes
func testRSAKeyPEM(t *testing.T) (string, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	return string(pem.EncodeToMemory(block)), key
}

func testCredentials(t *testing.T, tokenURI string) (*ServiceAccountCredentials, *rsa.PrivateKey) {
	t.Helper()

	pemKey, key := testRSAKeyPEM(t)
	return &ServiceAccountCredentials{
		Type:        "service_account",
		ProjectID:   "sixsigma-analytics",
		ClientEmail: "analytics-reader@sixsigma-analytics.iam.gserviceaccount.com",
		PrivateKey:  pemKey,
		TokenURI:    tokenURI,
	}, key
}

func TestLoadCredentials(t *testing.T) {
	t.Run("Deve carregar credenciais do conteúdo embutido", func(t *testing.T) {
		creds, _ := testCredentials(t, "https://oauth2.example.com/token")
		payload, err := json.Marshal(creds)
		require.NoError(t, err)

		cfg := &config.Config{GA4: config.GA4{CredentialsJSON: string(payload)}}

		loaded, err := LoadCredentials(cfg)
		require.NoError(t, err)
		assert.Equal(t, creds.ClientEmail, loaded.ClientEmail)
		assert.Equal(t, creds.PrivateKey, loaded.PrivateKey)
		assert.Equal(t, "https://oauth2.example.com/token", loaded.TokenURI)
	})

	t.Run("Deve aplicar o endpoint de token padrão quando ausente", func(t *testing.T) {
		creds, _ := testCredentials(t, "")
		payload, err := json.Marshal(creds)
		require.NoError(t, err)

		cfg := &config.Config{GA4: config.GA4{CredentialsJSON: string(payload)}}

		loaded, err := LoadCredentials(cfg)
		require.NoError(t, err)
		assert.Equal(t, DefaultTokenURI, loaded.TokenURI)
	})

	t.Run("Deve falhar quando nenhuma origem está configurada", func(t *testing.T) {
		_, err := LoadCredentials(&config.Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "credenciais do GA4 não configuradas")
	})

	t.Run("Deve falhar quando faltam campos obrigatórios", func(t *testing.T) {
		cfg := &config.Config{GA4: config.GA4{
			CredentialsJSON: `{"type":"service_account","client_email":"reader@example.com"}`,
		}}

		_, err := LoadCredentials(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "credenciais incompletas")
	})
}

func TestBuildAssertion(t *testing.T) {
	t.Run("Deve assinar uma assertion RS256 com as claims da service account", func(t *testing.T) {
		creds, key := testCredentials(t, "https://oauth2.example.com/token")

		assertion, err := BuildAssertion(creds, time.Now())
		require.NoError(t, err)

		parsed, err := jwt.Parse(assertion, func(token *jwt.Token) (interface{}, error) {
			return &key.PublicKey, nil
		}, jwt.WithValidMethods([]string{"RS256"}))
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, creds.ClientEmail, claims["iss"])
		assert.Equal(t, AnalyticsReadScope, claims["scope"])
		assert.Equal(t, creds.TokenURI, claims["aud"])
	})

	t.Run("Deve falhar com chave privada inválida", func(t *testing.T) {
		creds, _ := testCredentials(t, "https://oauth2.example.com/token")
		creds.PrivateKey = "not a pem key"

		_, err := BuildAssertion(creds, time.Now())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "erro ao interpretar chave privada")
	})
}

func TestExchangeToken(t *testing.T) {
	t.Run("Deve trocar a assertion por um token de acesso", func(t *testing.T) {
		var grantType, assertion string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = r.ParseForm()
			grantType = r.FormValue("grant_type")
			assertion = r.FormValue("assertion")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"novo-token","token_type":"Bearer","expires_in":3600}`))
		}))
		defer server.Close()

		creds, _ := testCredentials(t, server.URL)

		token, err := ExchangeToken(creds)
		require.NoError(t, err)
		assert.Equal(t, "novo-token", token.AccessToken)
		assert.Equal(t, int64(3600), token.ExpiresIn)

		assert.Equal(t, jwtBearerGrantType, grantType)
		assert.NotEmpty(t, assertion)
	})

	t.Run("Deve falhar quando o endpoint de token responde com erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer server.Close()

		creds, _ := testCredentials(t, server.URL)

		_, err := ExchangeToken(creds)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Status: 401")
	})

	t.Run("Deve falhar quando o token retornado é vazio", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"","token_type":"Bearer","expires_in":3600}`))
		}))
		defer server.Close()

		creds, _ := testCredentials(t, server.URL)

		_, err := ExchangeToken(creds)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token retornado pela API é vazio")
	})
}

func TestCalculateTokenExpiration(t *testing.T) {
	t.Run("Deve antecipar a expiração em dez minutos", func(t *testing.T) {
		expiresAt := CalculateTokenExpiration(3600)
		assert.InDelta(t, 3000, time.Until(expiresAt).Seconds(), 5)
	})

	t.Run("Deve usar metade do tempo quando o token é muito curto", func(t *testing.T) {
		expiresAt := CalculateTokenExpiration(300)
		assert.InDelta(t, 150, time.Until(expiresAt).Seconds(), 5)
	})
}

func validRunReportBody() string {
	return `{
		"dimensionHeaders":[{"name":"eventName"}],
		"metricHeaders":[{"name":"sessions","type":"TYPE_INTEGER"}],
		"rows":[{"dimensionValues":[{"value":"page_view"}],"metricValues":[{"value":"42"}]}],
		"rowCount":1
	}`
}

func testRunReportRequest() *ga4domain.RunReportRequest {
	return &ga4domain.RunReportRequest{
		DateRanges: []ga4domain.DateRange{{StartDate: "30daysAgo", EndDate: "today"}},
		Dimensions: []ga4domain.Dimension{{Name: "eventName"}},
		Metrics:    []ga4domain.Metric{{Name: "sessions"}},
		Limit:      "100000",
	}
}

// newTestClient monta um cliente com token válido apontando para o servidor de
// teste
func newTestClient(serverURL string) (Client, *TokenManager) {
	cfg := &config.Config{GA4: config.GA4{
		BaseURL: serverURL,
		Version: "v1beta",
	}}

	tm := NewTokenManager(cfg)
	tm.accessToken = "test-token"
	tm.expiresAt = time.Now().Add(time.Hour)

	return NewClient(cfg, tm), tm
}

func TestGA4Client_RunReport(t *testing.T) {
	t.Run("Deve enviar a consulta com o caminho, cabeçalhos e corpo corretos", func(t *testing.T) {
		var gotPath, gotMethod, gotAuthorization, gotContentType string
		var received ga4domain.RunReportRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			gotAuthorization = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			_ = json.NewDecoder(r.Body).Decode(&received)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(validRunReportBody()))
		}))
		defer server.Close()

		client, _ := newTestClient(server.URL)

		response, err := client.RunReport(context.Background(), "123456", testRunReportRequest())
		require.NoError(t, err)

		assert.Equal(t, "/v1beta/properties/123456:runReport", gotPath)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "Bearer test-token", gotAuthorization)
		assert.Equal(t, "application/json", gotContentType)

		require.Len(t, received.DateRanges, 1)
		assert.Equal(t, "30daysAgo", received.DateRanges[0].StartDate)
		require.Len(t, received.Dimensions, 1)
		assert.Equal(t, "eventName", received.Dimensions[0].Name)
		assert.Equal(t, "100000", received.Limit)

		require.Len(t, response.Rows, 1)
		assert.Equal(t, "page_view", response.Rows[0].DimensionValues[0].Value)
	})

	t.Run("Deve propagar o erro da API com o status e o corpo", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"code":500,"message":"backend error","status":"INTERNAL"}}`))
		}))
		defer server.Close()

		client, _ := newTestClient(server.URL)

		_, err := client.RunReport(context.Background(), "123456", testRunReportRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "erro na resposta da API. Status: 500")
	})

	t.Run("Deve falhar quando a resposta não tem linhas", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"rows":[],"rowCount":0}`))
		}))
		defer server.Close()

		client, _ := newTestClient(server.URL)

		_, err := client.RunReport(context.Background(), "123456", testRunReportRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no data found")
	})

	t.Run("Deve renovar o token expirado e repetir a consulta", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"renewed-token","token_type":"Bearer","expires_in":3600}`))
		}))
		defer tokenServer.Close()

		var calls int
		var secondAuthorization string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"code":401,"message":"Request had invalid authentication credentials.","status":"UNAUTHENTICATED"}}`))
				return
			}

			secondAuthorization = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(validRunReportBody()))
		}))
		defer server.Close()

		client, tm := newTestClient(server.URL)

		// Credenciais já carregadas: a renovação vai direto ao endpoint de token
		creds, _ := testCredentials(t, tokenServer.URL)
		tm.creds = creds

		response, err := client.RunReport(context.Background(), "123456", testRunReportRequest())
		require.NoError(t, err)
		require.Len(t, response.Rows, 1)

		assert.Equal(t, 2, calls)
		assert.Equal(t, "renewed-token", tm.AccessToken())
		assert.Equal(t, "Bearer renewed-token", secondAuthorization)
	})
}
