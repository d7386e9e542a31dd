package ga4domain

// ErrorResponse representa o envelope de erro padrão das APIs do Google
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API de dados do GA4
type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// IsTokenExpired verifica se o erro é de credencial expirada ou inválida
func (e *ErrorResponse) IsTokenExpired() bool {
	// O status UNAUTHENTICATED (código 401) indica token de acesso expirado
	// ou inválido nas respostas das APIs do Google
	return e.Error.Code == 401 || e.Error.Status == "UNAUTHENTICATED"
}
