package analyzing

import "errors"

// Erros das execuções de estudo
var (
	// ErrNoAnalyticsData indica que o GA4 não retornou nenhuma linha para o
	// período solicitado
	ErrNoAnalyticsData = errors.New("nenhuma métrica retornada para o período solicitado")

	// ErrInvalidAlpha indica um nível de significância fora de (0,1)
	ErrInvalidAlpha = errors.New("alpha deve estar entre 0 e 1 (exclusivo)")
)
