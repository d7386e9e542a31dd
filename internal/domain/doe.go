package domain

// DOEFactor é um fator controlável do experimento fatorial, com a descrição
// do que cada nível representa no site analisado
type DOEFactor struct {
	Name      string `json:"name"`
	LowLevel  string `json:"low_level"`
	HighLevel string `json:"high_level"`
}

// DefaultDOEFactors retorna os três fatores padrão do experimento 2^3 sobre
// o engajamento do site
func DefaultDOEFactors() []DOEFactor {
	return []DOEFactor{
		{Name: "contentQuality", LowLevel: "conteúdo atual", HighLevel: "conteúdo revisado"},
		{Name: "pageLoadTime", LowLevel: "sem otimização", HighLevel: "páginas otimizadas"},
		{Name: "channelMix", LowLevel: "mix atual", HighLevel: "mix com mais orgânico"},
	}
}

// DOEObservation é uma corrida do experimento: os níveis codificados (-1/+1)
// de cada fator e a resposta medida
type DOEObservation struct {
	RunOrder int       `json:"run_order"`
	Levels   []float64 `json:"levels"`
	Response float64   `json:"response"`
}
