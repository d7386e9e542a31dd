package ga4domain

// DateRange é o intervalo de datas de uma consulta runReport. Aceita datas
// absolutas (YYYY-MM-DD) ou tokens relativos da API (30daysAgo, today)
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Dimension identifica uma dimensão consultada (eventName, date)
type Dimension struct {
	Name string `json:"name"`
}

// Metric identifica uma métrica consultada (totalUsers, sessions, ...)
type Metric struct {
	Name string `json:"name"`
}

// RunReportRequest é o corpo da requisição POST properties/{id}:runReport
type RunReportRequest struct {
	DateRanges []DateRange `json:"dateRanges"`
	Dimensions []Dimension `json:"dimensions"`
	Metrics    []Metric    `json:"metrics"`
	Limit      string      `json:"limit,omitempty"`
}

// DimensionHeader descreve a posição de uma dimensão nas linhas da resposta
type DimensionHeader struct {
	Name string `json:"name"`
}

// MetricHeader descreve a posição e o tipo de uma métrica nas linhas da resposta
type MetricHeader struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// DimensionValue é o valor de uma dimensão em uma linha
type DimensionValue struct {
	Value string `json:"value"`
}

// MetricValue é o valor de uma métrica em uma linha. A API devolve todos os
// valores como string, mesmo os numéricos
type MetricValue struct {
	Value string `json:"value"`
}

// Row é uma linha do relatório: valores de dimensão e de métrica na ordem
// dos respectivos headers
type Row struct {
	DimensionValues []DimensionValue `json:"dimensionValues"`
	MetricValues    []MetricValue    `json:"metricValues"`
}

// RunReportResponse é a resposta da API de dados do GA4 para runReport
type RunReportResponse struct {
	DimensionHeaders []DimensionHeader `json:"dimensionHeaders"`
	MetricHeaders    []MetricHeader    `json:"metricHeaders"`
	Rows             []Row             `json:"rows"`
	RowCount         int               `json:"rowCount"`
	Kind             string            `json:"kind"`
}

// DimensionIndex retorna a posição de uma dimensão nas linhas da resposta
func (r *RunReportResponse) DimensionIndex(name string) int {
	for i, header := range r.DimensionHeaders {
		if header.Name == name {
			return i
		}
	}
	return -1
}
