package domain

// Métricas do GA4 consultadas pelos estudos Six Sigma
const (
	MetricTotalUsers             = "totalUsers"
	MetricSessions               = "sessions"
	MetricEngagedSessions        = "engagedSessions"
	MetricEventCount             = "eventCount"
	MetricScreenPageViews        = "screenPageViews"
	MetricBounceRate             = "bounceRate"
	MetricUserEngagementDuration = "userEngagementDuration"
	MetricAverageSessionDuration = "averageSessionDuration"
)

// Dimensões das consultas ao GA4: eventName em todos os estudos, date nas
// consultas diárias usadas pelos snapshots
const (
	DimensionEventName = "eventName"
	DimensionDate      = "date"
)

// MetricSpecification define os limites de especificação e o alvo de uma
// métrica para o estudo de capacidade do processo
type MetricSpecification struct {
	Metric string  `json:"metric"`
	USL    float64 `json:"usl"`    // Limite superior de especificação
	LSL    float64 `json:"lsl"`    // Limite inferior de especificação
	Target float64 `json:"target"` // Valor alvo
}

// DefaultMetrics retorna as métricas consultadas no GA4, na ordem em que
// aparecem nos relatórios
func DefaultMetrics() []string {
	return []string{
		MetricTotalUsers,
		MetricSessions,
		MetricEngagedSessions,
		MetricEventCount,
		MetricScreenPageViews,
		MetricBounceRate,
		MetricUserEngagementDuration,
		MetricAverageSessionDuration,
	}
}

// MetricSpecifications retorna os limites de especificação de cada métrica
func MetricSpecifications() map[string]MetricSpecification {
	return map[string]MetricSpecification{
		MetricTotalUsers:             {Metric: MetricTotalUsers, USL: 1000, LSL: 100, Target: 500},
		MetricSessions:               {Metric: MetricSessions, USL: 1500, LSL: 200, Target: 800},
		MetricEngagedSessions:        {Metric: MetricEngagedSessions, USL: 1000, LSL: 150, Target: 600},
		MetricEventCount:             {Metric: MetricEventCount, USL: 5000, LSL: 500, Target: 2000},
		MetricScreenPageViews:        {Metric: MetricScreenPageViews, USL: 3000, LSL: 300, Target: 1500},
		MetricBounceRate:             {Metric: MetricBounceRate, USL: 60, LSL: 20, Target: 35},
		MetricUserEngagementDuration: {Metric: MetricUserEngagementDuration, USL: 900, LSL: 60, Target: 300},
		MetricAverageSessionDuration: {Metric: MetricAverageSessionDuration, USL: 600, LSL: 30, Target: 180},
	}
}
