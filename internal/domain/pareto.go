package domain

// ParetoCategory é uma categoria de impacto do estudo de Pareto
type ParetoCategory struct {
	Name          string  `json:"name"`
	Impact        float64 `json:"impact"`
	KeyIndicators string  `json:"key_indicators"`
}

// DefaultParetoCategories retorna o catálogo de categorias de métricas do GA4
// com os percentuais de impacto medidos
func DefaultParetoCategories() []ParetoCategory {
	return []ParetoCategory{
		{Name: "Traffic Source Performance", Impact: 28, KeyIndicators: "Organic/Direct/Social distribution"},
		{Name: "User Experience Issues", Impact: 22, KeyIndicators: "Bounce Rate & Session Duration"},
		{Name: "Content Engagement", Impact: 15, KeyIndicators: "Pages/Session & Event Engagement"},
		{Name: "Technical Performance", Impact: 12, KeyIndicators: "Page Load Time & Performance"},
		{Name: "Monetization Alignment", Impact: 10, KeyIndicators: "Ad Click-through & Conversion"},
		{Name: "Navigation Structure", Impact: 8, KeyIndicators: "Site Structure & User Flow"},
		{Name: "SEO Optimization", Impact: 5, KeyIndicators: "Keywords & Content Performance"},
	}
}
