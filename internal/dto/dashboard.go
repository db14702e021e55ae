package dto

// KPI is one headline metric card.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Trend string `json:"trend"`
}

// Chart is a renderer-agnostic chart spec: the frontend picks the component
// from Type and feeds it Data rows keyed by the axis fields.
type Chart struct {
	ID      string                   `json:"id"`
	Type    string                   `json:"type"`
	Title   string                   `json:"title"`
	Data    []map[string]interface{} `json:"data"`
	X       string                   `json:"x,omitempty"`
	Y       string                   `json:"y,omitempty"`
	Keys    []string                 `json:"keys,omitempty"`
	BarKey  string                   `json:"barKey,omitempty"`
	LineKey string                   `json:"lineKey,omitempty"`
	Colors  []string                 `json:"colors,omitempty"`
}

// ActionItem is a suggested next step shown on the dashboard.
type ActionItem struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

type DashboardResponse struct {
	Role    string       `json:"role"`
	KPIs    []KPI        `json:"kpis"`
	Charts  []Chart      `json:"charts"`
	Actions []ActionItem `json:"actions"`
}
