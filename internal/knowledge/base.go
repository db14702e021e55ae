// Package knowledge holds the static, role-tagged knowledge base of
// qualitative business snippets used by the retrieval pipeline. The base is
// an immutable in-process list; it stands in for an external document store.
package knowledge

import "hrcentral/internal/models"

var entries = []models.KnowledgeEntry{
	// CEO strategic content
	{
		Text:   "Risk Assessment: Supply chain volatility in the North region is a critical risk due to recent logistics disruptions. Mitigation: Diversify suppliers and increase buffer inventory.",
		Source: "Q3 Risk Report",
		Roles:  []models.Role{models.RoleCEO, models.RoleCOO},
	},
	{
		Text:   "Competitor Update: Competitor 'TechGiant' has lowered prices on their entry-level units by 10%, pressuring our margins. Recommendation: Focus on premium features and customer service differentiation.",
		Source: "Market Intelligence",
		Roles:  []models.Role{models.RoleCEO, models.RoleCFO},
	},
	{
		Text:   "Revenue Forecast: Q4 revenue is projected to exceed targets by 15%, driven by strong adoption of Gadget_Z in the West region. Expected total: $2.8M for Q4.",
		Source: "Financial Outlook",
		Roles:  []models.Role{models.RoleCEO, models.RoleCFO},
	},
	{
		Text:   "Strategic Initiative: 'Project Apollo' aims to automate 50% of the assembly line by next year to reduce overhead costs by 20% and improve throughput by 30%.",
		Source: "Strategy Doc",
		Roles:  []models.Role{models.RoleCEO, models.RoleCOO},
	},
	{
		Text:   "Regulatory Alert: New safety compliance standards for battery disposal will come into effect next month. All manufacturing lines must be certified by Jan 15.",
		Source: "Legal Brief",
		Roles:  []models.Role{models.RoleCEO, models.RoleCOO, models.RoleHR},
	},
	{
		Text:   "Talent Retention: Engineering turnover has decreased by 5% following the new equity program. Current retention rate: 92% (up from 87%).",
		Source: "HR Quarterly",
		Roles:  []models.Role{models.RoleCEO, models.RoleHR},
	},

	// CFO financial content
	{
		Text:   "Cost Reduction Memo: Analysis shows that energy costs account for 18% of total OpEx. Recommendation: Invest in energy-efficient motors for Lines A and C to save $45K annually.",
		Source: "CFO Analysis",
		Roles:  []models.Role{models.RoleCFO, models.RoleCOO},
	},
	{
		Text:   "Margin Analysis: Gadget_X has the highest margin at 42%, while Gadget_Y is at 28%. Focus sales efforts on premium products to improve overall profitability.",
		Source: "Product Profitability Report",
		Roles:  []models.Role{models.RoleCFO},
	},
	{
		Text:   "Cash Flow Projection: Operating cash flow is stable at $1.2M/month. Accounts receivable days: 32 (target: 30). Recommend tightening payment terms with enterprise customers.",
		Source: "Treasury Report",
		Roles:  []models.Role{models.RoleCFO},
	},
	{
		Text:   "Maintenance Budget: Total maintenance costs for Q3 were $127K, 8% under budget. Preventive maintenance program is reducing emergency repairs by 15%.",
		Source: "Finance Dashboard",
		Roles:  []models.Role{models.RoleCFO, models.RoleCOO},
	},

	// COO operations content
	{
		Text:   "Production Efficiency: Line B has the highest throughput at 485 units/day with only 12 minutes of downtime. Best practice: Implement Line B's maintenance schedule across all lines.",
		Source: "Operations Review",
		Roles:  []models.Role{models.RoleCOO},
	},
	{
		Text:   "Energy Consumption Analysis: Night shift (Shift 3) consumes 22% more energy per unit than day shift. Root cause: Older equipment on night crew. Recommendation: Rotate equipment usage.",
		Source: "Sustainability Report",
		Roles:  []models.Role{models.RoleCOO, models.RoleCFO},
	},
	{
		Text:   "Downtime Root Cause: Line C accounts for 40% of total downtime due to aging conveyor belts. Replacement scheduled for next month, expected to reduce downtime by 60%.",
		Source: "Maintenance Log",
		Roles:  []models.Role{models.RoleCOO},
	},
	{
		Text:   "Quality Metrics: Overall defect rate is 2.1%, down from 2.8% last quarter. Line A has the lowest rate at 1.4%. Quality training program showing positive results.",
		Source: "Quality Assurance Report",
		Roles:  []models.Role{models.RoleCOO},
	},
	{
		Text:   "Throughput vs Energy Correlation: Analysis shows strong correlation (r=0.78) between energy consumption and throughput. Higher production runs are more energy-efficient per unit.",
		Source: "Operations Analytics",
		Roles:  []models.Role{models.RoleCOO},
	},

	// HR people content
	{
		Text:   "Performance Distribution: 68% of employees rated 'Good' or 'Excellent'. Top performers concentrated in Engineering (avg 4.2/5) and Sales (avg 4.0/5). Needs Improvement: 12% of workforce.",
		Source: "Annual Review Summary",
		Roles:  []models.Role{models.RoleHR},
	},
	{
		Text:   "Headcount by Department: Engineering: 18, Sales: 12, Operations: 10, Finance: 5, HR: 4. Total headcount: 49. Hiring plan: Add 6 engineers in Q1.",
		Source: "HR Dashboard",
		Roles:  []models.Role{models.RoleHR},
	},
	{
		Text:   "Safety Incidents: 8 incidents in Q3 (down from 12 in Q2). Severity: 6 minor, 2 moderate, 0 critical. New safety training program reduced incident rate by 33%.",
		Source: "Safety Report",
		Roles:  []models.Role{models.RoleHR, models.RoleCOO},
	},
	{
		Text:   "Employee Tenure: Average tenure is 4.2 years. High-tenure departments: Finance (6.1 yrs), Engineering (5.3 yrs). New hire retention (1-year): 88%.",
		Source: "Retention Analysis",
		Roles:  []models.Role{models.RoleHR},
	},
	{
		Text:   "Safety Training Program: New comprehensive safety training launched in August. 100% of manufacturing staff certified. Next phase: Advanced equipment handling certification in January.",
		Source: "Training Memo",
		Roles:  []models.Role{models.RoleHR, models.RoleCOO},
	},
	{
		Text:   "Employee Engagement: eNPS score is 42 (Industry avg: 35). Top drivers: Career growth opportunities, competitive compensation. Improvement area: Work-life balance (score: 6.8/10).",
		Source: "Engagement Survey",
		Roles:  []models.Role{models.RoleHR, models.RoleCEO},
	},
}

// Entries returns the full knowledge base. The returned slice is shared and
// must be treated as read-only.
func Entries() []models.KnowledgeEntry {
	return entries
}

// ForRole returns the entries visible to the given role, in base order.
func ForRole(role models.Role) []models.KnowledgeEntry {
	var visible []models.KnowledgeEntry
	for _, e := range entries {
		if e.HasRole(role) {
			visible = append(visible, e)
		}
	}
	return visible
}
