package service

import (
	"context"
	"errors"
	"fmt"

	"hrcentral/internal/dto"
	"hrcentral/internal/models"
	"hrcentral/internal/repository"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

var ErrUnknownRole = errors.New("unknown role")

// scatterPointLimit caps the energy/throughput correlation chart payload.
const scatterPointLimit = 500

// mockEnergyRate is the assumed $/kWh used for the CFO cost-structure chart.
const mockEnergyRate = 0.12

// DashboardService aggregates the record sets into role-specific KPI cards,
// chart datasets and action items.
type DashboardService struct {
	sales         *repository.SalesRepository
	manufacturing *repository.ManufacturingRepository
	field         *repository.FieldRepository
	employees     *repository.EmployeeRepository
	logger        *zap.Logger
}

func NewDashboardService(
	sales *repository.SalesRepository,
	manufacturing *repository.ManufacturingRepository,
	field *repository.FieldRepository,
	employees *repository.EmployeeRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		sales:         sales,
		manufacturing: manufacturing,
		field:         field,
		employees:     employees,
		logger:        logger,
	}
}

// Build returns the dashboard payload for the role.
func (s *DashboardService) Build(ctx context.Context, role models.Role) (*dto.DashboardResponse, error) {
	data := &dto.DashboardResponse{Role: role.String()}

	var err error
	switch role {
	case models.RoleCEO:
		err = s.buildCEO(ctx, data)
	case models.RoleCFO:
		err = s.buildCFO(ctx, data)
	case models.RoleCOO:
		err = s.buildCOO(ctx, data)
	case models.RoleHR:
		err = s.buildHR(ctx, data)
	default:
		return nil, ErrUnknownRole
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build %s dashboard: %w", role, err)
	}

	return data, nil
}

func (s *DashboardService) buildCEO(ctx context.Context, data *dto.DashboardResponse) error {
	salesTotals, err := s.sales.Totals(ctx)
	if err != nil {
		return err
	}
	avgCSAT, err := s.field.AvgSatisfaction(ctx)
	if err != nil {
		return err
	}

	data.KPIs = []dto.KPI{
		{Label: "Total Revenue", Value: formatMoney(salesTotals.TotalRevenue), Trend: "+12%"},
		{Label: "Net Profit", Value: formatMoney(salesTotals.TotalProfit), Trend: "+8%"},
		{Label: "Global CSAT", Value: fmt.Sprintf("%.1f/5.0", avgCSAT), Trend: "+0.2"},
		{Label: "Market Share", Value: "24%", Trend: "+1.5%"}, // mock
	}

	daily, err := s.sales.RevenueByDate(ctx, 14)
	if err != nil {
		return err
	}
	areaData := make([]map[string]interface{}, 0, len(daily))
	for _, d := range daily {
		areaData = append(areaData, map[string]interface{}{
			"date":    d.Date,
			"revenue": d.Revenue,
			"target":  d.Revenue * 1.1, // mock target
		})
	}

	regions, err := s.sales.TotalsByRegion(ctx)
	if err != nil {
		return err
	}
	incidents, err := s.field.CountByRegion(ctx)
	if err != nil {
		return err
	}
	radarData := buildRegionalRadar(regions, incidents)

	data.Charts = []dto.Chart{
		{ID: "rev_target", Type: "area", Title: "Revenue vs Target (14 Days)", Data: areaData, X: "date", Keys: []string{"revenue", "target"}, Colors: []string{"#8884d8", "#82ca9d"}},
		{ID: "reg_perf", Type: "radar", Title: "Regional Performance Matrix", Data: radarData, Keys: []string{"Revenue", "Profit", "Efficiency"}, Colors: []string{"#8884d8", "#82ca9d", "#ffc658"}},
	}

	data.Actions = []dto.ActionItem{
		{Title: "Approve Q4 Expansion", Priority: "High"},
		{Title: "Review North Region Strategy", Priority: "Medium"},
		{Title: "Investor Briefing Prep", Priority: "High"},
	}

	return nil
}

func (s *DashboardService) buildCFO(ctx context.Context, data *dto.DashboardResponse) error {
	salesTotals, err := s.sales.Totals(ctx)
	if err != nil {
		return err
	}
	mfgTotals, err := s.manufacturing.Totals(ctx)
	if err != nil {
		return err
	}

	data.KPIs = []dto.KPI{
		{Label: "Net Profit", Value: formatMoney(salesTotals.TotalProfit), Trend: "+8%"},
		{Label: "Gross Margin", Value: fmt.Sprintf("%.1f%%", salesTotals.AvgMargin*100), Trend: "+1.2%"},
		{Label: "OpEx (Maint)", Value: formatMoney(mfgTotals.TotalMaintenanceCost), Trend: "-2%"},
		{Label: "Cash Flow", Value: "$1.2M", Trend: "Stable"}, // mock
	}

	daily, err := s.sales.RevenueByDate(ctx, 30)
	if err != nil {
		return err
	}
	composedData := make([]map[string]interface{}, 0, len(daily))
	for _, d := range daily {
		marginPct := 0.0
		if d.Revenue > 0 {
			marginPct = d.Profit / d.Revenue * 100
		}
		composedData = append(composedData, map[string]interface{}{
			"date":       d.Date,
			"revenue":    d.Revenue,
			"profit":     d.Profit,
			"margin_pct": marginPct,
		})
	}

	costData := []map[string]interface{}{
		{"name": "Maintenance", "value": mfgTotals.TotalMaintenanceCost},
		{"name": "Energy", "value": mfgTotals.TotalEnergy * mockEnergyRate},
		{"name": "COGS", "value": salesTotals.TotalRevenue - salesTotals.TotalProfit},
	}

	data.Charts = []dto.Chart{
		{ID: "prof_trend", Type: "composed", Title: "Revenue & Margin Trend", Data: composedData, X: "date", BarKey: "revenue", LineKey: "margin_pct", Colors: []string{"#8884d8", "#ff7300"}},
		{ID: "cost_breakdown", Type: "pie", Title: "Cost Structure", Data: costData, X: "name", Y: "value", Colors: []string{"#0088FE", "#00C49F", "#FFBB28"}},
	}

	data.Actions = []dto.ActionItem{
		{Title: "Audit Energy Contracts", Priority: "Medium"},
		{Title: "Optimize Inventory Levels", Priority: "High"},
		{Title: "Review Tax Compliance", Priority: "Low"},
	}

	return nil
}

func (s *DashboardService) buildCOO(ctx context.Context, data *dto.DashboardResponse) error {
	mfgTotals, err := s.manufacturing.Totals(ctx)
	if err != nil {
		return err
	}

	data.KPIs = []dto.KPI{
		{Label: "Avg Throughput", Value: fmt.Sprintf("%.0f", mfgTotals.AvgThroughput), Trend: "+3%"},
		{Label: "Energy Usage", Value: humanize.CommafWithDigits(mfgTotals.TotalEnergy, 0) + " kWh", Trend: "-1.5%"},
		{Label: "Defect Rate", Value: fmt.Sprintf("%.2f%%", mfgTotals.AvgDefectRate*100), Trend: "-0.2%"},
		{Label: "OEE Score", Value: "87%", Trend: "+2%"}, // mock
	}

	points, err := s.manufacturing.EnergyThroughput(ctx, scatterPointLimit)
	if err != nil {
		return err
	}
	scatterData := make([]map[string]interface{}, 0, len(points))
	for _, p := range points {
		scatterData = append(scatterData, map[string]interface{}{
			"throughput": p.Throughput,
			"energy":     p.Energy,
		})
	}

	shifts, err := s.manufacturing.DowntimeByShift(ctx)
	if err != nil {
		return err
	}
	shiftData := make([]map[string]interface{}, 0, len(shifts))
	for _, sd := range shifts {
		shiftData = append(shiftData, map[string]interface{}{
			"shift_id":         sd.ShiftID,
			"downtime_minutes": sd.DowntimeMinutes,
		})
	}

	data.Charts = []dto.Chart{
		{ID: "energy_out", Type: "scatter", Title: "Energy vs Throughput Correlation", Data: scatterData, X: "throughput", Y: "energy", Colors: []string{"#82ca9d"}},
		{ID: "shift_dt", Type: "bar", Title: "Downtime by Shift", Data: shiftData, X: "shift_id", Y: "downtime_minutes", Colors: []string{"#ff8042"}},
	}

	data.Actions = []dto.ActionItem{
		{Title: "Investigate Night Shift Downtime", Priority: "High"},
		{Title: "Calibrate Line C Sensors", Priority: "Medium"},
		{Title: "Energy Audit Line A", Priority: "Low"},
	}

	return nil
}

func (s *DashboardService) buildHR(ctx context.Context, data *dto.DashboardResponse) error {
	workforce, err := s.employees.Totals(ctx)
	if err != nil {
		return err
	}

	data.KPIs = []dto.KPI{
		{Label: "Avg Performance", Value: fmt.Sprintf("%.1f/5.0", workforce.AvgPerformance), Trend: "+0.1"},
		{Label: "Avg Tenure", Value: fmt.Sprintf("%.1f Yrs", workforce.AvgTenure), Trend: "Stable"},
		{Label: "Headcount", Value: fmt.Sprintf("%d", workforce.Headcount), Trend: "+4"},
		{Label: "eNPS", Value: "42", Trend: "+5"}, // mock
	}

	ratings, err := s.employees.Performances(ctx)
	if err != nil {
		return err
	}
	perfData := buildPerformanceDistribution(ratings)

	departments, err := s.employees.CountByDepartment(ctx)
	if err != nil {
		return err
	}
	deptData := make([]map[string]interface{}, 0, len(departments))
	for _, d := range departments {
		deptData = append(deptData, map[string]interface{}{
			"department": d.Department,
			"count":      d.Count,
		})
	}

	data.Charts = []dto.Chart{
		{ID: "perf_dist", Type: "bar", Title: "Performance Distribution", Data: perfData, X: "perf_bin", Y: "count", Colors: []string{"#8884d8"}},
		{ID: "dept_headcount", Type: "pie", Title: "Headcount by Department", Data: deptData, X: "department", Y: "count", Colors: []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042"}},
	}

	data.Actions = []dto.ActionItem{
		{Title: "Launch Leadership Training", Priority: "High"},
		{Title: "Review 'Needs Imp' Plans", Priority: "Medium"},
		{Title: "Q4 Hiring Sync", Priority: "Medium"},
	}

	return nil
}

// buildRegionalRadar normalizes revenue and profit per region against the
// best region (0-100) and scores efficiency as the inverse incident share.
func buildRegionalRadar(regions []*repository.RegionTotals, incidents []*repository.RegionIncidents) []map[string]interface{} {
	var maxRevenue, maxProfit float64
	for _, r := range regions {
		if r.Revenue > maxRevenue {
			maxRevenue = r.Revenue
		}
		if r.Profit > maxProfit {
			maxProfit = r.Profit
		}
	}

	incidentsByRegion := make(map[string]int)
	totalIncidents := 0
	for _, inc := range incidents {
		incidentsByRegion[inc.Region] = inc.Count
		totalIncidents += inc.Count
	}

	radar := make([]map[string]interface{}, 0, len(regions))
	for _, r := range regions {
		revenueScore, profitScore := 0, 0
		if maxRevenue > 0 {
			revenueScore = int(r.Revenue / maxRevenue * 100)
		}
		if maxProfit > 0 {
			profitScore = int(r.Profit / maxProfit * 100)
		}
		efficiency := 100
		if totalIncidents > 0 {
			efficiency = int((1 - float64(incidentsByRegion[r.Region])/float64(totalIncidents)) * 100)
		}
		radar = append(radar, map[string]interface{}{
			"subject":    r.Region,
			"Revenue":    revenueScore,
			"Profit":     profitScore,
			"Efficiency": efficiency,
		})
	}
	return radar
}

// buildPerformanceDistribution bins ratings into (0,3] "Needs Imp",
// (3,4] "Good" and (4,5] "Excellent".
func buildPerformanceDistribution(ratings []float64) []map[string]interface{} {
	bins := []struct {
		label string
		low   float64
		high  float64
	}{
		{"Needs Imp", 0, 3},
		{"Good", 3, 4},
		{"Excellent", 4, 5},
	}

	counts := make([]int, len(bins))
	for _, rating := range ratings {
		for i, bin := range bins {
			if rating > bin.low && rating <= bin.high {
				counts[i]++
				break
			}
		}
	}

	dist := make([]map[string]interface{}, len(bins))
	for i, bin := range bins {
		dist[i] = map[string]interface{}{
			"perf_bin": bin.label,
			"count":    counts[i],
		}
	}
	return dist
}

func formatMoney(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 0)
}
