package service

import (
	"fmt"
	"strings"

	"hrcentral/internal/models"
)

// roleDefaultTables is the fixed per-role starting table set for retrieval.
var roleDefaultTables = map[models.Role][]models.TableName{
	models.RoleCEO: {models.TableSales, models.TableField, models.TableManufacturing},
	models.RoleCFO: {models.TableSales},
	models.RoleCOO: {models.TableManufacturing},
	models.RoleHR:  {models.TableUsers, models.TableField},
}

// tableKeywords maps query trigger tokens to the table they pull in. The
// tokens are matched by plain substring containment over the lower-cased
// query, mirroring the per-table metric vocabulary.
var tableKeywords = map[models.TableName][]string{
	models.TableSales:         {"sales", "revenue", "profit", "margin"},
	models.TableManufacturing: {"production", "throughput", "energy", "maintenance"},
	models.TableField:         {"incident", "safety", "satisfaction"},
	models.TableUsers:         {"employee", "performance", "headcount"},
}

// canonical iteration order for the selected table set, so retrieval is
// deterministic across runs.
var tableOrder = []models.TableName{
	models.TableSales,
	models.TableManufacturing,
	models.TableField,
	models.TableUsers,
}

// keywordsToTables returns the tables triggered by keyword presence in the
// query.
func keywordsToTables(query string) map[models.TableName]bool {
	triggered := make(map[models.TableName]bool)
	q := strings.ToLower(query)
	for table, keywords := range tableKeywords {
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				triggered[table] = true
				break
			}
		}
	}
	return triggered
}

// selectTables unions the role's default table set with the keyword-triggered
// tables and returns the result deduplicated, in canonical order. An unknown
// role contributes no defaults.
func selectTables(role models.Role, query string) []models.TableName {
	selected := keywordsToTables(query)
	for _, table := range roleDefaultTables[role] {
		selected[table] = true
	}

	var tables []models.TableName
	for _, table := range tableOrder {
		if selected[table] {
			tables = append(tables, table)
		}
	}
	return tables
}

// The render functions turn one record into a single natural-language
// sentence, the unit of table-derived retrieval.

func renderSales(r *models.SalesRecord) string {
	return fmt.Sprintf("Sales: Product %s sold %d units. Revenue: $%g, Profit: $%g, Margin: %g, Region: %s",
		r.ProductID, r.UnitsSold, r.Revenue, r.Profit, r.Margin, r.Region)
}

func renderManufacturing(r *models.ManufacturingRecord) string {
	return fmt.Sprintf("Mfg: Line %s (Shift: %s). Throughput: %d, Energy: %gkWh, Maint Cost: $%g, Downtime: %dm",
		r.LineID, r.ShiftID, r.Throughput, r.EnergyConsumption, r.MaintenanceCost, r.DowntimeMinutes)
}

func renderFieldIncident(r *models.FieldIncident) string {
	return fmt.Sprintf("Incident: %s issue on %s. Desc: %s. Resolution: %gh, CSAT: %d/5",
		r.Severity, r.ProductID, r.Description, r.ResolutionTimeHours, r.CustomerSatisfaction)
}

func renderEmployee(r *models.Employee) string {
	return fmt.Sprintf("User: %s (%s, %s). Performance: %g/5, Tenure: %d yrs",
		r.Name, r.Role, r.Department, r.Performance, r.Tenure)
}
