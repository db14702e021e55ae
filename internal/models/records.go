package models

// TableName identifies one of the four tabular record sets.
type TableName string

const (
	TableSales         TableName = "sales"
	TableManufacturing TableName = "manufacturing"
	TableField         TableName = "field"
	TableUsers         TableName = "users"
)

type SalesRecord struct {
	ID              int     `db:"id"`
	Date            string  `db:"date"`
	ProductID       string  `db:"product_id"`
	Region          string  `db:"region"`
	UnitsSold       int     `db:"units_sold"`
	Revenue         float64 `db:"revenue"`
	Margin          float64 `db:"margin"`
	Profit          float64 `db:"profit"`
	CustomerSegment string  `db:"customer_segment"`
	LeadSource      string  `db:"lead_source"`
}

type ManufacturingRecord struct {
	ID                int     `db:"id"`
	Date              string  `db:"date"`
	LineID            string  `db:"line_id"`
	Throughput        int     `db:"throughput"`
	DowntimeMinutes   int     `db:"downtime_minutes"`
	DefectRate        float64 `db:"defect_rate"`
	EnergyConsumption float64 `db:"energy_consumption"`
	MaintenanceCost   float64 `db:"maintenance_cost"`
	ShiftID           string  `db:"shift_id"`
}

type FieldIncident struct {
	ID                   int     `db:"id"`
	IncidentID           string  `db:"incident_id"`
	Date                 string  `db:"date"`
	ProductID            string  `db:"product_id"`
	Region               string  `db:"region"`
	Severity             string  `db:"severity"`
	Description          string  `db:"description"`
	ResolutionTimeHours  float64 `db:"resolution_time_hours"`
	CustomerSatisfaction int     `db:"customer_satisfaction"`
}

type Employee struct {
	ID           int     `db:"id"`
	Name         string  `db:"name"`
	Email        string  `db:"email"`
	Role         string  `db:"role"`
	Department   string  `db:"department"`
	Performance  float64 `db:"performance"`
	Tenure       int     `db:"tenure"`
	PasswordHash string  `db:"password_hash"`
}
