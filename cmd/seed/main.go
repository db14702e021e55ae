package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hrcentral/internal/models"
	"hrcentral/internal/repository"
	"hrcentral/pkg/auth"
	"hrcentral/pkg/config"
	"hrcentral/pkg/logger"
	"hrcentral/pkg/postgres"

	"go.uber.org/zap"
)

// randSeed keeps reruns reproducible.
const randSeed = 42

const (
	mfgDays         = 180
	salesPerDay     = 8
	incidentCount   = 200
	employeeCount   = 100
	demoPassword    = "demo"
	startDateLayout = "2006-01-02"
)

var startDate = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

func main() {
	drop := flag.Bool("drop", false, "drop and recreate all tables before seeding")
	csvDir := flag.String("csv", "", "also export the generated datasets as CSV files into this directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *drop {
		appLogger.Info("Dropping existing tables")
		if err := repository.DropSchema(ctx, db); err != nil {
			appLogger.Fatal("Failed to drop schema", zap.Error(err))
		}
	}
	if err := repository.CreateSchema(ctx, db); err != nil {
		appLogger.Fatal("Failed to create schema", zap.Error(err))
	}

	appLogger.Info("Starting database seeding")

	rng := rand.New(rand.NewSource(randSeed))

	mfg := generateManufacturing(rng)
	sales := generateSales(rng)
	incidents := generateIncidents(rng)
	employees, err := generateEmployees(rng)
	if err != nil {
		appLogger.Fatal("Failed to generate employees", zap.Error(err))
	}

	mfgRepo := repository.NewManufacturingRepository(db, appLogger)
	salesRepo := repository.NewSalesRepository(db, appLogger)
	fieldRepo := repository.NewFieldRepository(db, appLogger)
	employeeRepo := repository.NewEmployeeRepository(db, appLogger)

	if err := mfgRepo.CreateBatch(ctx, mfg); err != nil {
		appLogger.Fatal("Failed to seed manufacturing", zap.Error(err))
	}
	appLogger.Info("Seeded manufacturing", zap.Int("records", len(mfg)))

	if err := salesRepo.CreateBatch(ctx, sales); err != nil {
		appLogger.Fatal("Failed to seed sales", zap.Error(err))
	}
	appLogger.Info("Seeded sales", zap.Int("records", len(sales)))

	if err := fieldRepo.CreateBatch(ctx, incidents); err != nil {
		appLogger.Fatal("Failed to seed field incidents", zap.Error(err))
	}
	appLogger.Info("Seeded field incidents", zap.Int("records", len(incidents)))

	if err := employeeRepo.CreateBatch(ctx, employees); err != nil {
		appLogger.Fatal("Failed to seed employees", zap.Error(err))
	}
	appLogger.Info("Seeded employees", zap.Int("records", len(employees)))

	if *csvDir != "" {
		if err := exportCSV(*csvDir, mfg, sales, incidents, employees); err != nil {
			appLogger.Fatal("Failed to export CSV", zap.Error(err))
		}
		appLogger.Info("Exported CSV datasets", zap.String("dir", *csvDir))
	}

	appLogger.Info("Database seeding completed successfully",
		zap.Int("total_records", len(mfg)+len(sales)+len(incidents)+len(employees)))
}

func generateManufacturing(rng *rand.Rand) []*models.ManufacturingRecord {
	lines := []string{"Line_A", "Line_B", "Line_C", "Line_D"}
	shifts := []string{"Morning", "Evening", "Night"}

	var records []*models.ManufacturingRecord
	for day := 0; day < mfgDays; day++ {
		date := startDate.AddDate(0, 0, day).Format(startDateLayout)
		for _, line := range lines {
			for _, shift := range shifts {
				// Night shifts run slower and Line_C is the oldest line.
				base := 1000.0
				if shift == "Night" {
					base *= 0.95
				}
				if line == "Line_C" {
					base *= 0.90
				}

				throughput := int(rng.NormFloat64()*80 + base)

				downtime := 0
				if rng.Float64() > 0.7 {
					downtime = int(rng.ExpFloat64() * 15)
				}
				if line == "Line_C" {
					downtime = int(float64(downtime) * 1.5)
				}

				energy := float64(throughput)*0.5 + rng.NormFloat64()*5 + 50
				maintCost := float64(downtime)*50 + rng.NormFloat64()*20 + 100

				records = append(records, &models.ManufacturingRecord{
					Date:              date,
					LineID:            line,
					Throughput:        throughput,
					DowntimeMinutes:   downtime,
					DefectRate:        round(betaSample(rng, 2, 50), 4),
					EnergyConsumption: round(energy, 2),
					MaintenanceCost:   round(maintCost, 2),
					ShiftID:           shift,
				})
			}
		}
	}
	return records
}

type productInfo struct {
	price     float64
	marginLow float64
	marginHi  float64
}

var products = []string{"Gadget_X", "Gadget_Y", "Gadget_Z", "Widget_A", "Widget_B", "Device_Pro"}

var productCatalog = map[string]productInfo{
	"Gadget_X":   {price: 50, marginLow: 0.35, marginHi: 0.45},
	"Gadget_Y":   {price: 150, marginLow: 0.25, marginHi: 0.35},
	"Gadget_Z":   {price: 300, marginLow: 0.38, marginHi: 0.48},
	"Widget_A":   {price: 80, marginLow: 0.30, marginHi: 0.40},
	"Widget_B":   {price: 200, marginLow: 0.28, marginHi: 0.38},
	"Device_Pro": {price: 500, marginLow: 0.40, marginHi: 0.50},
}

var regions = []string{"North", "South", "East", "West"}

func generateSales(rng *rand.Rand) []*models.SalesRecord {
	segments := []string{"Enterprise", "SMB", "Consumer"}
	segmentWeights := []float64{0.3, 0.4, 0.3}
	leadSources := []string{"Web", "Referral", "Partner", "Direct", "Marketing"}

	var records []*models.SalesRecord
	for day := 0; day < mfgDays; day++ {
		date := startDate.AddDate(0, 0, day).Format(startDateLayout)
		for i := 0; i < salesPerDay; i++ {
			product := products[rng.Intn(len(products))]
			info := productCatalog[product]
			units := rng.Intn(145) + 5
			revenue := float64(units) * info.price
			margin := info.marginLow + rng.Float64()*(info.marginHi-info.marginLow)
			profit := revenue * margin

			records = append(records, &models.SalesRecord{
				Date:            date,
				ProductID:       product,
				Region:          regions[rng.Intn(len(regions))],
				UnitsSold:       units,
				Revenue:         revenue,
				Margin:          round(margin, 2),
				Profit:          round(profit, 2),
				CustomerSegment: weightedChoice(rng, segments, segmentWeights),
				LeadSource:      leadSources[rng.Intn(len(leadSources))],
			})
		}
	}
	return records
}

func generateIncidents(rng *rand.Rand) []*models.FieldIncident {
	severities := []string{"Low", "Medium", "High", "Critical"}
	severityWeights := []float64{0.4, 0.3, 0.2, 0.1}
	incidentTypes := []string{
		"Overheating during charge", "Screen flicker", "Battery drain",
		"Connectivity loss", "Physical damage on arrival", "Software crash",
		"Button malfunction", "Audio distortion", "Camera failure",
		"Charging port issue", "Water damage", "Performance lag",
	}

	var records []*models.FieldIncident
	for i := 0; i < incidentCount; i++ {
		severity := weightedChoice(rng, severities, severityWeights)

		// Resolution time and satisfaction track severity.
		var resTime float64
		var csat int
		switch severity {
		case "Critical":
			resTime = uniform(rng, 48, 120)
			csat = rng.Intn(3) + 1
		case "High":
			resTime = uniform(rng, 24, 72)
			csat = rng.Intn(3) + 2
		case "Medium":
			resTime = uniform(rng, 8, 48)
			csat = rng.Intn(3) + 3
		default:
			resTime = uniform(rng, 2, 24)
			csat = rng.Intn(2) + 4
		}

		date := startDate.AddDate(0, 0, rng.Intn(mfgDays)).Format(startDateLayout)

		records = append(records, &models.FieldIncident{
			IncidentID:           fmt.Sprintf("INC-%d", rng.Intn(90000)+10000),
			Date:                 date,
			ProductID:            products[rng.Intn(len(products))],
			Region:               regions[rng.Intn(len(regions))],
			Severity:             severity,
			Description:          incidentTypes[rng.Intn(len(incidentTypes))],
			ResolutionTimeHours:  round(resTime, 1),
			CustomerSatisfaction: csat,
		})
	}
	return records
}

func generateEmployees(rng *rand.Rand) ([]*models.Employee, error) {
	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}

	employees := []*models.Employee{
		{Name: "Alice CEO", Email: "alice@acme.com", Role: "CEO", Department: "Executive", Performance: 5.0, Tenure: 8, PasswordHash: hash},
		{Name: "Bob CFO", Email: "bob@acme.com", Role: "CFO", Department: "Finance", Performance: 4.8, Tenure: 6, PasswordHash: hash},
		{Name: "Carol COO", Email: "carol@acme.com", Role: "COO", Department: "Operations", Performance: 4.7, Tenure: 7, PasswordHash: hash},
		{Name: "Dana HR", Email: "dana@acme.com", Role: "HR", Department: "HR", Performance: 4.9, Tenure: 5, PasswordHash: hash},
	}

	departments := []string{"Executive", "Finance", "Operations", "HR", "Sales", "R&D", "Service", "Marketing", "IT"}
	deptWeights := []float64{0.04, 0.08, 0.15, 0.06, 0.20, 0.25, 0.10, 0.08, 0.04}
	rolesByDept := map[string][]string{
		"Executive":  {"CEO", "CFO", "COO", "CTO"},
		"Finance":    {"Accountant", "Financial Analyst", "Controller"},
		"Operations": {"Operations Manager", "Technician", "Quality Inspector"},
		"HR":         {"HR Manager", "Recruiter", "Training Specialist"},
		"Sales":      {"Sales Rep", "Account Manager", "Sales Engineer"},
		"R&D":        {"Engineer", "Researcher", "Product Manager"},
		"Service":    {"Support Specialist", "Field Technician"},
		"Marketing":  {"Marketing Manager", "Content Creator", "SEO Specialist"},
		"IT":         {"System Admin", "Developer", "Security Analyst"},
	}
	tenures := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tenureWeights := []float64{0.15, 0.15, 0.15, 0.12, 0.12, 0.10, 0.08, 0.06, 0.04, 0.03}

	for i := len(employees) + 1; i <= employeeCount; i++ {
		dept := weightedChoice(rng, departments, deptWeights)
		role := rolesByDept[dept][rng.Intn(len(rolesByDept[dept]))]

		perf := clamp(rng.NormFloat64()*0.7+3.8, 1.0, 5.0)
		tenure := tenures[weightedIndex(rng, tenureWeights)]

		employees = append(employees, &models.Employee{
			Name:        fmt.Sprintf("%s %d", strings.ReplaceAll(role, " ", ""), i),
			Email:       fmt.Sprintf("emp%d@acme.com", i),
			Role:        role,
			Department:  dept,
			Performance: round(perf, 1),
			Tenure:      tenure,
		})
	}

	return employees, nil
}

// betaSample draws from Beta(a, b) for integer shapes via two gamma draws,
// each the sum of unit exponentials.
func betaSample(rng *rand.Rand, a, b int) float64 {
	x := gammaSample(rng, a)
	y := gammaSample(rng, b)
	return x / (x + y)
}

func gammaSample(rng *rand.Rand, shape int) float64 {
	var sum float64
	for i := 0; i < shape; i++ {
		sum += rng.ExpFloat64()
	}
	return sum
}

func weightedChoice(rng *rand.Rand, items []string, weights []float64) string {
	return items[weightedIndex(rng, weights)]
}

func weightedIndex(rng *rand.Rand, weights []float64) int {
	r := rng.Float64()
	var cum float64
	for i, w := range weights {
		cum += w
		if r < cum {
			return i
		}
	}
	return len(weights) - 1
}

func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func round(v float64, places int) float64 {
	factor := 1.0
	for i := 0; i < places; i++ {
		factor *= 10
	}
	return float64(int64(v*factor+0.5)) / factor
}

func exportCSV(
	dir string,
	mfg []*models.ManufacturingRecord,
	sales []*models.SalesRecord,
	incidents []*models.FieldIncident,
	employees []*models.Employee,
) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	mfgRows := [][]string{{"date", "line_id", "throughput", "downtime_minutes", "defect_rate", "energy_consumption", "maintenance_cost", "shift_id"}}
	for _, r := range mfg {
		mfgRows = append(mfgRows, []string{
			r.Date, r.LineID, strconv.Itoa(r.Throughput), strconv.Itoa(r.DowntimeMinutes),
			formatFloat(r.DefectRate), formatFloat(r.EnergyConsumption), formatFloat(r.MaintenanceCost), r.ShiftID,
		})
	}
	if err := writeCSV(filepath.Join(dir, "manufacturing.csv"), mfgRows); err != nil {
		return err
	}

	salesRows := [][]string{{"date", "product_id", "region", "units_sold", "revenue", "margin", "profit", "customer_segment", "lead_source"}}
	for _, r := range sales {
		salesRows = append(salesRows, []string{
			r.Date, r.ProductID, r.Region, strconv.Itoa(r.UnitsSold),
			formatFloat(r.Revenue), formatFloat(r.Margin), formatFloat(r.Profit), r.CustomerSegment, r.LeadSource,
		})
	}
	if err := writeCSV(filepath.Join(dir, "sales.csv"), salesRows); err != nil {
		return err
	}

	fieldRows := [][]string{{"incident_id", "date", "product_id", "region", "severity", "description", "resolution_time_hours", "customer_satisfaction"}}
	for _, r := range incidents {
		fieldRows = append(fieldRows, []string{
			r.IncidentID, r.Date, r.ProductID, r.Region, r.Severity, r.Description,
			formatFloat(r.ResolutionTimeHours), strconv.Itoa(r.CustomerSatisfaction),
		})
	}
	if err := writeCSV(filepath.Join(dir, "field.csv"), fieldRows); err != nil {
		return err
	}

	userRows := [][]string{{"name", "email", "role", "department", "performance", "tenure"}}
	for _, r := range employees {
		userRows = append(userRows, []string{
			r.Name, r.Email, r.Role, r.Department, formatFloat(r.Performance), strconv.Itoa(r.Tenure),
		})
	}
	return writeCSV(filepath.Join(dir, "users.csv"), userRows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
