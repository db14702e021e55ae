package repository

import (
	"context"

	"hrcentral/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ManufacturingRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewManufacturingRepository(db *pgxpool.Pool, logger *zap.Logger) *ManufacturingRepository {
	return &ManufacturingRepository{
		db:     db,
		logger: logger,
	}
}

var manufacturingColumns = []string{"id", "date", "line_id", "throughput", "downtime_minutes", "defect_rate", "energy_consumption", "maintenance_cost", "shift_id"}

func (r *ManufacturingRepository) CreateBatch(ctx context.Context, records []*models.ManufacturingRecord) error {
	if len(records) == 0 {
		return nil
	}

	builder := squirrel.Insert("manufacturing").
		Columns("date", "line_id", "throughput", "downtime_minutes", "defect_rate", "energy_consumption", "maintenance_cost", "shift_id").
		PlaceholderFormat(squirrel.Dollar)

	for _, rec := range records {
		builder = builder.Values(rec.Date, rec.LineID, rec.Throughput, rec.DowntimeMinutes, rec.DefectRate, rec.EnergyConsumption, rec.MaintenanceCost, rec.ShiftID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Recent returns the most recent records by descending identifier.
func (r *ManufacturingRepository) Recent(ctx context.Context, limit int) ([]*models.ManufacturingRecord, error) {
	query := squirrel.Select(manufacturingColumns...).
		From("manufacturing").
		OrderBy("id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ManufacturingRecord
	for rows.Next() {
		var rec models.ManufacturingRecord
		if err := rows.Scan(
			&rec.ID, &rec.Date, &rec.LineID, &rec.Throughput, &rec.DowntimeMinutes, &rec.DefectRate, &rec.EnergyConsumption, &rec.MaintenanceCost, &rec.ShiftID,
		); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// ManufacturingTotals aggregates line metrics across all manufacturing records.
type ManufacturingTotals struct {
	AvgThroughput        float64
	TotalEnergy          float64
	AvgDefectRate        float64
	TotalMaintenanceCost float64
}

func (r *ManufacturingRepository) Totals(ctx context.Context) (*ManufacturingTotals, error) {
	query := squirrel.Select(
		"COALESCE(AVG(throughput), 0)",
		"COALESCE(SUM(energy_consumption), 0)",
		"COALESCE(AVG(defect_rate), 0)",
		"COALESCE(SUM(maintenance_cost), 0)",
	).From("manufacturing")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var totals ManufacturingTotals
	if err := r.db.QueryRow(ctx, sql, args...).Scan(
		&totals.AvgThroughput, &totals.TotalEnergy, &totals.AvgDefectRate, &totals.TotalMaintenanceCost,
	); err != nil {
		return nil, err
	}

	return &totals, nil
}

// ShiftDowntime is downtime minutes summed per shift.
type ShiftDowntime struct {
	ShiftID         string
	DowntimeMinutes int
}

func (r *ManufacturingRepository) DowntimeByShift(ctx context.Context) ([]*ShiftDowntime, error) {
	query := squirrel.Select("shift_id", "COALESCE(SUM(downtime_minutes), 0)").
		From("manufacturing").
		GroupBy("shift_id").
		OrderBy("shift_id ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []*ShiftDowntime
	for rows.Next() {
		var sd ShiftDowntime
		if err := rows.Scan(&sd.ShiftID, &sd.DowntimeMinutes); err != nil {
			return nil, err
		}
		shifts = append(shifts, &sd)
	}

	return shifts, rows.Err()
}

// EnergyPoint is one throughput/energy observation for correlation charts.
type EnergyPoint struct {
	Throughput int
	Energy     float64
}

func (r *ManufacturingRepository) EnergyThroughput(ctx context.Context, limit int) ([]*EnergyPoint, error) {
	query := squirrel.Select("throughput", "energy_consumption").
		From("manufacturing").
		OrderBy("id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []*EnergyPoint
	for rows.Next() {
		var p EnergyPoint
		if err := rows.Scan(&p.Throughput, &p.Energy); err != nil {
			return nil, err
		}
		points = append(points, &p)
	}

	return points, rows.Err()
}
