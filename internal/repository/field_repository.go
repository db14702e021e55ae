package repository

import (
	"context"

	"hrcentral/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type FieldRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFieldRepository(db *pgxpool.Pool, logger *zap.Logger) *FieldRepository {
	return &FieldRepository{
		db:     db,
		logger: logger,
	}
}

var fieldColumns = []string{"id", "incident_id", "date", "product_id", "region", "severity", "description", "resolution_time_hours", "customer_satisfaction"}

func (r *FieldRepository) CreateBatch(ctx context.Context, incidents []*models.FieldIncident) error {
	if len(incidents) == 0 {
		return nil
	}

	builder := squirrel.Insert("field").
		Columns("incident_id", "date", "product_id", "region", "severity", "description", "resolution_time_hours", "customer_satisfaction").
		PlaceholderFormat(squirrel.Dollar)

	for _, inc := range incidents {
		builder = builder.Values(inc.IncidentID, inc.Date, inc.ProductID, inc.Region, inc.Severity, inc.Description, inc.ResolutionTimeHours, inc.CustomerSatisfaction)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Recent returns the most recent incidents by descending identifier.
func (r *FieldRepository) Recent(ctx context.Context, limit int) ([]*models.FieldIncident, error) {
	query := squirrel.Select(fieldColumns...).
		From("field").
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

	var incidents []*models.FieldIncident
	for rows.Next() {
		var inc models.FieldIncident
		if err := rows.Scan(
			&inc.ID, &inc.IncidentID, &inc.Date, &inc.ProductID, &inc.Region, &inc.Severity, &inc.Description, &inc.ResolutionTimeHours, &inc.CustomerSatisfaction,
		); err != nil {
			return nil, err
		}
		incidents = append(incidents, &inc)
	}

	return incidents, rows.Err()
}

func (r *FieldRepository) AvgSatisfaction(ctx context.Context) (float64, error) {
	query := squirrel.Select("COALESCE(AVG(customer_satisfaction), 0)").From("field")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var avg float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&avg); err != nil {
		return 0, err
	}

	return avg, nil
}

// RegionIncidents is the number of incidents recorded per region.
type RegionIncidents struct {
	Region string
	Count  int
}

func (r *FieldRepository) CountByRegion(ctx context.Context) ([]*RegionIncidents, error) {
	query := squirrel.Select("region", "COUNT(*)").
		From("field").
		GroupBy("region").
		OrderBy("region ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []*RegionIncidents
	for rows.Next() {
		var ri RegionIncidents
		if err := rows.Scan(&ri.Region, &ri.Count); err != nil {
			return nil, err
		}
		regions = append(regions, &ri)
	}

	return regions, rows.Err()
}
