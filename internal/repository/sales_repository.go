package repository

import (
	"context"

	"hrcentral/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type SalesRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSalesRepository(db *pgxpool.Pool, logger *zap.Logger) *SalesRepository {
	return &SalesRepository{
		db:     db,
		logger: logger,
	}
}

var salesColumns = []string{"id", "date", "product_id", "region", "units_sold", "revenue", "margin", "profit", "customer_segment", "lead_source"}

func (r *SalesRepository) CreateBatch(ctx context.Context, records []*models.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	builder := squirrel.Insert("sales").
		Columns("date", "product_id", "region", "units_sold", "revenue", "margin", "profit", "customer_segment", "lead_source").
		PlaceholderFormat(squirrel.Dollar)

	for _, rec := range records {
		builder = builder.Values(rec.Date, rec.ProductID, rec.Region, rec.UnitsSold, rec.Revenue, rec.Margin, rec.Profit, rec.CustomerSegment, rec.LeadSource)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Recent returns the most recent records by descending identifier.
func (r *SalesRepository) Recent(ctx context.Context, limit int) ([]*models.SalesRecord, error) {
	query := squirrel.Select(salesColumns...).
		From("sales").
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

	var records []*models.SalesRecord
	for rows.Next() {
		var rec models.SalesRecord
		if err := rows.Scan(
			&rec.ID, &rec.Date, &rec.ProductID, &rec.Region, &rec.UnitsSold, &rec.Revenue, &rec.Margin, &rec.Profit, &rec.CustomerSegment, &rec.LeadSource,
		); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// SalesTotals aggregates revenue, profit and margin across all sales records.
type SalesTotals struct {
	TotalRevenue float64
	TotalProfit  float64
	AvgMargin    float64
}

func (r *SalesRepository) Totals(ctx context.Context) (*SalesTotals, error) {
	query := squirrel.Select(
		"COALESCE(SUM(revenue), 0)",
		"COALESCE(SUM(profit), 0)",
		"COALESCE(AVG(margin), 0)",
	).From("sales")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var totals SalesTotals
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&totals.TotalRevenue, &totals.TotalProfit, &totals.AvgMargin); err != nil {
		return nil, err
	}

	return &totals, nil
}

// DailyRevenue is revenue and profit summed per calendar day.
type DailyRevenue struct {
	Date    string
	Revenue float64
	Profit  float64
}

// RevenueByDate returns per-day revenue and profit for the most recent days,
// oldest first.
func (r *SalesRepository) RevenueByDate(ctx context.Context, days int) ([]*DailyRevenue, error) {
	inner := squirrel.Select("date", "SUM(revenue) AS revenue", "SUM(profit) AS profit").
		From("sales").
		GroupBy("date").
		OrderBy("date DESC").
		Limit(uint64(days))

	innerSQL, args, err := inner.ToSql()
	if err != nil {
		return nil, err
	}

	sql := "SELECT date, revenue, profit FROM (" + innerSQL + ") d ORDER BY date ASC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var daily []*DailyRevenue
	for rows.Next() {
		var d DailyRevenue
		if err := rows.Scan(&d.Date, &d.Revenue, &d.Profit); err != nil {
			return nil, err
		}
		daily = append(daily, &d)
	}

	return daily, rows.Err()
}

// RegionTotals is revenue and profit summed per region.
type RegionTotals struct {
	Region  string
	Revenue float64
	Profit  float64
}

func (r *SalesRepository) TotalsByRegion(ctx context.Context) ([]*RegionTotals, error) {
	query := squirrel.Select("region", "SUM(revenue)", "SUM(profit)").
		From("sales").
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

	var regions []*RegionTotals
	for rows.Next() {
		var rt RegionTotals
		if err := rows.Scan(&rt.Region, &rt.Revenue, &rt.Profit); err != nil {
			return nil, err
		}
		regions = append(regions, &rt)
	}

	return regions, rows.Err()
}
