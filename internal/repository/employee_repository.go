package repository

import (
	"context"

	"hrcentral/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type EmployeeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewEmployeeRepository(db *pgxpool.Pool, logger *zap.Logger) *EmployeeRepository {
	return &EmployeeRepository{
		db:     db,
		logger: logger,
	}
}

var employeeColumns = []string{"id", "name", "email", "role", "department", "performance", "tenure", "password_hash"}

func (r *EmployeeRepository) CreateBatch(ctx context.Context, employees []*models.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	builder := squirrel.Insert("users").
		Columns("name", "email", "role", "department", "performance", "tenure", "password_hash").
		PlaceholderFormat(squirrel.Dollar)

	for _, emp := range employees {
		builder = builder.Values(emp.Name, emp.Email, emp.Role, emp.Department, emp.Performance, emp.Tenure, emp.PasswordHash)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Recent returns the most recent employee records by descending identifier.
func (r *EmployeeRepository) Recent(ctx context.Context, limit int) ([]*models.Employee, error) {
	query := squirrel.Select(employeeColumns...).
		From("users").
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

	var employees []*models.Employee
	for rows.Next() {
		var emp models.Employee
		if err := rows.Scan(
			&emp.ID, &emp.Name, &emp.Email, &emp.Role, &emp.Department, &emp.Performance, &emp.Tenure, &emp.PasswordHash,
		); err != nil {
			return nil, err
		}
		employees = append(employees, &emp)
	}

	return employees, rows.Err()
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	query := squirrel.Select(employeeColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var emp models.Employee
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&emp.ID, &emp.Name, &emp.Email, &emp.Role, &emp.Department, &emp.Performance, &emp.Tenure, &emp.PasswordHash,
	)
	if err != nil {
		return nil, err
	}

	return &emp, nil
}

// WorkforceTotals aggregates performance, tenure and headcount.
type WorkforceTotals struct {
	AvgPerformance float64
	AvgTenure      float64
	Headcount      int
}

func (r *EmployeeRepository) Totals(ctx context.Context) (*WorkforceTotals, error) {
	query := squirrel.Select(
		"COALESCE(AVG(performance), 0)",
		"COALESCE(AVG(tenure), 0)",
		"COUNT(*)",
	).From("users")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var totals WorkforceTotals
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&totals.AvgPerformance, &totals.AvgTenure, &totals.Headcount); err != nil {
		return nil, err
	}

	return &totals, nil
}

// DepartmentHeadcount is the number of employees per department.
type DepartmentHeadcount struct {
	Department string
	Count      int
}

func (r *EmployeeRepository) CountByDepartment(ctx context.Context) ([]*DepartmentHeadcount, error) {
	query := squirrel.Select("department", "COUNT(*)").
		From("users").
		GroupBy("department").
		OrderBy("department ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*DepartmentHeadcount
	for rows.Next() {
		var dh DepartmentHeadcount
		if err := rows.Scan(&dh.Department, &dh.Count); err != nil {
			return nil, err
		}
		departments = append(departments, &dh)
	}

	return departments, rows.Err()
}

// Performances returns every employee's performance rating, for distribution
// binning in the HR dashboard.
func (r *EmployeeRepository) Performances(ctx context.Context) ([]float64, error) {
	query := squirrel.Select("performance").From("users")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []float64
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		ratings = append(ratings, p)
	}

	return ratings, rows.Err()
}
