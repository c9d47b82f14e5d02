package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
	tx database.Transactor
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db, tx: NewTransactor(db)}
}

const employeeColumns = `id, name, email, password_hash, role, status, inactive_at,
	default_day_off, realistic_day_off, monthly_target_minutes, version, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e      employee.Employee
		role   string
		status string
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.PasswordHash, &role, &status, &e.InactiveAt,
		&e.DefaultDayOff, &e.RealisticDayOff, &e.MonthlyTargetMinutes, &e.Version, &e.CreatedAt, &e.UpdatedAt,
	)
	e.Role = user.Role(role)
	e.Status = employee.Status(status)
	return e, err
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		query := `
			INSERT INTO employees (id, name, email, password_hash, role, status, inactive_at,
				default_day_off, realistic_day_off, monthly_target_minutes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING version, created_at, updated_at
		`
		err := q.QueryRow(ctx, query,
			newEmployee.ID, newEmployee.Name, newEmployee.Email, newEmployee.PasswordHash,
			string(newEmployee.Role), string(newEmployee.Status), newEmployee.InactiveAt,
			newEmployee.DefaultDayOff, newEmployee.RealisticDayOff, newEmployee.MonthlyTargetMinutes,
		).Scan(&newEmployee.Version, &newEmployee.CreatedAt, &newEmployee.UpdatedAt)
		if err != nil {
			if _, ok := uniqueConstraint(err); ok {
				return employee.ErrEmployeeIDExists
			}
			return fmt.Errorf("failed to insert employee: %w", err)
		}

		for _, m := range newEmployee.Departments {
			positions := m.Positions
			if positions == nil {
				positions = []string{}
			}
			_, err := q.Exec(ctx, `
				INSERT INTO employee_departments (employee_id, department_name, positions, ordinal)
				VALUES ($1, $2, $3, $4)
			`, newEmployee.ID, m.Department, positions, m.Ordinal)
			if err != nil {
				return fmt.Errorf("failed to insert department %s: %w", m.Department, err)
			}
		}
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return newEmployee, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	e, err := scanEmployee(q.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	memberships, err := r.memberships(ctx, []string{id})
	if err != nil {
		return employee.Employee{}, err
	}
	e.Departments = memberships[id]
	return e, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var c conditions
	if filter.EmployeeID != nil {
		c.add("e.id = $%d", *filter.EmployeeID)
	}
	if filter.Department != nil {
		c.add("EXISTS (SELECT 1 FROM employee_departments d WHERE d.employee_id = e.id AND d.department_name = $%d)", *filter.Department)
	}
	if filter.Departments != nil {
		c.add("EXISTS (SELECT 1 FROM employee_departments d WHERE d.employee_id = e.id AND d.department_name = ANY($%d))", filter.Departments)
	}
	if filter.ActiveAt != nil {
		c.add("((e.inactive_at IS NULL AND e.status = 'active') OR e.inactive_at > $%d)", *filter.ActiveAt)
	}

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, "SELECT "+employeeColumns+" FROM employees e"+c.where()+" ORDER BY e.id", c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var (
		out []employee.Employee
		ids []string
	)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	memberships, err := r.memberships(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Departments = memberships[out[i].ID]
	}
	return out, nil
}

func (r *employeeRepositoryImpl) memberships(ctx context.Context, ids []string) (map[string][]employee.Membership, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT employee_id, department_name, positions, ordinal
		FROM employee_departments
		WHERE employee_id = ANY($1)
		ORDER BY employee_id, ordinal
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]employee.Membership, len(ids))
	for rows.Next() {
		var (
			employeeID string
			m          employee.Membership
		)
		if err := rows.Scan(&employeeID, &m.Department, &m.Positions, &m.Ordinal); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		out[employeeID] = append(out[employeeID], m)
	}
	return out, rows.Err()
}

func (r *employeeRepositoryImpl) IDsByDepartment(ctx context.Context, department string) ([]string, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT employee_id FROM employee_departments
		WHERE department_name = $1
		ORDER BY employee_id
	`, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list department members: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan department members: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *employeeRepositoryImpl) UpdateRealisticDayOff(ctx context.Context, id string, realisticDayOff int) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE employees SET realistic_day_off = $2, updated_at = NOW() WHERE id = $1
	`, id, realisticDayOff)
	if err != nil {
		return fmt.Errorf("failed to update day-off balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) Deactivate(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE employees SET status = 'inactive', inactive_at = $2, updated_at = NOW() WHERE id = $1
	`, id, at)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) BumpVersion(ctx context.Context, id string, expected int64) (int64, error) {
	q := GetQuerier(ctx, r.db)
	var version int64
	err := q.QueryRow(ctx, `
		UPDATE employees SET version = version + 1 WHERE id = $1 AND version = $2 RETURNING version
	`, id, expected).Scan(&version)
	if err == nil {
		return version, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to bump employee version: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)", id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("failed to check employee: %w", err)
	}
	if !exists {
		return 0, employee.ErrEmployeeNotFound
	}
	return 0, employee.ErrConcurrentUpdate
}
