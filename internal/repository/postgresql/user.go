package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userSelectColumns = `
	u.id, u.email, u.name, u.phone, u.hire_date, u.department_id, u.role_id,
	u.status, u.created_at, u.updated_at,
	COALESCE(d.name, '') AS department_name,
	COALESCE(r.name, '') AS role_name
`

const userJoins = `
	FROM users u
	LEFT JOIN departments d ON u.department_id = d.id
	LEFT JOIN roles r ON u.role_id = r.id
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Phone, &u.HireDate, &u.DepartmentID, &u.RoleID,
		&u.Status, &u.CreatedAt, &u.UpdatedAt,
		&u.DepartmentName, &u.RoleName,
	)
	return u, err
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT" + userSelectColumns + userJoins + "WHERE LOWER(u.email) = LOWER($1)"

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

var (
	userSortColumns = map[string]string{
		"name":     "u.name",
		"email":    "u.email",
		"phone":    "u.phone",
		"hireDate": "u.hire_date",
	}
	userSearchColumns = map[string]string{
		"name":  "u.name",
		"email": "u.email",
		"phone": "u.phone",
	}
	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, query user.ListUsersRequest) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if f := query.Filter; f != nil {
		if f.Status != "" {
			conditions = append(conditions, fmt.Sprintf("u.status = $%d", argIdx))
			args = append(args, string(f.Status))
			argIdx++
		}
		if f.DeptName != "" {
			conditions = append(conditions, fmt.Sprintf("d.name = $%d", argIdx))
			args = append(args, f.DeptName)
			argIdx++
		}
		if f.RoleName != "" {
			conditions = append(conditions, fmt.Sprintf("r.name = $%d", argIdx))
			args = append(args, f.RoleName)
			argIdx++
		}
	}

	if s := query.Search; s != nil && s.Keyword != "" {
		fields := s.Fields
		if len(fields) == 0 {
			fields = []string{"name", "email", "phone"}
		}
		var ors []string
		for _, field := range fields {
			if col, ok := userSearchColumns[field]; ok {
				ors = append(ors, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, col, argIdx))
			}
		}
		if len(ors) > 0 {
			conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
			args = append(args, "%"+likeEscaper.Replace(s.Keyword)+"%")
			argIdx++
		}
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*)" + userJoins + "WHERE " + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	sortColumn, sortOrder := "u.created_at", "DESC"
	if s := query.Sort; s != nil {
		if col, ok := userSortColumns[s.Field]; ok {
			sortColumn = col
		}
		if strings.ToUpper(s.Order) == "ASC" {
			sortOrder = "ASC"
		}
	}

	listQuery := fmt.Sprintf(`SELECT %s %s
		WHERE %s
		ORDER BY %s %s, u.id
		LIMIT $%d OFFSET $%d
	`, userSelectColumns, userJoins, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, query.Limit, query.Offset())

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
