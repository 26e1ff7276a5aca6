package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists applications.
type Repository interface {
	Create(ctx context.Context, app Application) error
	Find(ctx context.Context, f Filter) ([]Application, error)
	FindByID(ctx context.Context, id string) (Application, error)
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed application repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const applicationColumns = `id, name, phone_number, primary_contact_number, address,
        date_of_birth, gender, loan_category, loan_category_other,
        referral_name1, referral_phone1, referral_name2, referral_phone2, submitted_at`

// Create inserts a new application record.
func (r *PostgresRepository) Create(ctx context.Context, app Application) error {
	appID, err := uuid.Parse(app.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO applications (`+applicationColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		appID, app.Name, app.PhoneNumber, app.PrimaryContactNumber, app.Address,
		app.DateOfBirth.UTC(), app.Gender, app.LoanCategory, app.LoanCategoryOther,
		app.ReferralName1, app.ReferralPhone1, app.ReferralName2, app.ReferralPhone2,
		app.SubmittedAt.UTC())
	return err
}

// searchColumns are the eight text fields the free-text search spans.
var searchColumns = []string{
	"name", "phone_number", "primary_contact_number", "address",
	"referral_name1", "referral_name2", "referral_phone1", "referral_phone2",
}

// buildListQuery compiles a Filter into a parameterized SELECT. Every predicate
// binds through a positional argument; the search term is additionally escaped
// so LIKE metacharacters match literally.
func buildListQuery(f Filter) (string, []any) {
	var (
		sb    strings.Builder
		conds []string
		args  []any
	)
	sb.WriteString(`SELECT ` + applicationColumns + ` FROM applications`)

	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		ors := make([]string, len(searchColumns))
		for i, col := range searchColumns {
			ors[i] = fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, col, len(args))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if f.Gender != "" {
		args = append(args, f.Gender)
		conds = append(conds, fmt.Sprintf("gender = $%d", len(args)))
	}
	if f.LoanCategory != "" {
		args = append(args, f.LoanCategory)
		conds = append(conds, fmt.Sprintf("loan_category = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, f.From.UTC())
		conds = append(conds, fmt.Sprintf("submitted_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, f.To.UTC())
		conds = append(conds, fmt.Sprintf("submitted_at <= $%d", len(args)))
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY submitted_at DESC")
	return sb.String(), args
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

// Find returns all applications matching the filter, most recent first.
func (r *PostgresRepository) Find(ctx context.Context, f Filter) ([]Application, error) {
	query, args := buildListQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// FindByID fetches a single application. A malformed identifier behaves the
// same as an absent record.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Application, error) {
	appID, err := uuid.Parse(id)
	if err != nil {
		return Application{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, appID)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

// Delete permanently removes the application.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	appID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, appID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (Application, error) {
	var (
		id          uuid.UUID
		dob         time.Time
		submittedAt time.Time
		app         Application
	)
	err := row.Scan(&id, &app.Name, &app.PhoneNumber, &app.PrimaryContactNumber, &app.Address,
		&dob, &app.Gender, &app.LoanCategory, &app.LoanCategoryOther,
		&app.ReferralName1, &app.ReferralPhone1, &app.ReferralName2, &app.ReferralPhone2,
		&submittedAt)
	if err != nil {
		return Application{}, err
	}
	app.ID = id.String()
	app.DateOfBirth = dob.UTC()
	app.SubmittedAt = submittedAt.UTC()
	return app, nil
}
