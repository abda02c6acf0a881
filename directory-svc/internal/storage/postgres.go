package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"business-directory/directory-svc/internal/domain"

	"github.com/google/uuid"
)

// schema requires the cube and earthdistance extensions for the radius index.
var schema = []string{
	"CREATE EXTENSION IF NOT EXISTS cube",
	"CREATE EXTENSION IF NOT EXISTS earthdistance",
	"CREATE EXTENSION IF NOT EXISTS pgcrypto",
	`CREATE TABLE IF NOT EXISTS businesses (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		location TEXT NOT NULL,
		latitude DOUBLE PRECISION CHECK (latitude BETWEEN -90 AND 90),
		longitude DOUBLE PRECISION CHECK (longitude BETWEEN -180 AND 180),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	"CREATE INDEX IF NOT EXISTS businesses_created_at_idx ON businesses (created_at DESC)",
	`CREATE INDEX IF NOT EXISTS businesses_earth_idx ON businesses
		USING gist (ll_to_earth(latitude, longitude))
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		business_id UUID NOT NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	"CREATE INDEX IF NOT EXISTS reviews_business_idx ON reviews (business_id, created_at DESC)",
}

const businessColumns = "id, name, description, category, location, latitude, longitude, created_at"

type PostgresRepository struct {
	DB      *sql.DB
	timeout time.Duration
}

func NewPostgresRepository(db *sql.DB, timeout time.Duration) *PostgresRepository {
	return &PostgresRepository{DB: db, timeout: timeout}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func (r *PostgresRepository) ListBusinesses(ctx context.Context, filter domain.BusinessFilter) ([]domain.Business, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args := listBusinessesQuery(filter)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	businesses := []domain.Business{}
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, *business)
	}
	return businesses, rows.Err()
}

func (r *PostgresRepository) GetBusiness(ctx context.Context, id string) (*domain.Business, error) {
	if !validID(id) {
		return nil, domain.ErrBusinessNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, "SELECT "+businessColumns+" FROM businesses WHERE id = $1", id)
	business, err := scanBusiness(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBusinessNotFound
	}
	return business, err
}

func (r *PostgresRepository) InsertBusiness(ctx context.Context, business *domain.Business) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	lat, lng := pointArgs(business.Coordinates)
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO businesses (name, description, category, location, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, business.Name, business.Description, business.Category, business.Location, lat, lng).
		Scan(&business.ID, &business.CreatedAt)
}

func (r *PostgresRepository) UpdateBusiness(ctx context.Context, business *domain.Business) error {
	if !validID(business.ID) {
		return domain.ErrBusinessNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	lat, lng := pointArgs(business.Coordinates)
	result, err := r.DB.ExecContext(ctx, `
		UPDATE businesses
		SET name = $1, description = $2, category = $3, location = $4, latitude = $5, longitude = $6
		WHERE id = $7
	`, business.Name, business.Description, business.Category, business.Location, lat, lng, business.ID)
	if err != nil {
		return err
	}
	return expectAffected(result, domain.ErrBusinessNotFound)
}

func (r *PostgresRepository) DeleteBusiness(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrBusinessNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "DELETE FROM businesses WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectAffected(result, domain.ErrBusinessNotFound)
}

func (r *PostgresRepository) ListBusinessReviews(ctx context.Context, businessID string) ([]domain.Review, error) {
	reviews := []domain.Review{}
	if !validID(businessID) {
		return reviews, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, business_id, rating, comment, created_at
		FROM reviews
		WHERE business_id = $1
		ORDER BY created_at DESC
	`, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.ID, &review.BusinessID, &review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	if !validID(id) {
		return nil, domain.ErrReviewNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var review domain.Review
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, business_id, rating, comment, created_at FROM reviews WHERE id = $1
	`, id).Scan(&review.ID, &review.BusinessID, &review.Rating, &review.Comment, &review.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *PostgresRepository) InsertReview(ctx context.Context, review *domain.Review) error {
	if !validID(review.BusinessID) {
		return domain.ErrBusinessNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO reviews (business_id, rating, comment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, review.BusinessID, review.Rating, review.Comment).Scan(&review.ID, &review.CreatedAt)
}

func (r *PostgresRepository) UpdateReview(ctx context.Context, review *domain.Review) error {
	if !validID(review.ID) {
		return domain.ErrReviewNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, `
		UPDATE reviews SET rating = $1, comment = $2 WHERE id = $3
	`, review.Rating, review.Comment, review.ID)
	if err != nil {
		return err
	}
	return expectAffected(result, domain.ErrReviewNotFound)
}

func (r *PostgresRepository) DeleteReview(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrReviewNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectAffected(result, domain.ErrReviewNotFound)
}

func (r *PostgresRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// listBusinessesQuery uses earth_box to hit the GiST index and earth_distance
// to trim the box corners down to the exact radius.
func listBusinessesQuery(filter domain.BusinessFilter) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)

	if filter.Near != nil {
		args = append(args, filter.Near.Lat, filter.Near.Lng, filter.Near.RadiusKm*1000)
		clauses = append(clauses,
			"latitude IS NOT NULL AND longitude IS NOT NULL",
			"earth_box(ll_to_earth($1::float8, $2::float8), $3::float8) @> ll_to_earth(latitude, longitude)",
			"earth_distance(ll_to_earth($1::float8, $2::float8), ll_to_earth(latitude, longitude)) <= $3::float8",
		)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(name ILIKE $%[1]d OR description ILIKE $%[1]d OR category ILIKE $%[1]d OR location ILIKE $%[1]d)", n))
	}

	query := "SELECT " + businessColumns + " FROM businesses"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"
	return query, args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusiness(row rowScanner) (*domain.Business, error) {
	var (
		business domain.Business
		lat, lng sql.NullFloat64
	)
	err := row.Scan(&business.ID, &business.Name, &business.Description, &business.Category,
		&business.Location, &lat, &lng, &business.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		point := domain.NewPoint(lat.Float64, lng.Float64)
		business.Coordinates = &point
	}
	return &business, nil
}

func pointArgs(point *domain.GeoPoint) (interface{}, interface{}) {
	if point == nil {
		return nil, nil
	}
	return point.Latitude(), point.Longitude()
}

func expectAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return strings.TrimSpace(stmt[:i])
	}
	return stmt
}
