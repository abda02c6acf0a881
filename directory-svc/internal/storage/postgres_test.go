package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"business-directory/directory-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	businessUUID = "0b9e6a2c-5d1f-4f43-9a57-0c1c2f6b8e11"
	reviewUUID   = "7f3c1e22-8a4b-4d2e-b1f0-3e5d9c7a6b44"
)

var businessRowColumns = []string{"id", "name", "description", "category", "location", "latitude", "longitude", "created_at"}

func newPostgresMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db, time.Second), mock
}

func TestPostgresRepository_InsertBusiness(t *testing.T) {
	repo, mock := newPostgresMock(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	point := domain.NewPoint(45.52, -122.68)
	business := &domain.Business{
		Name: "Corner Cafe", Description: "Espresso", Category: "Cafe", Location: "Portland",
		Coordinates: &point,
	}

	mock.ExpectQuery("INSERT INTO businesses").
		WithArgs("Corner Cafe", "Espresso", "Cafe", "Portland", 45.52, -122.68).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(businessUUID, created))

	require.NoError(t, repo.InsertBusiness(context.Background(), business))
	assert.Equal(t, businessUUID, business.ID)
	assert.Equal(t, created, business.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetBusiness(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		prepareMocks  func(mock sqlmock.Sqlmock)
		expectedError error
		expectPoint   bool
	}{
		{
			name: "found_with_coordinates",
			id:   businessUUID,
			prepareMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM businesses WHERE id = \\$1").
					WithArgs(businessUUID).
					WillReturnRows(sqlmock.NewRows(businessRowColumns).
						AddRow(businessUUID, "Corner Cafe", "Espresso", "Cafe", "Portland", 45.52, -122.68, time.Now()))
			},
			expectPoint: true,
		},
		{
			name: "found_without_coordinates",
			id:   businessUUID,
			prepareMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM businesses WHERE id = \\$1").
					WithArgs(businessUUID).
					WillReturnRows(sqlmock.NewRows(businessRowColumns).
						AddRow(businessUUID, "Corner Cafe", "Espresso", "Cafe", "Portland", nil, nil, time.Now()))
			},
		},
		{
			name: "absent",
			id:   businessUUID,
			prepareMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM businesses WHERE id = \\$1").
					WithArgs(businessUUID).
					WillReturnRows(sqlmock.NewRows(businessRowColumns))
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:          "malformed_id_never_queries",
			id:            "not-a-uuid",
			prepareMocks:  func(mock sqlmock.Sqlmock) {},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := newPostgresMock(t)
			testCase.prepareMocks(mock)

			business, err := repo.GetBusiness(context.Background(), testCase.id)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Corner Cafe", business.Name)
				if testCase.expectPoint {
					require.NotNil(t, business.Coordinates)
					assert.Equal(t, []float64{-122.68, 45.52}, business.Coordinates.Coordinates)
				} else {
					assert.Nil(t, business.Coordinates)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_ListBusinesses(t *testing.T) {
	repo, mock := newPostgresMock(t)
	filter := domain.BusinessFilter{Near: &domain.Circle{Lat: 45.5, Lng: -122.6, RadiusKm: 5}, Search: "cafe"}

	mock.ExpectQuery("earth_box.*ILIKE.*ORDER BY created_at DESC").
		WithArgs(45.5, -122.6, 5000.0, "%cafe%").
		WillReturnRows(sqlmock.NewRows(businessRowColumns).
			AddRow(businessUUID, "Corner Cafe", "Espresso", "Cafe", "Portland", 45.52, -122.68, time.Now()))

	businesses, err := repo.ListBusinesses(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, businesses, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListBusinesses_EmptyIsNotNil(t *testing.T) {
	repo, mock := newPostgresMock(t)
	mock.ExpectQuery("SELECT .* FROM businesses ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(businessRowColumns))

	businesses, err := repo.ListBusinesses(context.Background(), domain.BusinessFilter{})
	require.NoError(t, err)
	assert.NotNil(t, businesses)
	assert.Empty(t, businesses)
}

func TestListBusinessesQuery(t *testing.T) {
	tests := []struct {
		name         string
		filter       domain.BusinessFilter
		contains     []string
		excludes     []string
		expectedArgs []interface{}
	}{
		{
			name:         "no_filter",
			filter:       domain.BusinessFilter{},
			excludes:     []string{"WHERE"},
			expectedArgs: nil,
		},
		{
			name:         "search_only_escapes_wildcards",
			filter:       domain.BusinessFilter{Search: "50%_off"},
			contains:     []string{"name ILIKE $1", "location ILIKE $1"},
			excludes:     []string{"earth_box"},
			expectedArgs: []interface{}{`%50\%\_off%`},
		},
		{
			name:         "geo_and_search",
			filter:       domain.BusinessFilter{Near: &domain.Circle{Lat: 1, Lng: 2, RadiusKm: 10}, Search: "cafe"},
			contains:     []string{"earth_box(ll_to_earth($1::float8, $2::float8), $3::float8)", "earth_distance", "description ILIKE $4"},
			expectedArgs: []interface{}{1.0, 2.0, 10000.0, "%cafe%"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			query, args := listBusinessesQuery(testCase.filter)
			for _, s := range testCase.contains {
				assert.Contains(t, query, s)
			}
			for _, s := range testCase.excludes {
				assert.NotContains(t, query, s)
			}
			assert.Equal(t, testCase.expectedArgs, args)
			assert.Contains(t, query, "ORDER BY created_at DESC")
		})
	}
}

func TestPostgresRepository_UpdateBusiness(t *testing.T) {
	repo, mock := newPostgresMock(t)
	business := &domain.Business{ID: businessUUID, Name: "n", Description: "d", Category: "c", Location: "l"}

	mock.ExpectExec("UPDATE businesses").
		WithArgs("n", "d", "c", "l", nil, nil, businessUUID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateBusiness(context.Background(), business)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteBusiness_KeepsReviews(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM businesses WHERE id = $1")).
		WithArgs(businessUUID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteBusiness(context.Background(), businessUUID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Reviews(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)

	t.Run("insert", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		review := &domain.Review{BusinessID: businessUUID, Rating: 4, Comment: "Great pastries here"}

		mock.ExpectQuery("INSERT INTO reviews").
			WithArgs(businessUUID, 4, "Great pastries here").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(reviewUUID, created))

		require.NoError(t, repo.InsertReview(ctx, review))
		assert.Equal(t, reviewUUID, review.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list_newest_first", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectQuery("SELECT .* FROM reviews\\s+WHERE business_id = \\$1\\s+ORDER BY created_at DESC").
			WithArgs(businessUUID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "rating", "comment", "created_at"}).
				AddRow(reviewUUID, businessUUID, 4, "Great pastries here", created))

		reviews, err := repo.ListBusinessReviews(ctx, businessUUID)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, 4, reviews[0].Rating)
	})

	t.Run("list_malformed_business_id", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		reviews, err := repo.ListBusinessReviews(ctx, "xyz")
		require.NoError(t, err)
		assert.Empty(t, reviews)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete_absent", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectExec("DELETE FROM reviews").WithArgs(reviewUUID).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteReview(ctx, reviewUUID), domain.ErrNotFound)
	})
}

func TestPostgresRepository_EnsureSchema(t *testing.T) {
	repo, mock := newPostgresMock(t)
	for range schema {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
