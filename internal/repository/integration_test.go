//go:build integration

package repository

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/application"
	"github.com/deppfellow/campus-portal/internal/model/joboffer"
	"github.com/deppfellow/campus-portal/internal/model/payment"
	"github.com/deppfellow/campus-portal/internal/model/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupDatabase(t *testing.T) *database.Database {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("portal"),
		tcpostgres.WithUsername("portal"),
		tcpostgres.WithPassword("portal"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := zerolog.New(io.Discard)
	require.NoError(t, database.Migrate(ctx, &logger, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return database.NewFromPool(pool, &logger)
}

func createStudent(t *testing.T, repo *UserRepository, email string) *user.User {
	t.Helper()

	u, err := repo.Create(context.Background(), &user.User{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Awa",
		LastName:     "Diop",
		Role:         model.RoleStudent,
	})
	require.NoError(t, err)
	return u
}

func TestRepositories_Integration(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	applications := NewApplicationRepository(db)
	payments := NewPaymentRepository(db)
	offers := NewJobOfferRepository(db)

	t.Run("duplicate email is a unique violation on users", func(t *testing.T) {
		createStudent(t, users, "dup@example.com")

		_, err := users.Create(ctx, &user.User{
			Email: "dup@example.com", PasswordHash: "hash", FirstName: "A", LastName: "B", Role: model.RoleStudent,
		})

		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr))
		assert.Equal(t, "23505", pgErr.Code)
		assert.Equal(t, "users", pgErr.TableName)
	})

	t.Run("missing row wraps ErrNoRows with the table name", func(t *testing.T) {
		_, err := users.GetByID(ctx, 999999)

		require.ErrorIs(t, err, pgx.ErrNoRows)
		assert.Contains(t, err.Error(), "table:users")
	})

	t.Run("application update honours the guard", func(t *testing.T) {
		owner := createStudent(t, users, "owner@example.com")

		created, err := applications.Create(ctx, owner.ID, &application.CreateApplicationPayload{
			School:         "École Polytechnique",
			Program:        "Informatique",
			EducationLevel: "bac+3",
			Motivation:     strings.Repeat("motivation ", 6),
		})
		require.NoError(t, err)
		assert.Equal(t, application.StatusInProgress, created.Status)

		program := "Data Science"
		denied := errors.New("denied")
		_, err = applications.Update(ctx, created.ID, &application.UpdateApplicationPayload{Program: &program},
			func(*application.Application) error { return denied })
		require.ErrorIs(t, err, denied)

		updated, err := applications.Update(ctx, created.ID, &application.UpdateApplicationPayload{Program: &program}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Data Science", updated.Program)
		assert.Equal(t, created.School, updated.School)

		rows, total, err := applications.ListAll(ctx, &application.ListApplicationsQuery{
			Pagination: model.Pagination{Limit: 10},
			Program:    "data",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "owner@example.com", rows[0].Email)
	})

	t.Run("payment totals only count completed payments", func(t *testing.T) {
		payer := createStudent(t, users, "payer@example.com")
		method := payment.MethodCard

		for i, status := range []payment.Status{payment.StatusComplete, payment.StatusComplete, payment.StatusPending} {
			txn := "TXN_TEST_" + string(rune('A'+i))
			_, err := payments.Create(ctx, &payment.Payment{
				UserID:        payer.ID,
				Amount:        decimal.RequireFromString("150.25"),
				PaymentType:   payment.TypeTuition,
				PaymentMethod: &method,
				TransactionID: &txn,
				Status:        status,
			})
			require.NoError(t, err)
		}

		sum, err := payments.SumCompletedByUser(ctx, payer.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("300.50").Equal(sum), "sum=%s", sum)

		found, err := payments.GetByTransactionID(ctx, "TXN_TEST_A")
		require.NoError(t, err)
		assert.Equal(t, payer.ID, found.UserID)

		now := time.Now().UTC()
		daily, err := payments.DailyTotals(ctx, now.Year(), int(now.Month()))
		require.NoError(t, err)
		require.NotEmpty(t, daily)
		assert.Equal(t, int64(2), daily[len(daily)-1].Count)
	})

	t.Run("job offers start pending and search branches on the query", func(t *testing.T) {
		create := func(company string, typ joboffer.Type, city string) *joboffer.Offer {
			o, err := offers.Create(ctx, &joboffer.CreateOfferPayload{
				Type: typ, Company: company, ContactPerson: "Jean Dupont", Email: "rh@example.com",
				City: &city, Missions: "Développement d'outils internes",
			})
			require.NoError(t, err)
			return o
		}

		pending := create("Initech Dakar", joboffer.TypeInternship, "Dakar")
		assert.Equal(t, joboffer.StatusPending, pending.Status)

		active := create("Initech Thiès", joboffer.TypeJob, "Thiès")
		_, err := offers.UpdateStatus(ctx, active.ID, joboffer.StatusActive)
		require.NoError(t, err)

		byCompany, err := offers.Search(ctx, &joboffer.SearchOffersQuery{Query: "initech"})
		require.NoError(t, err)
		assert.Len(t, byCompany, 2)

		byCity, err := offers.Search(ctx, &joboffer.SearchOffersQuery{City: "dakar"})
		require.NoError(t, err)
		assert.Empty(t, byCity)

		byType, err := offers.Search(ctx, &joboffer.SearchOffersQuery{Type: string(joboffer.TypeJob), City: "thi"})
		require.NoError(t, err)
		require.Len(t, byType, 1)
		assert.Equal(t, active.ID, byType[0].ID)
	})

	t.Run("deleting a user cascades to owned rows", func(t *testing.T) {
		u := createStudent(t, users, "cascade@example.com")
		_, err := applications.Create(ctx, u.ID, &application.CreateApplicationPayload{
			School: "ESP", Program: "Génie civil", EducationLevel: "bac", Motivation: strings.Repeat("x", 60),
		})
		require.NoError(t, err)

		require.NoError(t, users.Delete(ctx, u.ID))

		mine, err := applications.ListByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, mine)
	})
}
