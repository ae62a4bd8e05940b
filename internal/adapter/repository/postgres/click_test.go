package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortlink/internal/entity"
)

type ClickRepositoryTestSuite struct {
	suite.Suite
	errUnknown error
	urlColumns []string
	clickedAt  time.Time
	mock       sqlmock.Sqlmock
	repo       *ClickRepository
}

func (suite *ClickRepositoryTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
	suite.urlColumns = []string{"id", "short_code", "original_url", "owner_id", "click_count", "created_at"}
	suite.clickedAt = time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC)
}

func (suite *ClickRepositoryTestSuite) SetupSubTest() {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}
	suite.T().Cleanup(func() {
		mockDB.Close()
	})

	suite.mock = mock
	suite.repo = NewClickRepository(sqlx.NewDb(mockDB, "sqlmock"))
}

func (suite *ClickRepositoryTestSuite) TearDownSubTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *ClickRepositoryTestSuite) TestRecord() {
	suite.Run("begin error", func() {
		suite.mock.ExpectBegin().WillReturnError(suite.errUnknown)

		url, err := suite.repo.Record(context.Background(), "abc12345", suite.clickedAt)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrStorageUnavailable)
		suite.Nil(url)
	})

	suite.Run("url not found", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectQuery(`UPDATE urls SET click_count = click_count \+ 1`).
			WithArgs("abc12345").
			WillReturnError(sql.ErrNoRows)
		suite.mock.ExpectRollback()

		url, err := suite.repo.Record(context.Background(), "abc12345", suite.clickedAt)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(url)
	})

	suite.Run("insert click error", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectQuery(`UPDATE urls SET click_count = click_count \+ 1`).
			WithArgs("abc12345").
			WillReturnRows(sqlmock.NewRows(suite.urlColumns).
				AddRow(1, "abc12345", "https://example.com", "user-1", 1, suite.clickedAt))
		suite.mock.ExpectExec(`INSERT INTO clicks`).
			WithArgs(int64(1), suite.clickedAt).
			WillReturnError(suite.errUnknown)
		suite.mock.ExpectRollback()

		url, err := suite.repo.Record(context.Background(), "abc12345", suite.clickedAt)

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.ErrorIs(err, entity.ErrStorageUnavailable)
		suite.Nil(url)
	})

	suite.Run("commit error", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectQuery(`UPDATE urls SET click_count = click_count \+ 1`).
			WithArgs("abc12345").
			WillReturnRows(sqlmock.NewRows(suite.urlColumns).
				AddRow(1, "abc12345", "https://example.com", "user-1", 1, suite.clickedAt))
		suite.mock.ExpectExec(`INSERT INTO clicks`).
			WithArgs(int64(1), suite.clickedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		suite.mock.ExpectCommit().WillReturnError(suite.errUnknown)

		url, err := suite.repo.Record(context.Background(), "abc12345", suite.clickedAt)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrStorageUnavailable)
		suite.Nil(url)
	})

	suite.Run("success", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectQuery(`UPDATE urls SET click_count = click_count \+ 1`).
			WithArgs("abc12345").
			WillReturnRows(sqlmock.NewRows(suite.urlColumns).
				AddRow(1, "abc12345", "https://example.com", "user-1", 7, suite.clickedAt))
		suite.mock.ExpectExec(`INSERT INTO clicks`).
			WithArgs(int64(1), suite.clickedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		suite.mock.ExpectCommit()

		url, err := suite.repo.Record(context.Background(), "abc12345", suite.clickedAt)

		suite.NoError(err)
		suite.NotNil(url)
		suite.Equal("https://example.com", url.OriginalURL)
		suite.Equal(int64(7), url.ClickCount)
	})
}

func (suite *ClickRepositoryTestSuite) TestCountDailyByShortCode() {
	from := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM clicks c JOIN urls u (.+) WHERE u.short_code`).
			WithArgs("abc12345", from, to.AddDate(0, 0, 1)).
			WillReturnError(suite.errUnknown)

		counts, err := suite.repo.CountDailyByShortCode(context.Background(), "abc12345", from, to)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrStorageUnavailable)
		suite.Nil(counts)
	})

	suite.Run("success", func() {
		rows := sqlmock.NewRows([]string{"day", "count"}).
			AddRow(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), 2).
			AddRow(time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC), 1)

		suite.mock.ExpectQuery(`SELECT (.+) FROM clicks c JOIN urls u (.+) WHERE u.short_code`).
			WithArgs("abc12345", from, to.AddDate(0, 0, 1)).
			WillReturnRows(rows)

		counts, err := suite.repo.CountDailyByShortCode(context.Background(), "abc12345", from, to)

		suite.NoError(err)
		suite.Equal([]entity.DailyCount{
			{Date: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), Count: 2},
			{Date: time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC), Count: 1},
		}, counts)
	})
}

func (suite *ClickRepositoryTestSuite) TestCountDailyByOwner() {
	from := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)

	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM clicks c JOIN urls u (.+) WHERE u.owner_id`).
			WithArgs("user-1", from, from.AddDate(0, 0, 1)).
			WillReturnError(suite.errUnknown)

		counts, err := suite.repo.CountDailyByOwner(context.Background(), "user-1", from, to)

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(counts)
	})

	suite.Run("success", func() {
		rows := sqlmock.NewRows([]string{"day", "count"}).
			AddRow(from, 8)

		suite.mock.ExpectQuery(`SELECT (.+) FROM clicks c JOIN urls u (.+) WHERE u.owner_id`).
			WithArgs("user-1", from, from.AddDate(0, 0, 1)).
			WillReturnRows(rows)

		counts, err := suite.repo.CountDailyByOwner(context.Background(), "user-1", from, to)

		suite.NoError(err)
		suite.Equal([]entity.DailyCount{{Date: from, Count: 8}}, counts)
	})
}

func TestClickRepository(t *testing.T) {
	suite.Run(t, new(ClickRepositoryTestSuite))
}
