package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/apolyakov/reelmark/internal/api"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGetAll_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+name,\s*ts,\s*is_current\s+FROM\s+accounts\s+ORDER\s+BY\s+name\s+ASC$`

	rows := sqlmock.NewRows([]string{"name", "ts", "is_current"}).
		AddRow("alice", int64(100), true).
		AddRow("bob", int64(200), false)
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "alice" || !got[0].IsCurrent || got[1].Name != "bob" {
		t.Fatalf("unexpected accounts: %+v", got)
	}
}

func TestGetAll_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("db down"))

	_, err := repo.GetAll(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+accounts\s+WHERE\s+name\s*=\s*\$1\)$`

	mock.ExpectQuery(q).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if !ok {
		t.Fatal("expected account to exist")
	}
}

func TestUpsertBatch_OneStatementPerAccount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+accounts\s*\(name,\s*ts,\s*is_current\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*ON\s+CONFLICT\s*\(name\)\s+DO\s+UPDATE\s+SET\s+ts\s*=\s*EXCLUDED\.ts,\s*is_current\s*=\s*EXCLUDED\.is_current$`

	mock.ExpectExec(q).WithArgs("alice", int64(100), true).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("bob", int64(200), false).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertBatch(context.Background(), []api.Account{
		{Name: "alice", Timestamp: 100, IsCurrent: true},
		{Name: "bob", Timestamp: 200},
	})
	if err != nil {
		t.Fatalf("UpsertBatch error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
