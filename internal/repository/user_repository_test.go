package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/auxfresh/receipt-generator/internal/models"
)

func newUserRepoWithMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewUserRepository(db), mock, db
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505"})

	now := time.Now().UTC()
	err := repo.Create(&models.User{
		ID: "usr-001", Name: "Jane Doe", Email: "jane@example.com",
		PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	})
	if err == nil || err.Error() != "email already exists" {
		t.Fatalf("want email already exists, got %v", err)
	}
}

func TestGetByEmailNotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail("ghost@example.com")
	if err == nil || err.Error() != "user not found" {
		t.Fatalf("want user not found, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("usr-001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow("usr-001", "Jane Doe", "jane@example.com", "hash", now, now))

	user, err := repo.GetByID("usr-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}
