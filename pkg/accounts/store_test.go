package accounts

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identityTestColumns = []string{
	"id", "document", "password", "role_id", "is_active", "created_at", "updated_at",
	"p_id", "p_account_id", "p_fullname", "p_email", "p_birth_date", "p_is_active",
	"r_id", "r_name", "r_is_active",
}

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func TestFindIdentityByDocument_Found(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows(identityTestColumns).AddRow(
		1, "D-1001", "$2a$12$hash", 2, true, now, now,
		10, 1, "Ada Lovelace", "ada@example.com", nil, true,
		2, "User", true,
	)
	mock.ExpectQuery("SELECT (.+) FROM accounts a").WithArgs("D-1001").WillReturnRows(rows)

	identity, err := store.FindIdentityByDocument(context.Background(), "D-1001")
	require.NoError(t, err)
	require.NotNil(t, identity)

	assert.Equal(t, int64(1), identity.Account.ID)
	assert.Equal(t, "D-1001", identity.Account.Document)
	assert.Equal(t, "$2a$12$hash", identity.Account.Password)
	require.NotNil(t, identity.Profile)
	assert.Equal(t, "Ada Lovelace", identity.Profile.Fullname)
	assert.Nil(t, identity.Profile.BirthDate)
	require.NotNil(t, identity.Role)
	assert.Equal(t, "User", identity.Role.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindIdentityByDocument_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM accounts a").WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	identity, err := store.FindIdentityByDocument(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestFindIdentityByDocument_AccountWithoutProfile(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows(identityTestColumns).AddRow(
		1, "D-1001", "$2a$12$hash", 2, true, now, now,
		nil, nil, nil, nil, nil, nil,
		2, "User", true,
	)
	mock.ExpectQuery("SELECT (.+) FROM accounts a").WithArgs("D-1001").WillReturnRows(rows)

	identity, err := store.FindIdentityByDocument(context.Background(), "D-1001")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Nil(t, identity.Profile)
	assert.NotNil(t, identity.Role)
}

func TestFindProfileByEmail(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "account_id", "fullname", "email", "birth_date", "is_active", "created_at", "updated_at"}).
		AddRow(10, 1, "Ada Lovelace", "ada@example.com", nil, true, now, now)
	mock.ExpectQuery("SELECT (.+) FROM profiles").WithArgs("ada@example.com").WillReturnRows(rows)

	profile, err := store.FindProfileByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Ada Lovelace", profile.Fullname)

	missing := mock.ExpectQuery("SELECT (.+) FROM profiles").WithArgs("nobody@example.com")
	missing.WillReturnError(sql.ErrNoRows)

	profile, err = store.FindProfileByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestCreateAccountWithProfile_CommitsBoth(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs("D-1001", "$2a$12$hash", int64(2), true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(int64(1), "Ada Lovelace", "ada@example.com", nil, true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery("SELECT id, name, is_active FROM roles").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow(2, "User", true))
	mock.ExpectCommit()

	account := &Account{Document: "D-1001", Password: "$2a$12$hash", RoleID: 2, IsActive: true}
	profile := &Profile{Fullname: "Ada Lovelace", Email: "ada@example.com", IsActive: true}

	identity, err := store.CreateAccountWithProfile(context.Background(), account, profile)
	require.NoError(t, err)
	assert.Equal(t, int64(1), identity.Account.ID)
	assert.Equal(t, int64(10), identity.Profile.ID)
	assert.Equal(t, int64(1), identity.Profile.AccountID)
	assert.Equal(t, "User", identity.Role.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccountWithProfile_RollsBackOnProfileFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs("D-1001", "$2a$12$hash", int64(2), true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO profiles").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "profiles_email_key"})
	mock.ExpectRollback()

	account := &Account{Document: "D-1001", Password: "$2a$12$hash", RoleID: 2, IsActive: true}
	profile := &Profile{Fullname: "Ada Lovelace", Email: "ada@example.com", IsActive: true}

	_, err := store.CreateAccountWithProfile(context.Background(), account, profile)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccountWithProfile_DuplicateDocumentRace(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_document_key"})
	mock.ExpectRollback()

	account := &Account{Document: "D-1001", Password: "$2a$12$hash", RoleID: 2, IsActive: true}
	profile := &Profile{Fullname: "Ada Lovelace", Email: "ada@example.com", IsActive: true}

	_, err := store.CreateAccountWithProfile(context.Background(), account, profile)
	assert.ErrorIs(t, err, ErrDuplicateDocument)
}

func TestUpdateProfile_Store(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE profiles").
		WithArgs("Ada King", "ada.king@example.com", nil, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := store.UpdateProfile(context.Background(), &Profile{
		ID:       10,
		Fullname: "Ada King",
		Email:    "ada.king@example.com",
	})
	require.NoError(t, err)
	assert.True(t, updated)

	mock.ExpectExec("UPDATE profiles").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "profiles_email_key"})

	_, err = store.UpdateProfile(context.Background(), &Profile{ID: 10, Email: "taken@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestDeactivateAccount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE accounts SET is_active = FALSE").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := store.DeactivateAccount(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, updated)

	mock.ExpectExec("UPDATE accounts SET is_active = FALSE").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err = store.DeactivateAccount(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestGetRoleByName(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, name, is_active FROM roles").
		WithArgs("User").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow(2, "User", true))

	role, err := store.GetRoleByName(context.Background(), "User")
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, int64(2), role.ID)

	mock.ExpectQuery("SELECT id, name, is_active FROM roles").
		WithArgs("Ghost").
		WillReturnError(sql.ErrNoRows)

	role, err = store.GetRoleByName(context.Background(), "Ghost")
	require.NoError(t, err)
	assert.Nil(t, role)
}
