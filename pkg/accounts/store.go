package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Store is the persistence contract consumed by the service layer.
type Store interface {
	// FindIdentityByDocument fetches the account with its profile and role
	// in one round trip. Returns (nil, nil) when no account matches.
	FindIdentityByDocument(ctx context.Context, document string) (*Identity, error)

	// FindProfileByEmail returns (nil, nil) when no profile has the email.
	FindProfileByEmail(ctx context.Context, email string) (*Profile, error)

	// GetIdentityByAccountID fetches the account with its profile and role
	// in one round trip. Returns (nil, nil) when no account matches.
	GetIdentityByAccountID(ctx context.Context, accountID int64) (*Identity, error)

	// GetRoleByName returns (nil, nil) when no role has the name.
	GetRoleByName(ctx context.Context, name string) (*Role, error)

	// CreateAccountWithProfile creates the account and its linked profile
	// atomically: both succeed or both are rolled back.
	CreateAccountWithProfile(ctx context.Context, account *Account, profile *Profile) (*Identity, error)

	// UpdateProfile persists changed profile fields. Returns false when no
	// row was updated.
	UpdateProfile(ctx context.Context, profile *Profile) (bool, error)

	// DeactivateAccount soft-deletes an account. Returns false when no row
	// was updated.
	DeactivateAccount(ctx context.Context, accountID int64) (bool, error)
}

// PostgresStore implements Store over PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new account store
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const identityColumns = `
	a.id, a.document, a.password, a.role_id, a.is_active, a.created_at, a.updated_at,
	p.id, p.account_id, p.fullname, p.email, p.birth_date, p.is_active,
	r.id, r.name, r.is_active
`

// FindIdentityByDocument fetches account, profile and role in one query.
func (s *PostgresStore) FindIdentityByDocument(ctx context.Context, document string) (*Identity, error) {
	query := `
		SELECT ` + identityColumns + `
		FROM accounts a
		LEFT JOIN profiles p ON p.account_id = a.id
		LEFT JOIN roles r ON r.id = a.role_id
		WHERE a.document = $1
	`
	identity, err := s.scanIdentity(s.db.QueryRowContext(ctx, query, document))
	if err != nil {
		return nil, fmt.Errorf("failed to find account by document: %w", err)
	}
	return identity, nil
}

// GetIdentityByAccountID fetches account, profile and role in one query.
func (s *PostgresStore) GetIdentityByAccountID(ctx context.Context, accountID int64) (*Identity, error) {
	query := `
		SELECT ` + identityColumns + `
		FROM accounts a
		LEFT JOIN profiles p ON p.account_id = a.id
		LEFT JOIN roles r ON r.id = a.role_id
		WHERE a.id = $1
	`
	identity, err := s.scanIdentity(s.db.QueryRowContext(ctx, query, accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}
	return identity, nil
}

// scanIdentity scans a joined account/profile/role row. Profile and role
// columns come from LEFT JOINs and may be NULL.
func (s *PostgresStore) scanIdentity(row *sql.Row) (*Identity, error) {
	var identity Identity
	var profileID, profileAccountID, roleID sql.NullInt64
	var fullname, email, roleName sql.NullString
	var birthDate sql.NullTime
	var profileActive, roleActive sql.NullBool

	err := row.Scan(
		&identity.Account.ID,
		&identity.Account.Document,
		&identity.Account.Password,
		&identity.Account.RoleID,
		&identity.Account.IsActive,
		&identity.Account.CreatedAt,
		&identity.Account.UpdatedAt,
		&profileID,
		&profileAccountID,
		&fullname,
		&email,
		&birthDate,
		&profileActive,
		&roleID,
		&roleName,
		&roleActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if profileID.Valid {
		profile := &Profile{
			ID:        profileID.Int64,
			AccountID: profileAccountID.Int64,
			Fullname:  fullname.String,
			Email:     email.String,
			IsActive:  profileActive.Bool,
		}
		if birthDate.Valid {
			d := birthDate.Time
			profile.BirthDate = &d
		}
		identity.Profile = profile
	}
	if roleID.Valid {
		identity.Role = &Role{
			ID:       roleID.Int64,
			Name:     roleName.String,
			IsActive: roleActive.Bool,
		}
	}
	return &identity, nil
}

// FindProfileByEmail retrieves a profile by email
func (s *PostgresStore) FindProfileByEmail(ctx context.Context, email string) (*Profile, error) {
	query := `
		SELECT id, account_id, fullname, email, birth_date, is_active, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`
	var profile Profile
	var birthDate sql.NullTime
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&profile.ID,
		&profile.AccountID,
		&profile.Fullname,
		&profile.Email,
		&birthDate,
		&profile.IsActive,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by email: %w", err)
	}
	if birthDate.Valid {
		d := birthDate.Time
		profile.BirthDate = &d
	}
	return &profile, nil
}

// GetRoleByName retrieves a role by its unique name
func (s *PostgresStore) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	query := `SELECT id, name, is_active FROM roles WHERE name = $1`
	var role Role
	err := s.db.QueryRowContext(ctx, query, name).Scan(&role.ID, &role.Name, &role.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return &role, nil
}

// CreateAccountWithProfile creates an account and its profile in a single
// transaction so a reader can never observe an account without its profile.
func (s *PostgresStore) CreateAccountWithProfile(ctx context.Context, account *Account, profile *Profile) (*Identity, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO accounts (document, password, role_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`, account.Document, account.Password, account.RoleID, account.IsActive, now).Scan(&account.ID)
	if err != nil {
		return nil, mapUniqueViolation(err, "failed to create account")
	}

	profile.AccountID = account.ID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO profiles (account_id, fullname, email, birth_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`, profile.AccountID, profile.Fullname, profile.Email, profile.BirthDate, profile.IsActive, now).Scan(&profile.ID)
	if err != nil {
		return nil, mapUniqueViolation(err, "failed to create profile")
	}

	var role Role
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, is_active FROM roles WHERE id = $1`, account.RoleID,
	).Scan(&role.ID, &role.Name, &role.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to load role for new account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	account.CreatedAt = now
	account.UpdatedAt = now
	return &Identity{Account: *account, Profile: profile, Role: &role}, nil
}

// UpdateProfile writes the mutable profile fields back to the store.
func (s *PostgresStore) UpdateProfile(ctx context.Context, profile *Profile) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE profiles
		SET fullname = $1, email = $2, birth_date = $3, updated_at = NOW()
		WHERE id = $4
	`, profile.Fullname, profile.Email, profile.BirthDate, profile.ID)
	if err != nil {
		return false, mapUniqueViolation(err, "failed to update profile")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows > 0, nil
}

// DeactivateAccount marks an account inactive instead of deleting it
func (s *PostgresStore) DeactivateAccount(ctx context.Context, accountID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET is_active = FALSE, updated_at = NOW() WHERE id = $1
	`, accountID)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows > 0, nil
}

// mapUniqueViolation converts Postgres unique-constraint violations into the
// duplicate errors the flows report. The service checks for duplicates before
// inserting, but concurrent registrations can still race to the constraint.
func mapUniqueViolation(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "accounts_document_key":
			return ErrDuplicateDocument
		case "profiles_email_key":
			return ErrDuplicateEmail
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
