package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/marketbay/marketbay/pkg/auth"
	"github.com/marketbay/marketbay/pkg/rbac"
)

// Service orchestrates the registration, login and profile flows.
type Service struct {
	store       Store
	hasher      auth.PasswordHasher
	tokens      *auth.TokenService
	roles       *rbac.Resolver
	defaultRole string
	log         *logrus.Logger
}

// NewService creates the account service
func NewService(store Store, hasher auth.PasswordHasher, tokens *auth.TokenService, roles *rbac.Resolver, defaultRole string, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		store:       store,
		hasher:      hasher,
		tokens:      tokens,
		roles:       roles,
		defaultRole: defaultRole,
		log:         log,
	}
}

// Register validates the request, rejects duplicates and weak passwords,
// then creates the account and profile atomically. The returned identity
// never includes the password or its hash.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	if verr := ValidateRegister(req); verr != nil {
		return nil, verr
	}

	existing, err := s.store.FindIdentityByDocument(ctx, req.Document)
	if err != nil {
		return nil, fmt.Errorf("duplicate document check: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateDocument
	}

	existingProfile, err := s.store.FindProfileByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("duplicate email check: %w", err)
	}
	if existingProfile != nil {
		return nil, ErrDuplicateEmail
	}

	if werr := ValidatePasswordStrength(req.Password); werr != nil {
		return nil, werr
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roleID, err := s.resolveRegistrationRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	// default to active only when the field is omitted; an explicit
	// false is respected
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	account := &Account{
		Document: req.Document,
		Password: hashed,
		RoleID:   roleID,
		IsActive: isActive,
	}
	profile := &Profile{
		Fullname: req.Fullname,
		Email:    req.Email,
		IsActive: isActive,
	}

	identity, err := s.store.CreateAccountWithProfile(ctx, account, profile)
	if err != nil {
		if errors.Is(err, ErrDuplicateDocument) || errors.Is(err, ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create account with profile: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"account_id": identity.Account.ID,
		"role_id":    identity.Account.RoleID,
	}).Info("account registered")

	info := UserInfoFromIdentity(identity)
	return &info, nil
}

// resolveRegistrationRole picks the explicit role when supplied, otherwise
// the configured default non-privileged role.
func (s *Service) resolveRegistrationRole(ctx context.Context, explicit int64) (int64, error) {
	if explicit != 0 {
		if _, err := s.roles.AssertActive(ctx, explicit); err != nil {
			if errors.Is(err, rbac.ErrRoleNotFound) || errors.Is(err, rbac.ErrRoleInactive) {
				return 0, &ValidationError{Fields: map[string]string{"role_id": "role does not exist or is inactive"}}
			}
			return 0, fmt.Errorf("verify requested role: %w", err)
		}
		return explicit, nil
	}

	role, err := s.store.GetRoleByName(ctx, s.defaultRole)
	if err != nil {
		return 0, fmt.Errorf("resolve default role: %w", err)
	}
	if role == nil {
		return 0, fmt.Errorf("default role %q is not seeded", s.defaultRole)
	}
	return role.ID, nil
}

// Login authenticates a document/password pair and issues a bearer token.
// An unknown document, a document without a linked profile and a wrong
// password all produce the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, *UserInfo, error) {
	if verr := ValidateLogin(req); verr != nil {
		return "", nil, verr
	}

	identity, err := s.store.FindIdentityByDocument(ctx, req.Document)
	if err != nil {
		return "", nil, fmt.Errorf("lookup account: %w", err)
	}
	if identity == nil || identity.Profile == nil {
		return "", nil, ErrInvalidCredentials
	}

	if !identity.Account.IsActive {
		return "", nil, ErrAccountDeactivated
	}

	ok, err := s.hasher.Verify(req.Password, identity.Account.Password)
	if err != nil {
		return "", nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	role, err := s.roles.Resolve(ctx, identity.Account.RoleID)
	if err != nil {
		return "", nil, fmt.Errorf("resolve role: %w", err)
	}
	if role == nil {
		// dangling role reference is a data integrity fault, not a
		// client error
		return "", nil, fmt.Errorf("account %d references missing role %d", identity.Account.ID, identity.Account.RoleID)
	}

	token, err := s.tokens.Issue(identity.Account.ID, identity.Account.Document, identity.Account.RoleID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.WithField("account_id", identity.Account.ID).Info("login successful")

	identity.Role = &Role{ID: role.ID, Name: role.Name, IsActive: role.IsActive}
	info := UserInfoFromIdentity(identity)
	return token, &info, nil
}

// Profile returns the identity for an authenticated account id. Missing
// profile and missing role both report ErrIdentityNotFound.
func (s *Service) Profile(ctx context.Context, accountID int64) (*ProfileInfo, error) {
	identity, err := s.store.GetIdentityByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("fetch identity: %w", err)
	}
	if identity == nil || identity.Profile == nil || identity.Role == nil {
		return nil, ErrIdentityNotFound
	}

	info := ProfileInfoFromIdentity(identity)
	return &info, nil
}

// UpdateProfile applies the supplied profile changes for an authenticated
// account. Omitted fields are left untouched; a changed email must still be
// unique across profiles.
func (s *Service) UpdateProfile(ctx context.Context, accountID int64, req UpdateProfileRequest) (*ProfileInfo, error) {
	if verr := ValidateProfileUpdate(req); verr != nil {
		return nil, verr
	}

	identity, err := s.store.GetIdentityByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("fetch identity: %w", err)
	}
	if identity == nil || identity.Profile == nil || identity.Role == nil {
		return nil, ErrIdentityNotFound
	}

	profile := identity.Profile
	if req.Email != "" && req.Email != profile.Email {
		existing, err := s.store.FindProfileByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("duplicate email check: %w", err)
		}
		if existing != nil {
			return nil, ErrDuplicateEmail
		}
		profile.Email = req.Email
	}
	if req.Fullname != "" {
		profile.Fullname = req.Fullname
	}
	if req.BirthDate != nil {
		profile.BirthDate = req.BirthDate
	}

	updated, err := s.store.UpdateProfile(ctx, profile)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if !updated {
		return nil, ErrIdentityNotFound
	}

	s.log.WithField("account_id", accountID).Info("profile updated")

	info := ProfileInfoFromIdentity(identity)
	return &info, nil
}

// Deactivate soft-deletes an account. Subsequent logins fail with
// ErrAccountDeactivated.
func (s *Service) Deactivate(ctx context.Context, accountID int64) error {
	updated, err := s.store.DeactivateAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("deactivate account: %w", err)
	}
	if !updated {
		return ErrIdentityNotFound
	}
	s.log.WithField("account_id", accountID).Info("account deactivated")
	return nil
}
