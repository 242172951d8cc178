package accounts

import (
	"regexp"
	"time"
	"unicode"
)

// emailPattern matches the same loose shape the API has always accepted:
// something@something.tld with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// RegisterRequest is the registration input.
type RegisterRequest struct {
	Document string `json:"document"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	// RoleID optionally assigns an explicit role; the default
	// non-privileged role applies when zero.
	RoleID int64 `json:"role_id,omitempty"`
	// IsActive defaults to true only when omitted; an explicit false is
	// respected.
	IsActive *bool `json:"is_active,omitempty"`
}

// LoginRequest is the login input.
type LoginRequest struct {
	Document string `json:"document"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the mutable profile fields. Omitted fields
// keep their stored values.
type UpdateProfileRequest struct {
	Fullname  string     `json:"fullname,omitempty"`
	Email     string     `json:"email,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// ValidateRegister checks field presence and email format. It returns nil
// when the request is valid.
func ValidateRegister(req RegisterRequest) *ValidationError {
	fields := make(map[string]string)
	if req.Document == "" {
		fields["document"] = "document is required"
	}
	if req.Password == "" {
		fields["password"] = "password is required"
	}
	if req.Fullname == "" {
		fields["fullname"] = "fullname is required"
	}
	if req.Email == "" {
		fields["email"] = "email is required"
	} else if !emailPattern.MatchString(req.Email) {
		fields["email"] = "email is not valid"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateLogin checks field presence. It returns nil when valid.
func ValidateLogin(req LoginRequest) *ValidationError {
	fields := make(map[string]string)
	if req.Document == "" {
		fields["document"] = "document is required"
	}
	if req.Password == "" {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateProfileUpdate requires at least one updatable field and checks the
// email format when one is supplied. It returns nil when valid.
func ValidateProfileUpdate(req UpdateProfileRequest) *ValidationError {
	fields := make(map[string]string)
	if req.Fullname == "" && req.Email == "" && req.BirthDate == nil {
		fields["profile"] = "at least one of fullname, email or birth_date is required"
	}
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		fields["email"] = "email is not valid"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidatePasswordStrength enforces the password policy and reports every
// unmet rule. It returns nil when the password is acceptable.
func ValidatePasswordStrength(password string) *WeakPasswordError {
	var violations []string

	if len(password) < MinPasswordLength {
		violations = append(violations, "must be at least 8 characters long")
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasLower {
		violations = append(violations, "must contain a lowercase letter")
	}
	if !hasUpper {
		violations = append(violations, "must contain an uppercase letter")
	}
	if !hasDigit {
		violations = append(violations, "must contain a digit")
	}
	if !hasSpecial {
		violations = append(violations, "must contain a special character")
	}

	if len(violations) > 0 {
		return &WeakPasswordError{Violations: violations}
	}
	return nil
}
