package accounts

import "time"

// Account is a credential record. The password field holds the bcrypt hash
// and is never serialized.
type Account struct {
	ID        int64     `json:"id"`
	Document  string    `json:"document"`
	Password  string    `json:"-"`
	RoleID    int64     `json:"role_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the personal record linked one-to-one to an Account.
type Profile struct {
	ID        int64      `json:"id"`
	AccountID int64      `json:"account_id"`
	Fullname  string     `json:"fullname"`
	Email     string     `json:"email"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Role is the reference-data view of a role as stored alongside accounts.
type Role struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Identity composes an account with its profile and role, fetched in a
// single store round trip. Profile is nil when the account has no linked
// profile (a state registration can never produce, but the store must be
// able to represent it).
type Identity struct {
	Account Account
	Profile *Profile
	Role    *Role
}

// RoleInfo is the role shape embedded in API responses.
type RoleInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserInfo is the identity shape returned by register and login.
type UserInfo struct {
	ID       int64    `json:"id"`
	Document string   `json:"document"`
	Fullname string   `json:"fullname"`
	Email    string   `json:"email"`
	Role     RoleInfo `json:"role"`
}

// ProfileInfo is the shape returned by the profile endpoint.
type ProfileInfo struct {
	ID        int64      `json:"id"`
	AccountID int64      `json:"account_id"`
	Fullname  string     `json:"fullname"`
	Email     string     `json:"email"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Role      RoleInfo   `json:"role"`
}

// UserInfoFromIdentity maps an identity to its API response shape. The
// password hash never crosses this boundary.
func UserInfoFromIdentity(id *Identity) UserInfo {
	info := UserInfo{
		Document: id.Account.Document,
	}
	if id.Profile != nil {
		info.ID = id.Profile.ID
		info.Fullname = id.Profile.Fullname
		info.Email = id.Profile.Email
	}
	if id.Role != nil {
		info.Role = RoleInfo{ID: id.Role.ID, Name: id.Role.Name}
	}
	return info
}

// ProfileInfoFromIdentity maps an identity to the profile endpoint shape.
func ProfileInfoFromIdentity(id *Identity) ProfileInfo {
	info := ProfileInfo{}
	if id.Profile != nil {
		info.ID = id.Profile.ID
		info.AccountID = id.Profile.AccountID
		info.Fullname = id.Profile.Fullname
		info.Email = id.Profile.Email
		info.BirthDate = id.Profile.BirthDate
	}
	if id.Role != nil {
		info.Role = RoleInfo{ID: id.Role.ID, Name: id.Role.Name}
	}
	return info
}
