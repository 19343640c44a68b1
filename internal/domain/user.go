package domain

import (
	"encoding/json"
)

// Role constants define the user roles the storefront distinguishes.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// ValidRoles returns the set of valid user roles.
func ValidRoles() []string {
	return []string{RoleCustomer, RoleSeller, RoleAdmin}
}

// IsValidRole checks whether the given role string is a valid user role.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// User is the session's user view-object. StoreID is the single normalized
// store reference regardless of which claim shape carried it.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	StoreID string `json:"storeId,omitempty"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	var w struct {
		MongoID  json.RawMessage `json:"_id"`
		ID       json.RawMessage `json:"id"`
		UserID   json.RawMessage `json:"user_id"`
		Name     string          `json:"name"`
		Email    string          `json:"email"`
		Role     string          `json:"role"`
		StoreID  json.RawMessage `json:"storeId"`
		StoreID2 json.RawMessage `json:"store_id"`
		Store    json.RawMessage `json:"store"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	u.ID = firstID(w.ID, w.MongoID, w.UserID)
	u.Name = w.Name
	u.Email = w.Email
	u.Role = w.Role
	u.StoreID = firstID(w.StoreID, w.StoreID2, w.Store)
	return nil
}

// IsSeller reports whether the user manages a store.
func (u User) IsSeller() bool {
	return u.Role == RoleSeller
}

// IsAdmin reports whether the user is a platform administrator.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Credentials are the login form fields.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Registration is the signup form.
type Registration struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=customer seller"`
}

// AccountSummary is a row of the admin users list.
type AccountSummary struct {
	User
	IsActive bool `json:"isActive"`
}

func (a *AccountSummary) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &a.User); err != nil {
		return err
	}
	var w struct {
		IsActive *bool `json:"isActive"`
		Active   *bool `json:"active"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch {
	case w.IsActive != nil:
		a.IsActive = *w.IsActive
	case w.Active != nil:
		a.IsActive = *w.Active
	default:
		a.IsActive = true
	}
	return nil
}

// RoleUpdate is an administrator role change for an account.
type RoleUpdate struct {
	Role string `json:"role" validate:"required,oneof=customer seller admin"`
}

// Store is a merchant storefront.
type Store struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo,omitempty"`
	OwnerID string `json:"ownerId,omitempty"`
}

func (s *Store) UnmarshalJSON(b []byte) error {
	var w struct {
		MongoID json.RawMessage `json:"_id"`
		ID      json.RawMessage `json:"id"`
		Name    string          `json:"name"`
		Logo    string          `json:"logo"`
		Owner   json.RawMessage `json:"owner"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	s.ID = firstID(w.MongoID, w.ID)
	s.Name = w.Name
	s.LogoURL = w.Logo
	s.OwnerID = ParseID(w.Owner)
	return nil
}
