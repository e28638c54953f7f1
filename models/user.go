package models

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleShopper  Role = "shopper"
)

// ParseRole validates a raw role tag.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleEmployee, RoleShopper:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is an account record. Password is stored and compared in plaintext
// end to end; this mirrors the system being reimplemented and is a known
// weakness, not a choice to copy into new designs.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"password,omitempty"`
	Role        Role      `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
	Wishlist    []string  `json:"wishlist,omitempty"`
	DocumentID  string    `json:"dni,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	PostalCode  string    `json:"zipCode,omitempty"`
	Country     string    `json:"country,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasPermission reports whether the user may use the named back-office
// capability. Admins implicitly hold every permission.
func (u *User) HasPermission(tag string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	if u.Role != RoleEmployee {
		return false
	}
	for _, p := range u.Permissions {
		if p == tag {
			return true
		}
	}
	return false
}

// InWishlist reports whether the product id is on the user's wishlist.
func (u *User) InWishlist(productID string) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// UserPatch enumerates the mutable user fields; only non-nil fields are
// applied and sent to the gateway.
type UserPatch struct {
	Name        *string   `json:"name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Password    *string   `json:"password,omitempty"`
	Role        *Role     `json:"role,omitempty"`
	Permissions *[]string `json:"permissions,omitempty"`
	Wishlist    *[]string `json:"wishlist,omitempty"`
	DocumentID  *string   `json:"dni,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Address     *string   `json:"address,omitempty"`
	City        *string   `json:"city,omitempty"`
	PostalCode  *string   `json:"zipCode,omitempty"`
	Country     *string   `json:"country,omitempty"`
}

// Apply merges the set fields into u.
func (patch *UserPatch) Apply(u *User) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Permissions != nil {
		u.Permissions = append([]string(nil), (*patch.Permissions)...)
	}
	if patch.Wishlist != nil {
		u.Wishlist = append([]string(nil), (*patch.Wishlist)...)
	}
	if patch.DocumentID != nil {
		u.DocumentID = *patch.DocumentID
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	if patch.City != nil {
		u.City = *patch.City
	}
	if patch.PostalCode != nil {
		u.PostalCode = *patch.PostalCode
	}
	if patch.Country != nil {
		u.Country = *patch.Country
	}
}
