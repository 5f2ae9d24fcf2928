package domain

import "time"

// UserRole separates farmer accounts from helpdesk administrators.
type UserRole string

const (
	UserRoleFarmer UserRole = "farmer"
	UserRoleAdmin  UserRole = "admin"
)

// User is the account model for farmers and admins.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Phone        string
	District     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FarmerInfo projects the display fields joined onto issues.
func (u *User) FarmerInfo() *FarmerInfo {
	if u == nil {
		return nil
	}
	return &FarmerInfo{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		District: u.District,
	}
}
