package models

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleDriver   UserRole = "driver"
	RoleManager  UserRole = "manager"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleDriver, RoleManager:
		return true
	}
	return false
}

type User struct {
	Login         string   `json:"login" gorm:"column:login;primaryKey"`
	Password      string   `json:"-" gorm:"column:password;not null"`
	Role          UserRole `json:"role" gorm:"column:role;not null;default:'customer'"`
	FavoriteItems *string  `json:"favorite_items" gorm:"column:favoriteitems"`
	PhoneNum      string   `json:"phone_num" gorm:"column:phonenum"`
}

func (User) TableName() string { return "users" }
