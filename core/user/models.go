package user

// Roles. Staff is the non-privileged default assigned to auto-created
// placeholder contacts.
const (
	RoleAdmin = 1
	RoleStaff = 2
)

// User is an internal account referenced as an opportunity contact.
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	RoleID     int    `gorm:"not null;default:2" json:"role_id"`
	Department string `json:"department"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.RoleID == RoleAdmin }
