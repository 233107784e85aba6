package model

type UserRole string

const (
	Teacher UserRole = "Teacher"
	Student UserRole = "Student"
)

func (r UserRole) Valid() bool {
	return r == Teacher || r == Student
}

type User struct {
	BaseModel
	Name         string   `gorm:"size:150;uniqueIndex;not null" json:"name"`
	PasswordHash string   `gorm:"size:200;not null" json:"-"`
	Role         UserRole `gorm:"column:user_type;size:20;not null;index" json:"role"`
	// 仅学生有年级
	YearLevel *int `json:"yearLevel,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsTeacher() bool {
	return u != nil && u.Role == Teacher
}

func (u *User) IsStudent() bool {
	return u != nil && u.Role == Student
}
