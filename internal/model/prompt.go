package model

const DefaultSubject = "General"

// Prompt is a writing assignment authored by a teacher.
type Prompt struct {
	BaseModel
	Title     string `gorm:"size:200;not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Subject   string `gorm:"size:50;default:General" json:"subject"`
	TeacherID uint   `gorm:"index;not null" json:"teacherId"`

	Teacher *User `gorm:"foreignKey:TeacherID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"teacher,omitempty"`
}

func (Prompt) TableName() string {
	return "prompts"
}

func (p *Prompt) OwnedBy(user *User) bool {
	return p != nil && user != nil && p.TeacherID == user.ID
}
