package model

// Response is a student's submission to a prompt. A student may submit any
// number of responses to the same prompt.
type Response struct {
	BaseModel
	Content   string `gorm:"type:text;not null" json:"content"`
	PromptID  uint   `gorm:"index;not null" json:"promptId"`
	StudentID uint   `gorm:"index;not null" json:"studentId"`

	Prompt  *Prompt `gorm:"foreignKey:PromptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"prompt,omitempty"`
	Student *User   `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student,omitempty"`
	Grade   *Grade  `gorm:"foreignKey:ResponseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"grade,omitempty"`
}

func (Response) TableName() string {
	return "responses"
}
