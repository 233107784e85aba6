package model

const (
	MinScore = 0
	MaxScore = 100
)

// Grade is bound 1:1 to a response through the unique response_id index.
type Grade struct {
	BaseModel
	Score        int    `gorm:"not null;check:chk_grades_score,score >= 0 AND score <= 100" json:"score"`
	FeedbackText string `gorm:"type:text" json:"feedbackText"`
	ResponseID   uint   `gorm:"uniqueIndex;not null" json:"responseId"`

	Response *Response `gorm:"foreignKey:ResponseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Grade) TableName() string {
	return "grades"
}
