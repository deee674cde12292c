package models

import (
	"gorm.io/gorm"
)

// Answer 表示一次作答記錄，寫入後不再修改
type Answer struct {
	gorm.Model
	ParticipationID uint `gorm:"not null;index" json:"participation_id"`
	QuestionID      uint `gorm:"not null;index" json:"question_id"`
	SelectedOption  int  `json:"selected_option"`
	IsCorrect       bool `json:"is_correct"`
	TimeTaken       int  `json:"time_taken"` // 作答耗時（毫秒），由客戶端回報
	Points          int  `json:"points"`
}
