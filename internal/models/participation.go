package models

import (
	"time"

	"gorm.io/gorm"
)

// Participation 表示用戶對某個競技場的一次參賽記錄。
// 同一個用戶對同一個競技場同時最多只有一筆未完成的記錄，
// 完成前重新加入會重用既有記錄而不是新建。
type Participation struct {
	gorm.Model
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	ArenaID        uint       `gorm:"not null;index" json:"arena_id"`
	TotalScore     int        `gorm:"not null;default:0" json:"total_score"`
	TotalTimeTaken int        `gorm:"not null;default:0" json:"total_time_taken"` // 累計作答耗時（毫秒）
	IsCompleted    bool       `gorm:"not null;default:false" json:"is_completed"`
	EndTime        *time.Time `json:"end_time"`

	Answers []Answer `gorm:"foreignKey:ParticipationID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}
