package models

import (
	"gorm.io/gorm"
)

// Arena 表示一場問答競技場，由創建者主持，包含一組有序的題目
type Arena struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	CreatorID   uint   `gorm:"not null;index" json:"creator_id"` // 創建者的用戶 ID

	Questions      []Question      `gorm:"foreignKey:ArenaID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Participations []Participation `gorm:"foreignKey:ArenaID;constraint:OnDelete:CASCADE" json:"-"`
}
