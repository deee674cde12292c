package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// DefaultQuestionOrder 是未指定順序時題目的預設排序值，
// 保證之後追加的題目排在已有題目的後面
const DefaultQuestionOrder = 999

// Question 表示競技場中的一道題目。
// Options 以 JSON 字串形式存儲在資料庫中，傳輸前必須反序列化。
type Question struct {
	gorm.Model
	ArenaID       uint   `gorm:"not null;index" json:"arena_id"`
	QuestionText  string `gorm:"not null" json:"question_text"`
	Options       string `gorm:"type:text;not null" json:"-"`    // JSON 序列化的選項列表
	CorrectOption int    `gorm:"not null" json:"-"`              // 正確選項的索引，不對外輸出
	Points        int    `gorm:"not null;default:10" json:"points"`
	TimeLimit     int    `gorm:"not null;default:30" json:"time_limit"` // 作答時限（秒）
	Order         int    `gorm:"not null;default:999" json:"order"`     // 題目順序
}

// OptionList 反序列化選項列表，解析失敗時回傳空列表
func (q *Question) OptionList() []string {
	var options []string
	if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
		return []string{}
	}
	return options
}

// SetOptions 序列化選項列表並存入 Options 欄位
func (q *Question) SetOptions(options []string) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	q.Options = string(data)
	return nil
}
