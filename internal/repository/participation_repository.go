package repository

import (
	"time"

	"gorm.io/gorm"

	"trivia_web/internal/models"
	"trivia_web/internal/storage"
)

type ParticipationRepository interface {
	Create(participation *models.Participation) error
	FindByID(id uint) (*models.Participation, error)
	// FindOpen 查詢用戶在競技場中未完成的參賽記錄，沒有時回傳 nil
	FindOpen(userID, arenaID uint) (*models.Participation, error)
	// AddScore 累加分數與耗時，回傳更新後的記錄
	AddScore(id uint, scoreDelta, timeDelta int) (*models.Participation, error)
	// Complete 標記參賽結束並記錄結束時間
	Complete(id uint, endTime time.Time) (*models.Participation, error)
	ListByArena(arenaID uint) ([]models.Participation, error)
}

type participationRepository struct {
	db *storage.PostgresDB
}

func NewParticipationRepository(db *storage.PostgresDB) ParticipationRepository {
	return &participationRepository{db: db}
}

func (r *participationRepository) Create(participation *models.Participation) error {
	return r.db.Create(participation).Error
}

func (r *participationRepository) FindByID(id uint) (*models.Participation, error) {
	var participation models.Participation
	err := r.db.First(&participation, id).Error
	if err != nil {
		return nil, err
	}
	return &participation, nil
}

func (r *participationRepository) FindOpen(userID, arenaID uint) (*models.Participation, error) {
	var participation models.Participation
	err := r.db.
		Where("user_id = ? AND arena_id = ? AND is_completed = ?", userID, arenaID, false).
		First(&participation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &participation, nil
}

func (r *participationRepository) AddScore(id uint, scoreDelta, timeDelta int) (*models.Participation, error) {
	err := r.db.Model(&models.Participation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_score":      gorm.Expr("total_score + ?", scoreDelta),
			"total_time_taken": gorm.Expr("total_time_taken + ?", timeDelta),
		}).Error
	if err != nil {
		return nil, err
	}
	// 回讀更新後的權威值
	return r.FindByID(id)
}

func (r *participationRepository) Complete(id uint, endTime time.Time) (*models.Participation, error) {
	err := r.db.Model(&models.Participation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_completed": true,
			"end_time":     endTime,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

// ListByArena 查詢競技場的所有參賽記錄，高分在前、耗時短者優先
func (r *participationRepository) ListByArena(arenaID uint) ([]models.Participation, error) {
	var participations []models.Participation
	err := r.db.
		Where("arena_id = ?", arenaID).
		Order("total_score DESC, total_time_taken ASC").
		Find(&participations).Error
	return participations, err
}
