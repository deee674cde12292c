package repository

import (
	"trivia_web/internal/models"
	"trivia_web/internal/storage"
)

type QuestionRepository interface {
	Create(question *models.Question) error
	FindByID(id uint) (*models.Question, error)
	ListByArenaOrdered(arenaID uint) ([]models.Question, error)
}

type questionRepository struct {
	db *storage.PostgresDB
}

func NewQuestionRepository(db *storage.PostgresDB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ListByArenaOrdered 依 order 欄位升序查詢競技場的全部題目
func (r *questionRepository) ListByArenaOrdered(arenaID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Where("arena_id = ?", arenaID).Order(`"order" ASC, id ASC`).Find(&questions).Error
	return questions, err
}
