package repository

import (
	"trivia_web/internal/models"
	"trivia_web/internal/storage"
)

type AnswerRepository interface {
	Create(answer *models.Answer) error
	FindByParticipation(participationID uint) ([]models.Answer, error)
}

type answerRepository struct {
	db *storage.PostgresDB
}

func NewAnswerRepository(db *storage.PostgresDB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(answer *models.Answer) error {
	return r.db.Create(answer).Error
}

func (r *answerRepository) FindByParticipation(participationID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.Where("participation_id = ?", participationID).Order("created_at ASC").Find(&answers).Error
	return answers, err
}
