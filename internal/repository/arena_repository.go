package repository

import (
	"trivia_web/internal/models"
	"trivia_web/internal/storage"
)

type ArenaRepository interface {
	Create(arena *models.Arena) error
	FindByID(id uint) (*models.Arena, error)
	FindAll() ([]models.Arena, error)
	Update(arena *models.Arena) error
	Delete(id uint) error
}

type arenaRepository struct {
	db *storage.PostgresDB
}

func NewArenaRepository(db *storage.PostgresDB) ArenaRepository {
	return &arenaRepository{db: db}
}

func (r *arenaRepository) Create(arena *models.Arena) error {
	return r.db.Create(arena).Error
}

// FindByID 查詢競技場並預載題目列表
func (r *arenaRepository) FindByID(id uint) (*models.Arena, error) {
	var arena models.Arena
	err := r.db.Preload("Questions").First(&arena, id).Error
	if err != nil {
		return nil, err
	}
	return &arena, nil
}

// FindAll 查詢所有競技場，新建的排在前面
func (r *arenaRepository) FindAll() ([]models.Arena, error) {
	var arenas []models.Arena
	err := r.db.Order("created_at DESC").Find(&arenas).Error
	return arenas, err
}

func (r *arenaRepository) Update(arena *models.Arena) error {
	return r.db.Save(arena).Error
}

func (r *arenaRepository) Delete(id uint) error {
	return r.db.Delete(&models.Arena{}, id).Error
}
