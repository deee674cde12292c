package service

import (
	"errors"

	"trivia_web/internal/models"
	"trivia_web/internal/repository"
)

// ArenaService 處理競技場與題目的一般數據操作，
// 即時會話邏輯由 SessionService 負責
type ArenaService struct {
	arenaRepo         repository.ArenaRepository
	questionRepo      repository.QuestionRepository
	participationRepo repository.ParticipationRepository
}

func NewArenaService(arenaRepo repository.ArenaRepository, questionRepo repository.QuestionRepository, participationRepo repository.ParticipationRepository) *ArenaService {
	return &ArenaService{
		arenaRepo:         arenaRepo,
		questionRepo:      questionRepo,
		participationRepo: participationRepo,
	}
}

func (s *ArenaService) CreateArena(creatorID uint, title, description string) (*models.Arena, error) {
	arena := &models.Arena{
		Title:       title,
		Description: description,
		CreatorID:   creatorID,
	}
	if err := s.arenaRepo.Create(arena); err != nil {
		return nil, err
	}
	return arena, nil
}

func (s *ArenaService) GetArena(id uint) (*models.Arena, error) {
	return s.arenaRepo.FindByID(id)
}

func (s *ArenaService) ListArenas() ([]models.Arena, error) {
	return s.arenaRepo.FindAll()
}

// DeleteArena 刪除競技場，只有創建者可以操作，
// 題目與參賽記錄由外鍵級聯一併刪除
func (s *ArenaService) DeleteArena(id, userID uint) error {
	arena, err := s.arenaRepo.FindByID(id)
	if err != nil {
		return err
	}
	if arena.CreatorID != userID {
		return errors.New("只有創建者可以刪除競技場")
	}
	return s.arenaRepo.Delete(id)
}

// AddQuestion 為競技場新增題目，未指定順序時排在最後
func (s *ArenaService) AddQuestion(arenaID, userID uint, input models.LiveQuestionInput) (*models.Question, error) {
	arena, err := s.arenaRepo.FindByID(arenaID)
	if err != nil {
		return nil, err
	}
	if arena.CreatorID != userID {
		return nil, errors.New("只有創建者可以新增題目")
	}

	question := &models.Question{
		ArenaID:       arenaID,
		QuestionText:  input.QuestionText,
		CorrectOption: input.CorrectOption,
		Points:        input.Points,
		TimeLimit:     input.TimeLimit,
		Order:         input.Order,
	}
	if question.Points <= 0 {
		question.Points = 10
	}
	if question.TimeLimit <= 0 {
		question.TimeLimit = 30
	}
	if question.Order <= 0 {
		question.Order = models.DefaultQuestionOrder
	}
	if err := question.SetOptions(input.Options); err != nil {
		return nil, err
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *ArenaService) ListQuestions(arenaID uint) ([]models.Question, error) {
	return s.questionRepo.ListByArenaOrdered(arenaID)
}

// GetResults 查詢競技場的參賽結果，高分在前
func (s *ArenaService) GetResults(arenaID uint) ([]models.Participation, error) {
	if _, err := s.arenaRepo.FindByID(arenaID); err != nil {
		return nil, err
	}
	return s.participationRepo.ListByArena(arenaID)
}
