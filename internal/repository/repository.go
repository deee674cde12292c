package repository

import "trivia_web/internal/storage"

type Repositories struct {
	User          UserRepository
	Arena         ArenaRepository
	Question      QuestionRepository
	Participation ParticipationRepository
	Answer        AnswerRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Arena:         NewArenaRepository(db),
		Question:      NewQuestionRepository(db),
		Participation: NewParticipationRepository(db),
		Answer:        NewAnswerRepository(db),
	}
}
