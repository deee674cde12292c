package service

import (
	"trivia_web/internal/repository"
)

type Services struct {
	User      *UserService
	Arena     *ArenaService
	Session   *SessionService
	WebSocket *WebSocketManager
}

func NewServices(repos *repository.Repositories) *Services {
	wsManager := NewWebSocketManager()
	sessionService := NewSessionService(repos, wsManager)
	wsManager.SetHandler(sessionService)

	userService := NewUserService(repos.User)
	arenaService := NewArenaService(repos.Arena, repos.Question, repos.Participation)
	return &Services{
		User:      userService,
		Arena:     arenaService,
		Session:   sessionService,
		WebSocket: wsManager,
	}
}
