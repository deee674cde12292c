package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"trivia_web/internal/models"
	"trivia_web/internal/repository"
)

// SessionStatus 定義會話生命週期的狀態
type SessionStatus string

const (
	SessionWaiting SessionStatus = "waiting" // 會話存在，測驗尚未開始
	SessionRunning SessionStatus = "running" // 題目推進中
	SessionEnded   SessionStatus = "ended"   // 題目已出完或被明確結束
)

// ArenaSession 是一個競技場的即時會話狀態，只存在於記憶體中，
// 由會話引擎獨佔管理
type ArenaSession struct {
	Participants         []*models.ParticipantEntry
	CurrentQuestionIndex int
	Status               SessionStatus

	// questions 是 start_quiz 時從存儲層讀取的題目快照，
	// 進行中的測驗不會看到之後追加的題目
	questions []models.Question
	// timer 是當前排程的推進計時器，會話被移除時必須停止
	timer *time.Timer
}

// SessionStore 是競技場 ID 到即時會話的映射。
// 抽象成接口是為了之後可以替換成分散式快取實現多進程廣播
type SessionStore interface {
	Get(arenaID uint) (*ArenaSession, bool)
	Set(arenaID uint, session *ArenaSession)
	Delete(arenaID uint)
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uint]*ArenaSession
}

// NewMemorySessionStore 創建進程內的會話存儲
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[uint]*ArenaSession)}
}

func (s *memorySessionStore) Get(arenaID uint) (*ArenaSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[arenaID]
	return session, ok
}

func (s *memorySessionStore) Set(arenaID uint, session *ArenaSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[arenaID] = session
}

func (s *memorySessionStore) Delete(arenaID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, arenaID)
}

// connContext 記錄一個連接加入會話時的上下文，斷線清理時使用
type connContext struct {
	userID    uint
	arenaID   uint
	isCreator bool
}

// Broadcaster 是會話引擎對外廣播的出口，由 WebSocketManager 實現
type Broadcaster interface {
	BroadcastToArena(arenaID uint, event *models.Event)
	AddToArena(client *Client, arenaID uint)
}

// SessionService 是即時會話引擎：管理會話註冊表與連接追蹤、
// 推進題目廣播、計分並維護排行榜。
// 所有會話狀態變更都由 mu 序列化；存儲層調用在鎖外進行，
// 調用結束後必須重新驗證會話是否仍然存在
type SessionService struct {
	mu          sync.Mutex
	store       SessionStore
	connections map[*Client]*connContext
	broadcaster Broadcaster

	// advanceBuffer 是每題時限之後的固定揭曉緩衝
	advanceBuffer time.Duration

	arenaRepo         repository.ArenaRepository
	userRepo          repository.UserRepository
	questionRepo      repository.QuestionRepository
	participationRepo repository.ParticipationRepository
	answerRepo        repository.AnswerRepository
}

// defaultAdvanceBuffer 是題目時限結束到下一題廣播之間的間隔，
// 客戶端的倒數同步依賴這個值
const defaultAdvanceBuffer = 3 * time.Second

// NewSessionService 創建會話引擎
func NewSessionService(repos *repository.Repositories, broadcaster Broadcaster) *SessionService {
	return &SessionService{
		store:             NewMemorySessionStore(),
		connections:       make(map[*Client]*connContext),
		broadcaster:       broadcaster,
		advanceBuffer:     defaultAdvanceBuffer,
		arenaRepo:         repos.Arena,
		userRepo:          repos.User,
		questionRepo:      repos.Question,
		participationRepo: repos.Participation,
		answerRepo:        repos.Answer,
	}
}

// SessionSnapshot 是即時會話狀態的唯讀副本，供引擎外部查詢使用
type SessionSnapshot struct {
	Status               SessionStatus
	CurrentQuestionIndex int
	QuestionCount        int // 測驗題目快照的數量，開始前為 0
	Participants         []models.ParticipantEntry
}

// ActiveSession 查詢競技場目前的即時會話，沒有參與者時回傳 false。
// 內部狀態只在 s.mu 保護下讀寫，對外只回傳鎖內複製的快照
func (s *SessionService) ActiveSession(arenaID uint) (SessionSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.store.Get(arenaID)
	if !ok {
		return SessionSnapshot{}, false
	}
	return SessionSnapshot{
		Status:               session.Status,
		CurrentQuestionIndex: session.CurrentQuestionIndex,
		QuestionCount:        len(session.questions),
		Participants:         snapshotParticipants(session),
	}, true
}

// HandleEvent 分發客戶端事件，實現 EventHandler 接口
func (s *SessionService) HandleEvent(client *Client, event *models.ClientEvent) {
	switch event.Type {
	case models.EventJoinArena:
		var payload models.JoinArenaPayload
		if !s.decode(client, event.Data, &payload, models.EventArenaError) {
			return
		}
		s.handleJoinArena(client, payload)

	case models.EventStartQuiz:
		var payload models.StartQuizPayload
		if !s.decode(client, event.Data, &payload, models.EventArenaError) {
			return
		}
		s.handleStartQuiz(client, payload)

	case models.EventSubmitAnswer:
		var payload models.SubmitAnswerPayload
		if !s.decode(client, event.Data, &payload, models.EventAnswerError) {
			return
		}
		s.handleSubmitAnswer(client, payload)

	case models.EventAddLiveQuestion:
		var payload models.AddLiveQuestionPayload
		if !s.decode(client, event.Data, &payload, models.EventArenaError) {
			return
		}
		s.handleAddLiveQuestion(client, payload)

	case models.EventCompleteParticipation:
		var payload models.CompleteParticipationPayload
		if !s.decode(client, event.Data, &payload, models.EventArenaError) {
			return
		}
		s.handleCompleteParticipation(client, payload)

	default:
		log.Printf("unknown event type: %s", event.Type)
	}
}

// decode 解析事件內容，失敗時回覆錯誤事件
func (s *SessionService) decode(client *Client, data json.RawMessage, v interface{}, errEvent string) bool {
	if err := json.Unmarshal(data, v); err != nil {
		s.sendError(client, errEvent, "事件格式錯誤")
		return false
	}
	return true
}

// handleJoinArena 處理加入競技場：建立或重用參賽記錄、
// 更新會話中的參與者條目，並通知整個分組
func (s *SessionService) handleJoinArena(client *Client, payload models.JoinArenaPayload) {
	arena, err := s.arenaRepo.FindByID(payload.ArenaID)
	if err != nil {
		s.sendError(client, models.EventArenaError, "競技場不存在")
		return
	}

	user, err := s.userRepo.FindByID(payload.UserID)
	if err != nil {
		s.sendError(client, models.EventArenaError, "用戶不存在")
		return
	}

	// 創建者以監控者身份加入，不需要參賽記錄；
	// 一般參與者在完成前重新加入會重用未完成的記錄
	var participation *models.Participation
	if !payload.IsCreator {
		participation, err = s.participationRepo.FindOpen(payload.UserID, payload.ArenaID)
		if err != nil {
			log.Printf("find open participation failed: %v", err)
			s.sendError(client, models.EventArenaError, "加入競技場失敗")
			return
		}
		if participation == nil {
			participation = &models.Participation{UserID: payload.UserID, ArenaID: payload.ArenaID}
			if err := s.participationRepo.Create(participation); err != nil {
				log.Printf("create participation failed: %v", err)
				s.sendError(client, models.EventArenaError, "加入競技場失敗")
				return
			}
		}
	}

	s.mu.Lock()
	// 換加入另一個競技場時，先從原本的會話移除，
	// 不留下沒有連接支撐的幽靈條目
	var prevArenaID uint
	var prevParticipants []models.ParticipantEntry
	prevNotify := false
	if prev, ok := s.connections[client]; ok && prev.arenaID != payload.ArenaID {
		prevArenaID = prev.arenaID
		prevParticipants, prevNotify = s.removeFromSession(prev.arenaID, prev.userID)
	}

	session := s.ensureSession(payload.ArenaID)
	entry := findParticipant(session, payload.UserID)
	if entry == nil {
		entry = &models.ParticipantEntry{UserID: payload.UserID}
		session.Participants = append(session.Participants, entry)
	}
	entry.Username = user.Username
	entry.IsCreator = payload.IsCreator
	if participation != nil {
		// 以存儲層的權威值恢復分數，斷線重連後排行榜不會歸零
		entry.ParticipationID = participation.ID
		entry.Score = participation.TotalScore
		entry.TimeTaken = participation.TotalTimeTaken
	}
	s.connections[client] = &connContext{
		userID:    payload.UserID,
		arenaID:   payload.ArenaID,
		isCreator: payload.IsCreator,
	}
	participants := snapshotParticipants(session)
	s.mu.Unlock()

	if prevNotify {
		s.broadcaster.BroadcastToArena(prevArenaID, &models.Event{
			Type: models.EventUserLeft,
			Data: models.ParticipantsPayload{Participants: prevParticipants},
		})
	}

	s.broadcaster.AddToArena(client, payload.ArenaID)

	joined := models.ArenaJoinedPayload{
		Arena: models.ArenaInfo{
			ID:            arena.ID,
			Title:         arena.Title,
			Description:   arena.Description,
			QuestionCount: len(arena.Questions),
		},
		IsCreator: payload.IsCreator,
	}
	if participation != nil {
		joined.ParticipationID = participation.ID
	}
	s.sendTo(client, &models.Event{Type: models.EventArenaJoined, Data: joined})

	s.broadcaster.BroadcastToArena(payload.ArenaID, &models.Event{
		Type: models.EventUserJoined,
		Data: models.ParticipantsPayload{Participants: participants},
	})
}

// HandleDisconnect 處理連接關閉：移除參與者條目並通知分組，
// 最後一個參與者離開時銷毀整個會話。實現 EventHandler 接口
func (s *SessionService) HandleDisconnect(client *Client) {
	s.mu.Lock()
	ctx, ok := s.connections[client]
	delete(s.connections, client)
	if !ok {
		// 連接從未加入任何競技場
		s.mu.Unlock()
		return
	}

	participants, notify := s.removeFromSession(ctx.arenaID, ctx.userID)
	s.mu.Unlock()

	if notify {
		s.broadcaster.BroadcastToArena(ctx.arenaID, &models.Event{
			Type: models.EventUserLeft,
			Data: models.ParticipantsPayload{Participants: participants},
		})
	}
}

// removeFromSession 把用戶從會話移除，會話清空時停止計時器並從註冊表銷毀，
// 不論當前狀態。回傳剩餘參與者快照與是否需要廣播 user_left。
// 調用方必須持有 s.mu
func (s *SessionService) removeFromSession(arenaID, userID uint) ([]models.ParticipantEntry, bool) {
	session, exists := s.store.Get(arenaID)
	if !exists {
		return nil, false
	}

	removeParticipant(session, userID)
	if len(session.Participants) == 0 {
		if session.timer != nil {
			session.timer.Stop()
			session.timer = nil
		}
		s.store.Delete(arenaID)
		return nil, false
	}
	return snapshotParticipants(session), true
}

// ensureSession 取得既有會話或建立新的等待中會話，調用方必須持有 s.mu
func (s *SessionService) ensureSession(arenaID uint) *ArenaSession {
	if session, ok := s.store.Get(arenaID); ok {
		return session
	}
	session := &ArenaSession{
		Participants:         []*models.ParticipantEntry{},
		CurrentQuestionIndex: -1,
		Status:               SessionWaiting,
	}
	s.store.Set(arenaID, session)
	return session
}

// findParticipant 依用戶 ID 查找參與者條目，保證每個用戶最多一筆
func findParticipant(session *ArenaSession, userID uint) *models.ParticipantEntry {
	for _, entry := range session.Participants {
		if entry.UserID == userID {
			return entry
		}
	}
	return nil
}

func removeParticipant(session *ArenaSession, userID uint) {
	for i, entry := range session.Participants {
		if entry.UserID == userID {
			session.Participants = append(session.Participants[:i], session.Participants[i+1:]...)
			return
		}
	}
}

// snapshotParticipants 複製參與者列表，廣播時不暴露內部指針
func snapshotParticipants(session *ArenaSession) []models.ParticipantEntry {
	participants := make([]models.ParticipantEntry, 0, len(session.Participants))
	for _, entry := range session.Participants {
		participants = append(participants, *entry)
	}
	return participants
}

// sendTo 直接回覆單一連接，只用於確認與錯誤事件
func (s *SessionService) sendTo(client *Client, event *models.Event) {
	if !client.Send(event) {
		log.Printf("client send channel unavailable, event %s dropped", event.Type)
	}
}

func (s *SessionService) sendError(client *Client, eventType, message string) {
	s.sendTo(client, &models.Event{Type: eventType, Data: models.ErrorPayload{Message: message}})
}
