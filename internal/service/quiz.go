package service

import (
	"log"
	"time"

	"trivia_web/internal/models"
)

// handleStartQuiz 處理開始測驗：只有創建者可以觸發，
// 競技場必須至少有一道題目。成功後廣播第一題並排程推進
func (s *SessionService) handleStartQuiz(client *Client, payload models.StartQuizPayload) {
	arena, err := s.arenaRepo.FindByID(payload.ArenaID)
	if err != nil {
		s.sendError(client, models.EventArenaError, "競技場不存在")
		return
	}

	if arena.CreatorID != payload.UserID {
		s.sendError(client, models.EventArenaError, "只有創建者可以開始測驗")
		return
	}

	questions, err := s.questionRepo.ListByArenaOrdered(payload.ArenaID)
	if err != nil {
		log.Printf("list questions failed: %v", err)
		s.sendError(client, models.EventArenaError, "讀取題目失敗")
		return
	}
	if len(questions) == 0 {
		s.sendError(client, models.EventArenaError, "競技場還沒有任何題目")
		return
	}

	s.mu.Lock()
	session, ok := s.store.Get(payload.ArenaID)
	if !ok {
		s.mu.Unlock()
		s.sendError(client, models.EventArenaError, "會話不存在，請先加入競技場")
		return
	}
	if session.Status != SessionWaiting {
		s.mu.Unlock()
		s.sendError(client, models.EventArenaError, "測驗已經開始")
		return
	}

	// 題目列表在這裡固定下來，進行中的測驗使用這份快照
	session.Status = SessionRunning
	session.questions = questions
	session.CurrentQuestionIndex = 0
	question := s.questionEvent(session, 0)
	s.scheduleAdvance(payload.ArenaID, session, questions[0].TimeLimit)
	s.mu.Unlock()

	s.broadcaster.BroadcastToArena(payload.ArenaID, question)
}

// scheduleAdvance 排程下一次推進。時限加上固定緩衝的公式是
// 客戶端倒數同步的約定，不能改動。調用方必須持有 s.mu
func (s *SessionService) scheduleAdvance(arenaID uint, session *ArenaSession, timeLimitSec int) {
	delay := time.Duration(timeLimitSec)*1000*time.Millisecond + s.advanceBuffer
	session.timer = time.AfterFunc(delay, func() {
		s.advanceQuestion(arenaID)
	})
}

// advanceQuestion 是計時器觸發的推進：廣播下一題或結束測驗。
// 會話已被移除或不在進行中時靜默返回，過期的計時器不是錯誤
func (s *SessionService) advanceQuestion(arenaID uint) {
	s.mu.Lock()
	session, ok := s.store.Get(arenaID)
	if !ok || session.Status != SessionRunning {
		s.mu.Unlock()
		return
	}

	next := session.CurrentQuestionIndex + 1
	if next >= len(session.questions) {
		// 題目出完：廣播最終排行榜，會話進入終態
		session.Status = SessionEnded
		session.timer = nil
		sortLeaderboard(session.Participants)
		participants := snapshotParticipants(session)
		s.mu.Unlock()

		s.broadcaster.BroadcastToArena(arenaID, &models.Event{
			Type: models.EventQuizEnded,
			Data: models.ParticipantsPayload{Participants: participants},
		})
		return
	}

	session.CurrentQuestionIndex = next
	question := s.questionEvent(session, next)
	s.scheduleAdvance(arenaID, session, session.questions[next].TimeLimit)
	s.mu.Unlock()

	s.broadcaster.BroadcastToArena(arenaID, question)
}

// questionEvent 構建題目廣播事件，正確選項永遠不會被傳出去。
// 調用方必須持有 s.mu
func (s *SessionService) questionEvent(session *ArenaSession, index int) *models.Event {
	question := session.questions[index]
	return &models.Event{
		Type: models.EventQuestion,
		Data: models.QuestionPayload{
			Question:       sanitizeQuestion(&question),
			QuestionNumber: index + 1,
			TotalQuestions: len(session.questions),
		},
	}
}

// sanitizeQuestion 轉換為對參與者公開的題目內容
func sanitizeQuestion(question *models.Question) models.QuestionInfo {
	return models.QuestionInfo{
		ID:           question.ID,
		QuestionText: question.QuestionText,
		Options:      question.OptionList(),
		TimeLimit:    question.TimeLimit,
		Order:        question.Order,
	}
}

// handleSubmitAnswer 處理作答：計分、寫入作答記錄、
// 累加參賽分數，並以更新後的權威值重排排行榜
func (s *SessionService) handleSubmitAnswer(client *Client, payload models.SubmitAnswerPayload) {
	s.mu.Lock()
	ctx, joined := s.connections[client]
	s.mu.Unlock()
	if !joined {
		s.sendError(client, models.EventAnswerError, "尚未加入任何競技場")
		return
	}

	question, err := s.questionRepo.FindByID(payload.QuestionID)
	if err != nil {
		s.sendError(client, models.EventAnswerError, "題目不存在")
		return
	}

	isCorrect := payload.SelectedOption == question.CorrectOption
	points := ComputePoints(isCorrect, question.Points, question.TimeLimit, payload.TimeTaken)

	answer := &models.Answer{
		ParticipationID: payload.ParticipationID,
		QuestionID:      payload.QuestionID,
		SelectedOption:  payload.SelectedOption,
		IsCorrect:       isCorrect,
		TimeTaken:       payload.TimeTaken,
		Points:          points,
	}
	if err := s.answerRepo.Create(answer); err != nil {
		log.Printf("create answer failed: %v", err)
		s.sendError(client, models.EventAnswerError, "記錄答案失敗")
		return
	}

	participation, err := s.participationRepo.AddScore(payload.ParticipationID, points, payload.TimeTaken)
	if err != nil {
		log.Printf("add score failed: %v", err)
		s.sendError(client, models.EventAnswerError, "更新分數失敗")
		return
	}

	// 存儲調用期間其他事件可能已經拆除會話，必須重新驗證
	s.mu.Lock()
	session, ok := s.store.Get(ctx.arenaID)
	var participants []models.ParticipantEntry
	if ok {
		if entry := findParticipant(session, ctx.userID); entry != nil {
			entry.Score = participation.TotalScore
			entry.TimeTaken = participation.TotalTimeTaken
		}
		sortLeaderboard(session.Participants)
		participants = snapshotParticipants(session)
	}
	s.mu.Unlock()

	s.sendTo(client, &models.Event{
		Type: models.EventAnswerSubmitted,
		Data: models.AnswerSubmittedPayload{
			IsCorrect:  isCorrect,
			Points:     points,
			TotalScore: participation.TotalScore,
		},
	})

	if ok {
		s.broadcaster.BroadcastToArena(ctx.arenaID, &models.Event{
			Type: models.EventLeaderboardUpdate,
			Data: models.ParticipantsPayload{Participants: participants},
		})
	}
}

// handleAddLiveQuestion 處理創建者在進行中追加題目。
// 題目立即持久化，但不會插入已經開始的測驗的題目快照
func (s *SessionService) handleAddLiveQuestion(client *Client, payload models.AddLiveQuestionPayload) {
	arena, err := s.arenaRepo.FindByID(payload.ArenaID)
	if err != nil {
		s.sendError(client, models.EventArenaError, "競技場不存在")
		return
	}

	if arena.CreatorID != payload.UserID {
		s.sendError(client, models.EventArenaError, "只有創建者可以追加題目")
		return
	}

	input := payload.QuestionData
	question := &models.Question{
		ArenaID:       payload.ArenaID,
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
		s.sendError(client, models.EventArenaError, "選項格式錯誤")
		return
	}

	if err := s.questionRepo.Create(question); err != nil {
		log.Printf("create live question failed: %v", err)
		s.sendError(client, models.EventArenaError, "追加題目失敗")
		return
	}

	s.sendTo(client, &models.Event{
		Type: models.EventQuestionAdded,
		Data: models.QuestionAddedPayload{
			Success:  true,
			Question: sanitizeQuestion(question),
		},
	})
}

// handleCompleteParticipation 處理參與者明確結束本次參賽
func (s *SessionService) handleCompleteParticipation(client *Client, payload models.CompleteParticipationPayload) {
	if _, err := s.participationRepo.Complete(payload.ParticipationID, time.Now()); err != nil {
		log.Printf("complete participation failed: %v", err)
		s.sendError(client, models.EventArenaError, "完成參賽失敗")
		return
	}

	s.sendTo(client, &models.Event{Type: models.EventParticipationCompleted})
}
