package models

import (
	"encoding/json"
)

// Event 代表一個透過 WebSocket 發送給客戶端的事件
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// ClientEvent 代表從客戶端接收的事件，Data 延遲解析
type ClientEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// 客戶端事件類型
const (
	EventJoinArena             = "join_arena"
	EventStartQuiz             = "start_quiz"
	EventSubmitAnswer          = "submit_answer"
	EventAddLiveQuestion       = "add_live_question"
	EventCompleteParticipation = "complete_participation"
)

// 服務端事件類型
const (
	EventArenaJoined            = "arena_joined"
	EventArenaError             = "arena_error"
	EventAnswerError            = "answer_error"
	EventUserJoined             = "user_joined"
	EventUserLeft               = "user_left"
	EventQuestion               = "question"
	EventLeaderboardUpdate      = "leaderboard_update"
	EventAnswerSubmitted        = "answer_submitted"
	EventQuizEnded              = "quiz_ended"
	EventQuestionAdded          = "question_added"
	EventParticipationCompleted = "participation_completed"
)

// JoinArenaPayload 是 join_arena 事件的內容
type JoinArenaPayload struct {
	UserID    uint `json:"userId"`
	ArenaID   uint `json:"arenaId"`
	IsCreator bool `json:"isCreator"`
}

// StartQuizPayload 是 start_quiz 事件的內容
type StartQuizPayload struct {
	ArenaID uint `json:"arenaId"`
	UserID  uint `json:"userId"`
}

// SubmitAnswerPayload 是 submit_answer 事件的內容
type SubmitAnswerPayload struct {
	ParticipationID uint `json:"participationId"`
	QuestionID      uint `json:"questionId"`
	SelectedOption  int  `json:"selectedOption"`
	TimeTaken       int  `json:"timeTaken"` // 毫秒
}

// AddLiveQuestionPayload 是 add_live_question 事件的內容
type AddLiveQuestionPayload struct {
	ArenaID      uint              `json:"arenaId"`
	UserID       uint              `json:"userId"`
	QuestionData LiveQuestionInput `json:"questionData"`
}

// LiveQuestionInput 是動態追加題目的欄位
type LiveQuestionInput struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
	Points        int      `json:"points"`
	TimeLimit     int      `json:"timeLimit"`
	Order         int      `json:"order"`
}

// CompleteParticipationPayload 是 complete_participation 事件的內容
type CompleteParticipationPayload struct {
	ParticipationID uint `json:"participationId"`
}

// ArenaInfo 是 arena_joined 事件中的競技場摘要
type ArenaInfo struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"questionCount"`
}

// ArenaJoinedPayload 是 arena_joined 事件的內容
type ArenaJoinedPayload struct {
	Arena           ArenaInfo `json:"arena"`
	ParticipationID uint      `json:"participationId,omitempty"`
	IsCreator       bool      `json:"isCreator,omitempty"`
}

// ErrorPayload 是 arena_error 與 answer_error 事件的內容
type ErrorPayload struct {
	Message string `json:"message"`
}

// QuestionInfo 是廣播給參與者的題目內容，不包含正確答案
type QuestionInfo struct {
	ID           uint     `json:"id"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
	TimeLimit    int      `json:"timeLimit"`
	Order        int      `json:"order"`
}

// QuestionPayload 是 question 事件的內容
type QuestionPayload struct {
	Question       QuestionInfo `json:"question"`
	QuestionNumber int          `json:"questionNumber"`
	TotalQuestions int          `json:"totalQuestions"`
}

// ParticipantsPayload 是 user_joined、user_left、leaderboard_update
// 與 quiz_ended 事件的內容
type ParticipantsPayload struct {
	Participants []ParticipantEntry `json:"participants"`
}

// ParticipantEntry 是會話中一位參與者的即時狀態
type ParticipantEntry struct {
	ParticipationID uint   `json:"participationId,omitempty"` // 創建者（監控者）沒有參賽記錄
	UserID          uint   `json:"userId"`
	Username        string `json:"username"`
	Score           int    `json:"score"`
	TimeTaken       int    `json:"timeTaken"` // 毫秒
	IsCreator       bool   `json:"isCreator"`
}

// AnswerSubmittedPayload 是 answer_submitted 事件的內容
type AnswerSubmittedPayload struct {
	IsCorrect  bool `json:"isCorrect"`
	Points     int  `json:"points"`
	TotalScore int  `json:"totalScore"`
}

// QuestionAddedPayload 是 question_added 事件的內容
type QuestionAddedPayload struct {
	Success  bool         `json:"success"`
	Question QuestionInfo `json:"question"`
}
