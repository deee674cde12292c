package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trivia_web/internal/models"
	"trivia_web/internal/service"
)

// ArenaHandler 處理與競技場相關的請求
type ArenaHandler struct {
	arenaService   *service.ArenaService
	sessionService *service.SessionService
	wsManager      *service.WebSocketManager
}

// NewArenaHandler 創建一個新的 ArenaHandler 實例
func NewArenaHandler(arenaService *service.ArenaService, sessionService *service.SessionService, wsManager *service.WebSocketManager) *ArenaHandler {
	return &ArenaHandler{
		arenaService:   arenaService,
		sessionService: sessionService,
		wsManager:      wsManager,
	}
}

// CreateArena 處理創建新競技場的請求
func (h *ArenaHandler) CreateArena(c *gin.Context) {
	var input struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	arena, err := h.arenaService.CreateArena(userID.(uint), input.Title, input.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "創建競技場失敗"})
		return
	}

	c.JSON(http.StatusCreated, arena)
}

// ListArenas 處理獲取競技場列表的請求
func (h *ArenaHandler) ListArenas(c *gin.Context) {
	arenas, err := h.arenaService.ListArenas()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法搜尋競技場列表"})
		return
	}

	c.JSON(http.StatusOK, arenas)
}

// GetArena 處理獲取競技場訊息的請求，附帶即時會話狀態
func (h *ArenaHandler) GetArena(c *gin.Context) {
	arenaID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的競技場ID"})
		return
	}

	arena, err := h.arenaService.GetArena(uint(arenaID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "競技場不存在"})
		return
	}

	// 附帶即時會話資訊，沒有會話時表示沒有人在線
	liveStatus := ""
	liveParticipants := 0
	if snapshot, ok := h.sessionService.ActiveSession(uint(arenaID)); ok {
		liveStatus = string(snapshot.Status)
		liveParticipants = len(snapshot.Participants)
	}

	c.JSON(http.StatusOK, gin.H{
		"arena":             arena,
		"live_status":       liveStatus,
		"live_participants": liveParticipants,
		"live_connections":  h.wsManager.GetArenaClients(uint(arenaID)),
	})
}

// DeleteArena 處理刪除競技場的請求
func (h *ArenaHandler) DeleteArena(c *gin.Context) {
	arenaID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的競技場ID"})
		return
	}

	userID, _ := c.Get("userID")

	if err := h.arenaService.DeleteArena(uint(arenaID), userID.(uint)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功刪除競技場"})
}

// AddQuestion 處理為競技場新增題目的請求
func (h *ArenaHandler) AddQuestion(c *gin.Context) {
	arenaID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的競技場ID"})
		return
	}

	var input models.LiveQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	question, err := h.arenaService.AddQuestion(uint(arenaID), userID.(uint), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, question)
}

// ListQuestions 處理獲取競技場題目列表的請求
func (h *ArenaHandler) ListQuestions(c *gin.Context) {
	arenaID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的競技場ID"})
		return
	}

	questions, err := h.arenaService.ListQuestions(uint(arenaID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法搜尋題目列表"})
		return
	}

	c.JSON(http.StatusOK, questions)
}

// GetResults 處理獲取競技場參賽結果的請求
func (h *ArenaHandler) GetResults(c *gin.Context) {
	arenaID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的競技場ID"})
		return
	}

	results, err := h.arenaService.GetResults(uint(arenaID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "競技場不存在"})
		return
	}

	c.JSON(http.StatusOK, results)
}
