package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"trivia_web/internal/models"
)

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	Conn     *websocket.Conn    // WebSocket 連接
	UserID   uint               // 通過認證的用戶 ID
	ArenaID  uint               // 目前加入的競技場 ID，0 表示尚未加入
	SendChan chan *models.Event // 事件發送通道，用於異步傳送事件

	sendMux sync.Mutex // 序列化 Send 與 markClosed，保證不對已關閉的通道發送
	closed  bool
}

// Send 嘗試把事件放入發送隊列。連接已關閉或隊列已滿時回傳 false，
// 計時器等其他 goroutine 也會調用，不能阻塞
func (c *Client) Send(event *models.Event) bool {
	c.sendMux.Lock()
	defer c.sendMux.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.SendChan <- event:
		return true
	default:
		return false
	}
}

// markClosed 關閉發送隊列，之後的 Send 都會被拒絕。重複調用是冪等操作
func (c *Client) markClosed() {
	c.sendMux.Lock()
	defer c.sendMux.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.SendChan)
}

// EventHandler 處理客戶端事件與斷線清理，由會話引擎實現
type EventHandler interface {
	HandleEvent(client *Client, event *models.ClientEvent)
	HandleDisconnect(client *Client)
}

// WebSocketManager 管理所有的 WebSocket 連接，
// 以競技場 ID 為單位分組廣播事件
type WebSocketManager struct {
	clients    map[uint]map[*Client]bool // 兩層 map: arenaID -> client -> bool
	clientsMux sync.RWMutex              // 用於保護 clients map 的讀寫鎖
	handler    EventHandler
}

// NewWebSocketManager 創建並初始化新的 WebSocket 管理器
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients: make(map[uint]map[*Client]bool),
	}
}

// SetHandler 注入事件處理器。必須在接受任何連接之前調用
func (m *WebSocketManager) SetHandler(handler EventHandler) {
	m.handler = handler
}

// HandleClient 處理一個新的客戶端連接，阻塞直到連接關閉
func (m *WebSocketManager) HandleClient(client *Client) {
	// 確保連接關閉時清理資源
	defer func() {
		m.removeClient(client)
		if m.handler != nil {
			m.handler.HandleDisconnect(client)
		}
		client.Conn.Close()
		client.markClosed()
	}()

	// 啟動讀寫處理
	go m.writePump(client)
	m.readPump(client)
}

// readPump 持續監聽並處理從客戶端接收的事件
func (m *WebSocketManager) readPump(client *Client) {
	client.Conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		// 解析接收到的事件
		var event models.ClientEvent
		if err := json.Unmarshal(message, &event); err != nil {
			log.Printf("event parse error: %v", err)
			continue
		}

		if m.handler != nil {
			m.handler.HandleEvent(client, &event)
		}
	}
}

// writePump 處理向客戶端發送事件的邏輯
func (m *WebSocketManager) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-client.SendChan:
			// 設置寫入超時
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// JSON 編碼
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("event encoding error: %v", err)
				continue
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// AddToArena 把客戶端加入競技場分組，重複加入同一個競技場是冪等操作
func (m *WebSocketManager) AddToArena(client *Client, arenaID uint) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if client.ArenaID == arenaID && m.clients[arenaID][client] {
		return
	}

	// 重新加入其他競技場時先離開原本的分組
	if clients, ok := m.clients[client.ArenaID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(m.clients, client.ArenaID)
		}
	}

	if m.clients[arenaID] == nil {
		m.clients[arenaID] = make(map[*Client]bool)
	}
	m.clients[arenaID][client] = true
	client.ArenaID = arenaID
}

// BroadcastToArena 向競技場分組內的所有客戶端廣播事件
func (m *WebSocketManager) BroadcastToArena(arenaID uint, event *models.Event) {
	m.clientsMux.RLock()
	clients := make([]*Client, 0, len(m.clients[arenaID]))
	for client := range m.clients[arenaID] {
		clients = append(clients, client)
	}
	m.clientsMux.RUnlock()

	for _, client := range clients {
		if !client.Send(event) {
			// 客戶端已關閉或事件隊列已滿，移除連接
			m.removeClient(client)
			if client.Conn != nil {
				client.Conn.Close()
			}
		}
	}
}

// removeClient 安全地移除客戶端連接
func (m *WebSocketManager) removeClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if clients, ok := m.clients[client.ArenaID]; ok {
		delete(clients, client)
		// 如果分組空了，刪除分組
		if len(clients) == 0 {
			delete(m.clients, client.ArenaID)
		}
	}
}

// GetArenaClients 獲取指定競技場的在線客戶端數量
func (m *WebSocketManager) GetArenaClients(arenaID uint) int {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	return len(m.clients[arenaID])
}
