package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trivia_web/internal/models"
)

func TestClientSendAfterClose(t *testing.T) {
	client := newTestClient(1)
	client.markClosed()

	// 關閉後的發送被拒絕而不是 panic
	require.NotPanics(t, func() {
		require.False(t, client.Send(&models.Event{Type: models.EventQuestion}))
	})

	// 重複關閉是冪等操作
	require.NotPanics(t, func() { client.markClosed() })
}

func TestClientSendFullQueue(t *testing.T) {
	client := &Client{SendChan: make(chan *models.Event, 1)}
	require.True(t, client.Send(&models.Event{Type: models.EventQuestion}))
	require.False(t, client.Send(&models.Event{Type: models.EventQuestion}))
}

func TestBroadcastToArenaSkipsClosedClient(t *testing.T) {
	manager := NewWebSocketManager()
	open := newTestClient(1)
	closed := newTestClient(2)
	manager.AddToArena(open, 7)
	manager.AddToArena(closed, 7)
	require.Equal(t, 2, manager.GetArenaClients(7))

	// 斷線清理與廣播同時發生時，已關閉的客戶端被移除而不中斷廣播
	closed.markClosed()
	event := &models.Event{Type: models.EventLeaderboardUpdate}
	require.NotPanics(t, func() { manager.BroadcastToArena(7, event) })

	received := drainEvents(open)
	require.Len(t, received, 1)
	require.Equal(t, models.EventLeaderboardUpdate, received[0].Type)

	require.Equal(t, 1, manager.GetArenaClients(7))
}
