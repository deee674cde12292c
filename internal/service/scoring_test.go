package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trivia_web/internal/models"
)

func TestComputePoints(t *testing.T) {
	tests := map[string]struct {
		isCorrect    bool
		maxPoints    int
		timeLimitSec int
		timeTakenMs  int
		want         int
	}{
		"瞬間答對得滿分": {
			isCorrect: true, maxPoints: 10, timeLimitSec: 20, timeTakenMs: 0,
			want: 10,
		},
		"最慢答對仍得六成": {
			isCorrect: true, maxPoints: 10, timeLimitSec: 20, timeTakenMs: 20000,
			want: 6,
		},
		"半程答對得八成": {
			isCorrect: true, maxPoints: 10, timeLimitSec: 10, timeTakenMs: 5000,
			want: 8,
		},
		"答錯得零分": {
			isCorrect: false, maxPoints: 10, timeLimitSec: 20, timeTakenMs: 1000,
			want: 0,
		},
		"超時答對不會低於六成": {
			isCorrect: true, maxPoints: 10, timeLimitSec: 20, timeTakenMs: 99999,
			want: 6,
		},
		"時限為零時只給基礎分": {
			isCorrect: true, maxPoints: 10, timeLimitSec: 0, timeTakenMs: 0,
			want: 6,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := ComputePoints(tt.isCorrect, tt.maxPoints, tt.timeLimitSec, tt.timeTakenMs)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestComputePointsBounds(t *testing.T) {
	// 得分永遠落在 [0, maxPoints] 區間內
	for taken := 0; taken <= 30000; taken += 1500 {
		points := ComputePoints(true, 10, 20, taken)
		require.GreaterOrEqual(t, points, 0)
		require.LessOrEqual(t, points, 10)
	}
}

func TestSortLeaderboard(t *testing.T) {
	entries := []*models.ParticipantEntry{
		{UserID: 1, Username: "a", Score: 10, TimeTaken: 5000},
		{UserID: 2, Username: "b", Score: 25, TimeTaken: 9000},
		{UserID: 3, Username: "c", Score: 10, TimeTaken: 3000},
		{UserID: 4, Username: "d", Score: 0, TimeTaken: 0},
	}

	sortLeaderboard(entries)

	// 分數高者在前，同分時耗時短者在前
	for i := 0; i < len(entries)-1; i++ {
		a, b := entries[i], entries[i+1]
		ordered := a.Score > b.Score || (a.Score == b.Score && a.TimeTaken <= b.TimeTaken)
		require.True(t, ordered, "entry %d should rank before entry %d", a.UserID, b.UserID)
	}

	require.Equal(t, uint(2), entries[0].UserID)
	require.Equal(t, uint(3), entries[1].UserID)
	require.Equal(t, uint(1), entries[2].UserID)
	require.Equal(t, uint(4), entries[3].UserID)
}
