package service

import (
	"math"
	"sort"

	"trivia_web/internal/models"
)

// 計分公式的固定比例：答對至少拿到 60% 的分數，
// 剩下的 40% 依作答速度按比例給分
const (
	baseScoreRatio  = 0.6
	speedScoreRatio = 0.4
)

// ComputePoints 根據正確性與作答耗時計算得分。
// 答錯得 0 分；答對時最慢仍得 maxPoints 的 60%，瞬間作答得滿分。
// timeTaken 超過時限時速度加成視為 0。
func ComputePoints(isCorrect bool, maxPoints, timeLimitSec, timeTakenMs int) int {
	if !isCorrect {
		return 0
	}

	timeLimitMs := float64(timeLimitSec) * 1000
	timeRatio := 0.0
	if timeLimitMs > 0 {
		timeRatio = (timeLimitMs - float64(timeTakenMs)) / timeLimitMs
		if timeRatio < 0 {
			timeRatio = 0
		}
	}

	return int(math.Round(float64(maxPoints) * (baseScoreRatio + speedScoreRatio*timeRatio)))
}

// sortLeaderboard 穩定排序參與者列表：分數高者在前，同分時耗時短者在前
func sortLeaderboard(entries []*models.ParticipantEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].TimeTaken < entries[j].TimeTaken
	})
}
