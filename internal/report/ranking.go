package report

import (
	"sort"

	"github.com/Mayron603/painel-ssp/internal/models"
)

// RankingLimit é o corte do top N exposto pela API.
const RankingLimit = 20

// BuildRanking agrupa pontos fechados por (userId, username), soma as
// durações e ordena por total decrescente. Empates são desfeitos por
// username crescente para manter a saída determinística. limit ≤ 0
// significa sem corte.
func BuildRanking(pontos []models.ClosedPonto, limit int) []models.RankingEntry {
	type key struct {
		userID   string
		username string
	}

	totals := make(map[key]int64)
	for _, p := range pontos {
		k := key{userID: p.UserID, username: p.Username}
		totals[k] += p.Saida.Sub(p.Entrada).Milliseconds()
	}

	entries := make([]models.RankingEntry, 0, len(totals))
	for k, total := range totals {
		entries = append(entries, models.RankingEntry{
			UserID:        k.userID,
			Username:      k.username,
			TotalDuration: total,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalDuration != entries[j].TotalDuration {
			return entries[i].TotalDuration > entries[j].TotalDuration
		}
		return entries[i].Username < entries[j].Username
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
