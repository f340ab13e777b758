package report

import (
	"time"

	"github.com/Mayron603/painel-ssp/internal/models"
)

const msPerHour = 3600000.0

// StatsLookback é a janela de histórico considerada nas estatísticas.
const StatsLookback = 90 * 24 * time.Hour

// NewHeatmap aloca a matriz 7x24 com linhas independentes (dia da semana
// 0=domingo..6=sábado × hora do dia).
func NewHeatmap() [][]int {
	hm := make([][]int, 7)
	for i := range hm {
		hm[i] = make([]int, 24)
	}
	return hm
}

// ComputeStats deriva as estatísticas de um membro a partir dos pontos
// fechados dos últimos 90 dias (userPontos) e dos pontos fechados de todo o
// time no mês corrente (teamPontos):
//   - AverageDuration: média em ms sobre a janela de 90 dias;
//   - TotalHoursThisMonth: horas com entrada a partir do dia 1 do mês;
//   - ActivityHeatmap: contagem por [dia da semana][hora] da entrada;
//   - TeamAverageHoursThisMonth: total do time dividido pelos usuários
//     distintos que contribuíram, em horas.
func ComputeStats(userPontos, teamPontos []models.ClosedPonto, now time.Time) models.MemberStats {
	stats := models.MemberStats{ActivityHeatmap: NewHeatmap()}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var totalMs, monthMs int64
	for _, p := range userPontos {
		duration := p.Saida.Sub(p.Entrada).Milliseconds()
		totalMs += duration

		if !p.Entrada.Before(firstOfMonth) {
			monthMs += duration
		}

		entrada := p.Entrada.In(now.Location())
		stats.ActivityHeatmap[int(entrada.Weekday())][entrada.Hour()]++
	}

	if len(userPontos) > 0 {
		stats.AverageDuration = float64(totalMs) / float64(len(userPontos))
	}
	stats.TotalHoursThisMonth = float64(monthMs) / msPerHour

	var teamMs int64
	teamUsers := make(map[string]struct{})
	for _, p := range teamPontos {
		if p.Entrada.Before(firstOfMonth) {
			continue
		}
		teamMs += p.Saida.Sub(p.Entrada).Milliseconds()
		teamUsers[p.UserID] = struct{}{}
	}
	if len(teamUsers) > 0 {
		stats.TeamAverageHoursThisMonth = float64(teamMs) / float64(len(teamUsers)) / msPerHour
	}

	return stats
}
