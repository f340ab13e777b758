package report

import (
	"testing"
	"time"

	"github.com/Mayron603/painel-ssp/internal/models"
)

func TestComputeStats_ZeroPontos(t *testing.T) {
	now := ts("2024-06-15T12:00:00Z")
	stats := ComputeStats(nil, nil, now)

	if stats.AverageDuration != 0 || stats.TotalHoursThisMonth != 0 || stats.TeamAverageHoursThisMonth != 0 {
		t.Errorf("escalares não zerados: %+v", stats)
	}

	// as linhas do heatmap precisam ser independentes, não aliases
	stats.ActivityHeatmap[0][5] = 99
	for day := 1; day < 7; day++ {
		if stats.ActivityHeatmap[day][5] != 0 {
			t.Fatalf("heatmap[%d] compartilha memória com heatmap[0]", day)
		}
	}
}

func TestComputeStats_AverageAndMonthTotals(t *testing.T) {
	now := ts("2024-06-15T12:00:00Z")

	userPontos := []models.ClosedPonto{
		// mês corrente: 8h
		closedPonto("1", "alfa", ts("2024-06-03T08:00:00Z"), 8),
		// mês anterior, ainda dentro dos 90 dias: 4h
		closedPonto("1", "alfa", ts("2024-05-10T08:00:00Z"), 4),
	}

	stats := ComputeStats(userPontos, nil, now)

	wantAvg := float64(12*3600000) / 2
	if stats.AverageDuration != wantAvg {
		t.Errorf("averageDuration = %f, want %f", stats.AverageDuration, wantAvg)
	}
	if stats.TotalHoursThisMonth != 8 {
		t.Errorf("totalHoursThisMonth = %f, want 8", stats.TotalHoursThisMonth)
	}
}

func TestComputeStats_HeatmapBuckets(t *testing.T) {
	now := ts("2024-06-15T12:00:00Z")

	// 3/jun/2024 foi uma segunda-feira; 9/jun um domingo
	userPontos := []models.ClosedPonto{
		closedPonto("1", "alfa", ts("2024-06-03T08:00:00Z"), 1),
		closedPonto("1", "alfa", ts("2024-06-03T08:30:00Z"), 1),
		closedPonto("1", "alfa", ts("2024-06-09T22:00:00Z"), 1),
	}

	stats := ComputeStats(userPontos, nil, now)

	// convenção do heatmap: 0=domingo .. 6=sábado
	if got := stats.ActivityHeatmap[1][8]; got != 2 {
		t.Errorf("heatmap[segunda][8] = %d, want 2", got)
	}
	if got := stats.ActivityHeatmap[0][22]; got != 1 {
		t.Errorf("heatmap[domingo][22] = %d, want 1", got)
	}
}

func TestComputeStats_TeamAverage(t *testing.T) {
	now := ts("2024-06-15T12:00:00Z")

	userPontos := []models.ClosedPonto{
		closedPonto("1", "alfa", ts("2024-06-03T08:00:00Z"), 10),
	}
	teamPontos := []models.ClosedPonto{
		closedPonto("1", "alfa", ts("2024-06-03T08:00:00Z"), 10),
		closedPonto("2", "bravo", ts("2024-06-04T08:00:00Z"), 6),
		// fora do mês corrente, não conta
		closedPonto("3", "charlie", ts("2024-05-04T08:00:00Z"), 50),
	}

	stats := ComputeStats(userPontos, teamPontos, now)

	// 16h divididas entre 2 usuários distintos
	if stats.TeamAverageHoursThisMonth != 8 {
		t.Errorf("teamAverageHoursThisMonth = %f, want 8", stats.TeamAverageHoursThisMonth)
	}
}
