package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/Mayron603/painel-ssp/internal/models"
)

func closedPonto(userID, username string, entrada time.Time, hours int) models.ClosedPonto {
	return models.ClosedPonto{
		UserID:   userID,
		Username: username,
		Entrada:  entrada,
		Saida:    entrada.Add(time.Duration(hours) * time.Hour),
	}
}

func TestBuildRanking_OrdersByTotalDesc(t *testing.T) {
	jan := ts("2024-01-02T08:00:00Z")

	// usuário A soma 40h, usuário B soma 45h na mesma semana
	pontos := []models.ClosedPonto{
		closedPonto("1", "userA", jan, 20),
		closedPonto("1", "userA", jan.AddDate(0, 0, 1), 20),
		closedPonto("2", "userB", jan, 25),
		closedPonto("2", "userB", jan.AddDate(0, 0, 2), 20),
	}

	ranking := BuildRanking(pontos, RankingLimit)
	if len(ranking) != 2 {
		t.Fatalf("got %d entries, want 2", len(ranking))
	}
	if ranking[0].UserID != "2" {
		t.Errorf("primeiro = %s, want userB", ranking[0].Username)
	}
	if ranking[0].TotalDuration != int64(45*3600000) {
		t.Errorf("total userB = %d, want %d", ranking[0].TotalDuration, 45*3600000)
	}
	if ranking[1].TotalDuration != int64(40*3600000) {
		t.Errorf("total userA = %d, want %d", ranking[1].TotalDuration, 40*3600000)
	}
}

func TestBuildRanking_TieBreaksByUsername(t *testing.T) {
	jan := ts("2024-01-02T08:00:00Z")
	pontos := []models.ClosedPonto{
		closedPonto("2", "zulu", jan, 10),
		closedPonto("1", "alfa", jan, 10),
	}

	ranking := BuildRanking(pontos, RankingLimit)
	if ranking[0].Username != "alfa" || ranking[1].Username != "zulu" {
		t.Errorf("empate fora de ordem: %s, %s", ranking[0].Username, ranking[1].Username)
	}
}

func TestBuildRanking_CapsAtLimit(t *testing.T) {
	jan := ts("2024-01-02T08:00:00Z")
	pontos := make([]models.ClosedPonto, 0, 30)
	for i := 0; i < 30; i++ {
		id := string(rune('a' + i))
		pontos = append(pontos, closedPonto(id, "user-"+id, jan, i+1))
	}

	ranking := BuildRanking(pontos, 20)
	if len(ranking) != 20 {
		t.Fatalf("got %d entries, want 20", len(ranking))
	}
	// o corte mantém os maiores totais
	if ranking[0].TotalDuration != int64(30*3600000) {
		t.Errorf("topo = %d, want 30h", ranking[0].TotalDuration)
	}
}

func TestBuildRanking_Idempotent(t *testing.T) {
	jan := ts("2024-01-02T08:00:00Z")
	pontos := []models.ClosedPonto{
		closedPonto("3", "charlie", jan, 5),
		closedPonto("1", "alfa", jan, 5),
		closedPonto("2", "bravo", jan, 8),
		closedPonto("1", "alfa", jan.AddDate(0, 0, 1), 2),
	}

	first := BuildRanking(pontos, RankingLimit)
	second := BuildRanking(pontos, RankingLimit)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("duas execuções divergiram:\n%v\n%v", first, second)
	}
}
