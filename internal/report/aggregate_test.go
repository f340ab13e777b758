package report

import (
	"testing"
	"time"

	"github.com/Mayron603/painel-ssp/internal/models"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func sampleRegistros() []models.Registro {
	return []models.Registro{
		{
			ID: 1, UserID: "100", Username: "alfa",
			Pontos: []models.Ponto{
				{ID: 10, Entrada: ts("2024-01-01T08:00:00Z"), Saida: tsp("2024-01-01T16:00:00Z")},
				{ID: 11, Entrada: ts("2024-01-03T08:00:00Z"), Saida: nil},
			},
		},
		{
			ID: 2, UserID: "200", Username: "bravo",
			Pontos: []models.Ponto{
				{ID: 20, Entrada: ts("2024-02-01T10:00:00Z"), Saida: tsp("2024-02-01T12:00:00Z")},
			},
		},
	}
}

func TestFilterRegistros_EightHourShift(t *testing.T) {
	regs := []models.Registro{{
		ID: 1, UserID: "100", Username: "alfa",
		Pontos: []models.Ponto{
			{Entrada: ts("2024-01-01T08:00:00Z"), Saida: tsp("2024-01-01T16:00:00Z")},
		},
	}}

	_, total := FilterRegistros(regs, Filter{})
	if total != 28800000 {
		t.Errorf("total = %d ms, want 28800000 (8h)", total)
	}
}

func TestFilterRegistros_StatusFilter(t *testing.T) {
	regs := sampleRegistros()

	pending, total := FilterRegistros(regs, Filter{Status: StatusPending})
	if len(pending) != 1 || len(pending[0].Pontos) != 1 {
		t.Fatalf("pending: got %d registros, want 1 com 1 ponto", len(pending))
	}
	if pending[0].Pontos[0].Saida != nil {
		t.Error("pending retornou ponto fechado")
	}
	// ponto aberto contribui 0 para a soma
	if total != 0 {
		t.Errorf("pending total = %d, want 0", total)
	}

	completed, total := FilterRegistros(regs, Filter{Status: StatusCompleted})
	if len(completed) != 2 {
		t.Fatalf("completed: got %d registros, want 2", len(completed))
	}
	want := int64(8*3600000 + 2*3600000)
	if total != want {
		t.Errorf("completed total = %d, want %d", total, want)
	}
}

func TestFilterRegistros_DateWindow(t *testing.T) {
	regs := sampleRegistros()

	start := ts("2024-01-01T00:00:00Z")
	end := ts("2024-01-31T00:00:00Z")
	out, total := FilterRegistros(regs, Filter{Start: &start, End: &end})

	// o registro de fevereiro some por inteiro
	if len(out) != 1 || out[0].UserID != "100" {
		t.Fatalf("got %d registros, want só o de janeiro", len(out))
	}
	if total != 8*3600000 {
		t.Errorf("total = %d, want %d", total, 8*3600000)
	}
}

func TestFilterRegistros_EndExtendsToEndOfDay(t *testing.T) {
	regs := []models.Registro{{
		ID: 1, Username: "alfa",
		Pontos: []models.Ponto{
			{Entrada: ts("2024-01-05T23:30:00Z"), Saida: tsp("2024-01-06T07:30:00Z")},
		},
	}}

	// filtro termina no dia 5; a entrada 23:30 do dia 5 ainda passa
	end := ts("2024-01-05T00:00:00Z")
	out, _ := FilterRegistros(regs, Filter{End: &end})
	if len(out) != 1 {
		t.Error("entrada às 23:30 do dia final foi descartada")
	}

	// mas uma entrada no dia seguinte não
	end = ts("2024-01-04T00:00:00Z")
	out, _ = FilterRegistros(regs, Filter{End: &end})
	if len(out) != 0 {
		t.Error("entrada após o fim da janela passou no filtro")
	}
}

func TestFilterRegistros_SumIsOrderIndependent(t *testing.T) {
	regs := sampleRegistros()
	reversed := []models.Registro{regs[1], regs[0]}

	_, a := FilterRegistros(regs, Filter{})
	_, b := FilterRegistros(reversed, Filter{})
	if a != b {
		t.Errorf("soma depende da ordem: %d != %d", a, b)
	}
}

func TestFlattenPontos_SortedByEntradaDesc(t *testing.T) {
	flat := FlattenPontos(sampleRegistros(), Filter{})

	if len(flat) != 3 {
		t.Fatalf("got %d pontos, want 3", len(flat))
	}
	for i := 1; i < len(flat); i++ {
		if flat[i].Entrada.After(flat[i-1].Entrada) {
			t.Errorf("pontos fora de ordem em %d: %v depois de %v", i, flat[i].Entrada, flat[i-1].Entrada)
		}
	}
	if flat[0].Username != "bravo" {
		t.Errorf("mais recente = %s, want bravo", flat[0].Username)
	}
}
