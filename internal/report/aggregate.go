package report

import (
	"sort"
	"time"

	"github.com/Mayron603/painel-ssp/internal/models"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Filter restringe pontos por status e por janela de entrada. End é
// estendido até 23:59:59.999 do próprio dia antes da comparação.
type Filter struct {
	Status Status
	Start  *time.Time
	End    *time.Time
}

func (f Filter) matches(p models.Ponto) bool {
	if f.Status == StatusPending && p.Saida != nil {
		return false
	}
	if f.Status == StatusCompleted && p.Saida == nil {
		return false
	}
	if f.Start != nil && p.Entrada.Before(*f.Start) {
		return false
	}
	if f.End != nil && p.Entrada.After(EndOfDay(*f.End)) {
		return false
	}
	return true
}

// EndOfDay devolve 23:59:59.999 do dia de t, no fuso de t.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// FilterRegistros devolve os registros com apenas os pontos que passam no
// filtro (registros que ficam vazios são descartados) e a duração total em
// milissegundos somada sobre os pontos fechados sobreviventes. Pontos
// abertos contribuem 0 para a soma.
func FilterRegistros(registros []models.Registro, f Filter) ([]models.Registro, int64) {
	var totalDuration int64
	out := make([]models.Registro, 0, len(registros))

	for _, reg := range registros {
		filtered := make([]models.Ponto, 0, len(reg.Pontos))
		for _, p := range reg.Pontos {
			if f.matches(p) {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			continue
		}
		for _, p := range filtered {
			if p.Saida != nil {
				totalDuration += p.Saida.Sub(p.Entrada).Milliseconds()
			}
		}
		reg.Pontos = filtered
		out = append(out, reg)
	}

	return out, totalDuration
}

// FlattenPontos achata os registros em tuplas (username, entrada, saida)
// que passam no filtro, ordenadas por entrada decrescente (modo export).
func FlattenPontos(registros []models.Registro, f Filter) []models.FlatPonto {
	out := make([]models.FlatPonto, 0)
	for _, reg := range registros {
		for _, p := range reg.Pontos {
			if f.matches(p) {
				out = append(out, models.FlatPonto{Username: reg.Username, Entrada: p.Entrada, Saida: p.Saida})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Entrada.After(out[j].Entrada)
	})
	return out
}
