// Package report implementa o motor de agregação do painel: janelas de
// tempo, somas de duração, ranking, estatísticas de atividade e ordenação
// por hierarquia de cargos.
package report

import "time"

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Window é um intervalo concreto [Start, End], ambos inclusivos.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow retorna [primeiro dia 00:00:00.000, último dia 23:59:59.999]
// do mês. month é zero-based (janeiro = 0), como no frontend.
func MonthWindow(year, month int, loc *time.Location) Window {
	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return Window{Start: start, End: end}
}

// WeekWindow calcula a semana `week` do ano: dia base = 1/jan + (week-1)*7,
// recuado até a segunda-feira daquela semana. Domingo (weekday 0) conta como
// último dia da semana, então recua 6 dias em vez de avançar 1.
func WeekWindow(year, week int, loc *time.Location) Window {
	d := time.Date(year, time.January, 1+(week-1)*7, 0, 0, 0, 0, loc)
	return weekAround(d)
}

// CurrentWeekWindow aplica o mesmo recuo de segunda-feira ao dia de hoje.
func CurrentWeekWindow(now time.Time) Window {
	return weekAround(now)
}

func weekAround(d time.Time) Window {
	day := int(d.Weekday()) // domingo = 0
	diff := -(day - 1)
	if day == 0 {
		diff = -6
	}
	monday := time.Date(d.Year(), d.Month(), d.Day()+diff, 0, 0, 0, 0, d.Location())
	sunday := monday.AddDate(0, 0, 7).Add(-time.Millisecond)
	return Window{Start: monday, End: sunday}
}

// ResolveWindow traduz o descritor de período vindo da query string para uma
// janela concreta. year/month/week ≤ 0 significam "não informado".
func ResolveWindow(period Period, year, month, week int, now time.Time) Window {
	if year <= 0 {
		year = now.Year()
	}
	if period == PeriodMonthly {
		if month < 0 {
			month = int(now.Month()) - 1
		}
		return MonthWindow(year, month, now.Location())
	}
	// qualquer outro valor cai em weekly, como o painel original
	if week > 0 {
		return WeekWindow(year, week, now.Location())
	}
	return CurrentWeekWindow(now)
}
