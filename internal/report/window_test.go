package report

import (
	"testing"
	"time"
)

func TestWeekWindow_AlwaysMondayToSunday(t *testing.T) {
	for year := 2022; year <= 2026; year++ {
		for week := 1; week <= 53; week++ {
			w := WeekWindow(year, week, time.UTC)

			if w.Start.Weekday() != time.Monday {
				t.Fatalf("year %d week %d: start %v is %v, want Monday", year, week, w.Start, w.Start.Weekday())
			}
			if h, m, s := w.Start.Clock(); h != 0 || m != 0 || s != 0 || w.Start.Nanosecond() != 0 {
				t.Fatalf("year %d week %d: start %v is not midnight", year, week, w.Start)
			}
			if w.End.Weekday() != time.Sunday {
				t.Fatalf("year %d week %d: end %v is %v, want Sunday", year, week, w.End, w.End.Weekday())
			}

			span := w.End.Sub(w.Start)
			want := 7*24*time.Hour - time.Millisecond
			if span != want {
				t.Fatalf("year %d week %d: span %v, want %v", year, week, span, want)
			}
		}
	}
}

func TestWeekWindow_SundayCountsAsLastDay(t *testing.T) {
	// 1/jan/2023 caiu num domingo: a semana 1 recua até 26/dez/2022
	w := WeekWindow(2023, 1, time.UTC)

	wantStart := time.Date(2022, time.December, 26, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", w.Start, wantStart)
	}
	wantEnd := time.Date(2023, time.January, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !w.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", w.End, wantEnd)
	}
}

func TestWeekWindow_FirstWeekOf2024(t *testing.T) {
	// 1/jan/2024 caiu numa segunda: a janela é 1-7 de janeiro
	w := WeekWindow(2024, 1, time.UTC)

	wantStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.January, 7, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !w.Start.Equal(wantStart) || !w.End.Equal(wantEnd) {
		t.Errorf("window = [%v, %v], want [%v, %v]", w.Start, w.End, wantStart, wantEnd)
	}
}

func TestCurrentWeekWindow(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		wantStart time.Time
	}{
		{
			"quarta-feira",
			time.Date(2024, time.June, 12, 15, 30, 0, 0, time.UTC),
			time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"segunda-feira",
			time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"domingo pertence à semana que terminou",
			time.Date(2024, time.June, 16, 23, 0, 0, 0, time.UTC),
			time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := CurrentWeekWindow(tt.today)
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", w.Start, tt.wantStart)
			}
		})
	}
}

func TestMonthWindow(t *testing.T) {
	// month é zero-based; fevereiro de 2024 foi bissexto
	w := MonthWindow(2024, 1, time.UTC)

	wantStart := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.February, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", w.End, wantEnd)
	}
}

func TestResolveWindow_Defaults(t *testing.T) {
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)

	monthly := ResolveWindow(PeriodMonthly, 0, -1, 0, now)
	if !monthly.Start.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("monthly default start = %v", monthly.Start)
	}

	weekly := ResolveWindow(PeriodWeekly, 0, -1, 0, now)
	if !weekly.Start.Equal(time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("weekly default start = %v", weekly.Start)
	}

	explicit := ResolveWindow(PeriodWeekly, 2024, -1, 1, now)
	if !explicit.Start.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("weekly explicit start = %v", explicit.Start)
	}

	// período desconhecido cai em weekly
	fallback := ResolveWindow("daily", 0, -1, 0, now)
	if !fallback.Start.Equal(weekly.Start) {
		t.Errorf("unknown period start = %v, want %v", fallback.Start, weekly.Start)
	}
}
