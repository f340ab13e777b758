package store

import (
	"context"
	"time"

	"github.com/Mayron603/painel-ssp/internal/models"
)

// Agregados independentes do resumo do dashboard. Cada um é uma consulta
// própria para o handler poder disparar todos em paralelo.

func (s *Store) CountDistinctUsers(ctx context.Context) (int, error) {
	var n int
	err := s.db.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT user_id) FROM registros`,
	).Scan(&n)
	return n, err
}

// CountPendingRegistros conta registros com pelo menos um ponto aberto.
func (s *Store) CountPendingRegistros(ctx context.Context) (int, error) {
	var n int
	err := s.db.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT registro_id) FROM pontos WHERE saida IS NULL`,
	).Scan(&n)
	return n, err
}

// CountClosedSince conta registros com algum ponto fechado a partir de t.
func (s *Store) CountClosedSince(ctx context.Context, t time.Time) (int, error) {
	var n int
	err := s.db.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT registro_id) FROM pontos WHERE saida >= $1`,
		t,
	).Scan(&n)
	return n, err
}

// SumClosedDurationSince soma, em milissegundos, as durações dos pontos
// fechados a partir de t.
func (s *Store) SumClosedDurationSince(ctx context.Context, t time.Time) (int64, error) {
	var ms float64
	err := s.db.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(EXTRACT(EPOCH FROM (saida - entrada)) * 1000), 0)
		 FROM pontos WHERE saida >= $1`,
		t,
	).Scan(&ms)
	return int64(ms), err
}

// DailyActivityCounts conta pontos por dia (UTC) com entrada a partir de t.
func (s *Store) DailyActivityCounts(ctx context.Context, t time.Time) (map[string]int, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT to_char(entrada AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS dia, COUNT(*)
		 FROM pontos
		 WHERE entrada >= $1
		 GROUP BY dia
		 ORDER BY dia`,
		t,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var dia string
		var count int
		if err := rows.Scan(&dia, &count); err != nil {
			return nil, err
		}
		out[dia] = count
	}
	return out, rows.Err()
}

// RecentPontos devolve os últimos pontos por entrada (feed de atividade).
func (s *Store) RecentPontos(ctx context.Context, limit int) ([]models.FlatPonto, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT r.username, p.entrada, p.saida
		 FROM pontos p
		 JOIN registros r ON r.id = p.registro_id
		 ORDER BY p.entrada DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feed := make([]models.FlatPonto, 0, limit)
	for rows.Next() {
		var f models.FlatPonto
		if err := rows.Scan(&f.Username, &f.Entrada, &f.Saida); err != nil {
			return nil, err
		}
		feed = append(feed, f)
	}
	return feed, rows.Err()
}

// HourlyActivityCounts conta pontos por hora do dia no fuso informado, com
// entrada a partir de t.
func (s *Store) HourlyActivityCounts(ctx context.Context, t time.Time, timezone string) (map[int]int, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT EXTRACT(HOUR FROM entrada AT TIME ZONE $2)::int AS hora, COUNT(*)
		 FROM pontos
		 WHERE entrada >= $1
		 GROUP BY hora
		 ORDER BY hora`,
		t, timezone,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var hora, count int
		if err := rows.Scan(&hora, &count); err != nil {
			return nil, err
		}
		out[hora] = count
	}
	return out, rows.Err()
}
