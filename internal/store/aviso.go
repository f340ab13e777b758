package store

import (
	"context"
	"time"
)

// AvisoPendente é um registro com ponto aberto há tempo demais que ainda
// não recebeu aviso desde aquela entrada.
type AvisoPendente struct {
	RegistroID int64
	Username   string
	Entrada    time.Time
}

func (s *Store) AvisosPendentes(ctx context.Context, cutoff time.Time) ([]AvisoPendente, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT DISTINCT ON (r.id) r.id, r.username, p.entrada
		 FROM pontos p
		 JOIN registros r ON r.id = p.registro_id
		 WHERE p.saida IS NULL
		   AND p.entrada < $1
		   AND (r.ultimo_aviso_enviado IS NULL OR r.ultimo_aviso_enviado < p.entrada)
		 ORDER BY r.id, p.entrada`,
		cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AvisoPendente, 0, 16)
	for rows.Next() {
		var a AvisoPendente
		if err := rows.Scan(&a.RegistroID, &a.Username, &a.Entrada); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) MarkAvisoEnviado(ctx context.Context, registroID int64, at time.Time) error {
	_, err := s.db.Pool.Exec(ctx,
		`UPDATE registros SET ultimo_aviso_enviado = $2, updated_at = NOW() WHERE id = $1`,
		registroID, at,
	)
	return err
}
