// Package store é a coleção consultável por trás do motor de relatórios:
// members, registros e pontos em Postgres.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Mayron603/painel-ssp/internal/db"
	"github.com/Mayron603/painel-ssp/internal/models"
)

type Store struct {
	db *db.DB
}

func New(dbConn *db.DB) *Store {
	return &Store{db: dbConn}
}

const memberColumns = `
	m.discord_user_id,
	m.username,
	m.avatar_url,
	COALESCE(m.roles, '[]'::jsonb),
	COALESCE(m.observations, '[]'::jsonb),
	m.created_at,
	m.updated_at`

func scanMember(row pgx.Row) (models.Member, error) {
	var m models.Member
	var rolesJSON, obsJSON []byte
	err := row.Scan(&m.DiscordUserID, &m.Username, &m.AvatarURL, &rolesJSON, &obsJSON, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return models.Member{}, err
	}
	if err := json.Unmarshal(rolesJSON, &m.Roles); err != nil {
		return models.Member{}, err
	}
	if err := json.Unmarshal(obsJSON, &m.Observations); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

func (s *Store) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT `+memberColumns+` FROM members m`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]models.Member, 0, 64)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetMember devolve (nil, nil) quando o membro não existe.
func (s *Store) GetMember(ctx context.Context, discordUserID string) (*models.Member, error) {
	row := s.db.Pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members m WHERE m.discord_user_id = $1`,
		discordUserID,
	)
	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// AddObservation anexa a observação ao array jsonb do membro. Retorna false
// quando o membro não existe.
func (s *Store) AddObservation(ctx context.Context, discordUserID string, obs models.Observation) (bool, error) {
	payload, err := json.Marshal(obs)
	if err != nil {
		return false, err
	}
	tag, err := s.db.Pool.Exec(ctx,
		`UPDATE members
		 SET observations = COALESCE(observations, '[]'::jsonb) || $2::jsonb,
		     updated_at = NOW()
		 WHERE discord_user_id = $1`,
		discordUserID, payload,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListRegistros devolve os registros (com pontos ordenados por entrada) de
// um usuário, ou de todos quando userID é vazio.
func (s *Store) ListRegistros(ctx context.Context, userID string) ([]models.Registro, error) {
	query := `
		SELECT
			r.id, r.user_id, r.username, r.batalhao_id, r.ultimo_aviso_enviado,
			COALESCE(
				(SELECT json_agg(
					json_build_object('_id', p.id, 'entrada', p.entrada, 'saida', p.saida)
					ORDER BY p.entrada
				) FROM pontos p WHERE p.registro_id = r.id),
				'[]'::json
			) AS pontos
		FROM registros r`
	args := []any{}
	if userID != "" {
		query += ` WHERE r.user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY r.id`

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registros := make([]models.Registro, 0, 64)
	for rows.Next() {
		var reg models.Registro
		var pontosJSON []byte
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.Username, &reg.BatalhaoID, &reg.UltimoAvisoEnviado, &pontosJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(pontosJSON, &reg.Pontos); err != nil {
			return nil, err
		}
		registros = append(registros, reg)
	}
	return registros, rows.Err()
}

// ClosedPontosBetween devolve pontos fechados com entrada dentro da janela,
// já com a identidade do usuário, para o ranking.
func (s *Store) ClosedPontosBetween(ctx context.Context, start, end time.Time) ([]models.ClosedPonto, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT r.user_id, r.username, p.entrada, p.saida
		 FROM pontos p
		 JOIN registros r ON r.id = p.registro_id
		 WHERE p.saida IS NOT NULL
		   AND p.entrada >= $1 AND p.entrada <= $2`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClosedPontos(rows)
}

// ClosedPontosSince devolve todos os pontos fechados com entrada a partir
// de since (comparação com o time no mês corrente).
func (s *Store) ClosedPontosSince(ctx context.Context, since time.Time) ([]models.ClosedPonto, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT r.user_id, r.username, p.entrada, p.saida
		 FROM pontos p
		 JOIN registros r ON r.id = p.registro_id
		 WHERE p.saida IS NOT NULL
		   AND p.entrada >= $1`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClosedPontos(rows)
}

// ClosedPontosForUser devolve os pontos fechados do usuário com entrada a
// partir de since (janela de estatísticas).
func (s *Store) ClosedPontosForUser(ctx context.Context, userID string, since time.Time) ([]models.ClosedPonto, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT r.user_id, r.username, p.entrada, p.saida
		 FROM pontos p
		 JOIN registros r ON r.id = p.registro_id
		 WHERE r.user_id = $1
		   AND p.saida IS NOT NULL
		   AND p.entrada >= $2`,
		userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClosedPontos(rows)
}

func scanClosedPontos(rows pgx.Rows) ([]models.ClosedPonto, error) {
	out := make([]models.ClosedPonto, 0, 128)
	for rows.Next() {
		var p models.ClosedPonto
		if err := rows.Scan(&p.UserID, &p.Username, &p.Entrada, &p.Saida); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) DistinctUsers(ctx context.Context) ([]models.UniqueUser, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT DISTINCT user_id, username FROM registros ORDER BY username`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.UniqueUser, 0, 64)
	for rows.Next() {
		var u models.UniqueUser
		if err := rows.Scan(&u.UserID, &u.Username); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// OpenPontosOlderThan devolve, por registro, o ponto aberto mais antigo com
// entrada anterior ao corte (alertas de serviço longo).
func (s *Store) OpenPontosOlderThan(ctx context.Context, cutoff time.Time) ([]models.Alert, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT DISTINCT ON (r.id) r.username, p.entrada
		 FROM pontos p
		 JOIN registros r ON r.id = p.registro_id
		 WHERE p.saida IS NULL AND p.entrada < $1
		 ORDER BY r.id, p.entrada`,
		cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := make([]models.Alert, 0, 16)
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.Username, &a.Entrada); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// UpdatePonto grava entrada/saída e devolve false quando o ponto não existe
// ou os valores são idênticos aos atuais (o painel trata como 404).
func (s *Store) UpdatePonto(ctx context.Context, pontoID int64, entrada, saida time.Time) (bool, error) {
	tag, err := s.db.Pool.Exec(ctx,
		`UPDATE pontos
		 SET entrada = $2, saida = $3
		 WHERE id = $1
		   AND (entrada IS DISTINCT FROM $2 OR saida IS DISTINCT FROM $3)`,
		pontoID, entrada, saida,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeletePonto(ctx context.Context, pontoID int64) (bool, error) {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM pontos WHERE id = $1`, pontoID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
