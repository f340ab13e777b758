package db

import "context"

// Bootstrap cria o schema mínimo quando ausente. O sync de membros é um
// processo externo que escreve nas mesmas tabelas.
func (d *DB) Bootstrap(ctx context.Context) error {
	_, err := d.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS members (
			discord_user_id TEXT PRIMARY KEY,
			username        TEXT NOT NULL,
			avatar_url      TEXT NOT NULL DEFAULT '',
			roles           JSONB NOT NULL DEFAULT '[]'::jsonb,
			observations    JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS registros (
			id                   BIGSERIAL PRIMARY KEY,
			user_id              TEXT NOT NULL,
			username             TEXT NOT NULL,
			batalhao_id          TEXT NOT NULL,
			ultimo_aviso_enviado TIMESTAMPTZ,
			created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_registros_user_batalhao
			ON registros (user_id, batalhao_id);

		CREATE TABLE IF NOT EXISTS pontos (
			id          BIGSERIAL PRIMARY KEY,
			registro_id BIGINT NOT NULL REFERENCES registros(id) ON DELETE CASCADE,
			entrada     TIMESTAMPTZ NOT NULL,
			saida       TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_pontos_registro ON pontos (registro_id);
		CREATE INDEX IF NOT EXISTS idx_pontos_entrada ON pontos (entrada);
	`)
	return err
}
