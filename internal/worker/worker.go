// Package worker varre periodicamente pontos abertos há tempo demais e
// registra o aviso em ultimo_aviso_enviado.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mayron603/painel-ssp/internal/store"
)

// OpenPontoLimit é o tempo de serviço a partir do qual um ponto aberto vira
// alerta.
const OpenPontoLimit = 12 * time.Hour

type AlertWorker struct {
	log      *slog.Logger
	store    *store.Store
	interval time.Duration
}

func NewAlertWorker(log *slog.Logger, st *store.Store, interval time.Duration) *AlertWorker {
	return &AlertWorker{log: log, store: st, interval: interval}
}

// Run varre imediatamente e depois a cada intervalo, até o contexto ser
// cancelado.
func (w *AlertWorker) Run(ctx context.Context) {
	w.scan(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("alert_worker_stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *AlertWorker) scan(ctx context.Context) {
	scanCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	now := time.Now()
	pendentes, err := w.store.AvisosPendentes(scanCtx, now.Add(-OpenPontoLimit))
	if err != nil {
		w.log.Error("aviso_scan_failed", "error", err)
		return
	}

	for _, p := range pendentes {
		w.log.Warn("ponto_aberto_demais",
			"registro_id", p.RegistroID,
			"username", p.Username,
			"entrada", p.Entrada,
			"aberto_ha", now.Sub(p.Entrada).String(),
		)
		if err := w.store.MarkAvisoEnviado(scanCtx, p.RegistroID, now); err != nil {
			w.log.Error("aviso_mark_failed", "registro_id", p.RegistroID, "error", err)
		}
	}

	if len(pendentes) > 0 {
		w.log.Info("aviso_scan_done", "avisos", len(pendentes))
	}
}
