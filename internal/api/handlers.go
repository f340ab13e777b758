package api

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/Mayron603/painel-ssp/internal/export"
	"github.com/Mayron603/painel-ssp/internal/models"
	"github.com/Mayron603/painel-ssp/internal/report"
)

func (s *Server) getRanking(c *gin.Context) {
	period := report.Period(c.Query("period"))
	year := atoiDefault(c.Query("year"), 0)
	week := atoiDefault(c.Query("week"), 0)
	month := -1
	if v := c.Query("month"); v != "" {
		month = atoiDefault(v, -1)
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	window := report.ResolveWindow(period, year, month, week, time.Now().In(s.loc))

	pontos, err := s.store.ClosedPontosBetween(ctx, window.Start, window.End)
	if err != nil {
		s.log.Error("ranking_failed", "period", string(period), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao gerar ranking."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ranking": report.BuildRanking(pontos, report.RankingLimit)})
}

func (s *Server) getRegistros(c *gin.Context) {
	userID := c.Query("userId")
	filter, ok := s.parseFilter(c)
	if !ok {
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	registros, err := s.store.ListRegistros(ctx, userID)
	if err != nil {
		s.log.Error("list_registros_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao buscar registros."})
		return
	}

	filtered, totalDuration := report.FilterRegistros(registros, filter)

	c.JSON(http.StatusOK, gin.H{"success": true, "registros": filtered, "totalDuration": totalDuration})
}

func (s *Server) getUniqueUsers(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	users, err := s.store.DistinctUsers(ctx)
	if err != nil {
		s.log.Error("unique_users_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao buscar usuários."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// getDashboardSummary dispara os sete agregados independentes em paralelo e
// junta tudo antes de responder; qualquer falha derruba a resposta inteira.
func (s *Server) getDashboardSummary(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	now := time.Now().In(s.loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	weekAgo := now.AddDate(0, 0, -7)

	var summary models.DashboardSummary
	var hoursTodayMs int64
	var hourly map[int]int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.TotalAgents, err = s.store.CountDistinctUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.PendingRegisters, err = s.store.CountPendingRegistros(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.ClosedToday, err = s.store.CountClosedSince(gctx, todayStart)
		return err
	})
	g.Go(func() error {
		var err error
		hoursTodayMs, err = s.store.SumClosedDurationSince(gctx, todayStart)
		return err
	})
	g.Go(func() error {
		var err error
		summary.WeeklyActivity, err = s.store.DailyActivityCounts(gctx, weekAgo)
		return err
	})
	g.Go(func() error {
		var err error
		summary.ActivityFeed, err = s.store.RecentPontos(gctx, 5)
		return err
	})
	g.Go(func() error {
		var err error
		hourly, err = s.store.HourlyActivityCounts(gctx, todayStart, s.cfg.Timezone)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error("dashboard_summary_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao montar o resumo."})
		return
	}

	summary.HoursToday = math.Round(float64(hoursTodayMs)/3600000*10) / 10
	summary.HourlyActivity = make([]int, 24)
	for hora, count := range hourly {
		if hora >= 0 && hora < 24 {
			summary.HourlyActivity[hora] = count
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"totalAgents":      summary.TotalAgents,
		"pendingRegisters": summary.PendingRegisters,
		"closedToday":      summary.ClosedToday,
		"hoursToday":       summary.HoursToday,
		"weeklyActivity":   summary.WeeklyActivity,
		"activityFeed":     summary.ActivityFeed,
		"hourlyActivity":   summary.HourlyActivity,
	})
}

// getAlerts lista pontos abertos há mais de 12 horas.
func (s *Server) getAlerts(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	cutoff := time.Now().Add(-12 * time.Hour)
	alerts, err := s.store.OpenPontosOlderThan(ctx, cutoff)
	if err != nil {
		s.log.Error("alerts_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao buscar alertas."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "alerts": alerts})
}

func (s *Server) exportRegistros(c *gin.Context) {
	format := c.Query("format")
	if format != export.FormatXLSX && format != export.FormatPDF {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Formato inválido."})
		return
	}

	userID := c.Query("userId")
	filter, ok := s.parseFilter(c)
	if !ok {
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	registros, err := s.store.ListRegistros(ctx, userID)
	if err != nil {
		s.log.Error("export_failed", "format", format, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao exportar registros."})
		return
	}

	flat := report.FlattenPontos(registros, filter)

	var data []byte
	var contentType string
	switch format {
	case export.FormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		data, err = export.WriteXLSX(flat, s.loc)
	case export.FormatPDF:
		contentType = "application/pdf"
		data, err = export.WritePDF(flat, s.loc)
	}
	if err != nil {
		s.log.Error("export_render_failed", "format", format, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao exportar registros."})
		return
	}

	s.archiveReport(format, contentType, data)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"relatorio.%s\"", format))
	c.Data(http.StatusOK, contentType, data)
}

// archiveReport guarda uma cópia do relatório no bucket em segundo plano; o
// download não espera nem falha por causa disso.
func (s *Server) archiveReport(format, contentType string, data []byte) {
	key := fmt.Sprintf("relatorios/%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		url, err := s.archiver.ArchiveReport(ctx, key, contentType, data)
		if err != nil {
			s.log.Warn("report_archive_failed", "key", key, "error", err)
			return
		}
		if url != "" {
			s.log.Info("report_archived", "key", key, "url", url)
		}
	}()
}

func (s *Server) updatePonto(c *gin.Context) {
	pontoID, err := strconv.ParseInt(c.Param("pontoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Id de ponto inválido."})
		return
	}

	var req struct {
		Entrada string `json:"entrada"`
		Saida   string `json:"saida"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Entrada == "" || req.Saida == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Datas de entrada e saída são obrigatórias."})
		return
	}

	entrada, err1 := parseTimestamp(req.Entrada, s.loc)
	saida, err2 := parseTimestamp(req.Saida, s.loc)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Datas de entrada e saída são obrigatórias."})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	ok, err := s.store.UpdatePonto(ctx, pontoID, entrada, saida)
	if err != nil {
		s.log.Error("update_ponto_failed", "ponto_id", pontoID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao atualizar registro."})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Registro não encontrado ou dados iguais."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Registro atualizado com sucesso!"})
}

func (s *Server) deletePonto(c *gin.Context) {
	pontoID, err := strconv.ParseInt(c.Param("pontoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Id de ponto inválido."})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	ok, err := s.store.DeletePonto(ctx, pontoID)
	if err != nil {
		s.log.Error("delete_ponto_failed", "ponto_id", pontoID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao excluir registro."})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Registro não encontrado."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Registro excluído com sucesso!"})
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	dbStatus := "connected"
	if err := s.db.Pool.Ping(ctx); err != nil {
		dbStatus = "disconnected"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "connected"
		if err := s.redis.Ping(ctx); err != nil {
			redisStatus = "disconnected"
		}
	}

	status := "healthy"
	if dbStatus != "connected" || redisStatus == "disconnected" {
		status = "unhealthy"
	}

	response := gin.H{
		"status":   status,
		"database": dbStatus,
		"redis":    redisStatus,
	}

	if status == "unhealthy" {
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// parseFilter lê status/startDate/endDate da query string; responde 400 e
// devolve ok=false quando alguma data é ilegível.
func (s *Server) parseFilter(c *gin.Context) (report.Filter, bool) {
	filter := report.Filter{Status: report.Status(c.Query("status"))}

	if v := c.Query("startDate"); v != "" {
		t, err := parseTimestamp(v, s.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Data inicial inválida."})
			return report.Filter{}, false
		}
		filter.Start = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseTimestamp(v, s.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Data final inválida."})
			return report.Filter{}, false
		}
		filter.End = &t
	}

	return filter, true
}

// parseTimestamp aceita RFC3339 completo ou só a data (inputs do frontend).
func parseTimestamp(v string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", v, loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", v, loc)
}

func atoiDefault(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
