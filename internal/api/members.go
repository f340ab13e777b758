package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mayron603/painel-ssp/internal/models"
	"github.com/Mayron603/painel-ssp/internal/report"
	"github.com/Mayron603/painel-ssp/internal/security"
)

// getMembers lista os membros já filtrados pela lista de ignorados e
// ordenados pela hierarquia de cargos.
func (s *Server) getMembers(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	members, err := s.store.ListMembers(ctx)
	if err != nil {
		s.log.Error("list_members_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao buscar membros."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "members": report.SortMembers(members)})
}

func (s *Server) getMember(c *gin.Context) {
	discordUserID := c.Param("discordUserId")
	if _, err := security.ParseSnowflake(discordUserID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Id de membro inválido."})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	member, err := s.store.GetMember(ctx, discordUserID)
	if err != nil {
		s.log.Error("get_member_failed", "user_id", discordUserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao buscar membro."})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Membro não encontrado."})
		return
	}

	// observações da mais recente para a mais antiga
	sort.SliceStable(member.Observations, func(i, j int) bool {
		return member.Observations[i].Date.After(member.Observations[j].Date)
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "member": member})
}

func (s *Server) addObservation(c *gin.Context) {
	discordUserID := c.Param("discordUserId")
	if _, err := security.ParseSnowflake(discordUserID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Id de membro inválido."})
		return
	}

	var req struct {
		Text   string `json:"text"`
		Author string `json:"author"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" || req.Author == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "O texto da observação e o autor são obrigatórios."})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	obs := models.Observation{Text: req.Text, Author: req.Author, Date: time.Now().UTC()}

	ok, err := s.store.AddObservation(ctx, discordUserID, obs)
	if err != nil {
		s.log.Error("add_observation_failed", "user_id", discordUserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro interno ao adicionar observação."})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Membro não encontrado ou falha ao salvar."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Observação adicionada com sucesso!", "observation": obs})
}

// getMemberStats deriva as estatísticas de desempenho (média, horas no mês,
// comparação com o time e heatmap) dos últimos 90 dias.
func (s *Server) getMemberStats(c *gin.Context) {
	discordUserID := c.Param("discordUserId")
	if _, err := security.ParseSnowflake(discordUserID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Id de membro inválido."})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	now := time.Now().In(s.loc)

	userPontos, err := s.store.ClosedPontosForUser(ctx, discordUserID, now.Add(-report.StatsLookback))
	if err != nil {
		s.log.Error("member_stats_failed", "user_id", discordUserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao gerar estatísticas."})
		return
	}

	if len(userPontos) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "stats": models.MemberStats{
			ActivityHeatmap: report.NewHeatmap(),
		}})
		return
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	teamPontos, err := s.store.ClosedPontosSince(ctx, firstOfMonth)
	if err != nil {
		s.log.Error("member_stats_failed", "user_id", discordUserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao gerar estatísticas."})
		return
	}

	stats := report.ComputeStats(userPontos, teamPontos, now)
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
