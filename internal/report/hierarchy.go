package report

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Mayron603/painel-ssp/internal/models"
)

// RoleHierarchy ordena os cargos do mais graduado para o menos graduado.
// Configuração estática do processo, nunca alterada em runtime.
var RoleHierarchy = []string{
	"Inspetor Superintendente",
	"Inspetor de Agrupamento",
	"Inspetor de Divisão",
	"Inspetor",
	"Subinspetor",
	"Classe Distinta",
	"Classe Especial",
	"Agente de 1ª Classe",
	"Agente de 2ª Classe",
	"Agente de 3ª Classe",
	"Estágio",
}

// IgnoredMemberIDs são contas de serviço/bots ocultadas da listagem.
var IgnoredMemberIDs = map[string]struct{}{
	"459055303573635084": {},
	"425045919025725440": {},
	"511297052844621827": {},
}

// LevelUnranked marca membros sem nenhum cargo da hierarquia; ordena depois
// de qualquer nível válido.
const LevelUnranked = math.MaxInt

// RoleLevel devolve o menor índice da hierarquia contido (substring) em
// algum dos nomes de cargo do membro. A correspondência por substring é
// proposital e preservada do painel original — um cargo "Ex-Inspetor"
// contaria como "Inspetor".
func RoleLevel(m models.Member) int {
	level := LevelUnranked
	for _, role := range m.Roles {
		for i, hierarchyRole := range RoleHierarchy {
			if i >= level {
				break
			}
			if strings.Contains(role.Name, hierarchyRole) {
				level = i
			}
		}
	}
	return level
}

// SortMembers remove os membros ignorados e ordena por nível hierárquico
// crescente; empates são resolvidos por username com colação pt-BR.
// O collator não é seguro para uso concorrente, então cada chamada cria o
// seu.
func SortMembers(members []models.Member) []models.Member {
	ptBR := collate.New(language.BrazilianPortuguese)
	out := make([]models.Member, 0, len(members))
	for _, m := range members {
		if _, ignored := IgnoredMemberIDs[m.DiscordUserID]; ignored {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		li, lj := RoleLevel(out[i]), RoleLevel(out[j])
		if li != lj {
			return li < lj
		}
		return ptBR.CompareString(out[i].Username, out[j].Username) < 0
	})
	return out
}
