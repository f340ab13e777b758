package report

import (
	"testing"

	"github.com/Mayron603/painel-ssp/internal/models"
)

func memberWithRoles(id, username string, roleNames ...string) models.Member {
	roles := make([]models.Role, len(roleNames))
	for i, n := range roleNames {
		roles[i] = models.Role{ID: "r", Name: n}
	}
	return models.Member{DiscordUserID: id, Username: username, Roles: roles}
}

func TestRoleLevel_BestMatchWins(t *testing.T) {
	// "Inspetor" está no índice 3 e "Agente de 1ª Classe" no 7;
	// vence o mais graduado
	m := memberWithRoles("1", "alfa", "Inspetor Geral", "Agente de 1ª Classe")
	if level := RoleLevel(m); level != 3 {
		t.Errorf("level = %d, want 3", level)
	}
}

func TestRoleLevel_SubstringMatch(t *testing.T) {
	tests := []struct {
		name string
		role string
		want int
	}{
		{"cargo exato", "Subinspetor", 4},
		{"cargo decorado", "⭐ Inspetor de Divisão ⭐", 2},
		// comportamento herdado do painel: substring pega prefixos também
		{"ex-cargo ainda corresponde", "Ex-Inspetor", 3},
		{"sem correspondência", "Visitante", LevelUnranked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := memberWithRoles("1", "alfa", tt.role)
			if level := RoleLevel(m); level != tt.want {
				t.Errorf("RoleLevel(%q) = %d, want %d", tt.role, level, tt.want)
			}
		})
	}
}

func TestRoleLevel_NoRoles(t *testing.T) {
	m := memberWithRoles("1", "alfa")
	if level := RoleLevel(m); level != LevelUnranked {
		t.Errorf("level = %d, want LevelUnranked", level)
	}
}

func TestSortMembers_HierarchyThenUsername(t *testing.T) {
	members := []models.Member{
		memberWithRoles("1", "zulu", "Agente de 2ª Classe"),
		memberWithRoles("2", "alfa", "Agente de 2ª Classe"),
		memberWithRoles("3", "bravo", "Inspetor Superintendente"),
		memberWithRoles("4", "charlie", "Sem Cargo Conhecido"),
	}

	sorted := SortMembers(members)

	want := []string{"bravo", "alfa", "zulu", "charlie"}
	for i, username := range want {
		if sorted[i].Username != username {
			t.Fatalf("posição %d = %s, want %s", i, sorted[i].Username, username)
		}
	}
}

func TestSortMembers_UnrankedSortsLast(t *testing.T) {
	members := []models.Member{
		memberWithRoles("1", "aaa"),
		memberWithRoles("2", "zzz", "Estágio"),
	}

	sorted := SortMembers(members)
	if sorted[0].Username != "zzz" {
		t.Error("membro sem cargo da hierarquia ficou antes de um Estágio")
	}
}

func TestSortMembers_DropsIgnoredIDs(t *testing.T) {
	members := []models.Member{
		memberWithRoles("459055303573635084", "bot", "Inspetor"),
		memberWithRoles("1", "alfa", "Estágio"),
	}

	sorted := SortMembers(members)
	if len(sorted) != 1 || sorted[0].Username != "alfa" {
		t.Errorf("lista de ignorados não foi aplicada: %+v", sorted)
	}
}
