package models

import "time"

type Role struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Observation struct {
	Text   string    `json:"text"`
	Author string    `json:"author"`
	Date   time.Time `json:"date"`
}

type Member struct {
	DiscordUserID string        `json:"discordUserId"`
	Username      string        `json:"username"`
	AvatarURL     string        `json:"avatarUrl,omitempty"`
	Roles         []Role        `json:"roles"`
	Observations  []Observation `json:"observations"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Ponto é um registro de entrada/saída; fica aberto enquanto Saida == nil.
type Ponto struct {
	ID      int64      `json:"_id"`
	Entrada time.Time  `json:"entrada"`
	Saida   *time.Time `json:"saida"`
}

type Registro struct {
	ID                 int64      `json:"_id"`
	UserID             string     `json:"userId"`
	Username           string     `json:"username"`
	BatalhaoID         string     `json:"batalhaoId"`
	UltimoAvisoEnviado *time.Time `json:"ultimoAvisoEnviado,omitempty"`
	Pontos             []Ponto    `json:"pontos"`
}

// FlatPonto é a forma achatada usada em exports e no feed de atividade.
type FlatPonto struct {
	Username string     `json:"username"`
	Entrada  time.Time  `json:"entrada"`
	Saida    *time.Time `json:"saida"`
}

// ClosedPonto alimenta ranking e estatísticas (somente pontos fechados).
type ClosedPonto struct {
	UserID   string
	Username string
	Entrada  time.Time
	Saida    time.Time
}

type RankingEntry struct {
	UserID        string `json:"userId"`
	Username      string `json:"username"`
	TotalDuration int64  `json:"totalDuration"` // milissegundos
}

type UniqueUser struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type MemberStats struct {
	AverageDuration           float64 `json:"averageDuration"` // milissegundos
	TotalHoursThisMonth       float64 `json:"totalHoursThisMonth"`
	TeamAverageHoursThisMonth float64 `json:"teamAverageHoursThisMonth"`
	ActivityHeatmap           [][]int `json:"activityHeatmap"`
}

type Alert struct {
	Username string    `json:"username"`
	Entrada  time.Time `json:"entrada"`
}

type DashboardSummary struct {
	TotalAgents      int            `json:"totalAgents"`
	PendingRegisters int            `json:"pendingRegisters"`
	ClosedToday      int            `json:"closedToday"`
	HoursToday       float64        `json:"hoursToday"`
	WeeklyActivity   map[string]int `json:"weeklyActivity"`
	ActivityFeed     []FlatPonto    `json:"activityFeed"`
	HourlyActivity   []int          `json:"hourlyActivity"`
}
