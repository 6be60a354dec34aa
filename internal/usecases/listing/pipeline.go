// Package listing implementa a pipeline pura de filtro e ordenação das
// tabelas do painel: busca por texto, filtro por categoria de status,
// ordenação por coluna única e o encadeamento hierárquico
// contas -> campanhas -> conjuntos -> anúncios.
package listing

import (
	"sort"
	"strings"

	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/status"
)

type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortConfig é a coluna ativa e a direção de ordenação de uma visão.
type SortConfig struct {
	Key       string        `json:"key"`
	Direction SortDirection `json:"direction"`
}

// SortCycle define a ordem em que o clique no cabeçalho alterna a direção.
// As duas visões do painel divergiam aqui; tratamos como configuração da
// visão, com desc-first como padrão canônico.
type SortCycle int

const (
	CycleDescFirst SortCycle = iota
	CycleAscFirst
)

// NextSort calcula o próximo estado de ordenação após um clique no
// cabeçalho da coluna key.
func NextSort(cycle SortCycle, current SortConfig, key string) SortConfig {
	if current.Key != key || current.Direction == SortNone {
		if cycle == CycleAscFirst {
			return SortConfig{Key: key, Direction: SortAsc}
		}
		return SortConfig{Key: key, Direction: SortDesc}
	}

	switch {
	case cycle == CycleDescFirst && current.Direction == SortDesc:
		return SortConfig{Key: key, Direction: SortAsc}
	case cycle == CycleAscFirst && current.Direction == SortAsc:
		return SortConfig{Key: key, Direction: SortDesc}
	default:
		return SortConfig{}
	}
}

// Query são as entradas da pipeline além das próprias entidades.
type Query struct {
	Search       string
	StatusFilter string
	Sort         SortConfig
}

// Row é a projeção de uma entidade sobre a qual a pipeline opera: textos
// pesquisáveis, status resolvido e valores por coluna. Valores numéricos
// ausentes ficam nil e ordenam por último em qualquer direção.
type Row struct {
	ID       string
	Name     string
	Status   domain.StatusResult
	searched []string
	numeric  map[string]*float64
	text     map[string]string
	Entity   any
}

func float64Ptr(v float64) *float64 {
	return &v
}

func optionalMinorUnits(v *int64) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func metricColumns(metrics *domain.EntityMetrics) map[string]*float64 {
	columns := map[string]*float64{
		"results":       Results(metrics),
		"costPerResult": CostPerResult(metrics),
	}

	if metrics == nil {
		return columns
	}

	columns["spend"] = float64Ptr(metrics.Spend)
	columns["impressions"] = float64Ptr(float64(metrics.Impressions))
	columns["clicks"] = float64Ptr(float64(metrics.Clicks))
	columns["reach"] = float64Ptr(float64(metrics.Reach))
	columns["frequency"] = float64Ptr(metrics.Frequency)
	columns["ctr"] = float64Ptr(metrics.CTR)
	columns["cpm"] = float64Ptr(metrics.CPM)

	return columns
}

// CampaignRows projeta campanhas em linhas da tabela.
func CampaignRows(campaigns []*domain.Campaign, registry domain.AccountRegistry) []Row {
	rows := make([]Row, 0, len(campaigns))
	for _, c := range campaigns {
		columns := metricColumns(c.Metrics)
		columns["amountSpent"] = float64Ptr(float64(c.AmountSpent))
		columns["spendCap"] = optionalMinorUnits(c.SpendCap)

		rows = append(rows, Row{
			ID:       c.ID,
			Name:     c.Name,
			Status:   status.ResolveCampaign(c, registry),
			searched: []string{c.Name},
			numeric:  columns,
			text:     map[string]string{"name": c.Name, "objective": c.Objective},
			Entity:   c,
		})
	}
	return rows
}

// AdSetRows projeta conjuntos de anúncios em linhas da tabela.
func AdSetRows(adSets []*domain.AdSet, registry domain.AccountRegistry) []Row {
	rows := make([]Row, 0, len(adSets))
	for _, s := range adSets {
		columns := metricColumns(s.Metrics)
		columns["dailyBudget"] = optionalMinorUnits(s.DailyBudget)
		columns["lifetimeBudget"] = optionalMinorUnits(s.LifetimeBudget)

		rows = append(rows, Row{
			ID:       s.ID,
			Name:     s.Name,
			Status:   status.ResolveAdSet(s, registry),
			searched: []string{s.Name},
			numeric:  columns,
			text:     map[string]string{"name": s.Name},
			Entity:   s,
		})
	}
	return rows
}

// AdRows projeta anúncios em linhas da tabela. A busca também cobre título
// e corpo do criativo.
func AdRows(ads []*domain.Ad, registry domain.AccountRegistry) []Row {
	rows := make([]Row, 0, len(ads))
	for _, a := range ads {
		searched := []string{a.Name}
		text := map[string]string{"name": a.Name, "pageName": a.PageName}
		if a.Creative != nil {
			searched = append(searched, a.Creative.Title, a.Creative.Body)
			text["title"] = a.Creative.Title
			text["body"] = a.Creative.Body
		}

		rows = append(rows, Row{
			ID:       a.ID,
			Name:     a.Name,
			Status:   status.ResolveAd(a, registry),
			searched: searched,
			numeric:  metricColumns(a.Metrics),
			text:     text,
			Entity:   a,
		})
	}
	return rows
}

// AccountRows projeta as contas do registro em linhas da tabela de contas.
func AccountRows(accounts []*domain.AdAccount) []Row {
	rows := make([]Row, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, Row{
			ID:       a.ID,
			Name:     a.Name,
			Status:   status.ResolveAccount(a),
			searched: []string{a.Name},
			numeric: map[string]*float64{
				"amountSpent": float64Ptr(float64(a.AmountSpent)),
				"spendCap":    optionalMinorUnits(a.SpendCap),
			},
			text:   map[string]string{"name": a.Name, "currency": a.Currency},
			Entity: a,
		})
	}
	return rows
}

// Apply executa a pipeline completa: busca, filtro por status e ordenação.
// Recalculada de forma síncrona a cada mudança de dependência; é pura e não
// modifica o slice de entrada.
func Apply(rows []Row, query Query) []Row {
	filtered := make([]Row, 0, len(rows))
	search := strings.ToLower(strings.TrimSpace(query.Search))

	for _, row := range rows {
		if !matchesSearch(row, search) {
			continue
		}
		if !matchesStatusFilter(row, query.StatusFilter) {
			continue
		}
		filtered = append(filtered, row)
	}

	sortRows(filtered, query.Sort)
	return filtered
}

// matchesSearch faz busca por substring sem diferenciar maiúsculas;
// consulta vazia casa com tudo.
func matchesSearch(row Row, search string) bool {
	if search == "" {
		return true
	}

	for _, field := range row.searched {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func matchesStatusFilter(row Row, filter string) bool {
	if filter == "" || filter == "all" {
		return true
	}
	return string(row.Status.Type) == filter
}

// sortRows ordena in place com ordenação estável. A coluna sintética
// "status" ordena pelo rótulo resolvido, não pela categoria; valores
// numéricos nil vão para o fim independentemente da direção.
func sortRows(rows []Row, cfg SortConfig) {
	if cfg.Key == "" || cfg.Direction == SortNone {
		return
	}

	asc := cfg.Direction == SortAsc

	sort.SliceStable(rows, func(i, j int) bool {
		return rowLess(rows[i], rows[j], cfg.Key, asc)
	})
}

func rowLess(a, b Row, key string, asc bool) bool {
	if key == "status" {
		return stringLess(a.Status.Label, b.Status.Label, asc)
	}

	if text, ok := a.text[key]; ok {
		if other, exists := b.text[key]; exists {
			return stringLess(text, other, asc)
		}
	}

	av, aOK := a.numeric[key]
	bv, bOK := b.numeric[key]

	// nil ordena por último em qualquer direção.
	switch {
	case (!aOK || av == nil) && (!bOK || bv == nil):
		return false
	case !aOK || av == nil:
		return false
	case !bOK || bv == nil:
		return true
	}

	if asc {
		return *av < *bv
	}
	return *av > *bv
}

func stringLess(a, b string, asc bool) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if asc {
		return la < lb
	}
	return la > lb
}

// AdSetsForSelection aplica o encadeamento hierárquico: com campanhas
// selecionadas, a lista de conjuntos mostra apenas os filhos delas.
func AdSetsForSelection(adSets []*domain.AdSet, selectedCampaigns map[string]struct{}) []*domain.AdSet {
	if len(selectedCampaigns) == 0 {
		return adSets
	}

	filtered := make([]*domain.AdSet, 0, len(adSets))
	for _, s := range adSets {
		if _, ok := selectedCampaigns[s.CampaignID]; ok {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// AdsForSelection filtra anúncios pelos conjuntos selecionados, caindo para
// a seleção de campanhas quando nenhum conjunto está selecionado.
func AdsForSelection(ads []*domain.Ad, selectedAdSets, selectedCampaigns map[string]struct{}) []*domain.Ad {
	if len(selectedAdSets) == 0 && len(selectedCampaigns) == 0 {
		return ads
	}

	filtered := make([]*domain.Ad, 0, len(ads))
	for _, a := range ads {
		if len(selectedAdSets) > 0 {
			if _, ok := selectedAdSets[a.AdSetID]; ok {
				filtered = append(filtered, a)
			}
			continue
		}

		if _, ok := selectedCampaigns[a.CampaignID]; ok {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
