package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

func testRegistry() domain.AccountRegistry {
	return domain.AccountRegistry{
		"act_1": {ID: "act_1", Name: "Conta", AccountStatus: domain.AccountStatusActive},
	}
}

func campaign(id, name string, metrics *domain.EntityMetrics) *domain.Campaign {
	return &domain.Campaign{
		ID:              id,
		Name:            name,
		Status:          "ACTIVE",
		EffectiveStatus: "ACTIVE",
		AdAccountID:     "act_1",
		AdSets: []*domain.AdSet{
			{EffectiveStatus: "ACTIVE", Ads: []*domain.Ad{{EffectiveStatus: "ACTIVE"}}},
		},
		Metrics: metrics,
	}
}

func TestApply_Search(t *testing.T) {
	rows := CampaignRows([]*domain.Campaign{
		campaign("c1", "Summer SALE Push", nil),
		campaign("c2", "Winter Launch", nil),
	}, testRegistry())

	t.Run("Busca nao diferencia maiusculas e casa substring", func(t *testing.T) {
		result := Apply(rows, Query{Search: "sale"})

		require.Len(t, result, 1)
		assert.Equal(t, "c1", result[0].ID)
	})

	t.Run("Busca vazia casa com tudo", func(t *testing.T) {
		result := Apply(rows, Query{})
		assert.Len(t, result, 2)
	})
}

func TestApply_SearchAdCreative(t *testing.T) {
	ads := []*domain.Ad{
		{
			ID:              "a1",
			Name:            "Anuncio 1",
			EffectiveStatus: "ACTIVE",
			AdAccountID:     "act_1",
			Creative:        &domain.Creative{Title: "Mega Desconto", Body: "So hoje"},
		},
		{
			ID:              "a2",
			Name:            "Anuncio 2",
			EffectiveStatus: "ACTIVE",
			AdAccountID:     "act_1",
		},
	}

	result := Apply(AdRows(ads, testRegistry()), Query{Search: "desconto"})

	require.Len(t, result, 1)
	assert.Equal(t, "a1", result[0].ID)
}

func TestApply_StatusFilter(t *testing.T) {
	paused := campaign("c2", "Pausada", nil)
	paused.Status = "PAUSED"
	paused.EffectiveStatus = "PAUSED"
	paused.ConfiguredStatus = "PAUSED"

	rows := CampaignRows([]*domain.Campaign{
		campaign("c1", "Ativa", nil),
		paused,
	}, testRegistry())

	result := Apply(rows, Query{StatusFilter: "paused"})

	require.Len(t, result, 1)
	assert.Equal(t, "c2", result[0].ID)

	assert.Len(t, Apply(rows, Query{StatusFilter: "all"}), 2)
}

func TestApply_SortByName(t *testing.T) {
	rows := CampaignRows([]*domain.Campaign{
		campaign("c1", "bravo", nil),
		campaign("c2", "Alfa", nil),
		campaign("c3", "charlie", nil),
	}, testRegistry())

	ascending := Apply(rows, Query{Sort: SortConfig{Key: "name", Direction: SortAsc}})
	descending := Apply(rows, Query{Sort: SortConfig{Key: "name", Direction: SortDesc}})

	ascIDs := []string{ascending[0].ID, ascending[1].ID, ascending[2].ID}
	descIDs := []string{descending[0].ID, descending[1].ID, descending[2].ID}

	assert.Equal(t, []string{"c2", "c1", "c3"}, ascIDs)

	// Inverter a direcao inverte exatamente a ordem para nomes distintos.
	assert.Equal(t, []string{"c3", "c1", "c2"}, descIDs)

	// Ordenar duas vezes com a mesma chave e direcao e idempotente.
	again := Apply(ascending, Query{Sort: SortConfig{Key: "name", Direction: SortAsc}})
	assert.Equal(t, ascending, again)
}

func TestApply_SortNumericNilLast(t *testing.T) {
	withSpend := campaign("c1", "Com gasto", &domain.EntityMetrics{Spend: 10.5})
	noMetrics := campaign("c2", "Sem metricas", nil)
	moreSpend := campaign("c3", "Mais gasto", &domain.EntityMetrics{Spend: 99.9})

	rows := CampaignRows([]*domain.Campaign{withSpend, noMetrics, moreSpend}, testRegistry())

	desc := Apply(rows, Query{Sort: SortConfig{Key: "spend", Direction: SortDesc}})
	require.Len(t, desc, 3)
	assert.Equal(t, "c3", desc[0].ID)
	assert.Equal(t, "c1", desc[1].ID)
	assert.Equal(t, "c2", desc[2].ID, "valor ausente ordena por ultimo no desc")

	asc := Apply(rows, Query{Sort: SortConfig{Key: "spend", Direction: SortAsc}})
	assert.Equal(t, "c1", asc[0].ID)
	assert.Equal(t, "c3", asc[1].ID)
	assert.Equal(t, "c2", asc[2].ID, "valor ausente ordena por ultimo no asc tambem")
}

func TestApply_SortByStatusLabel(t *testing.T) {
	active := campaign("c1", "Ativa", nil)

	offCampaign := campaign("c2", "Pausada", nil)
	offCampaign.Status = "PAUSED"
	offCampaign.EffectiveStatus = "PAUSED"
	offCampaign.ConfiguredStatus = "PAUSED"

	completed := campaign("c3", "Arquivada", nil)
	completed.Status = "ARCHIVED"
	completed.EffectiveStatus = "ARCHIVED"

	rows := CampaignRows([]*domain.Campaign{offCampaign, completed, active}, testRegistry())

	result := Apply(rows, Query{Sort: SortConfig{Key: "status", Direction: SortAsc}})

	// Ordena pelo rotulo lexicografico: Active < Completed < Off.
	require.Len(t, result, 3)
	assert.Equal(t, "Active", result[0].Status.Label)
	assert.Equal(t, "Completed", result[1].Status.Label)
	assert.Equal(t, "Off", result[2].Status.Label)
}

func TestResultsDerivation(t *testing.T) {
	t.Run("Tipo primario presente", func(t *testing.T) {
		metrics := &domain.EntityMetrics{
			Objective: "OUTCOME_SALES",
			Actions: []domain.Action{
				{ActionType: "link_click", Value: "50"},
				{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "12"},
			},
		}

		result := Results(metrics)
		require.NotNil(t, result)
		assert.Equal(t, 12.0, *result)
	})

	t.Run("Primario zerado cai para o fallback", func(t *testing.T) {
		metrics := &domain.EntityMetrics{
			Objective: "OUTCOME_SALES",
			Actions: []domain.Action{
				{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "0"},
				{ActionType: "purchase", Value: "7"},
			},
		}

		result := Results(metrics)
		require.NotNil(t, result)
		assert.Equal(t, 7.0, *result)
	})

	t.Run("Objetivo desconhecido devolve nil", func(t *testing.T) {
		metrics := &domain.EntityMetrics{
			Objective: "SOMETHING_ELSE",
			Actions:   []domain.Action{{ActionType: "link_click", Value: "3"}},
		}

		assert.Nil(t, Results(metrics))
	})

	t.Run("Custo por resultado usa cost_per_action_type", func(t *testing.T) {
		metrics := &domain.EntityMetrics{
			Objective:      "MESSAGES",
			CostPerActions: []domain.Action{{ActionType: "onsite_conversion.messaging_first_reply", Value: "2.35"}},
		}

		result := CostPerResult(metrics)
		require.NotNil(t, result)
		assert.Equal(t, 2.35, *result)
	})
}

func TestNextSort(t *testing.T) {
	t.Run("Ciclo desc-first", func(t *testing.T) {
		cfg := NextSort(CycleDescFirst, SortConfig{}, "spend")
		assert.Equal(t, SortConfig{Key: "spend", Direction: SortDesc}, cfg)

		cfg = NextSort(CycleDescFirst, cfg, "spend")
		assert.Equal(t, SortConfig{Key: "spend", Direction: SortAsc}, cfg)

		cfg = NextSort(CycleDescFirst, cfg, "spend")
		assert.Equal(t, SortConfig{}, cfg)
	})

	t.Run("Ciclo asc-first", func(t *testing.T) {
		cfg := NextSort(CycleAscFirst, SortConfig{}, "name")
		assert.Equal(t, SortConfig{Key: "name", Direction: SortAsc}, cfg)

		cfg = NextSort(CycleAscFirst, cfg, "name")
		assert.Equal(t, SortConfig{Key: "name", Direction: SortDesc}, cfg)

		cfg = NextSort(CycleAscFirst, cfg, "name")
		assert.Equal(t, SortConfig{}, cfg)
	})

	t.Run("Trocar de coluna reinicia o ciclo", func(t *testing.T) {
		cfg := NextSort(CycleDescFirst, SortConfig{Key: "spend", Direction: SortAsc}, "name")
		assert.Equal(t, SortConfig{Key: "name", Direction: SortDesc}, cfg)
	})
}

func TestHierarchicalCascade(t *testing.T) {
	adSets := []*domain.AdSet{
		{ID: "s1", CampaignID: "c1"},
		{ID: "s2", CampaignID: "c2"},
	}
	ads := []*domain.Ad{
		{ID: "a1", AdSetID: "s1", CampaignID: "c1"},
		{ID: "a2", AdSetID: "s2", CampaignID: "c2"},
		{ID: "a3", AdSetID: "s3", CampaignID: "c1"},
	}

	t.Run("Selecao de campanhas filtra conjuntos", func(t *testing.T) {
		result := AdSetsForSelection(adSets, map[string]struct{}{"c1": {}})
		require.Len(t, result, 1)
		assert.Equal(t, "s1", result[0].ID)
	})

	t.Run("Selecao de conjuntos filtra anuncios", func(t *testing.T) {
		result := AdsForSelection(ads, map[string]struct{}{"s2": {}}, map[string]struct{}{"c1": {}})
		require.Len(t, result, 1)
		assert.Equal(t, "a2", result[0].ID)
	})

	t.Run("Sem conjuntos selecionados cai para campanhas", func(t *testing.T) {
		result := AdsForSelection(ads, nil, map[string]struct{}{"c1": {}})
		require.Len(t, result, 2)
		assert.Equal(t, "a1", result[0].ID)
		assert.Equal(t, "a3", result[1].ID)
	})

	t.Run("Sem selecao devolve tudo", func(t *testing.T) {
		assert.Len(t, AdsForSelection(ads, nil, nil), 3)
		assert.Len(t, AdSetsForSelection(adSets, nil), 2)
	})
}
