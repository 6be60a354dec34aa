// Package selection mantém os conjuntos de linhas marcadas por aba do
// painel. Mudar a seleção de um nível pai limpa as seleções de todos os
// níveis descendentes, para que o encadeamento hierárquico nunca aponte
// para filhos de pais que saíram da seleção.
package selection

import (
	"sync"

	"github.com/vfg2006/ads-manager-api/internal/domain"
)

// Controller guarda um conjunto de ids marcados por aba. Seguro para uso
// concorrente; os handlers compartilham uma instância por sessão de visão.
type Controller struct {
	mu      sync.Mutex
	checked map[domain.EntityType]map[string]struct{}
}

func NewController() *Controller {
	return &Controller{
		checked: map[domain.EntityType]map[string]struct{}{
			domain.EntityTypeAccount:  {},
			domain.EntityTypeCampaign: {},
			domain.EntityTypeAdSet:    {},
			domain.EntityTypeAd:       {},
		},
	}
}

// descendants lista, para cada nível, os níveis limpos quando a seleção
// daquele nível muda.
var descendants = map[domain.EntityType][]domain.EntityType{
	domain.EntityTypeAccount:  {domain.EntityTypeCampaign, domain.EntityTypeAdSet, domain.EntityTypeAd},
	domain.EntityTypeCampaign: {domain.EntityTypeAdSet, domain.EntityTypeAd},
	domain.EntityTypeAdSet:    {domain.EntityTypeAd},
}

// Toggle inverte a marcação de um id e limpa as seleções descendentes.
func (c *Controller) Toggle(level domain.EntityType, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := c.checked[level]
	if _, ok := set[id]; ok {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}

	c.clearDescendants(level)
}

// SetAll substitui a seleção do nível pelos ids visíveis no filtro atual
// (select-all) ou por vazio, limpando as seleções descendentes.
func (c *Controller) SetAll(level domain.EntityType, visibleIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := make(map[string]struct{}, len(visibleIDs))
	for _, id := range visibleIDs {
		set[id] = struct{}{}
	}

	c.checked[level] = set
	c.clearDescendants(level)
}

// Clear esvazia a seleção do nível e dos descendentes.
func (c *Controller) Clear(level domain.EntityType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checked[level] = map[string]struct{}{}
	c.clearDescendants(level)
}

func (c *Controller) clearDescendants(level domain.EntityType) {
	for _, child := range descendants[level] {
		c.checked[child] = map[string]struct{}{}
	}
}

// IsChecked informa se um id está marcado no nível.
func (c *Controller) IsChecked(level domain.EntityType, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.checked[level][id]
	return ok
}

// Checked devolve uma cópia do conjunto marcado do nível, no formato que a
// pipeline de listagem consome.
func (c *Controller) Checked(level domain.EntityType) map[string]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := c.checked[level]
	out := make(map[string]struct{}, len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out
}

// Count devolve quantos ids estão marcados no nível.
func (c *Controller) Count(level domain.EntityType) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.checked[level])
}
