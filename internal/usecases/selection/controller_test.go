package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

func TestController_ToggleAndCascade(t *testing.T) {
	c := NewController()

	c.Toggle(domain.EntityTypeCampaign, "c1")
	c.Toggle(domain.EntityTypeAdSet, "s1")
	c.Toggle(domain.EntityTypeAd, "a1")

	assert.True(t, c.IsChecked(domain.EntityTypeCampaign, "c1"))
	assert.True(t, c.IsChecked(domain.EntityTypeAd, "a1"))

	// Mudar a selecao de campanhas limpa conjuntos e anuncios.
	c.Toggle(domain.EntityTypeCampaign, "c2")

	assert.True(t, c.IsChecked(domain.EntityTypeCampaign, "c1"))
	assert.True(t, c.IsChecked(domain.EntityTypeCampaign, "c2"))
	assert.Equal(t, 0, c.Count(domain.EntityTypeAdSet))
	assert.Equal(t, 0, c.Count(domain.EntityTypeAd))
}

func TestController_AdSetCascadeClearsOnlyAds(t *testing.T) {
	c := NewController()

	c.Toggle(domain.EntityTypeCampaign, "c1")
	c.Toggle(domain.EntityTypeAdSet, "s1")
	c.Toggle(domain.EntityTypeAd, "a1")

	c.Toggle(domain.EntityTypeAdSet, "s2")

	assert.True(t, c.IsChecked(domain.EntityTypeCampaign, "c1"))
	assert.Equal(t, 2, c.Count(domain.EntityTypeAdSet))
	assert.Equal(t, 0, c.Count(domain.EntityTypeAd))
}

func TestController_SelectAllUsesVisibleIDs(t *testing.T) {
	c := NewController()

	c.Toggle(domain.EntityTypeCampaign, "antiga")

	// Select-all seleciona exatamente os ids visiveis sob o filtro ativo,
	// nao o conjunto completo sem filtro.
	c.SetAll(domain.EntityTypeCampaign, []string{"c1", "c2"})

	assert.False(t, c.IsChecked(domain.EntityTypeCampaign, "antiga"))
	assert.True(t, c.IsChecked(domain.EntityTypeCampaign, "c1"))
	assert.True(t, c.IsChecked(domain.EntityTypeCampaign, "c2"))
	assert.Equal(t, 2, c.Count(domain.EntityTypeCampaign))

	c.SetAll(domain.EntityTypeCampaign, nil)
	assert.Equal(t, 0, c.Count(domain.EntityTypeCampaign))
}

func TestController_CheckedReturnsCopy(t *testing.T) {
	c := NewController()
	c.Toggle(domain.EntityTypeAd, "a1")

	checked := c.Checked(domain.EntityTypeAd)
	delete(checked, "a1")

	assert.True(t, c.IsChecked(domain.EntityTypeAd, "a1"))
}
