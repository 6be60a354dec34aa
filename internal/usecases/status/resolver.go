// Package status resolve o status composto de entrega de contas, campanhas,
// conjuntos e anúncios. A precedência é uma lista ordenada de regras
// (predicado -> resultado) avaliada de cima para baixo, para que a ordem
// seja auditável e testável isoladamente da renderização.
package status

import (
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

// resolve avalia a lista de regras em ordem. A última regra casa sempre,
// então a função nunca falha.
func resolve(v entityView) domain.StatusResult {
	for _, r := range rules {
		if r.Matches(v) {
			return r.Result(v)
		}
	}

	// Inalcançável: a tabela de status bruto aceita qualquer entrada.
	return domain.NewStatusResult("Unknown", domain.StatusTypeOther)
}

// ResolveAccount resolve o status exibido da própria conta.
func ResolveAccount(account *domain.AdAccount) domain.StatusResult {
	if account == nil {
		return domain.NewStatusResult("Unknown", domain.StatusTypeOther)
	}

	if account.AccountStatus == domain.AccountStatusDisabled {
		return domain.NewStatusResult("Account Disabled", domain.StatusTypeRejected)
	}

	if account.SpendCapReached() {
		return domain.NewStatusResult("Spending Limit Reached", domain.StatusTypeWithIssues)
	}

	if account.AccountStatus == domain.AccountStatusActive {
		return domain.NewStatusResult("Active", domain.StatusTypeActive)
	}

	return domain.NewStatusResult("Inactive", domain.StatusTypeOther)
}

// ResolveCampaign resolve o status composto de uma campanha, incluindo o
// rollup dos conjuntos e anúncios aninhados.
func ResolveCampaign(c *domain.Campaign, registry domain.AccountRegistry) domain.StatusResult {
	if c == nil {
		return domain.NewStatusResult("Unknown", domain.StatusTypeOther)
	}

	v := entityView{
		Level:            domain.EntityTypeCampaign,
		RawStatus:        c.Status,
		EffectiveStatus:  c.EffectiveStatus,
		ConfiguredStatus: c.ConfiguredStatus,
		SpendCap:         c.SpendCap,
		AmountSpent:      c.AmountSpent,
		Account:          registry.Get(c.AdAccountID),
		HasChildren:      len(c.AdSets) > 0,
	}

	for _, adSet := range c.AdSets {
		v.ChildStatuses = append(v.ChildStatuses, adSet.EffectiveStatus)

		adSetActive := !domain.IsTerminalOff(adSet.EffectiveStatus)
		if adSetActive {
			v.HasActiveChildren = true
		}

		for _, ad := range adSet.Ads {
			v.DescendantAdStatus = append(v.DescendantAdStatus, ad.EffectiveStatus)
			if adSetActive {
				v.AdsInActiveChildren = append(v.AdsInActiveChildren, ad.EffectiveStatus)
			}
		}
	}

	return resolve(v)
}

// ResolveAdSet resolve o status composto de um conjunto de anúncios.
func ResolveAdSet(s *domain.AdSet, registry domain.AccountRegistry) domain.StatusResult {
	if s == nil {
		return domain.NewStatusResult("Unknown", domain.StatusTypeOther)
	}

	v := entityView{
		Level:            domain.EntityTypeAdSet,
		RawStatus:        s.Status,
		EffectiveStatus:  s.EffectiveStatus,
		ConfiguredStatus: s.ConfiguredStatus,
		Account:          registry.Get(s.AdAccountID),
		HasChildren:      len(s.Ads) > 0,
	}

	for _, ad := range s.Ads {
		v.ChildStatuses = append(v.ChildStatuses, ad.EffectiveStatus)
		v.DescendantAdStatus = append(v.DescendantAdStatus, ad.EffectiveStatus)
	}

	return resolve(v)
}

// ResolveAd resolve o status de um anúncio. Não há rollup neste nível.
func ResolveAd(a *domain.Ad, registry domain.AccountRegistry) domain.StatusResult {
	if a == nil {
		return domain.NewStatusResult("Unknown", domain.StatusTypeOther)
	}

	return resolve(entityView{
		Level:            domain.EntityTypeAd,
		RawStatus:        a.Status,
		EffectiveStatus:  a.EffectiveStatus,
		ConfiguredStatus: a.ConfiguredStatus,
		Account:          registry.Get(a.AdAccountID),
	})
}
