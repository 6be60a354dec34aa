package mutation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/mutation/mocks"
	"go.uber.org/mock/gomock"
)

func TestToggler_SuccessAppliesOptimisticFlip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := mocks.NewMockRemote(ctrl)
	local := mocks.NewMockLocal(ctrl)
	reconciler := mocks.NewMockReconciler(ctrl)

	reconciled := make(chan struct{})

	// O flip local acontece antes da chamada remota.
	local.EXPECT().SetEntityStatus(domain.EntityTypeCampaign, "c1", "PAUSED")
	remote.EXPECT().SetEntityStatus(gomock.Any(), domain.EntityTypeCampaign, "c1", "PAUSED").Return(nil)
	reconciler.EXPECT().
		RefreshEntity(gomock.Any(), domain.EntityTypeCampaign, "c1").
		DoAndReturn(func(context.Context, domain.EntityType, string) error {
			close(reconciled)
			return nil
		})

	toggler := NewToggler(remote, local, reconciler).WithDelays(10*time.Millisecond, time.Second)

	newStatus, err := toggler.Toggle(context.Background(), domain.EntityTypeCampaign, "c1", "ACTIVE", nil)

	require.NoError(t, err)
	assert.Equal(t, "PAUSED", newStatus)

	select {
	case <-reconciled:
	case <-time.After(time.Second):
		t.Fatal("reconciliacao agendada nao executou")
	}
}

func TestToggler_FailureRevertsOptimisticFlip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := mocks.NewMockRemote(ctrl)
	local := mocks.NewMockLocal(ctrl)
	reconciler := mocks.NewMockReconciler(ctrl)

	gomock.InOrder(
		local.EXPECT().SetEntityStatus(domain.EntityTypeAd, "a1", "ACTIVE"),
		remote.EXPECT().
			SetEntityStatus(gomock.Any(), domain.EntityTypeAd, "a1", "ACTIVE").
			Return(errors.New("(#100) permission denied")),
		// Rollback descarta o override em vez de fixar o valor antigo.
		local.EXPECT().ClearEntityStatus(domain.EntityTypeAd, "a1"),
	)

	toggler := NewToggler(remote, local, reconciler).WithDelays(10*time.Millisecond, time.Second)

	_, err := toggler.Toggle(context.Background(), domain.EntityTypeAd, "a1", "PAUSED", nil)

	require.Error(t, err)

	// Nenhuma reconciliacao deve ser agendada apos falha.
	time.Sleep(50 * time.Millisecond)
}

func TestToggler_StaleReconciliationDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := mocks.NewMockRemote(ctrl)
	local := mocks.NewMockLocal(ctrl)
	reconciler := mocks.NewMockReconciler(ctrl)

	local.EXPECT().SetEntityStatus(domain.EntityTypeCampaign, "c1", gomock.Any()).Times(2)
	remote.EXPECT().SetEntityStatus(gomock.Any(), domain.EntityTypeCampaign, "c1", gomock.Any()).Return(nil).Times(2)

	// Apenas a reconciliacao do segundo toggle executa; a do primeiro e
	// descartada pelo contador de geracao.
	reconciled := make(chan struct{})
	reconciler.EXPECT().
		RefreshEntity(gomock.Any(), domain.EntityTypeCampaign, "c1").
		DoAndReturn(func(context.Context, domain.EntityType, string) error {
			close(reconciled)
			return nil
		}).
		Times(1)

	toggler := NewToggler(remote, local, reconciler).WithDelays(50*time.Millisecond, time.Second)

	_, err := toggler.Toggle(context.Background(), domain.EntityTypeCampaign, "c1", "ACTIVE", nil)
	require.NoError(t, err)

	_, err = toggler.Toggle(context.Background(), domain.EntityTypeCampaign, "c1", "PAUSED", nil)
	require.NoError(t, err)

	select {
	case <-reconciled:
	case <-time.After(time.Second):
		t.Fatal("reconciliacao do toggle mais recente nao executou")
	}

	// Janela extra para garantir que a primeira nao dispare.
	time.Sleep(100 * time.Millisecond)
}

func TestToggler_LockedOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := mocks.NewMockRemote(ctrl)
	local := mocks.NewMockLocal(ctrl)
	reconciler := mocks.NewMockReconciler(ctrl)

	local.EXPECT().SetEntityStatus(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	remote.EXPECT().SetEntityStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	reconciler.EXPECT().RefreshEntity(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	toggler := NewToggler(remote, local, reconciler).WithDelays(time.Hour, 80*time.Millisecond)

	order := []string{"c3", "c1", "c2"}
	_, err := toggler.Toggle(context.Background(), domain.EntityTypeCampaign, "c1", "ACTIVE", order)
	require.NoError(t, err)

	locked := toggler.LockedOrder(domain.EntityTypeCampaign)
	assert.Equal(t, order, locked)

	// A trava expira sozinha apos o delay de liberacao.
	time.Sleep(120 * time.Millisecond)
	assert.Nil(t, toggler.LockedOrder(domain.EntityTypeCampaign))
}

func TestNextStatus(t *testing.T) {
	next, err := NextStatus("ACTIVE")
	require.NoError(t, err)
	assert.Equal(t, "PAUSED", next)

	next, err = NextStatus("PAUSED")
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", next)

	_, err = NextStatus("ARCHIVED")
	assert.Error(t, err)
}
