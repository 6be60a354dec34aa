// Package mutation implementa a mutação otimista genérica do painel:
// aplica a transformação local imediatamente, chama a API remota e, em caso
// de falha, aplica a transformação inversa e reporta o erro. Em caso de
// sucesso, agenda uma busca de reconciliação da entidade afetada, já que o
// estado da plataforma é eventualmente consistente.
package mutation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

const (
	// Delays fixos do painel: reconciliação 1,5s após o sucesso e
	// liberação da trava de ordenação 1s após o flip.
	DefaultReconcileDelay   = 1500 * time.Millisecond
	DefaultLockReleaseDelay = 1 * time.Second
)

// Remote executa a mutação de status na plataforma.
type Remote interface {
	SetEntityStatus(ctx context.Context, entityType domain.EntityType, id string, status string) error
}

// Local aplica e reverte o flip otimista no snapshot em memória.
type Local interface {
	SetEntityStatus(entityType domain.EntityType, id string, status string)
	ClearEntityStatus(entityType domain.EntityType, id string)
}

// Reconciler rebusca os dados básicos e de insights de uma única entidade
// para reconciliar o estado local com a plataforma.
type Reconciler interface {
	RefreshEntity(ctx context.Context, entityType domain.EntityType, id string) error
}

// Toggler coordena os flips ACTIVE<->PAUSED com rollback manual. Um
// contador de geração por entidade descarta reconciliações obsoletas:
// somente a reconciliação agendada pelo toggle mais recente executa.
type Toggler struct {
	remote     Remote
	local      Local
	reconciler Reconciler

	reconcileDelay   time.Duration
	lockReleaseDelay time.Duration

	mu          sync.Mutex
	generations map[string]uint64
	locks       map[domain.EntityType]*orderLock
}

type orderLock struct {
	order     []string
	expiresAt time.Time
}

func NewToggler(remote Remote, local Local, reconciler Reconciler) *Toggler {
	return &Toggler{
		remote:           remote,
		local:            local,
		reconciler:       reconciler,
		reconcileDelay:   DefaultReconcileDelay,
		lockReleaseDelay: DefaultLockReleaseDelay,
		generations:      make(map[string]uint64),
		locks:            make(map[domain.EntityType]*orderLock),
	}
}

// WithDelays ajusta os delays de reconciliação e liberação da trava.
// Usado pelos testes; produção fica com os padrões do painel.
func (t *Toggler) WithDelays(reconcile, lockRelease time.Duration) *Toggler {
	t.reconcileDelay = reconcile
	t.lockReleaseDelay = lockRelease
	return t
}

// NextStatus devolve o alvo do flip. Apenas ACTIVE<->PAUSED são alterações
// válidas pelo painel.
func NextStatus(current string) (string, error) {
	switch current {
	case domain.StatusActive:
		return domain.StatusPaused, nil
	case domain.StatusPaused:
		return domain.StatusActive, nil
	}
	return "", fmt.Errorf("status %q não pode ser alternado", current)
}

func entityKey(entityType domain.EntityType, id string) string {
	return string(entityType) + ":" + id
}

// Toggle executa o flip otimista. visibleOrder é a ordem das linhas no
// momento do clique; ela vira a trava de ordenação para que a linha não
// pule de posição por conta das métricas otimistas enquanto a mutação está
// em voo.
func (t *Toggler) Toggle(
	ctx context.Context,
	entityType domain.EntityType,
	id string,
	currentStatus string,
	visibleOrder []string,
) (string, error) {
	next, err := NextStatus(currentStatus)
	if err != nil {
		return "", err
	}

	key := entityKey(entityType, id)
	generation := t.bumpGeneration(key)

	// Flip otimista aplicado antes da confirmação do servidor.
	t.local.SetEntityStatus(entityType, id, next)
	t.lockOrder(entityType, visibleOrder)

	if err := t.remote.SetEntityStatus(ctx, entityType, id, next); err != nil {
		// Rollback: descarta o status otimista em vez de fixar o valor
		// antigo, senão transições futuras da plataforma ficariam mascaradas.
		t.local.ClearEntityStatus(entityType, id)

		logrus.WithFields(logrus.Fields{
			"entity_type": entityType,
			"entity_id":   id,
			"error":       err.Error(),
		}).Error("toggle: remote mutation failed, optimistic state reverted")

		return "", err
	}

	t.scheduleReconcile(entityType, id, key, generation)

	return next, nil
}

func (t *Toggler) bumpGeneration(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.generations[key]++
	return t.generations[key]
}

func (t *Toggler) currentGeneration(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.generations[key]
}

// scheduleReconcile agenda a rebusca da entidade. Se um novo toggle chegar
// antes do timer disparar, a geração muda e a reconciliação antiga é
// descartada em vez de sobrescrever estado mais novo.
func (t *Toggler) scheduleReconcile(entityType domain.EntityType, id, key string, generation uint64) {
	time.AfterFunc(t.reconcileDelay, func() {
		if t.currentGeneration(key) != generation {
			logrus.WithFields(logrus.Fields{
				"entity_type": entityType,
				"entity_id":   id,
			}).Debug("toggle: stale reconciliation discarded")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := t.reconciler.RefreshEntity(ctx, entityType, id); err != nil {
			logrus.WithFields(logrus.Fields{
				"entity_type": entityType,
				"entity_id":   id,
				"error":       err.Error(),
			}).Warn("toggle: reconciliation fetch failed")
		}
	})
}

// lockOrder congela a ordem visível da aba. A trava expira sozinha após o
// delay de liberação.
func (t *Toggler) lockOrder(entityType domain.EntityType, order []string) {
	if len(order) == 0 {
		return
	}

	snapshot := make([]string, len(order))
	copy(snapshot, order)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.locks[entityType] = &orderLock{
		order:     snapshot,
		expiresAt: time.Now().Add(t.lockReleaseDelay),
	}
}

// LockedOrder devolve a ordem travada da aba, ou nil quando não há trava
// ativa.
func (t *Toggler) LockedOrder(entityType domain.EntityType) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, ok := t.locks[entityType]
	if !ok {
		return nil
	}

	if time.Now().After(lock.expiresAt) {
		delete(t.locks, entityType)
		return nil
	}

	out := make([]string, len(lock.order))
	copy(out, lock.order)
	return out
}
