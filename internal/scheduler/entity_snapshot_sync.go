package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-manager-api/pkg/utils"
)

// SnapshotSyncConfig representa a configuração do poll de snapshots
type SnapshotSyncConfig struct {
	PollInterval   time.Duration
	ConsumerWindow time.Duration
	SyncEnabled    bool
}

// SnapshotSyncService renova periodicamente os snapshots que ainda têm
// consumidores, mantendo o cache quente sem esperar o TTL expirar.
type SnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              SnapshotSyncConfig
	appConfig           *config.Config
	snapshotService     insighting.Snapshoter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewSnapshotSyncService cria uma nova instância do serviço de poll de snapshots
func NewSnapshotSyncService(
	snapshotService insighting.Snapshoter,
	appConfig *config.Config,
) *SnapshotSyncService {
	// Criar a configuração com base na config global
	syncConfig := SnapshotSyncConfig{
		PollInterval:   appConfig.SnapshotSync.PollInterval,
		ConsumerWindow: appConfig.SnapshotSync.ConsumerWindow,
		SyncEnabled:    appConfig.SnapshotSync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"poll_interval":   syncConfig.PollInterval.String(),
		"consumer_window": syncConfig.ConsumerWindow.String(),
		"sync_enabled":    syncConfig.SyncEnabled,
	}).Info("Configuração do poll de snapshots carregada")

	return &SnapshotSyncService{
		scheduler:       scheduler,
		config:          syncConfig,
		appConfig:       appConfig,
		snapshotService: snapshotService,
		syncRunning:     false,
	}
}

// Start inicia o agendador
func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Poll de snapshots desabilitado por configuração")
		return nil
	}

	logrus.WithField("interval", s.config.PollInterval.String()).Info("Iniciando poll de snapshots")

	_, err := s.scheduler.Every(s.config.PollInterval).Do(func() {
		s.refreshActiveSnapshots(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar poll de snapshots: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando poll de snapshots")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshActiveSnapshots rebusca os snapshots consumidos na janela recente.
// Um ciclo ainda em execução faz o próximo ser ignorado, para ciclos lentos
// não se acumularem.
func (s *SnapshotSyncService) refreshActiveSnapshots(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Debug("Poll de snapshots já em andamento, ignorando ciclo")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	requests := s.snapshotService.RecentRequests(s.config.ConsumerWindow)
	if len(requests) == 0 {
		return
	}

	refreshed := 0
	for _, req := range requests {
		if ctx.Err() != nil {
			return
		}

		// NoCache força a rebusca; o resultado substitui a entrada antiga
		refreshReq := *req
		refreshReq.NoCache = true

		if logrus.IsLevelEnabled(logrus.DebugLevel) {
			logrus.Debugf("Renovando snapshot: %s", utils.PrettyJson(refreshReq))
		}

		if _, err := s.snapshotService.GetSnapshot(ctx, &refreshReq); err != nil {
			logrus.WithFields(logrus.Fields{
				"level": refreshReq.Type,
				"error": err.Error(),
			}).Warn("Erro ao renovar snapshot no poll")
			continue
		}

		refreshed++
	}

	logrus.WithFields(logrus.Fields{
		"refreshed":   refreshed,
		"total":       len(requests),
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Debug("Ciclo de poll de snapshots concluído")
}
