package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	cacheredis "github.com/vfg2006/ads-manager-api/infrastructure/cache/redis"
	"github.com/vfg2006/ads-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-manager-api/infrastructure/repository"
	"github.com/vfg2006/ads-manager-api/internal/api"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/scheduler"
	"github.com/vfg2006/ads-manager-api/internal/usecases/account"
	"github.com/vfg2006/ads-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-manager-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-manager-api/internal/usecases/mutation"
	"github.com/vfg2006/ads-manager-api/internal/usecases/selection"
)

// metaRemote adapta o integrador Meta para a interface de mutação remota.
type metaRemote struct {
	integrator *meta.MetaIntegrator
}

func (r *metaRemote) SetEntityStatus(ctx context.Context, entityType domain.EntityType, id string, status string) error {
	return r.integrator.UpdateEntityStatus(id, status)
}

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	viewStateRepo := repository.NewViewStateRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, accountRepo, cfg)

	rdb, err := cacheredis.NewClient(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}
	defer rdb.Close()

	snapshotCache := cacheredis.NewSnapshotCache(rdb, cfg.SnapshotSync.CacheTTL)

	tokenManager := metaclient.NewTokenManager(cfg)
	go tokenManager.StartAutoRefresh()
	defer tokenManager.StopAutoRefresh()

	metaClient := metaclient.NewClient(cfg, tokenManager)
	metaIntegrator := meta.New(cfg, metaClient)

	accountService, err := account.NewService(accountRepo, metaIntegrator, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar o registro de contas")
	}

	snapshotService := insighting.NewService(cfg, metaIntegrator, snapshotCache, accountService.Registry)

	// O toggler usa o serviço de snapshots como estado local e como
	// reconciliador; o integrador Meta é o lado remoto.
	toggler := mutation.NewToggler(
		&metaRemote{integrator: metaIntegrator},
		snapshotService,
		snapshotService,
	)

	checked := selection.NewController()

	snapshotSyncService := scheduler.NewSnapshotSyncService(snapshotService, cfg)
	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o poll de snapshots")
	} else {
		logrus.Info("Poll de snapshots iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		snapshotService,
		accountService,
		authenticator,
		toggler,
		checked,
		viewStateRepo,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
