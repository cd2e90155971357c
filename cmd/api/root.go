package main

import (
	"database/sql"
	"os"

	"github.com/4oBuko/mission-archive/internal/config"
	"github.com/4oBuko/mission-archive/internal/logging"
	"github.com/4oBuko/mission-archive/internal/repositories"
	"github.com/4oBuko/mission-archive/internal/services"
	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	v := config.New()
	var configFile string

	root := &cobra.Command{
		Use:           "missions",
		Short:         "WWII bombing mission archive",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a yaml, json or toml config file")
	cobra.CheckErr(config.RegisterFlags(v, root.PersistentFlags()))

	load := func() (config.Config, error) {
		return config.Load(v, configFile)
	}
	root.AddCommand(newServeCmd(load), newMigrateCmd(load), newSeedCmd(load))
	return root
}

type configLoader func() (config.Config, error)

// app holds what every subcommand needs: the config, a logger and an open
// connection pool.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	db     *sql.DB
	store  *repositories.Store
}

func newApp(load configLoader) (*app, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}
	db, err := initDBConnection(cfg.DB)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, db: db, store: repositories.NewStore(db)}, nil
}

func (a *app) services() (services.MissionService, services.GeographyService) {
	missionService := services.NewDefaultMissionService(a.store,
		repositories.NewMySQLMissionRepository(), repositories.NewMySQLTargetRepository(), a.logger)
	geographyService := services.NewDefaultGeographyService(a.store,
		repositories.NewMySQLCountryRepository(), repositories.NewMySQLCityRepository(),
		repositories.NewMySQLTargetTypeRepository(), repositories.NewMySQLAttackTypeRepository(), a.logger)
	return missionService, geographyService
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func initDBConnection(cfg config.DBConfig) (*sql.DB, error) {
	dsn, err := cfg.FormatDSN()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	return db, nil
}
