// Package worker runs the periodic maintenance sweeps outside the API process.
package worker

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	allocationUsecases "github.com/assetflow/assetflow/internal/application/allocation/usecases"
	reviewUsecases "github.com/assetflow/assetflow/internal/application/review/usecases"
	"github.com/assetflow/assetflow/internal/infrastructure/database"
	"github.com/assetflow/assetflow/internal/infrastructure/repository"
	"github.com/assetflow/assetflow/internal/infrastructure/scheduler"
	"github.com/assetflow/assetflow/internal/interfaces/cli/bootstrap"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	sharedConfig "github.com/assetflow/assetflow/internal/shared/config"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run scheduled maintenance jobs",
		Long:  `Expire overdue share invitations and remove orphaned allocation lists on a fixed interval.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Init(bootstrap.Env(env), true)
	if err != nil {
		return err
	}
	defer rt.Close()

	log := rt.Logger.Named("worker")
	log.Infow("starting maintenance worker", "environment", env)

	manager, err := newSchedulerManager(rt.Config.Scheduler, log)
	if err != nil {
		return err
	}

	manager.Start()
	defer func() {
		if err := manager.Stop(); err != nil {
			log.Errorw("failed to stop scheduler", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("shutting down worker", "signal", sig.String())
	return nil
}

func newSchedulerManager(cfg sharedConfig.SchedulerConfig, log logger.Interface) (*scheduler.SchedulerManager, error) {
	db := database.Get()

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	expire := reviewUsecases.NewExpireInvitationsUseCase(
		repository.NewInvitationRepository(db, log),
		biztime.SystemClock,
		log,
	)
	if err := manager.RegisterInvitationExpiryJob(expire, minutes(cfg.InvitationExpiryIntervalMinutes)); err != nil {
		return nil, fmt.Errorf("failed to register invitation expiry job: %w", err)
	}

	cleanup := allocationUsecases.NewCleanupOrphanListsUseCase(
		repository.NewAllocationListRepository(db, log),
		log,
	)
	if err := manager.RegisterOrphanListCleanupJob(cleanup, minutes(cfg.OrphanCleanupIntervalMinutes)); err != nil {
		return nil, fmt.Errorf("failed to register orphan list cleanup job: %w", err)
	}

	return manager, nil
}

func minutes(n int) time.Duration {
	if n <= 0 {
		n = 1
	}
	return time.Duration(n) * time.Minute
}
