package http

import (
	"gorm.io/gorm"

	allocationUsecases "github.com/assetflow/assetflow/internal/application/allocation/usecases"
	assetUsecases "github.com/assetflow/assetflow/internal/application/asset/usecases"
	"github.com/assetflow/assetflow/internal/application/lifecycle"
	reviewUsecases "github.com/assetflow/assetflow/internal/application/review/usecases"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/infrastructure/config"
	"github.com/assetflow/assetflow/internal/infrastructure/token"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	"github.com/assetflow/assetflow/internal/shared/db"
	"github.com/assetflow/assetflow/internal/shared/logger"
	"github.com/assetflow/assetflow/internal/shared/services/markdown"
)

// allUseCases holds every use case exposed over HTTP.
type allUseCases struct {
	// Allocation
	assign            *allocationUsecases.AssignUseCase
	unassign          *allocationUsecases.UnassignUseCase
	listQAAssetLists  *allocationUsecases.ListQAAssetListsUseCase
	getAllocationList *allocationUsecases.GetAllocationListUseCase

	// Asset lifecycle
	changeStatus      *assetUsecases.ChangeStatusUseCase
	batchChangeStatus *assetUsecases.BatchChangeStatusUseCase
	getStatusHistory  *assetUsecases.GetStatusHistoryUseCase

	// Shared review
	createInvitation *reviewUsecases.CreateInvitationUseCase
	cancelInvitation *reviewUsecases.CancelInvitationUseCase
	reviewOverview   *reviewUsecases.GetReviewOverviewUseCase
	submitResponses  *reviewUsecases.SubmitResponsesUseCase
	annotations      *reviewUsecases.AnnotationsUseCase
}

func newUseCases(repos *repositories, gdb *gorm.DB, publisher events.EventPublisher, cfg *config.Config, log logger.Interface) *allUseCases {
	clock := biztime.SystemClock
	txMgr := db.NewTransactionManager(gdb)
	machine := lifecycle.NewStateMachine(repos.assetRepo, repos.historyRepo, clock, log.Named("lifecycle"))
	tokens := token.NewReviewTokenGenerator()
	renderer := markdown.NewMarkdownService()
	resolver := reviewUsecases.NewResolver(repos.invitationRepo, tokens, clock, log)
	reviewSettings := reviewUsecases.Settings{
		BaseURL:    cfg.Server.BaseURL,
		DefaultTTL: cfg.Review.DefaultTTL(),
		MaxTTL:     cfg.Review.MaxTTL(),
	}

	return &allUseCases{
		assign: allocationUsecases.NewAssignUseCase(
			repos.assetRepo, repos.listRepo, repos.assignmentRepo, repos.userRepo,
			machine, txMgr, publisher, clock, log,
		),
		unassign: allocationUsecases.NewUnassignUseCase(
			repos.listRepo, repos.assignmentRepo, txMgr, publisher, clock, log,
		),
		listQAAssetLists:  allocationUsecases.NewListQAAssetListsUseCase(repos.listRepo, repos.assignmentRepo, log),
		getAllocationList: allocationUsecases.NewGetAllocationListUseCase(repos.listRepo, repos.assignmentRepo, log),

		changeStatus: assetUsecases.NewChangeStatusUseCase(
			repos.assetRepo, repos.assignmentRepo, machine, txMgr, publisher, clock, log,
		),
		batchChangeStatus: assetUsecases.NewBatchChangeStatusUseCase(
			repos.assetRepo, repos.assignmentRepo, machine, txMgr, publisher, clock, log,
		),
		getStatusHistory: assetUsecases.NewGetStatusHistoryUseCase(repos.assetRepo, repos.historyRepo, log),

		createInvitation: reviewUsecases.NewCreateInvitationUseCase(
			repos.invitationRepo, repos.assetRepo, tokens, renderer, publisher, reviewSettings, clock, log,
		),
		cancelInvitation: reviewUsecases.NewCancelInvitationUseCase(repos.invitationRepo, clock, log),
		reviewOverview:   reviewUsecases.NewGetReviewOverviewUseCase(resolver, repos.assetRepo, repos.responseRepo, log),
		submitResponses: reviewUsecases.NewSubmitResponsesUseCase(
			resolver, repos.assetRepo, repos.responseRepo, repos.invitationRepo,
			machine, renderer, txMgr, publisher, clock, log,
		),
		annotations: reviewUsecases.NewAnnotationsUseCase(resolver, repos.annotationRepo, renderer, txMgr, clock, log),
	}
}
