package reportingservice

import (
	"log/slog"

	httpadapter "fieldproof/contexts/reporting/reporting-service/adapters/http"
	"fieldproof/contexts/reporting/reporting-service/adapters/memory"
	"fieldproof/contexts/reporting/reporting-service/application/queries"
	"fieldproof/contexts/reporting/reporting-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns   ports.CampaignSource
	Images      ports.ImageSource
	Assignments ports.AssignmentSource
	Clock       ports.Clock
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			StatusCounts: queries.StatusCountsUseCase{
				Campaigns: deps.Campaigns,
				Logger:    deps.Logger,
			},
			CampaignProgress: queries.CampaignProgressUseCase{
				Campaigns:   deps.Campaigns,
				Images:      deps.Images,
				Assignments: deps.Assignments,
				Clock:       deps.Clock,
				Logger:      deps.Logger,
			},
			ContractorApprovalRate: queries.ContractorApprovalRateUseCase{
				Images: deps.Images,
				Logger: deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(campaigns []ports.CampaignInfo, logger *slog.Logger) Module {
	store := memory.NewStore(campaigns)
	module := NewModule(Dependencies{
		Campaigns:   store,
		Images:      store,
		Assignments: store,
		Clock:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
