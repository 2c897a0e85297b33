package campaignservice

import (
	"log/slog"

	httpadapter "fieldproof/contexts/campaign-workflow/campaign-service/adapters/http"
	"fieldproof/contexts/campaign-workflow/campaign-service/adapters/memory"
	"fieldproof/contexts/campaign-workflow/campaign-service/application/commands"
	"fieldproof/contexts/campaign-workflow/campaign-service/application/queries"
	"fieldproof/contexts/campaign-workflow/campaign-service/domain/entities"
	"fieldproof/contexts/campaign-workflow/campaign-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns   ports.CampaignRepository
	Assignments ports.AssignmentRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign: commands.CreateCampaignUseCase{
				Campaigns: deps.Campaigns,
				Clock:     deps.Clock,
				IDGen:     deps.IDGenerator,
				Logger:    deps.Logger,
			},
			UpdateCampaign: commands.UpdateCampaignUseCase{
				Campaigns: deps.Campaigns,
				Clock:     deps.Clock,
				Logger:    deps.Logger,
			},
			TransitionStatus: commands.TransitionStatusUseCase{
				Campaigns: deps.Campaigns,
				Clock:     deps.Clock,
				Logger:    deps.Logger,
			},
			DeleteCampaign: commands.DeleteCampaignUseCase{
				Campaigns: deps.Campaigns,
				Logger:    deps.Logger,
			},
			AssignContractor: commands.AssignContractorUseCase{
				Campaigns:   deps.Campaigns,
				Assignments: deps.Assignments,
				Clock:       deps.Clock,
				Logger:      deps.Logger,
			},
			RemoveAssignment: commands.RemoveAssignmentUseCase{
				Campaigns:   deps.Campaigns,
				Assignments: deps.Assignments,
				Logger:      deps.Logger,
			},
			ListCampaigns: queries.ListCampaignsUseCase{
				Campaigns:   deps.Campaigns,
				Assignments: deps.Assignments,
				Clock:       deps.Clock,
				Logger:      deps.Logger,
			},
			GetCampaign: queries.GetCampaignUseCase{
				Campaigns:   deps.Campaigns,
				Assignments: deps.Assignments,
				Clock:       deps.Clock,
				Logger:      deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Campaign, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Campaigns:   store,
		Assignments: store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
