package imageservice

import (
	"log/slog"

	"fieldproof/contexts/campaign-workflow/image-service/adapters/filestore"
	httpadapter "fieldproof/contexts/campaign-workflow/image-service/adapters/http"
	"fieldproof/contexts/campaign-workflow/image-service/adapters/memory"
	"fieldproof/contexts/campaign-workflow/image-service/application/commands"
	"fieldproof/contexts/campaign-workflow/image-service/application/queries"
	"fieldproof/contexts/campaign-workflow/image-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
	Files   *filestore.MemoryFileStore
}

type Dependencies struct {
	Images      ports.ImageRepository
	Campaigns   ports.CampaignReader
	Assignments ports.AssignmentChecker
	Files       ports.FileStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			UploadImage: commands.UploadImageUseCase{
				Images:      deps.Images,
				Campaigns:   deps.Campaigns,
				Assignments: deps.Assignments,
				Files:       deps.Files,
				Clock:       deps.Clock,
				IDGen:       deps.IDGenerator,
				Logger:      deps.Logger,
			},
			ReviewImage: commands.ReviewImageUseCase{
				Images: deps.Images,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
			DeleteImage: commands.DeleteImageUseCase{
				Images: deps.Images,
				Files:  deps.Files,
				Logger: deps.Logger,
			},
			ListImages: queries.ListImagesUseCase{
				Images:      deps.Images,
				Campaigns:   deps.Campaigns,
				Assignments: deps.Assignments,
				Clock:       deps.Clock,
				Logger:      deps.Logger,
			},
			ListImagesByUploader: queries.ListImagesByUploaderUseCase{
				Images: deps.Images,
				Logger: deps.Logger,
			},
			GetImage: queries.GetImageUseCase{
				Images:      deps.Images,
				Campaigns:   deps.Campaigns,
				Assignments: deps.Assignments,
				Clock:       deps.Clock,
				Logger:      deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires the service onto its own memory store and blob
// store, with campaign summaries seeded for standalone runs.
func NewInMemoryModule(campaigns []ports.CampaignSummary, logger *slog.Logger) Module {
	store := memory.NewStore(campaigns)
	files := filestore.NewMemoryFileStore()
	module := NewModule(Dependencies{
		Images:      store,
		Campaigns:   store,
		Assignments: store,
		Files:       files,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	module.Files = files
	return module
}
