package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/project"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Summary, error)
	GetTree(ctx context.Context, id string) (*project.Tree, error)
	Update(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error)
	Delete(ctx context.Context, id string) error
}

// MacroStageService defines macro stage operations needed by MCP.
type MacroStageService interface {
	Create(ctx context.Context, req macrostage.CreateRequest) (*macrostage.MacroStage, error)
	Rename(ctx context.Context, id, name string) error
	SetStructureType(ctx context.Context, id string, structureType macrostage.StructureType) error
	Reorder(ctx context.Context, projectID string, ids []string) error
	Delete(ctx context.Context, id string) error
}

// StageService defines stage operations needed by MCP.
type StageService interface {
	Create(ctx context.Context, req stage.CreateRequest) (*stage.Stage, error)
	Update(ctx context.Context, req stage.UpdateRequest) (*stage.Stage, error)
	Reorder(ctx context.Context, macrostageID string, ids []string) error
	Delete(ctx context.Context, id string) error
}

// TaskService defines task and weekly update operations needed by MCP.
type TaskService interface {
	Create(ctx context.Context, req task.CreateRequest) (*task.Task, error)
	Update(ctx context.Context, req task.UpdateRequest) (*task.Task, error)
	Reorder(ctx context.Context, macrostageID string, stageID *string, ids []string) error
	Delete(ctx context.Context, id string) error
	AddUpdate(ctx context.Context, req task.AddUpdateRequest) (*task.WeeklyUpdate, error)
	EditUpdate(ctx context.Context, req task.EditUpdateRequest) (*task.WeeklyUpdate, error)
	RemoveUpdate(ctx context.Context, id string) error
	ListUpdates(ctx context.Context, taskID string) ([]task.WeeklyUpdate, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects    ProjectService
	MacroStages MacroStageService
	Stages      StageService
	Tasks       TaskService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "lattice",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
