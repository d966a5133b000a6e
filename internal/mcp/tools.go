package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/project"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
)

const dateLayout = "2006-01-02"

// parseDate converts a YYYY-MM-DD wire string into a nullable date. An
// empty string means no date.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, validationError("%s must be a YYYY-MM-DD date, got %q", field, value)
	}
	return &t, nil
}

// okOutput is the response of tools that return no entity.
type okOutput struct {
	OK bool `json:"ok"`
}

type createProjectInput struct {
	Name                     string `json:"name" jsonschema:"Project name"`
	Scope                    string `json:"scope,omitempty" jsonschema:"What the project covers"`
	Status                   string `json:"status,omitempty" jsonschema:"Free-form status label"`
	GithubLink               string `json:"github_link,omitempty"`
	Coordinator              string `json:"coordinator,omitempty"`
	AutomationSupport        string `json:"automation_support,omitempty"`
	RequestingAgency         string `json:"requesting_agency,omitempty"`
	InternalDepartment       string `json:"internal_department,omitempty"`
	SponsoringManager        string `json:"sponsoring_manager,omitempty"`
	SponsoringManagerContact string `json:"sponsoring_manager_contact,omitempty"`
	TechnicalManager         string `json:"technical_manager,omitempty"`
	TechnicalManagerContact  string `json:"technical_manager_contact,omitempty"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"Entity ID"`
}

type listProjectsOutput struct {
	Projects []project.Summary `json:"projects"`
}

type updateProjectInput struct {
	ID                       string  `json:"id" jsonschema:"Project ID"`
	Name                     *string `json:"name,omitempty" jsonschema:"New name (omit to keep)"`
	Scope                    *string `json:"scope,omitempty"`
	Status                   *string `json:"status,omitempty"`
	GithubLink               *string `json:"github_link,omitempty"`
	Coordinator              *string `json:"coordinator,omitempty"`
	AutomationSupport        *string `json:"automation_support,omitempty"`
	RequestingAgency         *string `json:"requesting_agency,omitempty"`
	InternalDepartment       *string `json:"internal_department,omitempty"`
	SponsoringManager        *string `json:"sponsoring_manager,omitempty"`
	SponsoringManagerContact *string `json:"sponsoring_manager_contact,omitempty"`
	TechnicalManager         *string `json:"technical_manager,omitempty"`
	TechnicalManagerContact  *string `json:"technical_manager_contact,omitempty"`
}

type createMacroStageInput struct {
	ProjectID string `json:"project_id" jsonschema:"Owning project ID"`
	Name      string `json:"name" jsonschema:"Macro stage name"`
}

type renameMacroStageInput struct {
	ID   string `json:"id" jsonschema:"Macro stage ID"`
	Name string `json:"name" jsonschema:"New name"`
}

type setStructureInput struct {
	ID            string `json:"id" jsonschema:"Macro stage ID"`
	StructureType string `json:"structure_type" jsonschema:"One of 'stages', 'tasks' or '' to unset"`
}

type reorderMacroStagesInput struct {
	ProjectID     string   `json:"project_id" jsonschema:"Owning project ID"`
	MacroStageIDs []string `json:"macrostage_ids" jsonschema:"Every macro stage ID of the project in the desired order"`
}

type createStageInput struct {
	MacrostageID string   `json:"macrostage_id" jsonschema:"Owning macro stage ID"`
	Name         string   `json:"name" jsonschema:"Stage name"`
	Kind         string   `json:"kind" jsonschema:"One of 'robot', 'system', 'not_applicable'"`
	Scope        string   `json:"scope,omitempty" jsonschema:"Required for robot and system stages"`
	Tools        []string `json:"tools,omitempty" jsonschema:"Required for robot and system stages"`
	OtherTools   string   `json:"other_tools,omitempty"`
}

type updateStageInput struct {
	ID         string   `json:"id" jsonschema:"Stage ID"`
	Name       *string  `json:"name,omitempty" jsonschema:"New name (omit to keep)"`
	Kind       string   `json:"kind" jsonschema:"One of 'robot', 'system', 'not_applicable'"`
	Scope      string   `json:"scope,omitempty"`
	Tools      []string `json:"tools,omitempty"`
	OtherTools string   `json:"other_tools,omitempty"`
}

type reorderStagesInput struct {
	MacrostageID string   `json:"macrostage_id" jsonschema:"Owning macro stage ID"`
	StageIDs     []string `json:"stage_ids" jsonschema:"Every stage ID of the macro stage in the desired order"`
}

type createTaskInput struct {
	MacrostageID string  `json:"macrostage_id" jsonschema:"Owning macro stage ID"`
	StageID      *string `json:"stage_id,omitempty" jsonschema:"Owning stage ID; omit to attach directly to the macro stage"`
	Name         string  `json:"name" jsonschema:"Task name"`
	StartDate    string  `json:"start_date,omitempty" jsonschema:"YYYY-MM-DD"`
	EndDate      string  `json:"end_date,omitempty" jsonschema:"YYYY-MM-DD"`
}

type updateTaskInput struct {
	ID        string  `json:"id" jsonschema:"Task ID"`
	Name      *string `json:"name,omitempty" jsonschema:"New name (omit to keep)"`
	StartDate string  `json:"start_date,omitempty" jsonschema:"YYYY-MM-DD; empty clears the date"`
	EndDate   string  `json:"end_date,omitempty" jsonschema:"YYYY-MM-DD; empty clears the date"`
}

type reorderTasksInput struct {
	MacrostageID string   `json:"macrostage_id" jsonschema:"Owning macro stage ID"`
	StageID      *string  `json:"stage_id,omitempty" jsonschema:"Owning stage ID for stage tasks; omit for direct tasks"`
	TaskIDs      []string `json:"task_ids" jsonschema:"Every sibling task ID in the desired order"`
}

type addWeeklyUpdateInput struct {
	TaskID  string `json:"task_id" jsonschema:"Task ID"`
	Content string `json:"content" jsonschema:"Progress note text"`
	Date    string `json:"date,omitempty" jsonschema:"YYYY-MM-DD"`
}

type editWeeklyUpdateInput struct {
	ID      string  `json:"id" jsonschema:"Weekly update ID"`
	Content *string `json:"content,omitempty" jsonschema:"New text (omit to keep)"`
	Date    string  `json:"date,omitempty" jsonschema:"YYYY-MM-DD; empty clears the date"`
}

type listWeeklyUpdatesInput struct {
	TaskID string `json:"task_id" jsonschema:"Task ID"`
}

type listWeeklyUpdatesOutput struct {
	Updates []task.WeeklyUpdate `json:"updates"`
}

// registerTools registers every tool on the server.
func registerTools(server *sdkmcp.Server, svc Services) {
	registerProjectTools(server, svc.Projects)
	registerMacroStageTools(server, svc.MacroStages)
	registerStageTools(server, svc.Stages)
	registerTaskTools(server, svc.Tasks)
}

func registerProjectTools(server *sdkmcp.Server, projects ProjectService) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input createProjectInput) (*sdkmcp.CallToolResult, project.Project, error) {
		p, err := projects.Create(ctx, project.CreateRequest(input))
		if err != nil {
			return nil, project.Project{}, MapError(err)
		}
		return nil, *p, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with their derived date ranges",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, listProjectsOutput, error) {
		summaries, err := projects.List(ctx)
		if err != nil {
			return nil, listProjectsOutput{}, MapError(err)
		}
		return nil, listProjectsOutput{Projects: summaries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project's metadata and derived date range",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input idInput) (*sdkmcp.CallToolResult, project.Project, error) {
		p, err := projects.Get(ctx, input.ID)
		if err != nil {
			return nil, project.Project{}, MapError(err)
		}
		return nil, *p, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project_tree",
		Description: "Get the full hierarchy of a project: macro stages, stages, tasks and weekly updates",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input idInput) (*sdkmcp.CallToolResult, project.Tree, error) {
		tree, err := projects.GetTree(ctx, input.ID)
		if err != nil {
			return nil, project.Tree{}, MapError(err)
		}
		return nil, *tree, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Update a project's metadata; omitted fields are kept",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input updateProjectInput) (*sdkmcp.CallToolResult, project.Project, error) {
		p, err := projects.Update(ctx, input.ID, project.UpdateRequest{
			Name:                     input.Name,
			Scope:                    input.Scope,
			Status:                   input.Status,
			GithubLink:               input.GithubLink,
			Coordinator:              input.Coordinator,
			AutomationSupport:        input.AutomationSupport,
			RequestingAgency:         input.RequestingAgency,
			InternalDepartment:       input.InternalDepartment,
			SponsoringManager:        input.SponsoringManager,
			SponsoringManagerContact: input.SponsoringManagerContact,
			TechnicalManager:         input.TechnicalManager,
			TechnicalManagerContact:  input.TechnicalManagerContact,
		})
		if err != nil {
			return nil, project.Project{}, MapError(err)
		}
		return nil, *p, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project and everything beneath it",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input idInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := projects.Delete(ctx, input.ID); err != nil {
			return nil, okOutput{}, MapError(err)
		}
		return nil, okOutput{OK: true}, nil
	})
}

func registerMacroStageTools(server *sdkmcp.Server, macrostages MacroStageService) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_macrostage",
		Description: "Create a macro stage at the end of a project's ordering",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input createMacroStageInput) (*sdkmcp.CallToolResult, macrostage.MacroStage, error) {
		ms, err := macrostages.Create(ctx, macrostage.CreateRequest{
			ProjectID: input.ProjectID,
			Name:      input.Name,
		})
		if err != nil {
			return nil, macrostage.MacroStage{}, MapError(err)
		}
		return nil, *ms, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_macrostage",
		Description: "Rename a macro stage",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input renameMacroStageInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := macrostages.Rename(ctx, input.ID, input.Name); err != nil {
			return nil, okOutput{}, MapError(err)
		}
		return nil, okOutput{OK: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_macrostage_structure",
		Description: "Switch a macro stage between 'stages' and 'tasks' structure; refused while children of the other kind exist",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input setStructureInput) (*sdkmcp.CallToolResult, okOutput, error) {
		structureType := macrostage.StructureType(input.StructureType)
		if !structureType.Valid() {
			return nil, okOutput{}, validationError("structure_type must be 'stages', 'tasks' or '', got %q", input.StructureType)
		}
		if err := macrostages.SetStructureType(ctx, input.ID, structureType); err != nil {
			return nil, okOutput{}, MapError(err)
		}
		return nil, okOutput{OK: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reorder_macrostages",
		Description: "Reorder a project's macro stages; the list must contain every macro stage ID exactly once",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input reorderMacroStagesInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := macrostages.Reorder(ctx, input.ProjectID, input.MacroStageIDs); err != nil {
			return nil, okOutput{}, MapError(err)
		}
		return nil, okOutput{OK: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_macrostage",
		Description: "Delete a macro stage and everything beneath it",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input idInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := macrostages.Delete(ctx, input.ID); err != nil {
			return nil, okOutput{}, MapError(err)
		}
		return nil, okOutput{OK: true}, nil
	})
}

func registerStageTools(server *sdkmcp.Server, stages StageService) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_stage",
		Description: "Create a stage inside a macro stage; commits the macro stage to 'stages' structure",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input createStageInput) (*sdkmcp.CallToolResult, stage.Stage, error) {
		st, err := stages.Create(ctx, stage.CreateRequest{
			MacrostageID: input.MacrostageID,
			Name:         input.Name,
			Kind:         stage.Kind(input.Kind),
			Scope:        input.Scope,
			Tools:        input.Tools,
			OtherTools:   input.OtherTools,
		})
		if err != nil {
			return nil, stage.Stage{}, MapError(err)
		}
		return nil, *st, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_stage",
		Description: "Update a stage's name, kind, scope and tools",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input updateStageInput) (*sdkmcp.CallToolResult, stage.Stage, error) {
		st, err := stages.Update(ctx, stage.UpdateRequest{
			ID:         input.ID,
			Name:       input.Name,
			Kind:       stage.Kind(input.Kind),
			Scope:      input.Scope,
			Tools:      input.Tools,
			OtherTools: input.OtherTools,
		})
		if err != nil {
			return nil, stage.Stage{}, MapError(err)
		}
		return nil, *st, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reorder_stages",
		Description: "Reorder a macro stage's stages; the list must contain every stage ID exactly once",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input reorderStagesInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := stages.Reorder(ctx, input.MacrostageID, input.StageIDs); err != nil {
			return nil, okOutput{}, MapError(err)
		}
		return nil, okOutput{OK: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_stage",
		Description: "Delete a stage and its tasks",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input idInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := stages.Delete(ctx, input.ID); err != nil {
			return nil, okOutput{}, MapError(err)
		}
		return nil, okOutput{OK: true}, nil
	})
}

func registerTaskTools(server *sdkmcp.Server, tasks TaskService) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_task",
		Description: "Create a task under a stage or directly under a macro stage; direct attachment commits the macro stage to 'tasks' structure",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input createTaskInput) (*sdkmcp.CallToolResult, task.Task, error) {
		start, err := parseDate("start_date", input.StartDate)
		if err != nil {
			return nil, task.Task{}, err
		}
		end, err := parseDate("end_date", input.EndDate)
		if err != nil {
			return nil, task.Task{}, err
		}
		t, err := tasks.Create(ctx, task.CreateRequest{
			MacrostageID: input.MacrostageID,
			StageID:      input.StageID,
			Name:         input.Name,
			StartDate:    start,
			EndDate:      end,
		})
		if err != nil {
			return nil, task.Task{}, MapError(err)
		}
		return nil, *t, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_task",
		Description: "Update a task's name and dates; dates are overwritten, an empty date clears it",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input updateTaskInput) (*sdkmcp.CallToolResult, task.Task, error) {
		start, err := parseDate("start_date", input.StartDate)
		if err != nil {
			return nil, task.Task{}, err
		}
		end, err := parseDate("end_date", input.EndDate)
		if err != nil {
			return nil, task.Task{}, err
		}
		t, err := tasks.Update(ctx, task.UpdateRequest{
			ID:        input.ID,
			Name:      input.Name,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			return nil, task.Task{}, MapError(err)
		}
		return nil, *t, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reorder_tasks",
		Description: "Reorder sibling tasks under a stage or directly under a macro stage; the list must contain every sibling ID exactly once",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input reorderTasksInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := tasks.Reorder(ctx, input.MacrostageID, input.StageID, input.TaskIDs); err != nil {
			return nil, okOutput{}, MapError(err)
		}
		return nil, okOutput{OK: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task and its weekly updates",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input idInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := tasks.Delete(ctx, input.ID); err != nil {
			return nil, okOutput{}, MapError(err)
		}
		return nil, okOutput{OK: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_weekly_update",
		Description: "Add a weekly progress note to a task",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input addWeeklyUpdateInput) (*sdkmcp.CallToolResult, task.WeeklyUpdate, error) {
		date, err := parseDate("date", input.Date)
		if err != nil {
			return nil, task.WeeklyUpdate{}, err
		}
		u, err := tasks.AddUpdate(ctx, task.AddUpdateRequest{
			TaskID:  input.TaskID,
			Content: input.Content,
			Date:    date,
		})
		if err != nil {
			return nil, task.WeeklyUpdate{}, MapError(err)
		}
		return nil, *u, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_weekly_update",
		Description: "Edit a weekly update's text and date",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input editWeeklyUpdateInput) (*sdkmcp.CallToolResult, task.WeeklyUpdate, error) {
		date, err := parseDate("date", input.Date)
		if err != nil {
			return nil, task.WeeklyUpdate{}, err
		}
		u, err := tasks.EditUpdate(ctx, task.EditUpdateRequest{
			ID:      input.ID,
			Content: input.Content,
			Date:    date,
		})
		if err != nil {
			return nil, task.WeeklyUpdate{}, MapError(err)
		}
		return nil, *u, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_weekly_update",
		Description: "Delete a weekly update",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input idInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := tasks.RemoveUpdate(ctx, input.ID); err != nil {
			return nil, okOutput{}, MapError(err)
		}
		return nil, okOutput{OK: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_weekly_updates",
		Description: "List a task's weekly updates, newest date first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input listWeeklyUpdatesInput) (*sdkmcp.CallToolResult, listWeeklyUpdatesOutput, error) {
		updates, err := tasks.ListUpdates(ctx, input.TaskID)
		if err != nil {
			return nil, listWeeklyUpdatesOutput{}, MapError(err)
		}
		if updates == nil {
			// The output schema declares "updates" as an array; a nil slice
			// would serialize as null and fail the SDK's output validation.
			updates = []task.WeeklyUpdate{}
		}
		return nil, listWeeklyUpdatesOutput{Updates: updates}, nil
	})
}
