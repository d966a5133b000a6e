package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/project"
	"github.com/rpggio/lattice/internal/domain/schedule"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
	"github.com/rpggio/lattice/internal/sqlite"
)

// newTestSession wires the full stack behind an in-memory MCP transport and
// returns a connected client session.
func newTestSession(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	projectRepo := sqlite.NewProjectRepository(db)
	macroStageRepo := sqlite.NewMacroStageRepository(db)
	stageRepo := sqlite.NewStageRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	updateRepo := sqlite.NewUpdateRepository(db)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recalc := schedule.NewRecalculator(projectRepo, macroStageRepo, stageRepo, taskRepo, logger)

	server := NewServer(Config{
		Services: Services{
			Projects:    project.NewService(db, projectRepo, macroStageRepo, stageRepo, taskRepo, updateRepo, logger),
			MacroStages: macrostage.NewService(db, macroStageRepo, projectRepo, stageRepo, taskRepo, recalc, logger),
			Stages:      stage.NewService(db, stageRepo, macroStageRepo, recalc, logger),
			Tasks:       task.NewService(db, taskRepo, updateRepo, stageRepo, macroStageRepo, recalc, logger),
		},
		Logger: logger,
	})

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientSession.Close() })

	return clientSession
}

func callTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	result, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "calling %s", name)
	return result
}

func decodeResult(t *testing.T, result *sdkmcp.CallToolResult, out any) {
	t.Helper()
	require.False(t, result.IsError, "tool error: %v", result.Content)
	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func errorText(result *sdkmcp.CallToolResult) string {
	var parts []string
	for _, c := range result.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestTools_ProjectLifecycle(t *testing.T) {
	cs := newTestSession(t)

	var proj project.Project
	decodeResult(t, callTool(t, cs, "create_project", map[string]any{
		"name":   "Invoice automation",
		"status": "active",
	}), &proj)
	require.NotEmpty(t, proj.ID)

	var listed listProjectsOutput
	decodeResult(t, callTool(t, cs, "list_projects", nil), &listed)
	require.Len(t, listed.Projects, 1)
	require.Equal(t, "Invoice automation", listed.Projects[0].Name)

	var updated project.Project
	decodeResult(t, callTool(t, cs, "update_project", map[string]any{
		"id":     proj.ID,
		"status": "on hold",
	}), &updated)
	require.Equal(t, "on hold", updated.Status)
	require.Equal(t, "Invoice automation", updated.Name)

	var ok okOutput
	decodeResult(t, callTool(t, cs, "delete_project", map[string]any{"id": proj.ID}), &ok)
	require.True(t, ok.OK)

	result := callTool(t, cs, "get_project", map[string]any{"id": proj.ID})
	require.True(t, result.IsError)
	require.Contains(t, errorText(result), "NOT_FOUND")
}

func TestTools_HierarchyAndDates(t *testing.T) {
	cs := newTestSession(t)

	var proj project.Project
	decodeResult(t, callTool(t, cs, "create_project", map[string]any{"name": "Invoice automation"}), &proj)

	var ms macrostage.MacroStage
	decodeResult(t, callTool(t, cs, "create_macrostage", map[string]any{
		"project_id": proj.ID,
		"name":       "Build",
	}), &ms)

	var st stage.Stage
	decodeResult(t, callTool(t, cs, "create_stage", map[string]any{
		"macrostage_id": ms.ID,
		"name":          "Extraction",
		"kind":          "robot",
		"scope":         "Pull invoices from the shared inbox",
		"tools":         []string{"UiPath"},
	}), &st)

	var tk task.Task
	decodeResult(t, callTool(t, cs, "create_task", map[string]any{
		"macrostage_id": ms.ID,
		"stage_id":      st.ID,
		"name":          "Write parser",
		"start_date":    "2026-04-01",
		"end_date":      "2026-04-10",
	}), &tk)

	var tree project.Tree
	decodeResult(t, callTool(t, cs, "get_project_tree", map[string]any{"id": proj.ID}), &tree)
	require.Len(t, tree.MacroStages, 1)
	require.Len(t, tree.MacroStages[0].Stages, 1)
	require.Len(t, tree.MacroStages[0].Stages[0].Tasks, 1)
	require.NotNil(t, tree.Project.StartDate)
	require.Equal(t, "2026-04-01", tree.Project.StartDate.Format("2006-01-02"))
	require.Equal(t, "2026-04-10", tree.Project.EndDate.Format("2006-01-02"))

	// Direct attachment is refused while the macro stage holds stages.
	result := callTool(t, cs, "create_task", map[string]any{
		"macrostage_id": ms.ID,
		"name":          "Direct",
	})
	require.True(t, result.IsError)
	require.Contains(t, errorText(result), "MODE_CONFLICT")
}

func TestTools_ValidationErrors(t *testing.T) {
	cs := newTestSession(t)

	var proj project.Project
	decodeResult(t, callTool(t, cs, "create_project", map[string]any{"name": "Invoice automation"}), &proj)
	var ms macrostage.MacroStage
	decodeResult(t, callTool(t, cs, "create_macrostage", map[string]any{
		"project_id": proj.ID,
		"name":       "Build",
	}), &ms)

	result := callTool(t, cs, "create_task", map[string]any{
		"macrostage_id": ms.ID,
		"name":          "Bad date",
		"start_date":    "04/01/2026",
	})
	require.True(t, result.IsError)
	require.Contains(t, errorText(result), "VALIDATION_ERROR")

	result = callTool(t, cs, "set_macrostage_structure", map[string]any{
		"id":             ms.ID,
		"structure_type": "phases",
	})
	require.True(t, result.IsError)
	require.Contains(t, errorText(result), "VALIDATION_ERROR")

	result = callTool(t, cs, "reorder_macrostages", map[string]any{
		"project_id":     proj.ID,
		"macrostage_ids": []string{"not-a-sibling"},
	})
	require.True(t, result.IsError)
	require.Contains(t, errorText(result), "VALIDATION_ERROR")
}

func TestTools_WeeklyUpdates(t *testing.T) {
	cs := newTestSession(t)

	var proj project.Project
	decodeResult(t, callTool(t, cs, "create_project", map[string]any{"name": "Invoice automation"}), &proj)
	var ms macrostage.MacroStage
	decodeResult(t, callTool(t, cs, "create_macrostage", map[string]any{
		"project_id": proj.ID,
		"name":       "Build",
	}), &ms)
	var tk task.Task
	decodeResult(t, callTool(t, cs, "create_task", map[string]any{
		"macrostage_id": ms.ID,
		"name":          "Write parser",
	}), &tk)

	var note task.WeeklyUpdate
	decodeResult(t, callTool(t, cs, "add_weekly_update", map[string]any{
		"task_id": tk.ID,
		"content": "parser handling PDFs",
		"date":    "2026-04-06",
	}), &note)
	require.NotEmpty(t, note.ID)

	var edited task.WeeklyUpdate
	decodeResult(t, callTool(t, cs, "edit_weekly_update", map[string]any{
		"id":      note.ID,
		"content": "parser handling PDFs and scans",
	}), &edited)
	require.Equal(t, "parser handling PDFs and scans", edited.Content)

	var listed listWeeklyUpdatesOutput
	decodeResult(t, callTool(t, cs, "list_weekly_updates", map[string]any{"task_id": tk.ID}), &listed)
	require.Len(t, listed.Updates, 1)

	var ok okOutput
	decodeResult(t, callTool(t, cs, "delete_weekly_update", map[string]any{"id": note.ID}), &ok)
	require.True(t, ok.OK)

	decodeResult(t, callTool(t, cs, "list_weekly_updates", map[string]any{"task_id": tk.ID}), &listed)
	require.Empty(t, listed.Updates)
}
