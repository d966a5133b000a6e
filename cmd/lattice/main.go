package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/project"
	"github.com/rpggio/lattice/internal/domain/schedule"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
	"github.com/rpggio/lattice/internal/sqlite"
)

const dateLayout = "2006-01-02"

var rootCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Lattice CLI",
	Long: `Lattice tracks project schedules as Projects -> Macro stages -> Stages -> Tasks.
Tasks carry the only user-entered dates; every level above derives its range
as earliest start / latest end of its children. A macro stage holds either
stages or directly attached tasks, never both.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("LATTICE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("db", "lattice.db", "database path")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("db-path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(macroStageCmd())
	rootCmd.AddCommand(stageCmd())
	rootCmd.AddCommand(taskCmd())
	rootCmd.AddCommand(noteCmd())
}

// services bundles everything a command needs.
type services struct {
	Projects    *project.Service
	MacroStages *macrostage.Service
	Stages      *stage.Service
	Tasks       *task.Service
}

func withServices(ctx context.Context, fn func(ctx context.Context, svc services) error) error {
	db, err := sqlite.New(viper.GetString("db-path"))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	projectRepo := sqlite.NewProjectRepository(db)
	macroStageRepo := sqlite.NewMacroStageRepository(db)
	stageRepo := sqlite.NewStageRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	updateRepo := sqlite.NewUpdateRepository(db)
	recalc := schedule.NewRecalculator(projectRepo, macroStageRepo, stageRepo, taskRepo, logger)

	return fn(ctx, services{
		Projects:    project.NewService(db, projectRepo, macroStageRepo, stageRepo, taskRepo, updateRepo, logger),
		MacroStages: macrostage.NewService(db, macroStageRepo, projectRepo, stageRepo, taskRepo, recalc, logger),
		Stages:      stage.NewService(db, stageRepo, macroStageRepo, recalc, logger),
		Tasks:       task.NewService(db, taskRepo, updateRepo, stageRepo, macroStageRepo, recalc, logger),
	})
}

func projectCmd() *cobra.Command {
	prj := &cobra.Command{Use: "project", Short: "Manage projects"}
	prj.AddCommand(projectListCmd())
	prj.AddCommand(projectCreateCmd())
	prj.AddCommand(projectShowCmd())
	prj.AddCommand(projectTreeCmd())
	prj.AddCommand(projectUpdateCmd())
	prj.AddCommand(projectDeleteCmd())
	return prj
}

func projectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				items, err := svc.Projects.List(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Status", "Start", "End", "Macro stages"})
				for _, p := range items {
					tw.AppendRow(table.Row{p.ID, p.Name, p.Status, formatDate(p.StartDate), formatDate(p.EndDate), p.MacroStageCount})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func projectCreateCmd() *cobra.Command {
	var req project.CreateRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				p, err := svc.Projects.Create(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(p)
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "project name")
	cmd.Flags().StringVar(&req.Scope, "scope", "", "project scope")
	cmd.Flags().StringVar(&req.Status, "status", "", "status label")
	cmd.Flags().StringVar(&req.GithubLink, "github-link", "", "repository link")
	cmd.Flags().StringVar(&req.Coordinator, "coordinator", "", "coordinator")
	cmd.Flags().StringVar(&req.AutomationSupport, "automation-support", "", "automation support contact")
	cmd.Flags().StringVar(&req.RequestingAgency, "requesting-agency", "", "requesting agency")
	cmd.Flags().StringVar(&req.InternalDepartment, "internal-department", "", "internal department")
	cmd.Flags().StringVar(&req.SponsoringManager, "sponsoring-manager", "", "sponsoring manager")
	cmd.Flags().StringVar(&req.SponsoringManagerContact, "sponsoring-manager-contact", "", "sponsoring manager contact")
	cmd.Flags().StringVar(&req.TechnicalManager, "technical-manager", "", "technical manager")
	cmd.Flags().StringVar(&req.TechnicalManagerContact, "technical-manager-contact", "", "technical manager contact")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func projectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				p, err := svc.Projects.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(p)
			})
		},
	}
}

func projectTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <project-id>",
		Short: "Show the full hierarchy of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				tree, err := svc.Projects.GetTree(ctx, args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(tree)
				}
				renderTree(tree)
				return nil
			})
		},
	}
}

func projectUpdateCmd() *cobra.Command {
	flags := map[string]*string{}
	fields := []string{
		"name", "scope", "status", "github-link", "coordinator",
		"automation-support", "requesting-agency", "internal-department",
		"sponsoring-manager", "sponsoring-manager-contact",
		"technical-manager", "technical-manager-contact",
	}
	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Update project metadata; omitted flags are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := project.UpdateRequest{}
			set := func(dst **string, flag string) {
				if cmd.Flags().Changed(flag) {
					*dst = flags[flag]
				}
			}
			set(&req.Name, "name")
			set(&req.Scope, "scope")
			set(&req.Status, "status")
			set(&req.GithubLink, "github-link")
			set(&req.Coordinator, "coordinator")
			set(&req.AutomationSupport, "automation-support")
			set(&req.RequestingAgency, "requesting-agency")
			set(&req.InternalDepartment, "internal-department")
			set(&req.SponsoringManager, "sponsoring-manager")
			set(&req.SponsoringManagerContact, "sponsoring-manager-contact")
			set(&req.TechnicalManager, "technical-manager")
			set(&req.TechnicalManagerContact, "technical-manager-contact")
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				p, err := svc.Projects.Update(ctx, args[0], req)
				if err != nil {
					return err
				}
				return printJSON(p)
			})
		},
	}
	for _, f := range fields {
		var v string
		flags[f] = &v
		cmd.Flags().StringVar(&v, f, "", f)
	}
	return cmd
}

func projectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and everything beneath it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				return svc.Projects.Delete(ctx, args[0])
			})
		},
	}
}

func macroStageCmd() *cobra.Command {
	ms := &cobra.Command{Use: "macrostage", Short: "Manage macro stages"}
	ms.AddCommand(macroStageAddCmd())
	ms.AddCommand(macroStageRenameCmd())
	ms.AddCommand(macroStageStructureCmd())
	ms.AddCommand(macroStageReorderCmd())
	ms.AddCommand(macroStageDeleteCmd())
	return ms
}

func macroStageAddCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a macro stage to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				ms, err := svc.MacroStages.Create(ctx, macrostage.CreateRequest{
					ProjectID: args[0],
					Name:      name,
				})
				if err != nil {
					return err
				}
				return printJSON(ms)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "macro stage name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func macroStageRenameCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "rename <macrostage-id>",
		Short: "Rename a macro stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				return svc.MacroStages.Rename(ctx, args[0], name)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func macroStageStructureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-structure <macrostage-id> <stages|tasks|none>",
		Short: "Set how a macro stage organizes its children",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requested := args[1]
			if requested == "none" {
				requested = ""
			}
			structureType := macrostage.StructureType(requested)
			if !structureType.Valid() {
				return fmt.Errorf("structure must be stages, tasks or none")
			}
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				return svc.MacroStages.SetStructureType(ctx, args[0], structureType)
			})
		},
	}
	return cmd
}

func macroStageReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <project-id> <macrostage-id>...",
		Short: "Reorder macro stages; list every ID exactly once",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				return svc.MacroStages.Reorder(ctx, args[0], args[1:])
			})
		},
	}
}

func macroStageDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <macrostage-id>",
		Short: "Delete a macro stage and everything beneath it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				return svc.MacroStages.Delete(ctx, args[0])
			})
		},
	}
}

func stageCmd() *cobra.Command {
	st := &cobra.Command{Use: "stage", Short: "Manage stages"}
	st.AddCommand(stageAddCmd())
	st.AddCommand(stageUpdateCmd())
	st.AddCommand(stageReorderCmd())
	st.AddCommand(stageDeleteCmd())
	return st
}

func stageAddCmd() *cobra.Command {
	var req stage.CreateRequest
	var kind string
	cmd := &cobra.Command{
		Use:   "add <macrostage-id>",
		Short: "Add a stage; commits the macro stage to stages structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.MacrostageID = args[0]
			req.Kind = stage.Kind(kind)
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				st, err := svc.Stages.Create(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(st)
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "stage name")
	cmd.Flags().StringVar(&kind, "kind", "", "robot, system or not_applicable")
	cmd.Flags().StringVar(&req.Scope, "scope", "", "stage scope (robot/system)")
	cmd.Flags().StringSliceVar(&req.Tools, "tool", nil, "tool (repeatable, robot/system)")
	cmd.Flags().StringVar(&req.OtherTools, "other-tools", "", "free-form extra tools")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func stageUpdateCmd() *cobra.Command {
	var name, kind, scope, otherTools string
	var tools []string
	cmd := &cobra.Command{
		Use:   "update <stage-id>",
		Short: "Update a stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := stage.UpdateRequest{
				ID:         args[0],
				Kind:       stage.Kind(kind),
				Scope:      scope,
				Tools:      tools,
				OtherTools: otherTools,
			}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				st, err := svc.Stages.Update(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(st)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&kind, "kind", "", "robot, system or not_applicable")
	cmd.Flags().StringVar(&scope, "scope", "", "stage scope")
	cmd.Flags().StringSliceVar(&tools, "tool", nil, "tool (repeatable)")
	cmd.Flags().StringVar(&otherTools, "other-tools", "", "free-form extra tools")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func stageReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <macrostage-id> <stage-id>...",
		Short: "Reorder stages; list every ID exactly once",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				return svc.Stages.Reorder(ctx, args[0], args[1:])
			})
		},
	}
}

func stageDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <stage-id>",
		Short: "Delete a stage and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				return svc.Stages.Delete(ctx, args[0])
			})
		},
	}
}

func taskCmd() *cobra.Command {
	t := &cobra.Command{Use: "task", Short: "Manage tasks"}
	t.AddCommand(taskAddCmd())
	t.AddCommand(taskUpdateCmd())
	t.AddCommand(taskReorderCmd())
	t.AddCommand(taskDeleteCmd())
	return t
}

func taskAddCmd() *cobra.Command {
	var name, stageID, start, end string
	cmd := &cobra.Command{
		Use:   "add <macrostage-id>",
		Short: "Add a task under a stage or directly under a macro stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag("end", end)
			if err != nil {
				return err
			}
			req := task.CreateRequest{
				MacrostageID: args[0],
				Name:         name,
				StartDate:    startDate,
				EndDate:      endDate,
			}
			if stageID != "" {
				req.StageID = &stageID
			}
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				t, err := svc.Tasks.Create(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(t)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "task name")
	cmd.Flags().StringVar(&stageID, "stage", "", "stage id; omit to attach directly")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func taskUpdateCmd() *cobra.Command {
	var name, start, end string
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task; dates are overwritten, empty clears them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag("end", end)
			if err != nil {
				return err
			}
			req := task.UpdateRequest{
				ID:        args[0],
				StartDate: startDate,
				EndDate:   endDate,
			}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				t, err := svc.Tasks.Update(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(t)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD")
	return cmd
}

func taskReorderCmd() *cobra.Command {
	var stageID string
	cmd := &cobra.Command{
		Use:   "reorder <macrostage-id> <task-id>...",
		Short: "Reorder sibling tasks; list every ID exactly once",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sid *string
			if stageID != "" {
				sid = &stageID
			}
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				return svc.Tasks.Reorder(ctx, args[0], sid, args[1:])
			})
		},
	}
	cmd.Flags().StringVar(&stageID, "stage", "", "stage id for stage-owned siblings")
	return cmd
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task and its weekly updates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				return svc.Tasks.Delete(ctx, args[0])
			})
		},
	}
}

func noteCmd() *cobra.Command {
	n := &cobra.Command{Use: "note", Short: "Manage weekly updates"}
	n.AddCommand(noteAddCmd())
	n.AddCommand(noteEditCmd())
	n.AddCommand(noteDeleteCmd())
	n.AddCommand(noteListCmd())
	return n
}

func noteAddCmd() *cobra.Command {
	var content, date string
	cmd := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Add a weekly update to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				u, err := svc.Tasks.AddUpdate(ctx, task.AddUpdateRequest{
					TaskID:  args[0],
					Content: content,
					Date:    d,
				})
				if err != nil {
					return err
				}
				return printJSON(u)
			})
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "note text")
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func noteEditCmd() *cobra.Command {
	var content, date string
	cmd := &cobra.Command{
		Use:   "edit <update-id>",
		Short: "Edit a weekly update",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}
			req := task.EditUpdateRequest{ID: args[0], Date: d}
			if cmd.Flags().Changed("content") {
				req.Content = &content
			}
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				u, err := svc.Tasks.EditUpdate(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(u)
			})
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "new text")
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD; empty clears it")
	return cmd
}

func noteDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <update-id>",
		Short: "Delete a weekly update",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				return svc.Tasks.RemoveUpdate(ctx, args[0])
			})
		},
	}
}

func noteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <task-id>",
		Short: "List a task's weekly updates, newest date first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, svc services) error {
				updates, err := svc.Tasks.ListUpdates(ctx, args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(updates)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Date", "Content"})
				for _, u := range updates {
					tw.AppendRow(table.Row{u.ID, formatDate(u.Date), u.Content})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func renderTree(tree *project.Tree) {
	p := tree.Project
	fmt.Printf("%s [%s]  %s\n", p.Name, p.ID, formatRange(p.StartDate, p.EndDate))
	for _, msNode := range tree.MacroStages {
		ms := msNode.MacroStage
		fmt.Printf("  %s [%s]  %s\n", ms.Name, ms.ID, formatRange(ms.StartDate, ms.EndDate))
		for _, stNode := range msNode.Stages {
			st := stNode.Stage
			fmt.Printf("    %s (%s) [%s]  %s\n", st.Name, st.Kind, st.ID, formatRange(st.StartDate, st.EndDate))
			for _, tNode := range stNode.Tasks {
				printTask(tNode, "      ")
			}
		}
		for _, tNode := range msNode.Tasks {
			printTask(tNode, "    ")
		}
	}
}

func printTask(node project.TaskNode, indent string) {
	t := node.Task
	fmt.Printf("%s%s [%s]  %s\n", indent, t.Name, t.ID, formatRange(t.StartDate, t.EndDate))
	for _, u := range node.Updates {
		fmt.Printf("%s  - %s %s\n", indent, formatDate(u.Date), u.Content)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func parseDateFlag(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("--%s must be YYYY-MM-DD, got %q", flag, value)
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatRange(start, end *time.Time) string {
	if start == nil && end == nil {
		return ""
	}
	return fmt.Sprintf("%s .. %s", formatDate(start), formatDate(end))
}
