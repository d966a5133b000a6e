package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/task"
	"github.com/rpggio/lattice/internal/repository"
)

// Service handles project operations.
type Service struct {
	store       repository.Store
	projects    Repository
	macrostages MacroStageRepository
	stages      StageRepository
	tasks       TaskRepository
	updates     UpdateRepository
	logger      *slog.Logger
}

// NewService creates a new project service.
func NewService(
	store repository.Store,
	projects Repository,
	macrostages MacroStageRepository,
	stages StageRepository,
	tasks TaskRepository,
	updates UpdateRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:       store,
		projects:    projects,
		macrostages: macrostages,
		stages:      stages,
		tasks:       tasks,
		updates:     updates,
		logger:      logger,
	}
}

// CreateRequest defines project creation inputs. Only the name is required.
type CreateRequest struct {
	Name                     string
	Scope                    string
	Status                   string
	GithubLink               string
	Coordinator              string
	AutomationSupport        string
	RequestingAgency         string
	InternalDepartment       string
	SponsoringManager        string
	SponsoringManagerContact string
	TechnicalManager         string
	TechnicalManagerContact  string
}

// Create creates a project with a null derived date range.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	p := &Project{
		ID:                       uuid.NewString(),
		Name:                     req.Name,
		Scope:                    req.Scope,
		Status:                   req.Status,
		GithubLink:               req.GithubLink,
		Coordinator:              req.Coordinator,
		AutomationSupport:        req.AutomationSupport,
		RequestingAgency:         req.RequestingAgency,
		InternalDepartment:       req.InternalDepartment,
		SponsoringManager:        req.SponsoringManager,
		SponsoringManagerContact: req.SponsoringManagerContact,
		TechnicalManager:         req.TechnicalManager,
		TechnicalManagerContact:  req.TechnicalManagerContact,
		CreatedAt:                time.Now(),
	}

	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		return s.projects.Create(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	s.logger.Info("project created", "project_id", p.ID, "name", p.Name)
	return p, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

// List returns summaries of all projects.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	summaries, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return summaries, nil
}

// UpdateRequest defines partial project metadata changes. Nil fields are
// left untouched; the derived date range cannot be set here.
type UpdateRequest struct {
	Name                     *string
	Scope                    *string
	Status                   *string
	GithubLink               *string
	Coordinator              *string
	AutomationSupport        *string
	RequestingAgency         *string
	InternalDepartment       *string
	SponsoringManager        *string
	SponsoringManagerContact *string
	TechnicalManager         *string
	TechnicalManagerContact  *string
}

// Update applies the provided metadata fields to a project.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Project, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, ErrInvalidInput
	}

	var p *Project
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.projects.Get(ctx, id)
		if err != nil {
			return err
		}
		applyString(&p.Name, req.Name)
		applyString(&p.Scope, req.Scope)
		applyString(&p.Status, req.Status)
		applyString(&p.GithubLink, req.GithubLink)
		applyString(&p.Coordinator, req.Coordinator)
		applyString(&p.AutomationSupport, req.AutomationSupport)
		applyString(&p.RequestingAgency, req.RequestingAgency)
		applyString(&p.InternalDepartment, req.InternalDepartment)
		applyString(&p.SponsoringManager, req.SponsoringManager)
		applyString(&p.SponsoringManagerContact, req.SponsoringManagerContact)
		applyString(&p.TechnicalManager, req.TechnicalManager)
		applyString(&p.TechnicalManagerContact, req.TechnicalManagerContact)
		return s.projects.Update(ctx, p)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a project and everything beneath it.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		return s.projects.Delete(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProjectNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}

// GetTree returns the full nested read of a project. Macro stages, stages
// and tasks come back in position order; weekly updates newest first.
func (s *Service) GetTree(ctx context.Context, id string) (*Tree, error) {
	var tree *Tree
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		p, err := s.projects.Get(ctx, id)
		if err != nil {
			return err
		}

		macrostages, err := s.macrostages.ListByProject(ctx, id)
		if err != nil {
			return fmt.Errorf("listing macrostages: %w", err)
		}

		nodes := make([]MacroStageNode, len(macrostages))
		for i, ms := range macrostages {
			node := MacroStageNode{MacroStage: ms}
			switch ms.StructureType {
			case macrostage.StructureStages:
				stages, err := s.stages.ListByMacroStage(ctx, ms.ID)
				if err != nil {
					return fmt.Errorf("listing stages: %w", err)
				}
				node.Stages = make([]StageNode, len(stages))
				for j, st := range stages {
					tasks, err := s.taskNodes(ctx, s.tasks.ListByStage, st.ID)
					if err != nil {
						return err
					}
					node.Stages[j] = StageNode{Stage: st, Tasks: tasks}
				}
			case macrostage.StructureTasks:
				tasks, err := s.taskNodes(ctx, s.tasks.ListDirect, ms.ID)
				if err != nil {
					return err
				}
				node.Tasks = tasks
			}
			nodes[i] = node
		}

		tree = &Tree{Project: *p, MacroStages: nodes}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return tree, nil
}

func (s *Service) taskNodes(ctx context.Context, list func(context.Context, string) ([]task.Task, error), parentID string) ([]TaskNode, error) {
	tasks, err := list(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	nodes := make([]TaskNode, len(tasks))
	for i, t := range tasks {
		updates, err := s.updates.ListByTask(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("listing updates: %w", err)
		}
		nodes[i] = TaskNode{Task: t, Updates: updates}
	}
	return nodes, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
