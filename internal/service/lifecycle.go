package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"adflow.app/tracker/common/id"
	"adflow.app/tracker/common/logger"
	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/queue"
	"adflow.app/tracker/internal/store"
)

type ChangeStatusParams struct {
	ProjectID int64               `json:"project_id" validate:"required"`
	Status    model.ProjectStatus `json:"status" validate:"required"`
	Comment   *string             `json:"comment" validate:"omitempty,max=500"`
}

type ApproveParams struct {
	ProjectID int64   `json:"project_id" validate:"required"`
	Comment   *string `json:"comment" validate:"omitempty,max=500"`
}

type ApproveResult struct {
	Project *model.Project
	// Template is set when approval promoted a template-creation project.
	Template *model.Template
}

type RequestRevisionParams struct {
	ProjectID int64  `json:"project_id" validate:"required"`
	Comment   string `json:"comment" validate:"required,max=500"`
}

type CreativeInput struct {
	Name         string  `json:"name" validate:"required,max=200"`
	URL          string  `json:"url" validate:"required,url"`
	ThumbnailURL *string `json:"thumbnail_url" validate:"omitempty,url"`
	Format       string  `json:"format" validate:"required,min=2,max=10"`
	Width        *int32  `json:"width" validate:"omitempty,min=1,max=10000"`
	Height       *int32  `json:"height" validate:"omitempty,min=1,max=10000"`
	Lista        *string `json:"lista" validate:"omitempty,max=100"`
	Modelo       *string `json:"modelo" validate:"omitempty,max=100"`
}

type IngestCreativesParams struct {
	ProjectID int64 `json:"project_id" validate:"required"`
	// IdempotencyKey makes a retried batch a no-op that returns the creatives
	// of the first delivery. Without it every call inserts.
	IdempotencyKey *string         `json:"idempotency_key" validate:"omitempty,min=1,max=128"`
	Items          []CreativeInput `json:"items" validate:"required,min=1,max=100,dive"`
}

type IngestResult struct {
	Project   *model.Project
	Creatives []model.Creative
	// Duplicated reports a replayed idempotency key; nothing was written.
	Duplicated bool
}

type CreateBrandParams struct {
	OrganizationID int64   `json:"organization_id" validate:"required"`
	Name           string  `json:"name" validate:"required,max=100"`
	LogoURL        *string `json:"logo_url" validate:"omitempty,url"`
	ToneOfVoice    *string `json:"tone_of_voice" validate:"omitempty,max=1000"`
}

type CreateTemplateParams struct {
	BrandID        int64                 `json:"brand_id" validate:"required"`
	Name           string                `json:"name" validate:"required,max=200"`
	Description    *string               `json:"description" validate:"omitempty,max=1000"`
	ImageURL       string                `json:"image_url" validate:"required,max=2048"`
	Category       *string               `json:"category" validate:"omitempty,max=100"`
	Platforms      []string              `json:"platforms" validate:"max=20,dive,required,max=50"`
	Formats        []string              `json:"formats" validate:"max=20,dive,required,max=50"`
	TemplateStatus *model.TemplateStatus `json:"template_status" validate:"omitempty,oneof=pending approved rejected"`
	IsActive       *bool                 `json:"is_active"`
}

type CreateProjectParams struct {
	BrandID            int64             `json:"brand_id" validate:"required"`
	Name               string            `json:"name" validate:"required,max=200"`
	ProjectType        model.ProjectType `json:"project_type" validate:"omitempty,oneof=standard template_creation"`
	EstimatedCreatives int32             `json:"estimated_creatives" validate:"min=0,max=10000"`
	TemplateID         *int64            `json:"template_id"`
}

type AddCommentParams struct {
	ProjectID int64  `json:"project_id" validate:"required"`
	Content   string `json:"content" validate:"required,max=1000"`
}

// LifecycleService runs every project mutation as one transaction:
// load, authorize, validate, mutate, promote, comment, audit. A rejected
// request writes nothing, and every accepted one writes exactly one activity
// log row.
type LifecycleService interface {
	ChangeStatus(ctx context.Context, caller model.Caller, params ChangeStatusParams) (*model.Project, error)
	Approve(ctx context.Context, caller model.Caller, params ApproveParams) (*ApproveResult, error)
	RequestRevision(ctx context.Context, caller model.Caller, params RequestRevisionParams) (*model.Project, error)
	IngestCreatives(ctx context.Context, caller model.Caller, params IngestCreativesParams) (*IngestResult, error)
	DeleteCreative(ctx context.Context, caller model.Caller, creativeID int64) (*model.Project, error)
	CreateProject(ctx context.Context, caller model.Caller, params CreateProjectParams) (*model.Project, error)
	AddComment(ctx context.Context, caller model.Caller, params AddCommentParams) (*model.Comment, error)
	CreateBrand(ctx context.Context, caller model.Caller, params CreateBrandParams) (*model.Brand, error)
	CreateTemplate(ctx context.Context, caller model.Caller, params CreateTemplateParams) (*model.Template, error)
}

type lifecycleService struct {
	txRunner TxRunner
	quota    QuotaEnforcer
	promoter TemplatePromoter
	activity ActivityRecorder
	events   queue.Producer
}

func NewLifecycleService(txRunner TxRunner, quota QuotaEnforcer, promoter TemplatePromoter, activity ActivityRecorder, events queue.Producer) LifecycleService {
	if events == nil {
		events = queue.NewNopProducer()
	}
	return &lifecycleService{
		txRunner: txRunner,
		quota:    quota,
		promoter: promoter,
		activity: activity,
		events:   events,
	}
}

func (s *lifecycleService) ChangeStatus(ctx context.Context, caller model.Caller, params ChangeStatusParams) (*model.Project, error) {
	ctx, sc := startOperation(ctx, "change_status", caller, logger.LogFields{ProjectID: &params.ProjectID})
	defer sc.End()

	params.Comment = trimOptional(params.Comment)
	if err := validateParams(params); err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	var (
		project *model.Project
		from    model.ProjectStatus
		tmpl    *model.Template
		entry   *model.ActivityLog
	)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		tmpl = nil
		p, err := lockAccessibleProject(ctx, sp, caller, params.ProjectID)
		if err != nil {
			return err
		}

		creatives, err := sp.Creatives().CountByProject(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("counting project creatives: %w", err)
		}
		if err := ValidateTransition(p.Status, params.Status, creatives); err != nil {
			return err
		}

		from = p.Status
		p.Status = params.Status
		if err := sp.Projects().UpdateStatus(ctx, p); err != nil {
			return fmt.Errorf("updating project status: %w", err)
		}
		// Reaching Approved by a plain status change promotes the same way
		// an explicit approval does.
		tmpl, err = s.promoter.MaybePromote(ctx, sp, p)
		if err != nil {
			return err
		}
		if err := addProjectComment(ctx, sp, caller, p.ID, params.Comment); err != nil {
			return err
		}

		description := fmt.Sprintf("Project %q moved from %s to %s", p.Name, from.Label(), p.Status.Label())
		if tmpl != nil {
			description += fmt.Sprintf("; template %q created from it", tmpl.Name)
		}
		entry, err = s.activity.Record(ctx, sp, p.OrganizationID, caller.ActorID, model.ActivityProjectStatusChanged, description)
		if err != nil {
			return err
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	if tmpl != nil {
		slog.InfoContext(ctx, "template promoted", "template_id", tmpl.ID)
	}
	slog.InfoContext(ctx, "project status changed", "from", from, "to", project.Status)
	s.publish(ctx, sc, entry, &project.ID)
	return project, nil
}

func (s *lifecycleService) Approve(ctx context.Context, caller model.Caller, params ApproveParams) (*ApproveResult, error) {
	ctx, sc := startOperation(ctx, "approve", caller, logger.LogFields{ProjectID: &params.ProjectID})
	defer sc.End()

	params.Comment = trimOptional(params.Comment)
	if err := validateParams(params); err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	var (
		result *ApproveResult
		entry  *model.ActivityLog
	)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		p, err := lockAccessibleProject(ctx, sp, caller, params.ProjectID)
		if err != nil {
			return err
		}

		creatives, err := sp.Creatives().CountByProject(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("counting project creatives: %w", err)
		}
		if err := ValidateReviewDecision(p.Status, model.ProjectStatusApproved, creatives); err != nil {
			return err
		}

		p.Status = model.ProjectStatusApproved
		if err := sp.Projects().UpdateStatus(ctx, p); err != nil {
			return fmt.Errorf("approving project: %w", err)
		}

		tmpl, err := s.promoter.MaybePromote(ctx, sp, p)
		if err != nil {
			return err
		}
		if err := addProjectComment(ctx, sp, caller, p.ID, params.Comment); err != nil {
			return err
		}

		description := fmt.Sprintf("Project %q approved", p.Name)
		if tmpl != nil {
			description += fmt.Sprintf("; template %q created from it", tmpl.Name)
		}
		entry, err = s.activity.Record(ctx, sp, p.OrganizationID, caller.ActorID, model.ActivityProjectApproved, description)
		if err != nil {
			return err
		}

		result = &ApproveResult{Project: p, Template: tmpl}
		return nil
	})
	if err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	if result.Template != nil {
		slog.InfoContext(ctx, "project approved and promoted to template", "template_id", result.Template.ID)
	} else {
		slog.InfoContext(ctx, "project approved")
	}
	s.publish(ctx, sc, entry, &result.Project.ID)
	return result, nil
}

func (s *lifecycleService) RequestRevision(ctx context.Context, caller model.Caller, params RequestRevisionParams) (*model.Project, error) {
	ctx, sc := startOperation(ctx, "request_revision", caller, logger.LogFields{ProjectID: &params.ProjectID})
	defer sc.End()

	params.Comment = strings.TrimSpace(params.Comment)
	if err := validateParams(params); err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	var (
		project *model.Project
		entry   *model.ActivityLog
	)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		p, err := lockAccessibleProject(ctx, sp, caller, params.ProjectID)
		if err != nil {
			return err
		}

		creatives, err := sp.Creatives().CountByProject(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("counting project creatives: %w", err)
		}
		if err := ValidateReviewDecision(p.Status, model.ProjectStatusRevision, creatives); err != nil {
			return err
		}

		p.Status = model.ProjectStatusRevision
		if err := sp.Projects().UpdateStatus(ctx, p); err != nil {
			return fmt.Errorf("requesting revision: %w", err)
		}
		if err := addProjectComment(ctx, sp, caller, p.ID, &params.Comment); err != nil {
			return err
		}

		entry, err = s.activity.Record(ctx, sp, p.OrganizationID, caller.ActorID, model.ActivityRevisionRequested,
			fmt.Sprintf("Revision requested for project %q", p.Name))
		if err != nil {
			return err
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	slog.InfoContext(ctx, "revision requested")
	s.publish(ctx, sc, entry, &project.ID)
	return project, nil
}

func (s *lifecycleService) IngestCreatives(ctx context.Context, caller model.Caller, params IngestCreativesParams) (*IngestResult, error) {
	ctx, sc := startOperation(ctx, "ingest_creatives", caller, logger.LogFields{ProjectID: &params.ProjectID})
	defer sc.End()

	params.IdempotencyKey = trimOptional(params.IdempotencyKey)
	if err := validateParams(params); err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	var (
		result *IngestResult
		entry  *model.ActivityLog
	)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		entry = nil

		p, err := sp.Projects().GetByID(ctx, params.ProjectID)
		if err != nil {
			return projectLookupError(err)
		}
		if !caller.CanAccess(p.OrganizationID) {
			return ErrForbidden
		}

		// Organization before project, matching every other path that takes both.
		org, err := sp.Organizations().Lock(ctx, p.OrganizationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound("organization")
			}
			return fmt.Errorf("locking organization: %w", err)
		}
		if p, err = sp.Projects().Lock(ctx, p.ID); err != nil {
			return projectLookupError(err)
		}
		if p.Status.IsTerminal() {
			return fmt.Errorf("%w: creatives cannot be added to an approved project", ErrTerminalState)
		}

		if params.IdempotencyKey != nil {
			replayed, err := replayBatch(ctx, sp, p, *params.IdempotencyKey)
			if err != nil || replayed != nil {
				result = replayed
				return err
			}
		}

		if _, err := s.quota.CheckCreativeQuota(ctx, sp, org, len(params.Items)); err != nil {
			return err
		}

		var batchID *int64
		if params.IdempotencyKey != nil {
			batch := &model.CreativeBatch{
				ID:             id.New(),
				ProjectID:      p.ID,
				IdempotencyKey: *params.IdempotencyKey,
				CreativeCount:  int32(len(params.Items)),
			}
			if err := sp.Creatives().CreateBatch(ctx, batch); err != nil {
				return fmt.Errorf("recording creative batch: %w", err)
			}
			batchID = &batch.ID
		}

		created := make([]model.Creative, 0, len(params.Items))
		for _, item := range params.Items {
			creative := &model.Creative{
				ID:           id.New(),
				ProjectID:    p.ID,
				BatchID:      batchID,
				Name:         strings.TrimSpace(item.Name),
				URL:          item.URL,
				ThumbnailURL: item.ThumbnailURL,
				Format:       strings.ToLower(item.Format),
				Width:        item.Width,
				Height:       item.Height,
				Lista:        item.Lista,
				Modelo:       item.Modelo,
			}
			if err := sp.Creatives().Create(ctx, creative); err != nil {
				return fmt.Errorf("inserting creative: %w", err)
			}
			created = append(created, *creative)
		}

		if err := sp.Projects().SyncTotalCreatives(ctx, p); err != nil {
			return fmt.Errorf("updating project creative total: %w", err)
		}

		entry, err = s.activity.Record(ctx, sp, p.OrganizationID, caller.ActorID, model.ActivityCreativesUploaded,
			fmt.Sprintf("%d creative(s) uploaded to project %q", len(created), p.Name))
		if err != nil {
			return err
		}

		result = &IngestResult{Project: p, Creatives: created}
		return nil
	})
	if err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	if result.Duplicated {
		slog.InfoContext(ctx, "creative batch replayed", "idempotency_key", *params.IdempotencyKey, "count", len(result.Creatives))
		return result, nil
	}

	slog.InfoContext(ctx, "creatives ingested", "count", len(result.Creatives), "total_creatives", result.Project.TotalCreatives)
	s.publish(ctx, sc, entry, &result.Project.ID)
	return result, nil
}

// checkCreativeRemoval refuses to take the last creative out of a project
// whose status may only be held with deliverables.
func checkCreativeRemoval(ctx context.Context, sp StoreProvider, p *model.Project) error {
	info, _ := p.Status.Info()
	if !info.RequiresCreatives {
		return nil
	}
	creatives, err := sp.Creatives().CountByProject(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("counting project creatives: %w", err)
	}
	if creatives <= 1 {
		return &TransitionError{From: p.Status, To: p.Status, Reason: "cannot remove the last creative", kind: ErrPreconditionFailed}
	}
	return nil
}

// replayBatch returns the earlier result for a reused idempotency key, or
// nil when the key is new.
func replayBatch(ctx context.Context, sp StoreProvider, project *model.Project, key string) (*IngestResult, error) {
	batch, err := sp.Creatives().GetBatch(ctx, project.ID, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up creative batch: %w", err)
	}

	creatives, err := sp.Creatives().ListByBatch(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("listing batch creatives: %w", err)
	}
	return &IngestResult{Project: project, Creatives: creatives, Duplicated: true}, nil
}

func (s *lifecycleService) DeleteCreative(ctx context.Context, caller model.Caller, creativeID int64) (*model.Project, error) {
	ctx, sc := startOperation(ctx, "delete_creative", caller, logger.LogFields{})
	defer sc.End()

	if !caller.Operator {
		return nil, finishOperation(ctx, sc, fmt.Errorf("%w: only operators can delete creatives", ErrForbidden))
	}

	var (
		project *model.Project
		entry   *model.ActivityLog
	)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		creative, err := sp.Creatives().GetByID(ctx, creativeID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound("creative")
			}
			return fmt.Errorf("loading creative: %w", err)
		}

		p, err := sp.Projects().Lock(ctx, creative.ProjectID)
		if err != nil {
			return projectLookupError(err)
		}
		if err := checkCreativeRemoval(ctx, sp, p); err != nil {
			return err
		}
		if err := sp.Creatives().Delete(ctx, creative.ID); err != nil {
			return fmt.Errorf("deleting creative: %w", err)
		}
		if err := sp.Projects().SyncTotalCreatives(ctx, p); err != nil {
			return fmt.Errorf("updating project creative total: %w", err)
		}

		entry, err = s.activity.Record(ctx, sp, p.OrganizationID, caller.ActorID, model.ActivityCreativeDeleted,
			fmt.Sprintf("Creative %q deleted from project %q", creative.Name, p.Name))
		if err != nil {
			return err
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	slog.InfoContext(ctx, "creative deleted", "creative_id", creativeID, "project_id", project.ID)
	s.publish(ctx, sc, entry, &project.ID)
	return project, nil
}

func (s *lifecycleService) CreateProject(ctx context.Context, caller model.Caller, params CreateProjectParams) (*model.Project, error) {
	ctx, sc := startOperation(ctx, "create_project", caller, logger.LogFields{BrandID: &params.BrandID})
	defer sc.End()

	params.Name = strings.TrimSpace(params.Name)
	if params.ProjectType == "" {
		params.ProjectType = model.ProjectTypeStandard
	}
	if err := validateParams(params); err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	var (
		project *model.Project
		entry   *model.ActivityLog
	)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		brand, err := accessibleBrand(ctx, sp, caller, params.BrandID)
		if err != nil {
			return err
		}

		if params.TemplateID != nil {
			tmpl, err := sp.Templates().GetByID(ctx, *params.TemplateID)
			if errors.Is(err, store.ErrNotFound) {
				return invalidField("template_id", "template does not exist")
			}
			if err != nil {
				return fmt.Errorf("loading template: %w", err)
			}
			if tmpl.BrandID != brand.ID {
				return invalidField("template_id", "template belongs to another brand")
			}
		}

		// Estimates are advisory: the check rejects plans that could never fit,
		// but nothing is reserved until creatives are ingested.
		org, err := sp.Organizations().GetByID(ctx, brand.OrganizationID)
		if err != nil {
			return fmt.Errorf("loading organization: %w", err)
		}
		if _, err := s.quota.CheckCreativeQuota(ctx, sp, org, int(params.EstimatedCreatives)); err != nil {
			return err
		}

		p := &model.Project{
			ID:                 id.New(),
			OrganizationID:     brand.OrganizationID,
			BrandID:            brand.ID,
			TemplateID:         params.TemplateID,
			Name:               params.Name,
			Status:             model.ProjectStatusDraft,
			ProjectType:        params.ProjectType,
			EstimatedCreatives: params.EstimatedCreatives,
		}
		if err := sp.Projects().Create(ctx, p); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}

		entry, err = s.activity.Record(ctx, sp, p.OrganizationID, caller.ActorID, model.ActivityProjectCreated,
			fmt.Sprintf("Project %q created for brand %q", p.Name, brand.Name))
		if err != nil {
			return err
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	slog.InfoContext(ctx, "project created", "project_id", project.ID, "project_type", project.ProjectType)
	s.publish(ctx, sc, entry, &project.ID)
	return project, nil
}

func (s *lifecycleService) AddComment(ctx context.Context, caller model.Caller, params AddCommentParams) (*model.Comment, error) {
	ctx, sc := startOperation(ctx, "add_comment", caller, logger.LogFields{ProjectID: &params.ProjectID})
	defer sc.End()

	params.Content = strings.TrimSpace(params.Content)
	if err := validateParams(params); err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	var (
		comment *model.Comment
		entry   *model.ActivityLog
	)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		p, err := sp.Projects().GetByID(ctx, params.ProjectID)
		if err != nil {
			return projectLookupError(err)
		}
		if !caller.CanAccess(p.OrganizationID) {
			return ErrForbidden
		}

		c := &model.Comment{
			ID:        id.New(),
			ProjectID: p.ID,
			AuthorID:  caller.ActorID,
			Content:   params.Content,
		}
		if err := sp.Comments().Create(ctx, c); err != nil {
			return fmt.Errorf("creating comment: %w", err)
		}

		entry, err = s.activity.Record(ctx, sp, p.OrganizationID, caller.ActorID, model.ActivityCommentAdded,
			fmt.Sprintf("Comment added to project %q", p.Name))
		if err != nil {
			return err
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	s.publish(ctx, sc, entry, &params.ProjectID)
	return comment, nil
}

func (s *lifecycleService) CreateBrand(ctx context.Context, caller model.Caller, params CreateBrandParams) (*model.Brand, error) {
	ctx, sc := startOperation(ctx, "create_brand", caller, logger.LogFields{OrganizationID: &params.OrganizationID})
	defer sc.End()

	params.Name = strings.TrimSpace(params.Name)
	if err := validateParams(params); err != nil {
		return nil, finishOperation(ctx, sc, err)
	}
	if !caller.CanAccess(params.OrganizationID) {
		return nil, finishOperation(ctx, sc, ErrForbidden)
	}

	var (
		brand *model.Brand
		entry *model.ActivityLog
	)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		org, err := sp.Organizations().Lock(ctx, params.OrganizationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound("organization")
			}
			return fmt.Errorf("locking organization: %w", err)
		}
		if _, err := s.quota.CheckBrandQuota(ctx, sp, org); err != nil {
			return err
		}

		b := &model.Brand{
			ID:             id.New(),
			OrganizationID: org.ID,
			Name:           params.Name,
			LogoURL:        params.LogoURL,
			ToneOfVoice:    trimOptional(params.ToneOfVoice),
		}
		if err := sp.Brands().Create(ctx, b); err != nil {
			return fmt.Errorf("creating brand: %w", err)
		}

		entry, err = s.activity.Record(ctx, sp, org.ID, caller.ActorID, model.ActivityBrandCreated,
			fmt.Sprintf("Brand %q created", b.Name))
		if err != nil {
			return err
		}
		brand = b
		return nil
	})
	if err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	slog.InfoContext(ctx, "brand created", "brand_id", brand.ID)
	s.publish(ctx, sc, entry, nil)
	return brand, nil
}

func (s *lifecycleService) CreateTemplate(ctx context.Context, caller model.Caller, params CreateTemplateParams) (*model.Template, error) {
	ctx, sc := startOperation(ctx, "create_template", caller, logger.LogFields{BrandID: &params.BrandID})
	defer sc.End()

	params.Name = strings.TrimSpace(params.Name)
	if err := validateParams(params); err != nil {
		return nil, finishOperation(ctx, sc, err)
	}
	if !caller.Operator {
		return nil, finishOperation(ctx, sc, fmt.Errorf("%w: only operators can create templates", ErrForbidden))
	}

	status := model.TemplateStatusApproved
	if params.TemplateStatus != nil {
		status = *params.TemplateStatus
	}
	active := true
	if params.IsActive != nil {
		active = *params.IsActive
	}

	var (
		tmpl  *model.Template
		entry *model.ActivityLog
	)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		brand, err := sp.Brands().GetByID(ctx, params.BrandID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound("brand")
			}
			return fmt.Errorf("loading brand: %w", err)
		}

		t := &model.Template{
			ID:             id.New(),
			BrandID:        brand.ID,
			Name:           params.Name,
			Description:    trimOptional(params.Description),
			ImageURL:       params.ImageURL,
			Category:       trimOptional(params.Category),
			Platforms:      params.Platforms,
			Formats:        params.Formats,
			TemplateStatus: status,
			IsActive:       active,
		}
		if err := sp.Templates().Create(ctx, t); err != nil {
			return fmt.Errorf("creating template: %w", err)
		}

		entry, err = s.activity.Record(ctx, sp, brand.OrganizationID, caller.ActorID, model.ActivityTemplateCreated,
			fmt.Sprintf("Template %q created for brand %q", t.Name, brand.Name))
		if err != nil {
			return err
		}
		tmpl = t
		return nil
	})
	if err != nil {
		return nil, finishOperation(ctx, sc, err)
	}

	slog.InfoContext(ctx, "template created", "template_id", tmpl.ID)
	s.publish(ctx, sc, entry, nil)
	return tmpl, nil
}

// publish announces a committed mutation. Delivery is best effort: the
// mutation already committed, so a stream outage is only logged.
func (s *lifecycleService) publish(ctx context.Context, sc *logger.SpanContext, entry *model.ActivityLog, projectID *int64) {
	if entry == nil {
		return
	}
	err := s.events.Publish(ctx, queue.LifecycleEvent{
		EventType:      string(entry.Action),
		OrganizationID: entry.OrganizationID,
		ProjectID:      projectID,
		ActivityLogID:  entry.ID,
		TraceID:        sc.TraceID(),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to publish lifecycle event", "error", err, "activity_log_id", entry.ID)
	}
}

func startOperation(ctx context.Context, op string, caller model.Caller, fields logger.LogFields) (context.Context, *logger.SpanContext) {
	fields.Operation = &op
	fields.ActorID = &caller.ActorID
	fields.Component = "tracker.service.lifecycle"
	ctx = logger.WithLogFields(ctx, fields)

	sc := logger.StartSpan(ctx, "lifecycle."+op)
	return sc.Context(), sc
}

func finishOperation(ctx context.Context, sc *logger.SpanContext, err error) error {
	err = classify(err)
	sc.RecordError(err)
	if errors.Is(err, ErrUnavailable) {
		slog.ErrorContext(ctx, "lifecycle operation failed", "error", err)
	} else {
		slog.InfoContext(ctx, "lifecycle operation rejected", "error", err)
	}
	return err
}

func lockAccessibleProject(ctx context.Context, sp StoreProvider, caller model.Caller, projectID int64) (*model.Project, error) {
	p, err := sp.Projects().Lock(ctx, projectID)
	if err != nil {
		return nil, projectLookupError(err)
	}
	if !caller.CanAccess(p.OrganizationID) {
		return nil, ErrForbidden
	}
	return p, nil
}

func accessibleBrand(ctx context.Context, sp StoreProvider, caller model.Caller, brandID int64) (*model.Brand, error) {
	brand, err := sp.Brands().GetByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("brand")
		}
		return nil, fmt.Errorf("loading brand: %w", err)
	}
	if !caller.CanAccess(brand.OrganizationID) {
		return nil, ErrForbidden
	}
	return brand, nil
}

func projectLookupError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound("project")
	}
	return fmt.Errorf("loading project: %w", err)
}

func addProjectComment(ctx context.Context, sp StoreProvider, caller model.Caller, projectID int64, content *string) error {
	if content == nil {
		return nil
	}
	err := sp.Comments().Create(ctx, &model.Comment{
		ID:        id.New(),
		ProjectID: projectID,
		AuthorID:  caller.ActorID,
		Content:   *content,
	})
	if err != nil {
		return fmt.Errorf("creating comment: %w", err)
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
