package service

import (
	"context"
	"errors"
	"fmt"

	"adflow.app/tracker/common/id"
	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/store"
)

// TemplatePromoter turns an approved template-creation project into an
// approved, active Template. It is the only path that creates templates as a
// side effect of a status change.
type TemplatePromoter interface {
	// MaybePromote returns nil, nil when project does not qualify.
	MaybePromote(ctx context.Context, sp StoreProvider, project *model.Project) (*model.Template, error)
}

type templatePromoter struct{}

func NewTemplatePromoter() TemplatePromoter {
	return templatePromoter{}
}

func (templatePromoter) MaybePromote(ctx context.Context, sp StoreProvider, project *model.Project) (*model.Template, error) {
	if project.Status != model.ProjectStatusApproved || project.ProjectType != model.ProjectTypeTemplateCreation {
		return nil, nil
	}

	imageURL := model.PlaceholderTemplateImage
	reference, err := sp.Creatives().Earliest(ctx, project.ID)
	switch {
	case err == nil:
		imageURL = reference.URL
	case errors.Is(err, store.ErrNotFound):
		// no deliverables: keep the placeholder
	default:
		return nil, fmt.Errorf("loading reference creative: %w", err)
	}

	description := fmt.Sprintf("Template created from project %q", project.Name)
	projectID := project.ID
	tmpl := &model.Template{
		ID:             id.New(),
		BrandID:        project.BrandID,
		ProjectID:      &projectID,
		Name:           project.Name,
		Description:    &description,
		ImageURL:       imageURL,
		Platforms:      []string{},
		Formats:        []string{},
		TemplateStatus: model.TemplateStatusApproved,
		IsActive:       true,
	}
	if err := sp.Templates().Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("creating promoted template: %w", err)
	}
	return tmpl, nil
}
