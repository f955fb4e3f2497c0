package model

import "time"

type ActivityAction string

const (
	ActivityProjectCreated       ActivityAction = "project_created"
	ActivityProjectStatusChanged ActivityAction = "project_status_changed"
	ActivityProjectApproved      ActivityAction = "project_approved"
	ActivityRevisionRequested    ActivityAction = "revision_requested"
	ActivityCreativesUploaded    ActivityAction = "creatives_uploaded"
	ActivityCreativeDeleted      ActivityAction = "creative_deleted"
	ActivityBrandCreated         ActivityAction = "brand_created"
	ActivityTemplateCreated      ActivityAction = "template_created"
	ActivityCommentAdded         ActivityAction = "comment_added"
)

// ActivityLog is an append-only audit row. Rows are never updated or deleted.
type ActivityLog struct {
	ID             int64          `json:"id,string"`
	OrganizationID int64          `json:"organization_id,string"`
	ActorID        int64          `json:"actor_id,string"`
	Action         ActivityAction `json:"action"`
	Description    string         `json:"description"`
	CreatedAt      time.Time      `json:"created_at"`
}
