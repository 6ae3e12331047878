package domain

// Project is a creative production tracked on HiveCast.
type Project struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Budget        string   `json:"budget,omitempty"` // free-form display string, e.g. "$15,000"
	IsPublic      bool     `json:"isPublic"`
	Status        string   `json:"status"`
	Progress      int      `json:"progress"` // 0-100
	Collaborators int      `json:"collaborators"`
	CreatedAt     Time     `json:"createdAt"`
	CreatorID     string   `json:"creatorId"`
	CreatorName   string   `json:"creatorName,omitempty"`
	Image         string   `json:"image,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Files         []string `json:"files,omitempty"`
}

// ProjectDraft holds the caller-supplied fields for a new project.
// The store assigns id, createdAt, and the lifecycle defaults.
type ProjectDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Budget      string   `json:"budget,omitempty"`
	IsPublic    bool     `json:"isPublic"`
	CreatorID   string   `json:"creatorId"`
	CreatorName string   `json:"creatorName,omitempty"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Files       []string `json:"files,omitempty"`
}

// Project lifecycle statuses.
const (
	StatusPreProduction = "Pre-Production"
	StatusInProgress    = "In Progress"
	StatusCompleted     = "Completed"
)

// ProjectStatuses lists the statuses in lifecycle order.
var ProjectStatuses = []string{
	StatusPreProduction,
	StatusInProgress,
	StatusCompleted,
}

// Valid project categories.
var ValidCategories = []string{
	"film",
	"music",
	"documentary",
	"commercial",
	"animation",
}

var validCategorySet = func() map[string]bool {
	m := make(map[string]bool, len(ValidCategories))
	for _, c := range ValidCategories {
		m[c] = true
	}
	return m
}()

// ValidCategory returns true if the given category is a known project category.
func ValidCategory(category string) bool {
	return validCategorySet[category]
}

// ProjectPatch is a merge-patch for a project: only non-nil fields are
// applied, everything else is left untouched.
type ProjectPatch struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Budget        *string   `json:"budget,omitempty"`
	IsPublic      *bool     `json:"isPublic,omitempty"`
	Status        *string   `json:"status,omitempty"`
	Progress      *int      `json:"progress,omitempty"`
	Collaborators *int      `json:"collaborators,omitempty"`
	Image         *string   `json:"image,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Files         *[]string `json:"files,omitempty"`
}

// Apply merges the patch into p.
func (patch ProjectPatch) Apply(p *Project) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Budget != nil {
		p.Budget = *patch.Budget
	}
	if patch.IsPublic != nil {
		p.IsPublic = *patch.IsPublic
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Progress != nil {
		p.Progress = *patch.Progress
	}
	if patch.Collaborators != nil {
		p.Collaborators = *patch.Collaborators
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Tags != nil {
		p.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.Files != nil {
		p.Files = append([]string(nil), (*patch.Files)...)
	}
}
