package domain

// Job is a crew-hiring post.
type Job struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Duration    string   `json:"duration"`
	Pay         string   `json:"pay"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	PosterID    string   `json:"posterId"`
	PosterName  string   `json:"posterName"`
	PostedAt    Time     `json:"postedAt"`
	Applicants  int      `json:"applicants"`
	IsActive    bool     `json:"isActive"`
}

// JobDraft holds the caller-supplied fields for a new job post.
// The store assigns id and postedAt and starts the applicant count at zero.
type JobDraft struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Duration    string   `json:"duration"`
	Pay         string   `json:"pay"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	PosterID    string   `json:"posterId"`
	PosterName  string   `json:"posterName"`
	IsActive    bool     `json:"isActive"`
}
