package domain

// UserProfile is the public-facing profile of a registered user. UID equals
// the authenticated user's id; UpdatedAt is refreshed by the store on every
// mutation.
type UserProfile struct {
	UID         string   `json:"uid"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	PhotoURL    string   `json:"photoURL,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Location    string   `json:"location,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Skills      []string `json:"skills"`
	Experience  string   `json:"experience,omitempty"`
	Role        string   `json:"role,omitempty"`
	Portfolio   []string `json:"portfolio,omitempty"`
	IsPublic    bool     `json:"isPublic"`
	CreatedAt   Time     `json:"createdAt"`
	UpdatedAt   Time     `json:"updatedAt"`
}

// ProfilePatch is a merge-patch for a user profile.
type ProfilePatch struct {
	Email       *string   `json:"email,omitempty"`
	DisplayName *string   `json:"displayName,omitempty"`
	PhotoURL    *string   `json:"photoURL,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Website     *string   `json:"website,omitempty"`
	Skills      *[]string `json:"skills,omitempty"`
	Experience  *string   `json:"experience,omitempty"`
	Role        *string   `json:"role,omitempty"`
	Portfolio   *[]string `json:"portfolio,omitempty"`
	IsPublic    *bool     `json:"isPublic,omitempty"`
}

// Apply merges the patch into p. UpdatedAt is the store's responsibility,
// not the patch's.
func (patch ProfilePatch) Apply(p *UserProfile) {
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.DisplayName != nil {
		p.DisplayName = *patch.DisplayName
	}
	if patch.PhotoURL != nil {
		p.PhotoURL = *patch.PhotoURL
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Website != nil {
		p.Website = *patch.Website
	}
	if patch.Skills != nil {
		p.Skills = append([]string(nil), (*patch.Skills)...)
	}
	if patch.Experience != nil {
		p.Experience = *patch.Experience
	}
	if patch.Role != nil {
		p.Role = *patch.Role
	}
	if patch.Portfolio != nil {
		p.Portfolio = append([]string(nil), (*patch.Portfolio)...)
	}
	if patch.IsPublic != nil {
		p.IsPublic = *patch.IsPublic
	}
}
