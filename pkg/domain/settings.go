package domain

// Settings is the per-session singleton of user preferences. It is never
// part of a collection: exactly one value exists, read-modify-written as a
// whole or patched via SettingsPatch.
type Settings struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	EmailUpdates  bool   `json:"emailUpdates"`
	PublicProfile bool   `json:"publicProfile"`
	ShowLocation  bool   `json:"showLocation"`
	Language      string `json:"language"`
}

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ValidLanguages lists the supported interface language codes.
var ValidLanguages = []string{"en", "es", "fr", "de"}

// DefaultSettings returns the hard-coded settings a fresh session starts
// with, and the value a corrupt settings namespace falls back to.
func DefaultSettings() Settings {
	return Settings{
		Theme:         ThemeDark,
		Notifications: true,
		EmailUpdates:  false,
		PublicProfile: true,
		ShowLocation:  true,
		Language:      "en",
	}
}

// SettingsPatch is a merge-patch for settings.
type SettingsPatch struct {
	Theme         *string `json:"theme,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
	EmailUpdates  *bool   `json:"emailUpdates,omitempty"`
	PublicProfile *bool   `json:"publicProfile,omitempty"`
	ShowLocation  *bool   `json:"showLocation,omitempty"`
	Language      *string `json:"language,omitempty"`
}

// Apply merges the patch into s. Applying the same patch twice yields the
// same value as applying it once.
func (patch SettingsPatch) Apply(s *Settings) {
	if patch.Theme != nil {
		s.Theme = *patch.Theme
	}
	if patch.Notifications != nil {
		s.Notifications = *patch.Notifications
	}
	if patch.EmailUpdates != nil {
		s.EmailUpdates = *patch.EmailUpdates
	}
	if patch.PublicProfile != nil {
		s.PublicProfile = *patch.PublicProfile
	}
	if patch.ShowLocation != nil {
		s.ShowLocation = *patch.ShowLocation
	}
	if patch.Language != nil {
		s.Language = *patch.Language
	}
}
