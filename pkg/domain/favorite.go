package domain

// FavoriteType identifies what kind of item a favorite points at.
type FavoriteType string

const (
	FavoriteProject FavoriteType = "project"
	FavoriteProfile FavoriteType = "profile"
	FavoriteJob     FavoriteType = "job"
)

// Favorite is a bookmark on a project, profile, or job.
type Favorite struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	ItemID    string       `json:"itemId"`
	ItemType  FavoriteType `json:"itemType"`
	CreatedAt Time         `json:"createdAt"`
}
