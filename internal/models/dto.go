package models

// User represents a Streamlet account, both the authenticated principal and video owners.
type User struct {
	ID         string `json:"_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// Video represents a video as returned by the Streamlet API.
type Video struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl"`
	Duration    int    `json:"duration"`
	Views       int    `json:"views"`
	IsPublished bool   `json:"isPublished"`
	Owner       User   `json:"owner"`
	Likes       int    `json:"likes"`
	Dislikes    int    `json:"dislikes"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Visibility enumerates playlist visibility values accepted by the API.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// PlaylistVideo is a member stub within a playlist. Title and Thumbnail may be
// empty placeholders when a video was added without a full fetch.
type PlaylistVideo struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// Playlist represents a named video grouping.
type Playlist struct {
	ID         string          `json:"_id"`
	Name       string          `json:"name"`
	Visibility string          `json:"visibility"`
	Videos     []PlaylistVideo `json:"videos"`
}

// LoginInput carries credentials for POST /users/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput carries profile fields for the multipart POST /users/register.
// AvatarPath and CoverImagePath reference local files to attach.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	AvatarPath     string
	CoverImagePath string
}
