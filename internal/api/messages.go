package api

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// User is the public profile of a signed-in principal.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

type SignInRequest struct {
	GoogleIDToken string `json:"google_id_token"`
}

type SignInResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SignOutResponse struct{}

type CurrentUserRequest struct{}

type CurrentUserResponse struct {
	User *User `json:"user"`
}

// Item is a shared clipboard entry. CreatedAt is milliseconds since epoch,
// stamped by the submitting device.
type Item struct {
	ID           string `json:"id,omitempty"`
	Content      string `json:"content"`
	CreatedAt    int64  `json:"created_at"`
	OwnerID      string `json:"owner_id"`
	OriginDevice string `json:"origin_device"`
}

type AddItemRequest struct {
	Item *Item `json:"item"`
}

type AddItemResponse struct {
	ID string `json:"id"`
}

type ListItemsRequest struct {
	OwnerID string `json:"owner_id"`
}

type ListItemsResponse struct {
	Items []*Item `json:"items"`
}

type DeleteItemRequest struct {
	ID string `json:"id"`
}

type DeleteItemResponse struct{}
