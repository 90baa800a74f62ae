package models

// UserPublic is the public profile shown on listener cards.
type UserPublic struct {
	ID          string `json:"id"`
	CustomID    string `json:"customId"`
	DisplayName string `json:"displayName"`
	Image       string `json:"image"`
}

// UserPrivate is the profile of the user owning the identity token.
type UserPrivate struct {
	UserPublic
	Email string `json:"email"`
}

// TopUser is a ranked listener of a track.
type TopUser struct {
	Position int        `json:"position"`
	Streams  int        `json:"streams"`
	PlayedMS int        `json:"playedMs"`
	User     UserPublic `json:"user"`
}
