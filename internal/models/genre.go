package models

// GenreRef is a genre reference nested in another genre.
type GenreRef struct {
	Tag string `json:"tag"`
}

// Genre is a genre tag with its neighbourhood.
type Genre struct {
	Tag     string     `json:"tag"`
	Sub     []GenreRef `json:"sub"`
	Related []GenreRef `json:"related"`
	Artists []Artist   `json:"artists"`
}

// Artist is an artist as listed on a genre.
type Artist struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Image     string   `json:"image"`
	Followers int      `json:"followers"`
	Genres    []string `json:"genres"`
}
