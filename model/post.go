package model

type Post struct {
	UserID int64  `json:"userId"`
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// IsValid reports whether every field of the post was populated by the source.
func (p Post) IsValid() bool {
	return p.UserID != 0 &&
		p.ID != 0 &&
		p.Title != "" &&
		p.Body != ""
}

type PostUpdate struct {
	UserID int64  `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// PostResponse is the JSON shape returned by the posts endpoints
type PostResponse struct {
	UserID int64  `json:"userId"`
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func NewPostResponse(p Post) PostResponse {
	return PostResponse{
		UserID: p.UserID,
		ID:     p.ID,
		Title:  p.Title,
		Body:   p.Body,
	}
}

func NewPostResponses(posts []Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}
