package entities

import "time"

type BlogPostResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content,omitempty"`
	Excerpt    string    `json:"excerpt,omitempty"`
	Tags       []string  `json:"tags"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Published  bool      `json:"published"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateBlogPostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"imageUrl"`
}

type UpdateBlogPostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"imageUrl"`
}

type BlogPostList struct {
	Posts      []BlogPostResponse `json:"posts"`
	Pagination Pagination         `json:"pagination"`
}
