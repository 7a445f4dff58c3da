package entities

import "time"

type CommentResponse struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	Content    string    `json:"content"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateCommentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

type CommentList struct {
	Comments   []CommentResponse `json:"comments"`
	Pagination Pagination        `json:"pagination"`
}
