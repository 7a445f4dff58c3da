package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"personalsite/internal/db"
)

// CommentRow is a comment joined with its author's name.
type CommentRow struct {
	db.Comment
	AuthorName string
}

type CommentRepository struct {
	DB *sql.DB
}

func NewCommentRepository(database *sql.DB) *CommentRepository {
	return &CommentRepository{DB: database}
}

func (r *CommentRepository) Create(c *db.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query, c.ID, c.PostID, c.AuthorID, c.Content).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(id string) (*db.Comment, error) {
	var c db.Comment
	err := r.DB.QueryRow(`
		SELECT id, post_id, author_id, content, created_at, updated_at
		FROM comments WHERE id = $1`, id).
		Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying comment: %w", err)
	}
	return &c, nil
}

func (r *CommentRepository) ListByPost(postID string, limit, offset int) ([]CommentRow, int64, error) {
	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting comments: %w", err)
	}

	rows, err := r.DB.Query(`
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at, c.updated_at, u.name
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`, postID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var comments []CommentRow
	for rows.Next() {
		var row CommentRow
		err := rows.Scan(&row.ID, &row.PostID, &row.AuthorID, &row.Content, &row.CreatedAt, &row.UpdatedAt, &row.AuthorName)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning comment: %w", err)
		}
		comments = append(comments, row)
	}
	return comments, total, rows.Err()
}

func (r *CommentRepository) Update(id, content string) error {
	_, err := r.DB.Exec(`UPDATE comments SET content = $2, updated_at = NOW() WHERE id = $1`, id, content)
	return err
}

func (r *CommentRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM comments WHERE id = $1`, id)
	return err
}
