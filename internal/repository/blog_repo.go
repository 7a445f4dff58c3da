package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"personalsite/internal/db"
)

// BlogPostRow is a blog post joined with its author's name.
type BlogPostRow struct {
	db.BlogPost
	AuthorName string
}

type BlogRepository struct {
	DB *sql.DB
}

func NewBlogRepository(database *sql.DB) *BlogRepository {
	return &BlogRepository{DB: database}
}

func (r *BlogRepository) Create(p *db.BlogPost) error {
	query := `
		INSERT INTO blog_posts
		(id, author_id, title, slug, content, excerpt, tags, image_url, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query,
		p.ID, p.AuthorID, p.Title, p.Slug, p.Content, p.Excerpt, pq.Array(p.Tags), p.ImageURL, p.Published,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating blog post: %w", err)
	}
	return nil
}

func (r *BlogRepository) GetByID(id string) (*BlogPostRow, error) {
	return r.getByField("p.id", id)
}

func (r *BlogRepository) GetBySlug(slug string) (*BlogPostRow, error) {
	return r.getByField("p.slug", slug)
}

func (r *BlogRepository) getByField(field, value string) (*BlogPostRow, error) {
	var row BlogPostRow
	query := `
		SELECT p.id, p.author_id, p.title, p.slug, p.content, p.excerpt, p.tags,
		       p.image_url, p.published, p.created_at, p.updated_at, u.name
		FROM blog_posts p
		JOIN users u ON u.id = p.author_id
		WHERE ` + field + ` = $1`
	err := r.DB.QueryRow(query, value).Scan(
		&row.ID, &row.AuthorID, &row.Title, &row.Slug, &row.Content, &row.Excerpt,
		pq.Array(&row.Tags), &row.ImageURL, &row.Published, &row.CreatedAt, &row.UpdatedAt, &row.AuthorName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying blog post: %w", err)
	}
	return &row, nil
}

// SlugExists reports whether any post already uses the slug.
func (r *BlogRepository) SlugExists(slug string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

// List returns a page of posts, newest first. When tag is set only posts
// carrying it are returned; when publishedOnly is set drafts are hidden.
func (r *BlogRepository) List(tag string, publishedOnly bool, limit, offset int) ([]BlogPostRow, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if publishedOnly {
		where += " AND p.published = TRUE"
	}
	if tag != "" {
		where += " AND $" + strconv.Itoa(idx) + " = ANY(p.tags)"
		args = append(args, tag)
		idx++
	}

	var total int64
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM blog_posts p"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting blog posts: %w", err)
	}

	query := `
		SELECT p.id, p.author_id, p.title, p.slug, p.content, p.excerpt, p.tags,
		       p.image_url, p.published, p.created_at, p.updated_at, u.name
		FROM blog_posts p
		JOIN users u ON u.id = p.author_id` + where +
		" ORDER BY p.created_at DESC LIMIT $" + strconv.Itoa(idx) + " OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []BlogPostRow
	for rows.Next() {
		var row BlogPostRow
		err := rows.Scan(
			&row.ID, &row.AuthorID, &row.Title, &row.Slug, &row.Content, &row.Excerpt,
			pq.Array(&row.Tags), &row.ImageURL, &row.Published, &row.CreatedAt, &row.UpdatedAt, &row.AuthorName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning blog post: %w", err)
		}
		posts = append(posts, row)
	}
	return posts, total, rows.Err()
}

func (r *BlogRepository) Update(p *db.BlogPost) error {
	query := `
		UPDATE blog_posts
		SET title = $2, content = $3, excerpt = $4, tags = $5, image_url = $6, published = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	return r.DB.QueryRow(query,
		p.ID, p.Title, p.Content, p.Excerpt, pq.Array(p.Tags), p.ImageURL, p.Published,
	).Scan(&p.UpdatedAt)
}

func (r *BlogRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM blog_posts WHERE id = $1`, id)
	return err
}
