package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"personalsite/internal/auth"
	"personalsite/internal/db"
	"personalsite/internal/entities"
	apperrors "personalsite/internal/errors"
	"personalsite/internal/repository"
)

const slugRetryLimit = 10

type BlogService struct {
	repo *repository.BlogRepository
}

func NewBlogService(repo *repository.BlogRepository) *BlogService {
	return &BlogService{repo: repo}
}

func (s *BlogService) Create(claims *auth.Claims, req entities.CreateBlogPostRequest) (*entities.BlogPostResponse, error) {
	if len(req.Title) < 5 {
		return nil, apperrors.ErrInvalidInput("title must be at least 5 characters")
	}
	if len(req.Content) < 100 {
		return nil, apperrors.ErrInvalidInput("content must be at least 100 characters")
	}

	postSlug, err := s.uniqueSlug(req.Title)
	if err != nil {
		return nil, err
	}

	post := &db.BlogPost{
		ID:        uuid.NewString(),
		AuthorID:  claims.UserID,
		Title:     req.Title,
		Slug:      postSlug,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Tags:      req.Tags,
		ImageURL:  req.ImageURL,
		Published: true,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(post.ID)
	if err != nil || row == nil {
		return blogResponse(&repository.BlogPostRow{BlogPost: *post}), nil
	}
	return blogResponse(row), nil
}

// Get accepts either a post ID or a slug.
func (s *BlogService) Get(idOrSlug string) (*entities.BlogPostResponse, error) {
	var row *repository.BlogPostRow
	var err error
	if uuid.Validate(idOrSlug) == nil {
		row, err = s.repo.GetByID(idOrSlug)
	} else {
		row, err = s.repo.GetBySlug(idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	if row == nil || !row.Published {
		return nil, apperrors.ErrNotFound("Blog post not found")
	}
	return blogResponse(row), nil
}

func (s *BlogService) List(tag string, page, limit int) (*entities.BlogPostList, error) {
	rows, total, err := s.repo.List(tag, true, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	list := &entities.BlogPostList{
		Posts:      make([]entities.BlogPostResponse, 0, len(rows)),
		Pagination: entities.NewPagination(total, page, limit),
	}
	for i := range rows {
		resp := blogResponse(&rows[i])
		resp.Content = "" // listings carry the excerpt only
		list.Posts = append(list.Posts, *resp)
	}
	return list, nil
}

func (s *BlogService) Update(claims *auth.Claims, id string, req entities.UpdateBlogPostRequest) (*entities.BlogPostResponse, error) {
	row, err := s.fetchOwned(claims, id)
	if err != nil {
		return nil, err
	}

	post := row.BlogPost
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Excerpt != "" {
		post.Excerpt = req.Excerpt
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	if req.ImageURL != "" {
		post.ImageURL = req.ImageURL
	}

	if err := s.repo.Update(&post); err != nil {
		return nil, err
	}
	row.BlogPost = post
	return blogResponse(row), nil
}

func (s *BlogService) Delete(claims *auth.Claims, id string) error {
	if _, err := s.fetchOwned(claims, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *BlogService) fetchOwned(claims *auth.Claims, id string) (*repository.BlogPostRow, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperrors.ErrNotFound("Blog post not found")
	}
	if row.AuthorID != claims.UserID && claims.Role != db.RoleAdmin {
		return nil, apperrors.ErrForbidden("Forbidden")
	}
	return row, nil
}

// uniqueSlug slugifies the title and appends a numeric suffix on collision.
func (s *BlogService) uniqueSlug(title string) (string, error) {
	base := slug.Make(title)
	candidate := base
	for i := 2; i <= slugRetryLimit; i++ {
		exists, err := s.repo.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	// Give up on pretty slugs after too many collisions.
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func blogResponse(row *repository.BlogPostRow) *entities.BlogPostResponse {
	return &entities.BlogPostResponse{
		ID:         row.ID,
		Title:      row.Title,
		Slug:       row.Slug,
		Content:    row.Content,
		Excerpt:    row.Excerpt,
		Tags:       row.Tags,
		ImageURL:   row.ImageURL,
		Published:  row.Published,
		AuthorName: row.AuthorName,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
