package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"personalsite/internal/auth"
	"personalsite/internal/db"
	"personalsite/internal/entities"
	apperrors "personalsite/internal/errors"
	"personalsite/internal/repository"
)

const commentCacheTTL = 5 * time.Minute

type CommentService struct {
	repo  *repository.CommentRepository
	blog  *repository.BlogRepository
	users repository.UserRepository
	rdb   *redis.Client
}

func NewCommentService(repo *repository.CommentRepository, blog *repository.BlogRepository, users repository.UserRepository, rdb *redis.Client) *CommentService {
	return &CommentService{repo: repo, blog: blog, users: users, rdb: rdb}
}

// List serves comment pages from redis when possible; cache errors degrade to
// a direct query.
func (s *CommentService) List(ctx context.Context, postID string, page, limit int) (*entities.CommentList, error) {
	key := commentCacheKey(postID, page, limit)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil && raw != "" {
			var cached entities.CommentList
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	rows, total, err := s.repo.ListByPost(postID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	list := &entities.CommentList{
		Comments:   make([]entities.CommentResponse, 0, len(rows)),
		Pagination: entities.NewPagination(total, page, limit),
	}
	for i := range rows {
		list.Comments = append(list.Comments, *commentResponse(&rows[i]))
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(list); err == nil {
			_ = s.rdb.Set(ctx, key, raw, commentCacheTTL).Err()
		}
	}
	return list, nil
}

func (s *CommentService) Create(ctx context.Context, claims *auth.Claims, req entities.CreateCommentRequest) (*entities.CommentResponse, error) {
	if req.Content == "" {
		return nil, apperrors.ErrInvalidInput("content is required")
	}
	if uuid.Validate(req.PostID) != nil {
		return nil, apperrors.ErrInvalidInput("invalid postId")
	}

	post, err := s.blog.GetByID(req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.ErrNotFound("Blog post not found")
	}

	comment := &db.Comment{
		ID:       uuid.NewString(),
		PostID:   req.PostID,
		AuthorID: claims.UserID,
		Content:  req.Content,
	}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}

	row := repository.CommentRow{Comment: *comment}
	if user, err := s.users.GetByID(claims.UserID); err == nil && user != nil {
		row.AuthorName = user.Name
	}

	s.invalidate(ctx, req.PostID)
	return commentResponse(&row), nil
}

func (s *CommentService) Update(ctx context.Context, claims *auth.Claims, id string, req entities.UpdateCommentRequest) (*entities.CommentResponse, error) {
	if req.Content == "" {
		return nil, apperrors.ErrInvalidInput("content is required")
	}

	comment, err := s.fetchOwned(claims, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(id, req.Content); err != nil {
		return nil, err
	}
	comment.Content = req.Content

	row := repository.CommentRow{Comment: *comment}
	if user, err := s.users.GetByID(comment.AuthorID); err == nil && user != nil {
		row.AuthorName = user.Name
	}

	s.invalidate(ctx, comment.PostID)
	return commentResponse(&row), nil
}

func (s *CommentService) Delete(ctx context.Context, claims *auth.Claims, id string) error {
	comment, err := s.fetchOwned(claims, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, comment.PostID)
	return nil
}

func (s *CommentService) fetchOwned(claims *auth.Claims, id string) (*db.Comment, error) {
	comment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperrors.ErrNotFound("Comment not found")
	}
	if comment.AuthorID != claims.UserID && claims.Role != db.RoleAdmin {
		return nil, apperrors.ErrForbidden("Forbidden")
	}
	return comment, nil
}

// invalidate drops every cached page for the post.
func (s *CommentService) invalidate(ctx context.Context, postID string) {
	if s.rdb == nil {
		return
	}
	keys, err := s.rdb.Keys(ctx, fmt.Sprintf("post-comments:%s:*", postID)).Result()
	if err != nil {
		log.Printf("Error listing comment cache keys for post %s: %v", postID, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Error invalidating comment cache for post %s: %v", postID, err)
	}
}

func commentCacheKey(postID string, page, limit int) string {
	return fmt.Sprintf("post-comments:%s:%d:%d", postID, page, limit)
}

func commentResponse(row *repository.CommentRow) *entities.CommentResponse {
	return &entities.CommentResponse{
		ID:         row.ID,
		PostID:     row.PostID,
		Content:    row.Content,
		AuthorName: row.AuthorName,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
