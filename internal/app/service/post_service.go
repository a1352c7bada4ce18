package service

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"

	"inkwell/internal/common"
	"inkwell/internal/domain/model"
	"inkwell/internal/domain/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	perPage  int
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, perPage int) *PostService {
	if perPage <= 0 {
		perPage = 5
	}
	return &PostService{postRepo: postRepo, userRepo: userRepo, perPage: perPage}
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func validatePost(title, content string) error {
	if l := len(title); l < 2 || l > 50 {
		return fmt.Errorf("title must be 2-50 characters: %w", common.ErrValidation)
	}
	if l := len(content); l < 2 || l > 1000 {
		return fmt.Errorf("content must be 2-1000 characters: %w", common.ErrValidation)
	}
	return nil
}

// CreatePost attributes the new post to the acting user. Any authenticated
// user may create posts.
func (s *PostService) CreatePost(ctx context.Context, userID int64, req CreatePostRequest) (*model.Post, error) {
	if err := model.CanMutate(userID, nil, model.PostCreate); err != nil {
		return nil, err
	}
	if err := validatePost(req.Title, req.Content); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:    req.Title,
		Slug:     slug.Make(req.Title),
		Content:  req.Content,
		AuthorID: userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	return s.postRepo.FindByID(ctx, id)
}

// UpdatePost applies the provided fields after the ownership check.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID int64, req UpdatePostRequest) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := model.CanMutate(userID, post, model.PostUpdate); err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
		post.Slug = slug.Make(post.Title)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if err := validatePost(post.Title, post.Content); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID int64) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := model.CanMutate(userID, post, model.PostDelete); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// ListPosts returns the home feed, newest first. Pages are 1-based.
func (s *PostService) ListPosts(ctx context.Context, page int) ([]*model.Post, error) {
	limit, offset := s.pageWindow(page)
	return s.postRepo.List(ctx, limit, offset)
}

// ListUserPosts returns one author's posts, newest first.
func (s *PostService) ListUserPosts(ctx context.Context, username string, page int) ([]*model.Post, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	limit, offset := s.pageWindow(page)
	return s.postRepo.ListByAuthor(ctx, user.ID, limit, offset)
}

func (s *PostService) pageWindow(page int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	return s.perPage, (page - 1) * s.perPage
}
