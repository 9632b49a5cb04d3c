package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/atelierlabs/planner-api/internal/models"
	"github.com/atelierlabs/planner-api/internal/planner"
	"github.com/atelierlabs/planner-api/internal/repository"
	"github.com/atelierlabs/planner-api/internal/transfer"
)

var (
	ErrPostPublished  = errors.New("published posts cannot be edited")
	ErrInvalidType    = errors.New("type must be post or story")
	ErrEmptySelection = errors.New("selection is empty")
)

type PostService interface {
	CreateDrafts(ctx context.Context, brandID int64, uploadType string, files []*multipart.FileHeader) ([]*models.Post, error)
	List(ctx context.Context, brandID int64, typeFilter string) ([]*models.Post, error)
	Info(ctx context.Context, postID int64) (*models.Post, error)
	Update(ctx context.Context, pu *transfer.PostUpdate) error
	Move(ctx context.Context, req *transfer.MoveRequest) (*planner.Mutation, error)
	Remove(ctx context.Context, postID int64) error
	RemoveMany(ctx context.Context, ids []int64) error
}

type postService struct {
	pr repository.PostRepository
	r2 *R2Service
}

func NewPostService(pr repository.PostRepository, r2 *R2Service) PostService {
	return &postService{pr: pr, r2: r2}
}

// CreateDrafts is the upload intake: every accepted file becomes one new
// draft post carrying the stored asset's public URL and the active upload
// type. A file that fails is skipped; the rest still go through.
func (s *postService) CreateDrafts(ctx context.Context, brandID int64, uploadType string, files []*multipart.FileHeader) ([]*models.Post, error) {
	if uploadType != models.PostTypePost && uploadType != models.PostTypeStory {
		return nil, ErrInvalidType
	}
	if len(files) == 0 {
		return nil, errors.New("no files provided")
	}

	var created []*models.Post
	var lastErr error

	for _, file := range files {
		post, err := s.intakeFile(ctx, brandID, uploadType, file)
		if err != nil {
			slog.Error(fmt.Sprintf("upload failed for %s: %v", file.Filename, err))
			lastErr = err
			continue
		}
		created = append(created, post)
	}

	if len(created) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return created, nil
}

func (s *postService) intakeFile(ctx context.Context, brandID int64, uploadType string, file *multipart.FileHeader) (*models.Post, error) {
	allowedTypes := map[string]struct{}{
		"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
	}

	fileContent, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return nil, fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return nil, fmt.Errorf("unsupported file type: %w", err)
	}
	if _, ok := allowedTypes[fileType.Extension]; !ok {
		return nil, fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	key, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	if err := s.r2.Upload(ctx, key, fileBytes, fileType.MIME.Value); err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}

	now := time.Now()
	post := models.Post{
		BrandID:     brandID,
		Type:        uploadType,
		ContentText: "",
		MediaURL:    s.r2.PublicURL(key),
		Status:      models.PostStatusDraft,
		ScheduledAt: &now,
	}

	postID, err := s.pr.Create(ctx, nil, &post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	post.ID = postID
	post.CreatedAt = now
	post.UpdatedAt = now

	return &post, nil
}

func (s *postService) List(ctx context.Context, brandID int64, typeFilter string) ([]*models.Post, error) {
	posts, err := s.pr.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return planner.FilterByType(posts, typeFilter), nil
}

func (s *postService) Info(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Update edits caption and type. Published posts are immutable through
// this path.
func (s *postService) Update(ctx context.Context, pu *transfer.PostUpdate) error {
	if pu.Type != models.PostTypePost && pu.Type != models.PostTypeStory {
		return ErrInvalidType
	}

	post, err := s.pr.GetByID(ctx, pu.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.Status == models.PostStatusPublished {
		return ErrPostPublished
	}

	return s.pr.UpdateContent(ctx, pu.PostID, pu.ContentText, pu.Type)
}

// Move commits a drag gesture server-side. The drag engine enforces the
// interaction rules; a nil mutation means the drop was a recognized
// no-op (same cell, or draft dropped back on the pool).
func (s *postService) Move(ctx context.Context, req *transfer.MoveRequest) (*planner.Mutation, error) {
	post, err := s.pr.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	session := planner.NewDragSession()
	if err := session.Start(post); err != nil {
		return nil, err
	}

	var target *planner.Target
	switch req.Target {
	case "pool":
		target = &planner.Target{Pool: true}
	case "cell":
		target = &planner.Target{Date: req.Date, Time: req.Time}
	default:
		session.Cancel()
		return nil, planner.ErrBadTarget
	}

	mutation, err := session.Drop(target)
	if err != nil {
		return nil, err
	}
	if mutation == nil {
		return nil, nil
	}

	if err := s.pr.UpdateSchedule(ctx, mutation.PostID, mutation.Status, mutation.ScheduledAt); err != nil {
		return nil, fmt.Errorf("error persisting move: %w", err)
	}

	return mutation, nil
}

func (s *postService) Remove(ctx context.Context, postID int64) error {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := s.pr.Remove(ctx, postID); err != nil {
		return fmt.Errorf("error removing post: %w", err)
	}
	return nil
}

// RemoveMany deletes the batch in one persistence call; on failure
// nothing is removed and the selection can be retried.
func (s *postService) RemoveMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	if err := s.pr.RemoveMany(ctx, ids); err != nil {
		return fmt.Errorf("error removing posts: %w", err)
	}
	return nil
}
