package service

import (
	"context"
	"errors"
	"log/slog"

	config "github.com/atelierlabs/planner-api/configs"
	"github.com/atelierlabs/planner-api/internal/models"
	"github.com/atelierlabs/planner-api/internal/repository"
	"github.com/atelierlabs/planner-api/internal/transfer"
	"github.com/atelierlabs/planner-api/pkg/utils"
)

var ErrBrandNotFound = errors.New("brand doesn't exist")

type BrandService interface {
	List(ctx context.Context) ([]*models.Brand, error)
	Info(ctx context.Context, id int64) (*models.Brand, error)
	Create(ctx context.Context, bu *transfer.BrandUpdate) (int64, error)
	Update(ctx context.Context, bu *transfer.BrandUpdate) error
}

type brandService struct {
	cfg config.Config
	br  repository.BrandRepository
}

func NewBrandService(cfg config.Config, br repository.BrandRepository) BrandService {
	return &brandService{cfg: cfg, br: br}
}

func (s *brandService) List(ctx context.Context) ([]*models.Brand, error) {
	return s.br.List(ctx)
}

func (s *brandService) Info(ctx context.Context, id int64) (*models.Brand, error) {
	brand, ok, err := s.br.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.Info(ErrBrandNotFound.Error())
		return nil, ErrBrandNotFound
	}
	return brand, nil
}

func (s *brandService) Create(ctx context.Context, bu *transfer.BrandUpdate) (int64, error) {
	if bu.Name == "" {
		return 0, errors.New("brand name cannot be empty")
	}

	token, err := s.encryptToken(bu.MetaAccessToken)
	if err != nil {
		return 0, err
	}

	brand := models.Brand{
		Name:                bu.Name,
		InstagramBusinessID: bu.InstagramBusinessID,
		MetaAccessToken:     token,
	}
	return s.br.Create(ctx, &brand)
}

func (s *brandService) Update(ctx context.Context, bu *transfer.BrandUpdate) error {
	existing, ok, err := s.br.GetByID(ctx, bu.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBrandNotFound
	}

	// An empty token in the update keeps the stored one; tokens are never
	// echoed back to the client, so edits arrive without it.
	token := existing.MetaAccessToken
	if bu.MetaAccessToken != "" {
		token, err = s.encryptToken(bu.MetaAccessToken)
		if err != nil {
			return err
		}
	}

	brand := models.Brand{
		ID:                  bu.ID,
		Name:                bu.Name,
		InstagramBusinessID: bu.InstagramBusinessID,
		MetaAccessToken:     token,
	}
	return s.br.Update(ctx, &brand)
}

func (s *brandService) encryptToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	return utils.Encrypt([]byte(token), []byte(s.cfg.SecretKey))
}
