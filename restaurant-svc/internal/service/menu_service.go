package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const MaxImageSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type MenuItemRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	CategoryID  json.Number `json:"category"`
	IsAvailable *bool       `json:"is_available"`
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type MenuServiceInterface interface {
	ListAvailable(ctx context.Context) ([]domain.MenuItem, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int) (*domain.MenuItem, error)
	Create(ctx context.Context, staff *domain.User, req MenuItemRequest) (*domain.MenuItem, error)
	Update(ctx context.Context, staff *domain.User, id int, req MenuItemRequest) (*domain.MenuItem, error)
	Delete(ctx context.Context, staff *domain.User, id int) error
	UpdateImage(ctx context.Context, staff *domain.User, id int, upload ImageUpload) (string, error)
	CreateCategory(ctx context.Context, staff *domain.User, category *domain.Category) error
	DeleteCategory(ctx context.Context, staff *domain.User, id int) error
}

type MenuService struct {
	repo      MenuRepository
	uploadDir string
}

func NewMenuService(repo MenuRepository, uploadDir string) *MenuService {
	return &MenuService{repo: repo, uploadDir: uploadDir}
}

func (s *MenuService) ListAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListAvailableItems(ctx)
}

func (s *MenuService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *MenuService) Get(ctx context.Context, id int) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

func (s *MenuService) Create(ctx context.Context, staff *domain.User, req MenuItemRequest) (*domain.MenuItem, error) {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return nil, err
	}
	item := &domain.MenuItem{IsAvailable: true}
	if err := s.fill(ctx, item, req); err != nil {
		return nil, err
	}
	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	log.Printf("[restaurant-svc] menu item %d (%s) created by %s", item.ID, item.Name, staff.Username)
	return item, nil
}

func (s *MenuService) Update(ctx context.Context, staff *domain.User, id int, req MenuItemRequest) (*domain.MenuItem, error) {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return nil, err
	}
	item, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.fill(ctx, item, req); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the item together with its order lines and reviews.
func (s *MenuService) Delete(ctx context.Context, staff *domain.User, id int) error {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return err
	}
	if err := s.repo.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	log.Printf("[restaurant-svc] menu item %d deleted by %s", id, staff.Username)
	return nil
}

func (s *MenuService) UpdateImage(ctx context.Context, staff *domain.User, id int, upload ImageUpload) (string, error) {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return "", err
	}
	if !allowedImageTypes[upload.ContentType] {
		return "", invalid("image", "Invalid file type. Only JPEG, PNG, GIF, WebP allowed")
	}
	if upload.Size > MaxImageSize {
		return "", invalid("image", "File too large")
	}
	if _, err := s.repo.GetMenuItem(ctx, id); err != nil {
		return "", err
	}

	dir := filepath.Join(s.uploadDir, "menu_images")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	filename := "menu_" + strconv.Itoa(id) + "_" + filepath.Base(upload.Filename)
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(upload.Body, MaxImageSize)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	imageURL := "/uploads/menu_images/" + filename
	if err := s.repo.UpdateMenuItemImage(ctx, id, imageURL); err != nil {
		return "", err
	}
	return imageURL, nil
}

func (s *MenuService) CreateCategory(ctx context.Context, staff *domain.User, category *domain.Category) error {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return err
	}
	category.Name = strings.TrimSpace(category.Name)
	category.Description = strings.TrimSpace(category.Description)
	if category.Name == "" {
		return invalid("name", "name is required")
	}
	if len(category.Name) > 100 {
		return invalid("name", "name must be at most 100 characters")
	}
	return s.repo.CreateCategory(ctx, category)
}

// DeleteCategory removes the category and every item in it.
func (s *MenuService) DeleteCategory(ctx context.Context, staff *domain.User, id int) error {
	if err := domain.RequireRole(staff, domain.RoleStaff); err != nil {
		return err
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	log.Printf("[restaurant-svc] category %d deleted by %s", id, staff.Username)
	return nil
}

func (s *MenuService) fill(ctx context.Context, item *domain.MenuItem, req MenuItemRequest) error {
	item.Name = req.Name
	item.Description = req.Description
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	price, err := decimal.NewFromString(strings.TrimSpace(string(req.Price)))
	if err != nil {
		return invalid("price", "Enter a valid price.")
	}
	item.Price = price

	if raw := strings.TrimSpace(string(req.CategoryID)); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			return invalid("category", "Select a valid category.")
		}
		item.CategoryID = categoryID
	}

	if err := validateMenuItem(item); err != nil {
		return err
	}

	category, err := s.repo.GetCategory(ctx, item.CategoryID)
	if errors.Is(err, domain.ErrNotFound) {
		return invalid("category", "Select a valid category.")
	}
	if err != nil {
		return err
	}
	item.CategoryName = category.Name
	return nil
}

var _ MenuServiceInterface = (*MenuService)(nil)
