package ledger

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"finance-ledger/internal/models"
)

// CategoryService manages income/expenditure categories.
type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

// CreateCategoryInput carries the fields for a new category. Global creates
// a shared category with no owner and requires an admin actor.
type CreateCategoryInput struct {
	Name   string
	Type   string
	Global bool
}

type UpdateCategoryInput struct {
	Name string
	Type string
}

// NormalizeCategoryType uppercases the type and validates it against the
// recognized set. An unknown type is a validation failure, never a default.
func NormalizeCategoryType(categoryType string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(categoryType))
	for _, valid := range models.ValidCategoryTypes {
		if normalized == valid {
			return normalized, nil
		}
	}
	return "", fmt.Errorf("%w: category type must be one of %s",
		ErrValidation, strings.Join(models.ValidCategoryTypes, ", "))
}

func (s *CategoryService) Create(in CreateCategoryInput, actor Actor) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	categoryType, err := NormalizeCategoryType(in.Type)
	if err != nil {
		return nil, err
	}

	category := models.Category{
		Name: strings.TrimSpace(in.Name),
		Type: categoryType,
	}
	if in.Global {
		if !actor.Admin {
			return nil, fmt.Errorf("%w: only admins may create global categories", ErrForbidden)
		}
	} else {
		ownerID := actor.ID
		category.UserID = &ownerID
	}

	if err := s.DB.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(id uint, in UpdateCategoryInput, actor Actor) (*models.Category, error) {
	var category models.Category
	if err := s.DB.First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !actor.CanWriteCategory(&category) {
		return nil, fmt.Errorf("%w: category %d", ErrForbidden, id)
	}

	if strings.TrimSpace(in.Name) != "" {
		category.Name = strings.TrimSpace(in.Name)
	}
	if in.Type != "" {
		categoryType, err := NormalizeCategoryType(in.Type)
		if err != nil {
			return nil, err
		}
		category.Type = categoryType
	}

	if err := s.DB.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Delete(id uint, actor Actor) error {
	var category models.Category
	if err := s.DB.First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return err
	}
	if !actor.CanWriteCategory(&category) {
		return fmt.Errorf("%w: category %d", ErrForbidden, id)
	}

	// categories referenced by transactions stay, same as the account rule
	var refs int64
	if err := s.DB.Model(&models.Transaction{}).
		Where("category_id = ?", id).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: category %d is referenced by %d transaction(s)", ErrInvalidOperation, id, refs)
	}

	return s.DB.Delete(&category).Error
}

func (s *CategoryService) GetByID(id uint, actor Actor) (*models.Category, error) {
	var category models.Category
	if err := s.DB.First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !actor.CanReadCategory(&category) {
		return nil, fmt.Errorf("%w: category %d", ErrForbidden, id)
	}
	return &category, nil
}

// ListByUser returns the user's own categories plus the global ones,
// optionally filtered by name substring.
func (s *CategoryService) ListByUser(userID uint, nameFilter string) ([]models.Category, error) {
	query := s.DB.Where("user_id = ? OR user_id IS NULL", userID)
	if nameFilter != "" {
		query = query.Where("name LIKE ?", "%"+nameFilter+"%")
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
