package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jkweks/labelgen/internal/model"
	"github.com/Jkweks/labelgen/internal/repository"
	"github.com/Jkweks/labelgen/internal/utils"
	"gorm.io/gorm"
)

// LabelService 标签服务接口
type LabelService interface {
	Create(req *CreateLabelRequest) (*model.LabelModel, error)
	Get(id uint) (*model.LabelModel, error)
	Update(id uint, req *UpdateLabelRequest) (*model.LabelModel, error)
	Delete(id uint) error
	List() ([]*model.LabelModel, error)
	ListByTemplate(templateID uint) ([]*model.LabelModel, error)
}

// CreateLabelRequest 创建标签请求
type CreateLabelRequest struct {
	TemplateID uint `json:"template_id"`

	Manufacturer  string `json:"manufacturer"`
	PartNumber    string `json:"part_number"`
	Description   string `json:"description"`
	StockQuantity int    `json:"stock_quantity"`
	BinLocation   string `json:"bin_location"`
	ImageURL      string `json:"image_url"`
	Notes         string `json:"notes"`

	ManufacturerRight  string `json:"manufacturer_right"`
	PartNumberRight    string `json:"part_number_right"`
	DescriptionRight   string `json:"description_right"`
	StockQuantityRight int    `json:"stock_quantity_right"`
	BinLocationRight   string `json:"bin_location_right"`
	ImageURLRight      string `json:"image_url_right"`
	NotesRight         string `json:"notes_right"`

	DefaultCopies int `json:"default_copies"`
}

// UpdateLabelRequest 更新标签请求
type UpdateLabelRequest = CreateLabelRequest

// labelService 标签服务实现
type labelService struct {
	labels    repository.LabelRepository
	templates repository.TemplateRepository
}

// NewLabelService 创建标签服务
func NewLabelService(labels repository.LabelRepository, templates repository.TemplateRepository) LabelService {
	return &labelService{labels: labels, templates: templates}
}

// Create 创建标签,双栏模板要求右侧必填字段齐全
func (s *labelService) Create(req *CreateLabelRequest) (*model.LabelModel, error) {
	label, err := s.applyRequest(&model.LabelModel{}, req)
	if err != nil {
		return nil, err
	}
	if err := s.labels.Save(label); err != nil {
		return nil, fmt.Errorf("failed to save label: %w", err)
	}
	return s.labels.FindWithTemplate(label.ID)
}

// Get 获取标签及其模板
func (s *labelService) Get(id uint) (*model.LabelModel, error) {
	label, err := s.labels.FindWithTemplate(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(fmt.Sprintf("label %d not found", id))
		}
		return nil, fmt.Errorf("failed to load label: %w", err)
	}
	return label, nil
}

// Update 更新标签
func (s *labelService) Update(id uint, req *UpdateLabelRequest) (*model.LabelModel, error) {
	label, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	label, err = s.applyRequest(label, req)
	if err != nil {
		return nil, err
	}
	if err := s.labels.Save(label); err != nil {
		return nil, fmt.Errorf("failed to save label: %w", err)
	}
	return s.labels.FindWithTemplate(label.ID)
}

// Delete 删除标签
func (s *labelService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.labels.Delete(id); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

// List 列出所有标签及其模板
func (s *labelService) List() ([]*model.LabelModel, error) {
	labels, err := s.labels.FindAllWithTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// ListByTemplate 列出模板下的所有标签
func (s *labelService) ListByTemplate(templateID uint) ([]*model.LabelModel, error) {
	if _, err := s.templates.FindByID(templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(fmt.Sprintf("template %d not found", templateID))
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	labels, err := s.labels.FindByTemplateID(templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels by template: %w", err)
	}
	return labels, nil
}

// applyRequest 将请求套用到标签并按所属模板校验
func (s *labelService) applyRequest(label *model.LabelModel, req *CreateLabelRequest) (*model.LabelModel, error) {
	templateID := req.TemplateID
	if templateID == 0 {
		templateID = label.TemplateID
	}
	if templateID == 0 {
		return nil, ValidationError("template_id is required")
	}

	template, err := s.templates.FindByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(fmt.Sprintf("template %d not found", templateID))
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	cleaned := func(value string) string {
		return strings.TrimSpace(utils.SanitizeString(value))
	}

	label.TemplateID = template.ID
	label.Manufacturer = cleaned(req.Manufacturer)
	label.PartNumber = cleaned(req.PartNumber)
	label.Description = cleaned(req.Description)
	label.StockQuantity = req.StockQuantity
	label.BinLocation = cleaned(req.BinLocation)
	label.ImageURL = strings.TrimSpace(req.ImageURL)
	label.Notes = cleaned(req.Notes)

	label.ManufacturerRight = cleaned(req.ManufacturerRight)
	label.PartNumberRight = cleaned(req.PartNumberRight)
	label.DescriptionRight = cleaned(req.DescriptionRight)
	label.StockQuantityRight = req.StockQuantityRight
	label.BinLocationRight = cleaned(req.BinLocationRight)
	label.ImageURLRight = strings.TrimSpace(req.ImageURLRight)
	label.NotesRight = cleaned(req.NotesRight)

	// 份数静默下限 1
	label.DefaultCopies = req.DefaultCopies
	if label.DefaultCopies < 1 {
		label.DefaultCopies = 1
	}

	if err := label.Validate(template.PartsPerLabel); err != nil {
		return nil, ValidationError(err.Error())
	}
	label.Template = template
	return label, nil
}
