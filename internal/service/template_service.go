package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Jkweks/labelgen/internal/layout"
	"github.com/Jkweks/labelgen/internal/model"
	"github.com/Jkweks/labelgen/internal/repository"
	"github.com/Jkweks/labelgen/internal/utils"
	"gorm.io/gorm"
)

// TemplateService 模板服务接口
type TemplateService interface {
	Create(req *CreateTemplateRequest) (*model.TemplateModel, error)
	Get(id uint) (*model.TemplateModel, error)
	Update(id uint, req *UpdateTemplateRequest) (*model.TemplateModel, error)
	Delete(id uint) error
	List() ([]*model.TemplateModel, error)
}

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ImagePosition      string          `json:"image_position"`
	AccentColor        string          `json:"accent_color"`
	TextAlign          string          `json:"text_align"`
	IncludeDescription *bool           `json:"include_description"`
	PartsPerLabel      int             `json:"parts_per_label"`
	LayoutConfig       json.RawMessage `json:"layout_config"`
	FieldFormats       json.RawMessage `json:"field_formats"`
}

// UpdateTemplateRequest 更新模板请求
type UpdateTemplateRequest = CreateTemplateRequest

// templateService 模板服务实现
type templateService struct {
	templates repository.TemplateRepository
	labels    repository.LabelRepository
}

// NewTemplateService 创建模板服务
func NewTemplateService(templates repository.TemplateRepository, labels repository.LabelRepository) TemplateService {
	return &templateService{templates: templates, labels: labels}
}

// Create 创建模板,写入前规范化布局与字段格式
func (s *templateService) Create(req *CreateTemplateRequest) (*model.TemplateModel, error) {
	template, err := s.applyRequest(&model.TemplateModel{}, req)
	if err != nil {
		return nil, err
	}

	if existing, err := s.templates.FindByName(template.Name); err == nil && existing != nil {
		return nil, ValidationError(fmt.Sprintf("template name %q already exists", template.Name))
	}

	if err := s.templates.Save(template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	return template, nil
}

// Get 获取模板
func (s *templateService) Get(id uint) (*model.TemplateModel, error) {
	template, err := s.templates.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(fmt.Sprintf("template %d not found", id))
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return template, nil
}

// Update 更新模板,布局随新的栏数/描述设置重新规范化
func (s *templateService) Update(id uint, req *UpdateTemplateRequest) (*model.TemplateModel, error) {
	template, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if existing, err := s.templates.FindByName(strings.TrimSpace(req.Name)); err == nil && existing != nil && existing.ID != id {
		return nil, ValidationError(fmt.Sprintf("template name %q already exists", req.Name))
	}

	template, err = s.applyRequest(template, req)
	if err != nil {
		return nil, err
	}
	if err := s.templates.Save(template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	return template, nil
}

// Delete 删除模板,标签级联删除
func (s *templateService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.templates.Delete(id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// List 列出所有模板
func (s *templateService) List() ([]*model.TemplateModel, error) {
	templates, err := s.templates.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// applyRequest 将请求套用到模板并做规范化
// 布局与字段格式落库前总是与栏数/描述设置保持一致。
func (s *templateService) applyRequest(template *model.TemplateModel, req *CreateTemplateRequest) (*model.TemplateModel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ValidationError("template name is required")
	}

	template.Name = name
	template.Description = strings.TrimSpace(utils.SanitizeString(req.Description))

	template.ImagePosition = valueOrDefault(req.ImagePosition, "left")
	template.AccentColor = valueOrDefault(strings.TrimSpace(req.AccentColor), "#0a3d62")
	template.TextAlign = valueOrDefault(req.TextAlign, "left")

	template.IncludeDescription = true
	if req.IncludeDescription != nil {
		template.IncludeDescription = *req.IncludeDescription
	}
	template.PartsPerLabel = 1
	if req.PartsPerLabel == 2 {
		template.PartsPerLabel = 2
	}

	if err := template.Validate(); err != nil {
		return nil, ValidationError(err.Error())
	}

	normalized := layout.Normalize(req.LayoutConfig, template.PartsPerLabel, template.IncludeDescription)
	template.LayoutConfig = layout.MarshalConfig(normalized)
	template.FieldFormats = layout.MarshalFormats(layout.NormalizeFormats(req.FieldFormats))

	return template, nil
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
