package repository

import (
	"github.com/Jkweks/labelgen/internal/model"
	"gorm.io/gorm"
)

// LabelRepository 标签仓储接口
type LabelRepository interface {
	Save(label *model.LabelModel) error
	FindByID(id uint) (*model.LabelModel, error)
	FindWithTemplate(id uint) (*model.LabelModel, error)
	FindAllWithTemplate() ([]*model.LabelModel, error)
	FindByTemplateID(templateID uint) ([]*model.LabelModel, error)
	Delete(id uint) error
}

// labelRepository 标签仓储实现
type labelRepository struct {
	db *gorm.DB
}

// NewLabelRepository 创建标签仓储
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &labelRepository{db: db}
}

// Save 保存标签
func (r *labelRepository) Save(label *model.LabelModel) error {
	return r.db.Save(label).Error
}

// FindByID 根据 ID 查找标签
func (r *labelRepository) FindByID(id uint) (*model.LabelModel, error) {
	var label model.LabelModel
	if err := r.db.First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// FindWithTemplate 根据 ID 查找标签并带出所属模板
func (r *labelRepository) FindWithTemplate(id uint) (*model.LabelModel, error) {
	var label model.LabelModel
	if err := r.db.Preload("Template").First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// FindAllWithTemplate 查找所有标签并带出模板,按厂商、零件号排序
func (r *labelRepository) FindAllWithTemplate() ([]*model.LabelModel, error) {
	var labels []*model.LabelModel
	err := r.db.Preload("Template").
		Order("manufacturer COLLATE NOCASE, part_number COLLATE NOCASE").
		Find(&labels).Error
	return labels, err
}

// FindByTemplateID 查找模板下的所有标签
func (r *labelRepository) FindByTemplateID(templateID uint) ([]*model.LabelModel, error) {
	var labels []*model.LabelModel
	err := r.db.Where("template_id = ?", templateID).Find(&labels).Error
	return labels, err
}

// Delete 删除标签
func (r *labelRepository) Delete(id uint) error {
	return r.db.Delete(&model.LabelModel{}, id).Error
}
