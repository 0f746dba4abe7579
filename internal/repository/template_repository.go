package repository

import (
	"github.com/Jkweks/labelgen/internal/model"
	"gorm.io/gorm"
)

// TemplateRepository 模板仓储接口
type TemplateRepository interface {
	Save(template *model.TemplateModel) error
	FindByID(id uint) (*model.TemplateModel, error)
	FindByName(name string) (*model.TemplateModel, error)
	FindAll() ([]*model.TemplateModel, error)
	Delete(id uint) error
}

// templateRepository 模板仓储实现
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建模板仓储
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// Save 保存模板
func (r *templateRepository) Save(template *model.TemplateModel) error {
	return r.db.Save(template).Error
}

// FindByID 根据 ID 查找模板
func (r *templateRepository) FindByID(id uint) (*model.TemplateModel, error) {
	var template model.TemplateModel
	if err := r.db.First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByName 根据名称查找模板(不区分大小写)
func (r *templateRepository) FindByName(name string) (*model.TemplateModel, error) {
	var template model.TemplateModel
	if err := r.db.Where("name = ? COLLATE NOCASE", name).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindAll 查找所有模板,按名称排序
func (r *templateRepository) FindAll() ([]*model.TemplateModel, error) {
	var templates []*model.TemplateModel
	err := r.db.Order("name COLLATE NOCASE").Find(&templates).Error
	return templates, err
}

// Delete 删除模板,关联标签级联删除
func (r *templateRepository) Delete(id uint) error {
	return r.db.Delete(&model.TemplateModel{}, id).Error
}
