package service

import (
	"fmt"
	"time"

	"github.com/Jkweks/labelgen/internal/layout"
	"github.com/Jkweks/labelgen/internal/model"
	"github.com/Jkweks/labelgen/internal/render"
	"github.com/Jkweks/labelgen/internal/repository"
)

// PrintService 打印服务接口
type PrintService interface {
	BuildSheet(req *PrintRequest) (*PrintResult, error)
}

// PrintRequest 打印请求: 有序的标签选择
type PrintRequest struct {
	Items         []PrintSelection `json:"items"`
	LabelsPerPage int              `json:"labels_per_page"`
}

// PrintSelection 单个选择项,Copies 为空时使用标签的默认份数
type PrintSelection struct {
	LabelID uint `json:"label_id"`
	Copies  *int `json:"copies"`
}

// PrintResult 构建完成的打印文档
type PrintResult struct {
	Data     []byte
	Filename string
}

// printService 打印服务实现
type printService struct {
	labels      repository.LabelRepository
	uploadsRoot string
}

// NewPrintService 创建打印服务
func NewPrintService(labels repository.LabelRepository, uploadsRoot string) PrintService {
	return &printService{labels: labels, uploadsRoot: uploadsRoot}
}

// BuildSheet 解析选择项并构建标签页 PDF
// 未知标签 ID 返回 NotFound,双栏模板缺右侧必填字段返回校验错误,
// 两者都在产出任何页面之前发生;空选择输出带占位文案的单页文档。
func (s *printService) BuildSheet(req *PrintRequest) (*PrintResult, error) {
	if req == nil {
		return nil, ValidationError("request body is required")
	}

	items := make([]render.PrintItem, 0, len(req.Items))
	for _, selection := range req.Items {
		label, err := s.labels.FindWithTemplate(selection.LabelID)
		if err != nil {
			return nil, NotFoundError(fmt.Sprintf("label %d not found", selection.LabelID))
		}
		if label.Template == nil {
			return nil, NotFoundError(fmt.Sprintf("template %d not found", label.TemplateID))
		}

		if err := label.Validate(label.Template.PartsPerLabel); err != nil {
			return nil, ValidationError(fmt.Sprintf("label %d: %s", label.ID, err.Error()))
		}

		copies := label.DefaultCopies
		if selection.Copies != nil {
			copies = *selection.Copies
		}
		if copies < 1 {
			copies = 1
		}

		items = append(items, render.PrintItem{
			Label:  BuildLabelData(label),
			Copies: copies,
		})
	}

	data, err := render.BuildSheet(items, render.SheetOptions{
		UploadsRoot:   s.uploadsRoot,
		LabelsPerPage: req.LabelsPerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet: %w", err)
	}

	return &PrintResult{
		Data:     data,
		Filename: fmt.Sprintf("labels-%s.pdf", time.Now().UTC().Format("20060102-150405")),
	}, nil
}

// BuildLabelData 把持久化记录转换成渲染输入快照
func BuildLabelData(label *model.LabelModel) render.LabelData {
	template := label.Template

	config := render.TemplateConfig{
		Name:               template.Name,
		ImagePosition:      template.ImagePosition,
		AccentColor:        template.AccentColor,
		TextAlign:          template.TextAlign,
		IncludeDescription: template.IncludeDescription,
		PartsPerLabel:      template.PartsPerLabel,
		Layout:             layout.Normalize([]byte(template.LayoutConfig), template.PartsPerLabel, template.IncludeDescription),
		FieldFormats:       layout.NormalizeFormats([]byte(template.FieldFormats)),
	}

	data := render.LabelData{
		Left: render.Part{
			Manufacturer:  label.Manufacturer,
			PartNumber:    label.PartNumber,
			Description:   label.Description,
			StockQuantity: label.StockQuantity,
			BinLocation:   label.BinLocation,
			ImageURL:      label.ImageURL,
			Notes:         label.Notes,
		},
		Template: config,
	}

	if template.PartsPerLabel == 2 && label.HasRightPart() {
		data.Right = &render.Part{
			Manufacturer:  label.ManufacturerRight,
			PartNumber:    label.PartNumberRight,
			Description:   label.DescriptionRight,
			StockQuantity: label.StockQuantityRight,
			BinLocation:   label.BinLocationRight,
			ImageURL:      label.ImageURLRight,
			Notes:         label.NotesRight,
		}
	}

	return data
}
