package render

import (
	"bytes"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	// 注册解码器,决定缓存可接受的图片格式
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const imageFetchTimeout = 10 * time.Second

// CachedImage 已解码图片: 原始字节、格式与像素尺寸
type CachedImage struct {
	Data   []byte
	Format string // fpdf 图片类型: png / jpg / gif
	Width  int
	Height int
}

// ImageCache 单次构建内的图片缓存
// 同一引用只抓取/解码一次,失败也会被记住;实例归调用方所有,
// 不跨并发构建共享。
type ImageCache struct {
	uploadsRoot string
	client      *http.Client
	store       map[string]*CachedImage
}

// NewImageCache 创建图片缓存,uploadsRoot 为本地图片的根目录
func NewImageCache(uploadsRoot string) *ImageCache {
	root := ""
	if uploadsRoot != "" {
		if abs, err := filepath.Abs(uploadsRoot); err == nil {
			root = abs
		}
	}
	return &ImageCache{
		uploadsRoot: root,
		client:      &http.Client{Timeout: imageFetchTimeout},
		store:       make(map[string]*CachedImage),
	}
}

// Get 解析图片引用,成功返回解码结果,任何失败返回 nil
// 返回值(包括 nil)都会被缓存,同一引用不会重复抓取。
func (c *ImageCache) Get(reference string) *CachedImage {
	if cached, ok := c.store[reference]; ok {
		return cached
	}

	var result *CachedImage
	parsed, err := url.Parse(reference)
	if err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		result = c.fetchRemote(reference)
	} else {
		result = c.loadLocal(reference, parsed)
	}

	c.store[reference] = result
	return result
}

// fetchRemote 抓取远程图片,非 2xx 响应视为不可用
func (c *ImageCache) fetchRemote(reference string) *CachedImage {
	response, err := c.client.Get(reference)
	if err != nil {
		return nil
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil
	}
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil
	}
	return decodeImage(data)
}

// loadLocal 解析本地图片路径,拒绝逃出上传根目录的路径
func (c *ImageCache) loadLocal(reference string, parsed *url.URL) *CachedImage {
	if reference == "" {
		return nil
	}

	var candidate string
	if parsed != nil && parsed.Scheme == "file" {
		candidate = parsed.Path
	} else {
		text := reference
		if parsed != nil && parsed.Path != "" {
			text = parsed.Path
		}
		stripped := strings.TrimLeft(text, "/")
		pathValue := strings.TrimPrefix(stripped, "uploads/")
		if pathValue == "" {
			return nil
		}

		if filepath.IsAbs(pathValue) {
			candidate = pathValue
		} else if c.uploadsRoot != "" {
			tentative := filepath.Join(c.uploadsRoot, pathValue)
			relative, err := filepath.Rel(c.uploadsRoot, tentative)
			if err != nil || relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
				return nil
			}
			candidate = tentative
		}
	}

	if candidate == "" {
		return nil
	}
	if _, err := os.Stat(candidate); err != nil {
		return nil
	}
	data, err := os.ReadFile(candidate)
	if err != nil {
		return nil
	}
	return decodeImage(data)
}

// decodeImage 完整解码图片字节,损坏或不支持的格式返回 nil
func decodeImage(data []byte) *CachedImage {
	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	imageType := format
	if format == "jpeg" {
		imageType = "jpg"
	}
	bounds := decoded.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil
	}
	return &CachedImage{
		Data:   data,
		Format: imageType,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
}
