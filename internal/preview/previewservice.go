package preview

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/jo-hoe/gosplash/internal/core"
	"github.com/labstack/echo/v4"
)

const (
	MainPageName = "index.html"
	mimePNG      = "image/png"
)

// PreviewService serves the generated splash screens over HTTP so they can
// be inspected in a browser before running a device build.
type PreviewService struct {
	coreService *core.CoreService
	config      *core.ServiceConfig
}

func NewPreviewService(config *core.ServiceConfig, coreService *core.CoreService) *PreviewService {
	return &PreviewService{
		coreService: coreService,
		config:      config,
	}
}

// assetView is the JSON shape returned by /api/assets and the per-variant
// data handed to the index template.
type assetView struct {
	Name        string `json:"name"`
	Filename    string `json:"filename"`
	Background  string `json:"background"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	SizeBytes   int64  `json:"sizeBytes"`
	Exists      bool   `json:"exists"`
	ContentHash string `json:"contentHash,omitempty"`
}

func (service *PreviewService) SetRoutes(e *echo.Echo) {
	// Create template renderer
	e.Renderer = &Template{
		templates: template.Must(template.New("").ParseFS(templateFS, viewsPattern)),
	}

	e.GET("/probe", service.probeHandler)
	e.GET("/", service.rootRedirectHandler) // Redirect root to index.html
	e.GET("/"+MainPageName, service.indexHandler)
	e.GET("/splash/:file", service.splashImageHandler)
	e.GET("/api/assets", service.listAssetsHandler)
}

func (service *PreviewService) probeHandler(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "ok")
}

// rootRedirectHandler redirects root path to index.html
func (service *PreviewService) rootRedirectHandler(ctx echo.Context) error {
	return ctx.Redirect(http.StatusMovedPermanently, "/"+MainPageName)
}

func (service *PreviewService) indexHandler(ctx echo.Context) error {
	data := map[string]any{
		"Assets":    service.assetViews(),
		"Timestamp": service.timestampNanoStr(),
	}
	return ctx.Render(http.StatusOK, MainPageName, data)
}

func (service *PreviewService) splashImageHandler(ctx echo.Context) error {
	file := ctx.Param("file")
	if !service.isConfiguredFilename(file) {
		slog.Warn("splashImageHandler: requested file is not a configured variant",
			"status", http.StatusNotFound, "file", file)
		return ctx.String(http.StatusNotFound, "Unknown splash file")
	}

	data, err := os.ReadFile(filepath.Join(service.outputDir(), file))
	if err != nil {
		slog.Warn("splashImageHandler: splash not available",
			"status", http.StatusNotFound, "file", file, "error", err)
		return ctx.String(http.StatusNotFound, "Splash not available")
	}

	// Prevent caching so a regenerated splash is always shown
	service.setNoCache(ctx)

	return ctx.Blob(http.StatusOK, mimePNG, data)
}

func (service *PreviewService) listAssetsHandler(ctx echo.Context) error {
	service.setNoCache(ctx)
	return ctx.JSON(http.StatusOK, service.assetViews())
}

// assetViews merges on-disk state with manifest records for every configured
// variant. Variants without a generated file are still listed so the page can
// show what is missing.
func (service *PreviewService) assetViews() []assetView {
	outputDir := service.outputDir()
	views := make([]assetView, 0, len(service.config.Variants))
	for _, variant := range service.config.Variants {
		view := assetView{
			Name:       variant.Name,
			Filename:   variant.Filename,
			Background: variant.Background,
			Width:      service.config.CanvasWidth,
			Height:     service.config.CanvasHeight,
		}
		if info, err := os.Stat(filepath.Join(outputDir, variant.Filename)); err == nil {
			view.Exists = true
			view.SizeBytes = info.Size()
		}
		if manifestService := service.coreService.GetManifestService(); manifestService != nil {
			asset, err := manifestService.GetAssetByVariant(variant.Name)
			if err != nil {
				slog.Error("assetViews: failed to read manifest record",
					"variant", variant.Name, "error", err)
			} else if asset != nil {
				view.ContentHash = asset.ContentHash
			}
		}
		views = append(views, view)
	}
	return views
}

// isConfiguredFilename restricts /splash/:file to the filenames of configured
// variants, so arbitrary paths never reach the filesystem.
func (service *PreviewService) isConfiguredFilename(file string) bool {
	for _, variant := range service.config.Variants {
		if variant.Filename == file {
			return true
		}
	}
	return false
}

func (service *PreviewService) outputDir() string {
	return filepath.Join(service.coreService.ResolveProjectRoot(), service.config.OutputDir)
}

func (service *PreviewService) setNoCache(ctx echo.Context) {
	ctx.Response().Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	ctx.Response().Header().Set("Pragma", "no-cache")
	ctx.Response().Header().Set("Expires", "0")
}

func (service *PreviewService) timestampNanoStr() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
