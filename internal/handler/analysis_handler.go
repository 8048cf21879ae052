package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/export"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/port"
)

// Analyzer runs one full voucher analysis.
type Analyzer interface {
	Analyze(ctx context.Context, pdfBytes []byte, provider domain.ProviderType) (*domain.VoucherAnalysisResult, error)
}

// AnalysisHandler serves the voucher analysis endpoints.
type AnalysisHandler struct {
	analyzer       Analyzer
	store          port.AnalysisStore
	maxUploadBytes int64
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(analyzer Analyzer, store port.AnalysisStore, maxUploadSizeMB int) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer:       analyzer,
		store:          store,
		maxUploadBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// analysisView is the JSON shape of one stored analysis.
type analysisView struct {
	ID           string                       `json:"id"`
	Extracted    *domain.ExtractedVoucherData `json:"extracted,omitempty"`
	Validation   *domain.ValidationReport     `json:"validation,omitempty"`
	HasHighlight bool                         `json:"has_highlight"`
	Errors       []string                     `json:"errors"`
}

func toView(id string, result *domain.VoucherAnalysisResult) analysisView {
	return analysisView{
		ID:           id,
		Extracted:    result.Extracted,
		Validation:   result.Validation,
		HasHighlight: len(result.HighlightedDocument) > 0,
		Errors:       result.Errors,
	}
}

// Create handles POST /api/v1/analyses: a multipart PDF upload plus an
// optional "provider" field (default openai).
func (h *AnalysisHandler) Create(c *gin.Context) {
	providerType := domain.ProviderOpenAI
	if raw := c.PostForm("provider"); raw != "" {
		parsed, err := domain.ParseProviderType(raw)
		if err != nil {
			status, code, msg := MapDomainError(err)
			RespondError(c, status, code, msg)
			return
		}
		providerType = parsed
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field \"file\" is required")
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		status, code, msg := MapDomainError(domain.ErrUnsupportedFileType)
		RespondError(c, status, code, msg)
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		status, code, msg := MapDomainError(domain.ErrFileTooLarge)
		RespondError(c, status, code, msg)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	pdfBytes, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), pdfBytes, providerType)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	id := uuid.New().String()
	h.store.Save(id, result)
	RespondCreated(c, toView(id, result))
}

// List handles GET /api/v1/analyses.
func (h *AnalysisHandler) List(c *gin.Context) {
	keys := h.store.Keys()
	views := make([]analysisView, 0, len(keys))
	for _, id := range keys {
		if result, ok := h.store.Load(id); ok {
			views = append(views, toView(id, result))
		}
	}
	RespondOK(c, views)
}

// Get handles GET /api/v1/analyses/:id.
func (h *AnalysisHandler) Get(c *gin.Context) {
	result, ok := h.store.Load(c.Param("id"))
	if !ok {
		status, code, msg := MapDomainError(domain.ErrAnalysisNotFound)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, toView(c.Param("id"), result))
}

// Document handles GET /api/v1/analyses/:id/document: the highlighted PDF.
func (h *AnalysisHandler) Document(c *gin.Context) {
	result, ok := h.store.Load(c.Param("id"))
	if !ok {
		status, code, msg := MapDomainError(domain.ErrAnalysisNotFound)
		RespondError(c, status, code, msg)
		return
	}
	if len(result.HighlightedDocument) == 0 {
		RespondError(c, http.StatusNotFound, "NO_HIGHLIGHT", "no highlighted document available for this analysis")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="highlighted.pdf"`)
	c.Data(http.StatusOK, "application/pdf", result.HighlightedDocument)
}

// Report handles GET /api/v1/analyses/:id/report: the XLSX validation report.
func (h *AnalysisHandler) Report(c *gin.Context) {
	result, ok := h.store.Load(c.Param("id"))
	if !ok {
		status, code, msg := MapDomainError(domain.ErrAnalysisNotFound)
		RespondError(c, status, code, msg)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="report.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := export.WriteReport(c.Writer, result); err != nil {
		// Headers are already out; the broken download is all we can signal.
		_ = c.Error(err)
	}
}

// Delete handles DELETE /api/v1/analyses/:id.
func (h *AnalysisHandler) Delete(c *gin.Context) {
	if _, ok := h.store.Load(c.Param("id")); !ok {
		status, code, msg := MapDomainError(domain.ErrAnalysisNotFound)
		RespondError(c, status, code, msg)
		return
	}
	h.store.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}
