package ui

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"prizedeck/app"
	"prizedeck/domain/core"
	"prizedeck/domain/results"
	"prizedeck/internal/errors"
	"prizedeck/ports"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	workbookField = "workbook"
	templateField = "template"

	workbookExt = ".xlsx"
	templateExt = ".pptx"
)

type indexPage struct {
	MaxUploadMB int
}

type uploadPage struct {
	ID           string
	WorkbookName string
	TemplateName string
	Sheets       []string
	Sheet        string
	Day          string
	Preview      *results.Preview
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "index.html", indexPage{MaxUploadMB: s.cfg.MaxUploadMB})
}

// handleUpload stores the workbook and template and redirects to the sheet view
func (s *Server) handleUpload(c *gin.Context) {
	workbookName, workbook, err := s.readFile(c, workbookField, workbookExt)
	if err != nil {
		s.renderError(c, err, "/")
		return
	}
	templateName, tmpl, err := s.readFile(c, templateField, templateExt)
	if err != nil {
		s.renderError(c, err, "/")
		return
	}

	id, err := s.uploads.Put(c.Request.Context(), &ports.Upload{
		WorkbookName: workbookName,
		Workbook:     workbook,
		TemplateName: templateName,
		Template:     tmpl,
	})
	if err != nil {
		s.renderError(c, errors.Wrap(err, "failed to store upload"), "/")
		return
	}

	s.log.Info("Upload stored",
		zap.String("upload_id", id.String()),
		zap.String("workbook", workbookName),
		zap.String("template", templateName))

	c.Redirect(http.StatusSeeOther, "/uploads/"+id.String())
}

// handleUploadView shows the sheet selector, the preview and the generate form
func (s *Server) handleUploadView(c *gin.Context) {
	ctx := c.Request.Context()

	upload, err := s.loadUpload(ctx, c.Param("id"))
	if err != nil {
		s.renderError(c, err, "/")
		return
	}

	sheets, err := s.deck.Sheets(ctx, upload.Workbook)
	if err != nil {
		s.renderError(c, err, "/")
		return
	}

	sheet := c.DefaultQuery("sheet", sheets[0])
	if !contains(sheets, sheet) {
		s.renderError(c, errors.NotFound(fmt.Sprintf("sheet %q", sheet)), "/uploads/"+upload.ID.String())
		return
	}

	preview, err := s.deck.Preview(ctx, upload.Workbook, sheet, s.cfg.PreviewRows)
	if err != nil {
		s.renderError(c, err, "/uploads/"+upload.ID.String())
		return
	}

	s.renderTemplate(c, http.StatusOK, "upload.html", uploadPage{
		ID:           upload.ID.String(),
		WorkbookName: upload.WorkbookName,
		TemplateName: upload.TemplateName,
		Sheets:       sheets,
		Sheet:        sheet,
		Day:          s.deck.Day(sheet),
		Preview:      preview,
	})
}

// handleGenerate builds the deck for a stored upload and sends it as a download
func (s *Server) handleGenerate(c *gin.Context) {
	ctx := c.Request.Context()
	back := "/uploads/" + c.Param("id")

	upload, err := s.loadUpload(ctx, c.Param("id"))
	if err != nil {
		s.renderError(c, err, "/")
		return
	}

	result, err := s.deck.Generate(ctx, app.GenerateRequest{
		Workbook:       upload.Workbook,
		Template:       upload.Template,
		Sheet:          c.PostForm("sheet"),
		DropFirstSlide: formBool(c.PostForm("drop_first_slide")),
	})
	if err != nil {
		s.renderError(c, err, back)
		return
	}

	s.sendDeck(c, result)
}

func (s *Server) handleAPISheets(c *gin.Context) {
	_, workbook, err := s.readFile(c, workbookField, workbookExt)
	if err != nil {
		s.apiError(c, err)
		return
	}

	sheets, err := s.deck.Sheets(c.Request.Context(), workbook)
	if err != nil {
		s.apiError(c, err)
		return
	}

	days := make([]string, len(sheets))
	for i, sheet := range sheets {
		days[i] = s.deck.Day(sheet)
	}
	c.JSON(http.StatusOK, gin.H{"sheets": sheets, "days": days})
}

func (s *Server) handleAPIDecks(c *gin.Context) {
	_, workbook, err := s.readFile(c, workbookField, workbookExt)
	if err != nil {
		s.apiError(c, err)
		return
	}
	_, tmpl, err := s.readFile(c, templateField, templateExt)
	if err != nil {
		s.apiError(c, err)
		return
	}

	result, err := s.deck.Generate(c.Request.Context(), app.GenerateRequest{
		Workbook:       workbook,
		Template:       tmpl,
		Sheet:          c.PostForm("sheet"),
		DropFirstSlide: formBool(c.PostForm("drop_first_slide")),
	})
	if err != nil {
		s.apiError(c, err)
		return
	}

	s.sendDeck(c, result)
}

func (s *Server) sendDeck(c *gin.Context, result *app.GenerateResult) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.FileName}))
	c.Header("X-Deck-Slides", strconv.Itoa(result.Slides))
	c.Header("X-Deck-Groups", strconv.Itoa(result.Groups))
	c.Header("X-Deck-Entries", strconv.Itoa(result.Entries))
	if len(result.Warnings) > 0 {
		c.Header("X-Deck-Warnings", strings.Join(result.Warnings, "; "))
	}
	c.Data(http.StatusOK, app.PresentationContentType, result.Deck)
}

func (s *Server) loadUpload(ctx context.Context, rawID string) (*ports.Upload, error) {
	id, err := core.ParseID(rawID)
	if err != nil {
		return nil, errors.NotFound("upload")
	}
	return s.uploads.Get(ctx, id)
}

// readFile reads one multipart file field, enforcing its extension and the
// per-file size cap.
func (s *Server) readFile(c *gin.Context, field, ext string) (string, []byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return "", nil, errors.TooLarge(fmt.Sprintf("upload exceeds %d MB", s.cfg.MaxUploadMB))
		}
		return "", nil, errors.InvalidInput(fmt.Sprintf("%s file is required", field))
	}

	name := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ext) {
		return "", nil, errors.InvalidInput(fmt.Sprintf("%s must be a %s file, got %q", field, ext, name))
	}
	if header.Size > s.cfg.MaxUploadBytes() {
		return "", nil, errors.TooLarge(fmt.Sprintf("%s %q exceeds %d MB", field, name, s.cfg.MaxUploadMB))
	}

	file, err := header.Open()
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to open %s upload", field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to read %s upload", field)
	}
	if len(data) == 0 {
		return "", nil, errors.InvalidInput(fmt.Sprintf("%s %q is empty", field, name))
	}
	return name, data, nil
}

func formBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "on", "true", "yes":
		return true
	}
	return false
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
