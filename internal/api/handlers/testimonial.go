package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"testimonial-portal-backend/internal/auth"
	apperrors "testimonial-portal-backend/internal/errors"
	"testimonial-portal-backend/internal/logger"
	"testimonial-portal-backend/internal/service"
	"testimonial-portal-backend/internal/store"
)

// Action names accepted by the dispatch endpoint.
const (
	ActionAdd         = "Add"
	ActionReview      = "Review Profile Submission"
	ActionModify      = "Modify"
	ActionSave        = "Save"
	ActionView        = "View"
	ActionDelete      = "Delete"
	ActionAccept      = "Accept"
	ActionViewAll     = "ViewAll"
	ActionAdmin       = "Admin"
	ActionAdminExport = "AdminExport"
	ActionSQL         = "sql"
)

// maxUploadBytes bounds the in-memory portion of a multipart parse.
const maxUploadBytes = 8 << 20

// gateParam is the request parameter carrying the admin gate value.
const gateParam = "p"

// logoField is the multipart field name of the optional logo upload.
const logoField = "org_logo"

// TestimonialHandler dispatches the single action endpoint onto the
// moderation workflow.
type TestimonialHandler struct {
	service service.TestimonialServiceInterface
	gate    *auth.Gate
	log     *logger.Logger
}

// NewTestimonialHandler creates a new testimonial handler
func NewTestimonialHandler(svc service.TestimonialServiceInterface, gate *auth.Gate) *TestimonialHandler {
	return &TestimonialHandler{
		service: svc,
		gate:    gate,
		log:     logger.New(),
	}
}

// Dispatch handles GET/POST /testimonials. The request carries an "action"
// plus action-specific parameters; admin-only actions additionally require
// the gate. An unauthorized admin action renders exactly like an unknown
// action so the response leaks nothing.
func (h *TestimonialHandler) Dispatch(c *gin.Context) {
	form := requestForm(c)
	action := form.Get("action")
	adminCtx := h.gate.Check(form.Get(gateParam))

	switch action {
	case ActionAdd:
		c.JSON(http.StatusOK, h.service.BlankForm())

	case ActionReview:
		resp, err := h.service.Submit(form, h.logoUpload(c))
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, resp)

	case ActionModify:
		resp, err := h.service.GetForEdit(form.Get("id"))
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)

	case ActionSave:
		resp, err := h.service.Save(form.Get("id"), form, h.logoUpload(c))
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)

	case ActionView:
		resp, err := h.service.Get(form.Get("id"), adminCtx.Admin)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)

	case ActionDelete:
		if err := h.service.Delete(form.Get("id")); err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "profile removed"})

	case ActionAccept:
		if !adminCtx.Admin {
			h.denyAdmin(c, action)
			return
		}
		hide := form.Get("hide") == "1"
		resp, err := h.service.SetVisibility(form.Get("id"), !hide)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)

	case ActionViewAll:
		offset, limit := pageParams(form)
		resp, err := h.service.List(store.FilterPublic, offset, limit, adminCtx.Admin)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)

	case ActionAdmin:
		if !adminCtx.Admin {
			h.denyAdmin(c, action)
			return
		}
		filter := store.FilterAll
		if form.Get("waiting") == "1" {
			filter = store.FilterWaiting
		}
		offset, limit := pageParams(form)
		resp, err := h.service.List(filter, offset, limit, true)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)

	case ActionAdminExport:
		if !adminCtx.Admin {
			h.denyAdmin(c, action)
			return
		}
		text, err := h.service.Export(form.Get("id"))
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.String(http.StatusOK, text)

	case ActionSQL:
		if !adminCtx.Admin {
			h.denyAdmin(c, action)
			return
		}
		dump, err := h.service.ExportDump()
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.String(http.StatusOK, dump)

	default:
		h.unknownAction(c)
	}
}

// denyAdmin logs the gate failure internally and renders the same generic
// body as an unknown action.
func (h *TestimonialHandler) denyAdmin(c *gin.Context, action string) {
	unauthorized := apperrors.NewUnauthorizedError(action)
	logger.WithAction(action).WithField("client_ip", c.ClientIP()).Warn(unauthorized.Error())
	h.unknownAction(c)
}

func (h *TestimonialHandler) unknownAction(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown action"})
}

func (h *TestimonialHandler) respondError(c *gin.Context, err error) {
	var fieldErrs apperrors.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErrs})
		return
	}
	if apperrors.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed"})
		return
	}
	if apperrors.IsNotFound(err) {
		// One generic message for bad token shapes, missing records and
		// hidden records alike. No storage detail crosses this boundary.
		c.JSON(http.StatusNotFound, gin.H{"error": "we cannot verify your id"})
		return
	}
	h.log.Errorf("request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed"})
}

// requestForm merges query and body parameters into one bag, parsing a
// multipart body when present.
func requestForm(c *gin.Context) url.Values {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		c.Request.ParseForm()
	}
	return c.Request.Form
}

// logoUpload returns the optional logo file header, nil when absent.
func (h *TestimonialHandler) logoUpload(c *gin.Context) *multipart.FileHeader {
	fh, err := c.FormFile(logoField)
	if err != nil {
		return nil
	}
	return fh
}

func pageParams(form url.Values) (int, int) {
	offset, _ := strconv.Atoi(form.Get("offset"))
	limit, _ := strconv.Atoi(form.Get("limit"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = store.DefaultPageSize
	}
	if limit > store.MaxPageSize {
		limit = store.MaxPageSize
	}
	return offset, limit
}
