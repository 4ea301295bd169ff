package handler

import (
	attachmentapp "github.com/bizops/ledger/internal/application/attachment"
	"github.com/gin-gonic/gin"
)

// AttachmentFormField is the multipart field carrying the file
const AttachmentFormField = "file"

// AttachmentHandler handles document uploads
type AttachmentHandler struct {
	BaseHandler
	attachmentService *attachmentapp.Service
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService *attachmentapp.Service) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload godoc
// @ID           uploadAttachment
// @Summary      Upload a supporting document
// @Description  Stores an invoice, receipt or bill and returns the URL to place on a transaction's attachment_url
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Document (pdf, jpg, png, webp, csv, xls, xlsx)"
// @Success      201 {object} APIResponse[attachmentapp.Attachment]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile(AttachmentFormField)
	if err != nil {
		h.BadRequest(c, "Multipart field 'file' is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.BadRequest(c, "Uploaded file could not be read")
		return
	}
	defer f.Close()

	resp, err := h.attachmentService.Upload(c.Request.Context(), attachmentapp.UploadRequest{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
