package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/abhishek622/mockmate/internal/extract"
	"github.com/abhishek622/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
)

// multipart headers and boundaries on top of the file itself
const maxUploadBody = extract.MaxUploadBytes + 1<<20

// ExtractText returns the plain text of an uploaded résumé or job
// description (txt, pdf, docx, html).
func (h *Handler) ExtractText(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}

	tooLarge := fmt.Sprintf("file exceeds %d MB", extract.MaxUploadBytes>>20)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)
	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.BadRequest(c, tooLarge)
			return
		}
		response.BadRequest(c, "file is required")
		return
	}
	if fh.Size > extract.MaxUploadBytes {
		response.BadRequest(c, tooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.fail(c, "open upload", err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, extract.MaxUploadBytes))
	if err != nil {
		h.fail(c, "read upload", err)
		return
	}

	text, err := extract.Extract(fh.Filename, data)
	if err != nil {
		h.fail(c, "extract text", err)
		return
	}
	response.OK(c, gin.H{"text": text})
}

type fetchJobReq struct {
	URL string `json:"url" binding:"required"`
}

// FetchJobDescription imports a job description from a posting URL.
func (h *Handler) FetchJobDescription(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}
	var req fetchJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindError(err))
		return
	}

	posting, err := h.Fetcher.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		h.fail(c, "fetch job description", err)
		return
	}
	response.OK(c, gin.H{"title": posting.Title, "text": posting.Text, "url": posting.URL})
}
