package http

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"student-calendar-assistant/internal/extract"
)

// maxUploadBytes caps timetable uploads at 10 MB.
const maxUploadBytes = 10 << 20

// processCreateSessionReq binds and validates the create session body.
func (h *handler) processCreateSessionReq(c *gin.Context) (createSessionReq, error) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processPlanReq binds the optional plan body. An empty body is valid
// and means "plan the session's stored events".
func (h *handler) processPlanReq(c *gin.Context) (planReq, error) {
	var req planReq
	if c.Request.ContentLength == 0 {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processExecuteReq binds the execute body.
func (h *handler) processExecuteReq(c *gin.Context) (executeReq, error) {
	var req executeReq
	if c.Request.ContentLength == 0 {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processExtractReq reads the uploaded timetable document from the
// multipart form.
func (h *handler) processExtractReq(c *gin.Context) (extract.ExtractInput, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return extract.ExtractInput{}, fmt.Errorf("file is required: %w", err)
	}
	if fileHeader.Size > maxUploadBytes {
		return extract.ExtractInput{}, fmt.Errorf("file exceeds %d bytes", maxUploadBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return extract.ExtractInput{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return extract.ExtractInput{}, fmt.Errorf("failed to read upload: %w", err)
	}

	return extract.ExtractInput{
		Data:     data,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Hint:     c.PostForm("hint"),
	}, nil
}
