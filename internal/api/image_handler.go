package api

import (
	"net/http"

	"github.com/thomsonxavier/kaviecommerce/internal/logger"
	"github.com/thomsonxavier/kaviecommerce/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type deleteImageRequest struct {
	URL string `json:"url" binding:"required"`
}

func (a *api) uploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "No file provided")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if err := storage.ValidateImage(contentType, header.Size); err != nil {
		respondError(c, err)
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	name := storage.ObjectName(contentType)
	url, err := a.deps.Blobs.Upload(c.Request.Context(), name, contentType, f)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.FromCtx(c.Request.Context()).Info("image uploaded",
		zap.String("object", name),
		zap.Int64("size", header.Size),
	)

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

func (a *api) deleteImage(c *gin.Context) {
	var req deleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "No image URL provided")
		return
	}

	name, err := a.deps.Blobs.NameFromURL(req.URL)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := a.deps.Blobs.Remove(c.Request.Context(), name); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
