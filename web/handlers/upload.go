package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"portalsst.com/portalsst/infrastructure/filesystem"
	"portalsst.com/portalsst/web/common"
)

const maxPhotoSize = 10 << 20

var photoContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadEndpoint stores worker photos in S3 and serves them back. Photos
// go through the API instead of public bucket URLs so the bucket can stay
// private.
type UploadEndpoint struct {
	bucket string
	log    *zap.Logger
}

func RegisterUpload(public, protected *gin.RouterGroup, bucket string, log *zap.Logger) {
	ep := &UploadEndpoint{bucket: bucket, log: log}
	protected.POST("/upload/photos", ep.UploadPhoto)
	public.GET("/photos/:key", ep.GetPhoto)
}

func (ep *UploadEndpoint) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("missing 'photo' form field"))
		return
	}
	if file.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("photo exceeds the 10MB limit"))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := photoContentTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(fmt.Sprintf("unsupported photo type '%s'", ext)))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}
	defer src.Close()

	key := fmt.Sprintf("photos/%s%s", uuid.New().String(), ext)
	if err := filesystem.WriteFile(ep.bucket, key, contentType, c.Request.Context(), src); err != nil {
		ep.log.Error("photo upload failed", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusBadGateway, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(gin.H{
		"key": key,
		"url": "/api/v1/photos/" + filepath.Base(key),
	}))
}

func (ep *UploadEndpoint) GetPhoto(c *gin.Context) {
	name := c.Param("key")
	// The key is a uuid plus extension; anything else is someone probing.
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid photo key"))
		return
	}

	contentType, ok := photoContentTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid photo key"))
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	if err := filesystem.ReadFile(ep.bucket, "photos/"+name, c.Request.Context(), c.Writer); err != nil {
		ep.log.Warn("photo read failed", zap.String("key", name), zap.Error(err))
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}
