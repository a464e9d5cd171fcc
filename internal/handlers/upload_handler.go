package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/azir-ecommerce/azir-golang/internal/apierror"
)

// UploadProfileImage handles POST /api/v1/upload.
// Saves the uploaded file under ./uploads with a uuid filename and returns
// its public URL. The client then passes that URL as profileImage to
// PUT /users/updateMe.
func (h *Handlers) UploadProfileImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		apierror.Respond(c, apierror.Validation("No file uploaded"))
		return
	}

	uploadPath := "./uploads"
	if _, err := os.Stat(uploadPath); os.IsNotExist(err) {
		os.Mkdir(uploadPath, 0755)
	}

	// uuid + original extension keeps filenames unique and safe.
	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	savePath := filepath.Join(uploadPath, newFilename)

	if err := c.SaveUploadedFile(file, savePath); err != nil {
		apierror.Respond(c, apierror.Internal("Failed to save file", err))
		return
	}

	publicURL := fmt.Sprintf("%s/uploads/%s", h.Config.Server.BaseURL, newFilename)

	c.JSON(http.StatusOK, gin.H{"url": publicURL})
}
