package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"

	"truckops/internal/models"
	"truckops/internal/store"
)

const documentDir = "storage/documents"

// DocumentController handles multipart uploads of driver paperwork.
// Files land under storage/documents with a random name; the original
// name is kept on the Document row.
type DocumentController struct {
	store store.DriverStore
}

func NewDocumentController(s store.DriverStore) *DocumentController {
	return &DocumentController{store: s}
}

func (ctl *DocumentController) Upload(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	driver, err := ctl.store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required: " + err.Error()})
		return
	}
	fileType := models.DocumentType(c.PostForm("file_type"))

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	doc := models.Document{
		FileName: file.Filename,
		FilePath: filepath.Join(documentDir, storedName),
		FileType: fileType,
	}
	// Validate before anything touches disk.
	if err := doc.Validate(); err != nil {
		respondDomainError(c, err)
		return
	}

	if err := os.MkdirAll(documentDir, 0o755); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := c.SaveUploadedFile(file, doc.FilePath); err != nil {
		respondDomainError(c, err)
		return
	}

	if err := driver.AddDocument(doc); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		if rmErr := os.Remove(doc.FilePath); rmErr != nil {
			logrus.WithError(rmErr).Warn("could not remove orphaned document file")
		}
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

func (ctl *DocumentController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "documentId")
	if !ok {
		return
	}

	driver, err := ctl.store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var path string
	for _, doc := range driver.Documents {
		if doc.ID == docID {
			path = doc.FilePath
			break
		}
	}

	if !driver.RemoveDocument(docID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}

	if path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).Warn("could not remove document file from disk")
		}
	}

	c.JSON(http.StatusOK, gin.H{"driver": driver})
}
