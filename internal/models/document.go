package models

import (
	"gorm.io/gorm"
)

// Document is a stored file attached to a driver (license scan, medical
// card, drug test result, ...). The file itself lives on disk; FilePath
// points at it.
type Document struct {
	gorm.Model
	DriverID uint         `json:"driver_id" gorm:"index"`
	FileName string       `json:"file_name"`
	FilePath string       `json:"file_path"`
	FileType DocumentType `json:"file_type" gorm:"type:varchar(30)"`
}

func (d *Document) Validate() error {
	if d.FileName == "" {
		return &InvalidDataError{Reason: "document file name is required"}
	}
	if d.FilePath == "" {
		return &InvalidDataError{Reason: "document file path is required"}
	}
	if !d.FileType.Valid() {
		return &InvalidDocumentTypeError{FileType: string(d.FileType)}
	}
	return nil
}
