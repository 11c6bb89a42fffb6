package response

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"anoa.com/healthmanage/pkg/apperror"
	"anoa.com/healthmanage/pkg/dto"
)

const maxUploadSize = 5 << 20

// OpenedFile is an uploaded file that must be closed by the handler.
type OpenedFile struct {
	dto.UploadFile
	file multipart.File
}

func (f *OpenedFile) Close() error {
	return f.file.Close()
}

// FormFile opens the multipart field as an image upload.
func FormFile(c *gin.Context, field string) (*OpenedFile, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil {
		return nil, apperror.Field(field, "no file was submitted")
	}
	if fileHeader.Size > maxUploadSize {
		return nil, apperror.Field(field, "file is larger than 5MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperror.Field(field, "the submitted file could not be read")
	}

	return &OpenedFile{
		UploadFile: dto.UploadFile{Reader: file, FileName: fileHeader.Filename},
		file:       file,
	}, nil
}
