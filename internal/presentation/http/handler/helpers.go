package handler

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/response"
)

// parseIDParam parses a UUID path parameter, writing a 400 on failure
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Identifiant invalide")
		return uuid.Nil, false
	}
	return id, true
}

// readUpload reads a multipart file into memory
func readUpload(header *multipart.FileHeader) (string, string, []byte, error) {
	file, err := header.Open()
	if err != nil {
		return "", "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", nil, err
	}
	return header.Filename, header.Header.Get("Content-Type"), data, nil
}
