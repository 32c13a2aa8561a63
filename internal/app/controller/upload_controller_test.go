package controller

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/4ndreams/GPS-sub000/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	folder string
	err    error
}

func (f *fakePresigner) PresignUpload(_ context.Context, filename, contentType, folder string) (*storage.PresignedURLResponse, error) {
	f.folder = folder
	if f.err != nil {
		return nil, f.err
	}
	if err := storage.ValidateContentType(contentType, storage.ImageContentTypes); err != nil {
		return nil, err
	}
	key := folder + "/" + filename
	return &storage.PresignedURLResponse{
		UploadURL: "https://bucket.example.com/" + key + "?X-Amz-Signature=abc",
		FileURL:   "https://cdn.example.com/" + key,
		Key:       key,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

func TestUploadController_GeneratePresignedURL(t *testing.T) {
	tests := []struct {
		name       string
		req        GeneratePresignedURLRequest
		presignErr error
		wantStatus int
		wantCode   string
		wantFolder string
	}{
		{name: "Default folder", req: GeneratePresignedURLRequest{Filename: "puerta.jpg", ContentType: "image/jpeg"}, wantStatus: http.StatusOK, wantFolder: "products"},
		{name: "Custom folder", req: GeneratePresignedURLRequest{Filename: "m.png", ContentType: "image/png", Folder: "molduras"}, wantStatus: http.StatusOK, wantFolder: "molduras"},
		{name: "Not an image", req: GeneratePresignedURLRequest{Filename: "lista.pdf", ContentType: "application/pdf"}, wantStatus: http.StatusBadRequest, wantCode: "UPLOAD_INVALID_FILE_TYPE"},
		{name: "Missing filename", req: GeneratePresignedURLRequest{ContentType: "image/png"}, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_INVALID_INPUT"},
		{name: "Storage failure", req: GeneratePresignedURLRequest{Filename: "a.png", ContentType: "image/png"}, presignErr: errors.New("no credentials"), wantStatus: http.StatusInternalServerError, wantCode: "UPLOAD_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presigner := &fakePresigner{err: tt.presignErr}
			router := gin.New()
			router.POST("/upload", NewUploadController(presigner).GeneratePresignedURL)

			w := doJSON(router, http.MethodPost, "/upload", tt.req, "")
			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeBody(t, w)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error"])
				return
			}
			require.Equal(t, tt.wantFolder, presigner.folder)
			assert.Equal(t, tt.wantFolder+"/"+tt.req.Filename, body["key"])
			assert.NotEmpty(t, body["upload_url"])
		})
	}
}
