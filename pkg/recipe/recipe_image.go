package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils/storage"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const imageFolder = "recipes"

// DecodeImage splits a "data:<content-type>;base64,<payload>" URI.
func DecodeImage(dataURI string) (string, []byte, error) {
	header, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", nil, domain.ErrInvalidImage
	}

	contentType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, domain.ErrInvalidImage
	}

	body, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(body) == 0 {
		return "", nil, domain.ErrInvalidImage
	}
	return contentType, body, nil
}

func (s *recipeService) uploadImage(ctx context.Context, dataURI string) (string, error) {
	contentType, body, err := DecodeImage(dataURI)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%s.%s", uuid.New().String(), strings.TrimPrefix(contentType, "image/"))
	key, err := s.storage.UploadFile(ctx, fileName, body, contentType, imageFolder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrContentTypeNotAllowed) {
			return "", domain.ErrInvalidImage
		}
		return "", err
	}
	return s.storage.GetPublicLinkKey(key), nil
}

// removeImage deletes a stored image. Failures only leave an orphaned
// object behind, so they are logged and swallowed.
func (s *recipeService) removeImage(ctx context.Context, link string) {
	key := s.storage.GetObjectKeyFromLink(link)
	if key == "" {
		return
	}
	if err := s.storage.DeleteFile(ctx, key); err != nil {
		logging.Warn().Err(err).Str("object_key", key).Msg("failed to delete recipe image")
	}
}
