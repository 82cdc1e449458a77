package handlers

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/storage"
)

// uploadImage lê o campo "file", converte para webp e grava em prefix/.
func uploadImage(c *gin.Context, up storage.Uploader, prefix string) (string, bool) {
	if up == nil {
		httperr.Write(c, 503, "storage_disabled", "Upload de imagens desativado.")
		return "", false
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Arquivo obrigatório.")
		return "", false
	}
	if fh.Size > storage.MaxUploadSize {
		httperr.BadRequest(c, "file_too_large", "Arquivo muito grande.")
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Arquivo inválido.")
		return "", false
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, storage.MaxUploadSize+1))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Arquivo inválido.")
		return "", false
	}

	img, err := storage.NormalizeAvatar(raw)
	if err != nil {
		httperr.BadRequest(c, "unsupported_image", "Imagem inválida, use jpeg, png ou webp.")
		return "", false
	}

	key := fmt.Sprintf("%s/%s.webp", prefix, uuid.NewString())
	url, err := up.Put(c.Request.Context(), key, "image/webp", img)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("image upload failed")
		httperr.Internal(c, "upload_failed", "Falha ao enviar imagem.")
		return "", false
	}

	return url, true
}
