package controller

import (
	"errors"
	"strconv"
	"strings"

	"collectible-documenter-be/internal/pkg/apperr"
	"collectible-documenter-be/pkg/blob"

	"github.com/gofiber/fiber/v2"
)

// BlobController serves the badger backend's signed URLs. It is only
// registered when that backend is active; the minio backend presigns URLs
// pointing at the object store directly.
type IBlobController interface {
	RegisterRoutes(r fiber.Router)
}

type blobController struct {
	store  blob.Store
	signer *blob.URLSigner
}

func NewBlobController(store blob.Store, signer *blob.URLSigner) IBlobController {
	return &blobController{store: store, signer: signer}
}

func (c *blobController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/blob/v1")
	h.Get("/:container/+", c.Serve)
}

func (c *blobController) Serve(ctx *fiber.Ctx) error {
	container := ctx.Params("container")
	key := ctx.Params("+")

	exp, err := strconv.ParseInt(ctx.Query("exp"), 10, 64)
	if err != nil {
		return apperr.Validation("invalid expiry")
	}
	sig := ctx.Query("sig")

	if !c.signer.Verify(container, key, exp, sig) {
		return apperr.Unauthorized("signature invalid or expired")
	}

	data, err := c.store.Download(ctx.Context(), container, key)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return apperr.NotFound("blob not found")
		}
		return apperr.Transport("blob read failed", err)
	}

	switch {
	case strings.HasSuffix(key, ".png"):
		ctx.Type("png")
	case strings.HasSuffix(key, ".json"):
		ctx.Type("json")
	}
	return ctx.Send(data)
}
