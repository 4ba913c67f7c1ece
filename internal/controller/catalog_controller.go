package controller

import (
	"io"
	"net/url"
	"strconv"

	"collectible-documenter-be/internal/dto"
	"collectible-documenter-be/internal/pkg/apperr"
	"collectible-documenter-be/internal/pkg/serverutils"
	"collectible-documenter-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/catalog/v1")
	h.Use(jwtMiddleware)
	h.Get("/session", c.GetSession)
	h.Post("/items", c.AddItem)
	h.Post("/items/:id/delete", c.DeleteItem)
	h.Put("/items/:id/name", c.RenameItem)
	h.Put("/items/:id/tags", c.SetItemTags)
	h.Post("/items/:id/images/:side", c.SaveItemImage)
	h.Post("/items/:id/transcribe", c.TranscribeItemAudio)
	h.Post("/tags", c.AddTag)
	h.Delete("/tags/:name", c.RemoveTag)
	h.Put("/tags/filter", c.SetTagFilter)
}

func userEmail(ctx *fiber.Ctx) string {
	return ctx.Locals("user_email").(string)
}

func itemID(ctx *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return 0, apperr.Validation("invalid item id")
	}
	return id, nil
}

func formFileBytes(ctx *fiber.Ctx, field string) ([]byte, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, apperr.Validation("missing " + field + " file")
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (c *catalogController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.service.GetSession(ctx.Context(), userEmail(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *catalogController) AddItem(ctx *fiber.Ctx) error {
	var req dto.AddItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	res, err := c.service.AddItem(ctx.Context(), userEmail(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add item", res))
}

func (c *catalogController) DeleteItem(ctx *fiber.Ctx) error {
	id, err := itemID(ctx)
	if err != nil {
		return err
	}

	var req dto.DeleteItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	res, err := c.service.DeleteItem(ctx.Context(), userEmail(ctx), id, &req)
	if err != nil {
		return err
	}

	message := "Success delete item"
	if res.ConfirmationRequired {
		message = "Confirmation required"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *catalogController) RenameItem(ctx *fiber.Ctx) error {
	id, err := itemID(ctx)
	if err != nil {
		return err
	}

	var req dto.RenameItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RenameItem(ctx.Context(), userEmail(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success rename item", res))
}

func (c *catalogController) SetItemTags(ctx *fiber.Ctx) error {
	id, err := itemID(ctx)
	if err != nil {
		return err
	}

	var req dto.SetItemTagsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	res, err := c.service.SetItemTags(ctx.Context(), userEmail(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set item tags", res))
}

func (c *catalogController) SaveItemImage(ctx *fiber.Ctx) error {
	id, err := itemID(ctx)
	if err != nil {
		return err
	}
	side := ctx.Params("side")

	data, err := formFileBytes(ctx, "image")
	if err != nil {
		return err
	}

	res, raw, err := c.service.SaveItemImage(ctx.Context(), userEmail(ctx), id, side, data)
	if err != nil {
		return err
	}

	// Local mode: the raw bytes come straight back for the client to render.
	if raw != nil {
		ctx.Type("png")
		return ctx.Send(raw)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save image", res))
}

func (c *catalogController) TranscribeItemAudio(ctx *fiber.Ctx) error {
	id, err := itemID(ctx)
	if err != nil {
		return err
	}

	data, err := formFileBytes(ctx, "audio")
	if err != nil {
		return err
	}

	res, err := c.service.TranscribeItemAudio(ctx.Context(), userEmail(ctx), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success transcribe audio", res))
}

func (c *catalogController) AddTag(ctx *fiber.Ctx) error {
	var req dto.AddTagRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	res, err := c.service.AddTag(ctx.Context(), userEmail(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add tag", res))
}

func (c *catalogController) RemoveTag(ctx *fiber.Ctx) error {
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil {
		return apperr.Validation("invalid tag name")
	}

	res, err := c.service.RemoveTag(ctx.Context(), userEmail(ctx), name)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success remove tag", res))
}

func (c *catalogController) SetTagFilter(ctx *fiber.Ctx) error {
	var req dto.SetTagFilterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	res, err := c.service.SetTagFilter(ctx.Context(), userEmail(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set tag filter", res))
}
