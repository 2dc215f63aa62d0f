// Package compat reproduces the HTTP surface of the original recipe app so
// existing clients keep working: a bare item array on GET /items and a
// multipart upload on POST /upload, with 405 + Allow on anything else.
package compat

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"receptbox/app"
	"receptbox/pkg/httperror"
)

// NewItemsHandler serves GET /items as a bare JSON array of recipes.
func NewItemsHandler(repository app.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			c.Set(fiber.HeaderAllow, fiber.MethodGet)
			return c.Status(fiber.StatusMethodNotAllowed).
				SendString(fmt.Sprintf("Method %s Not Allowed", c.Method()))
		}

		recipes, err := repository.GetRecipes(c.UserContext())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(recipes)
	}
}

// NewUploadHandler serves POST /upload with multipart fields file, title,
// ingredient, and an optional rating (defaults to the lowest tier).
func NewUploadHandler(upload *app.UploadRecipeHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			c.Set(fiber.HeaderAllow, fiber.MethodPost)
			return c.Status(fiber.StatusMethodNotAllowed).
				SendString(fmt.Sprintf("Method %s Not Allowed", c.Method()))
		}

		file, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No file uploaded",
			})
		}

		req := &app.UploadRecipeRequest{
			Title:      c.FormValue("title"),
			Ingredient: c.FormValue("ingredient"),
			Rating:     1,
		}
		if raw := c.FormValue("rating"); raw != "" {
			if rating, err := strconv.Atoi(raw); err == nil && rating >= 1 && rating <= 3 {
				req.Rating = rating
			}
		}
		if req.Title == "" || req.Ingredient == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "title and ingredient are required",
			})
		}

		fileReader, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error parsing form",
			})
		}
		defer fileReader.Close()

		fileBytes, err := io.ReadAll(fileReader)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error parsing form",
			})
		}

		res, err := upload.Submit(c.UserContext(), req, file.Filename, fileBytes)
		if err != nil {
			status := fiber.StatusInternalServerError
			message := "upload failed"

			var httpErr *httperror.Error
			if errors.As(err, &httpErr) {
				status = httpErr.Status
				message = httpErr.Message
			}

			return c.Status(status).JSON(fiber.Map{"error": message})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"url":     res.URL,
		})
	}
}
