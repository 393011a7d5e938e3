package handler

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"
	"quizdeck/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const importFileField = "file"

var filenameUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// AdminQuizHandler serves the quiz editor endpoints. All routes require an admin session.
type AdminQuizHandler struct {
	service service.QuizService
}

// NewAdminQuizHandler creates a new AdminQuizHandler instance
func NewAdminQuizHandler(service service.QuizService) *AdminQuizHandler {
	return &AdminQuizHandler{
		service: service,
	}
}

// ListQuizzes godoc
// @Summary List quizzes
// @Description Lists every quiz with question and attempt counts, newest first
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.QuizSummaryResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/quizzes [get]
func (h *AdminQuizHandler) ListQuizzes(c *fiber.Ctx) error {
	list, err := h.service.ListQuizzes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Description Validates and stores a quiz with its questions
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param quiz body dto.QuizPayload true "Quiz"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/quizzes [post]
func (h *AdminQuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var payload dto.QuizPayload
	if err := c.BodyParser(&payload); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	quiz, err := h.service.CreateQuiz(c.UserContext(), payload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// GetQuiz godoc
// @Summary Get a quiz for editing
// @Description Returns the quiz with its questions and correct answers
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/quizzes/{id} [get]
func (h *AdminQuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// ReplaceQuiz godoc
// @Summary Replace a quiz
// @Description Overwrites the quiz header and its whole question set
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param quiz body dto.QuizPayload true "Quiz"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/quizzes/{id} [put]
func (h *AdminQuizHandler) ReplaceQuiz(c *fiber.Ctx) error {
	var payload dto.QuizPayload
	if err := c.BodyParser(&payload); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	quiz, err := h.service.ReplaceQuiz(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Deletes the quiz and its questions. Attempts remain readable.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/quizzes/{id} [delete]
func (h *AdminQuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.service.DeleteQuiz(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Quiz deleted"})
}

// ExportQuiz godoc
// @Summary Export a quiz
// @Description Downloads the quiz as a JSON document that import accepts
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizPayload
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/quizzes/{id}/export [get]
func (h *AdminQuizHandler) ExportQuiz(c *fiber.Ctx) error {
	doc, err := h.service.ExportQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, exportFilename(doc.Title)))
	return c.JSON(doc)
}

// ImportQuiz godoc
// @Summary Import a quiz
// @Description Creates a new quiz from an exported document, sent as the JSON body or as a multipart file
// @Tags admin
// @Security ApiKeyAuth
// @Accept json,mpfd
// @Produce json
// @Param file formData file false "Exported quiz file"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse "Malformed file or failed validation"
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/quizzes/import [post]
func (h *AdminQuizHandler) ImportQuiz(c *fiber.Ctx) error {
	data, err := importPayload(c)
	if err != nil {
		return err
	}

	quiz, err := h.service.ImportQuiz(c.UserContext(), data)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

func importPayload(c *fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return bytes.Clone(c.Body()), nil
	}

	fh, err := c.FormFile(importFileField)
	if err != nil {
		return nil, domain.NewFormatError(fmt.Sprintf("Upload a quiz file in the %q field", importFileField), err)
	}
	f, err := fh.Open()
	if err != nil {
		logger.Get().Error("Failed to open uploaded quiz file", zap.Error(err))
		return nil, domain.NewInternalError("failed to read upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.NewInternalError("failed to read upload", err)
	}
	return data, nil
}

func exportFilename(title string) string {
	slug := strings.Trim(filenameUnsafe.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "quiz"
	}
	return slug + ".json"
}
