package handler

import (
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles the public quiz-taking requests
type QuizHandler struct {
	quizService    service.QuizService
	attemptService service.AttemptService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, attemptService service.AttemptService) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		attemptService: attemptService,
	}
}

// ListQuizzes godoc
// @Summary List quizzes
// @Description Lists available quizzes, newest first
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuizSummaryResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	list, err := h.quizService.ListQuizzes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetQuiz godoc
// @Summary Get a quiz to play
// @Description Returns the quiz with ordered questions; correct answers are not included
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.PublicQuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizService.GetPublicQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// SubmitQuiz godoc
// @Summary Submit answers
// @Description Grades the answers, stores the attempt and returns its score
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SubmitRequest true "Answers, one index list per question"
// @Success 200 {object} dto.SubmitResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.attemptService.Submit(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetResult godoc
// @Summary Get a result
// @Description Returns a stored attempt with its per-question breakdown
// @Tags quiz
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /results/{id} [get]
func (h *QuizHandler) GetResult(c *fiber.Ctx) error {
	attempt, err := h.attemptService.GetAttempt(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(attempt)
}
