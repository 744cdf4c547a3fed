package handler

import (
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a Wikipedia article
// @Description Scrapes the article, generates a quiz with the configured LLM and stores it. Regenerating the same URL replaces the stored quiz.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Article URL"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /generate_quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.LocalGenerateRequest).(*dto.GenerateQuizRequest)
	if !ok {
		req = new(dto.GenerateQuizRequest)
		if err := c.BodyParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), req.URL)
	if err != nil {
		logger.Get().Error("Failed to generate quiz", zap.String("url", req.URL), zap.Error(err))
		return err
	}
	return c.JSON(resp)
}

// History godoc
// @Summary List generated quizzes
// @Description Returns every stored quiz, oldest first
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.HistoryItemResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /history [get]
func (h *QuizHandler) History(c *fiber.Ctx) error {
	items, err := h.service.History(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// GetQuiz godoc
// @Summary Get a stored quiz
// @Description Returns one stored quiz with its scraped source text
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id, ok := c.Locals(middleware.LocalQuizID).(string)
	if !ok {
		id = c.Params("id")
	}

	quiz, err := h.service.GetQuiz(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// RegisterRoutes mounts the quiz endpoints on router
func (h *QuizHandler) RegisterRoutes(router fiber.Router) {
	vm := middleware.NewValidationMiddleware()
	router.Post("/generate_quiz", vm.ValidateGenerateRequest(), h.GenerateQuiz)
	router.Get("/history", h.History)
	router.Get("/quiz/:id", vm.ValidateQuizID(), h.GetQuiz)
}
