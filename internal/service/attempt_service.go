package service

import (
	"context"
	"errors"

	"quizdeck/internal/cache"
	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"
	"quizdeck/internal/validation"

	"go.uber.org/zap"
)

// AttemptService grades submissions and serves stored results.
type AttemptService interface {
	Submit(ctx context.Context, req dto.SubmitRequest) (*dto.SubmitResponse, error)
	GetAttempt(ctx context.Context, id string) (*dto.AttemptResponse, error)
}

type attemptService struct {
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
	quizzes     QuizService
	validator   *validation.Validator
	cache       *ResponseCache
	cfg         *config.Config
}

// NewAttemptService creates a new instance of attemptService. quizzes is used
// to tell whether the quiz of a stored attempt still exists.
func NewAttemptService(
	quizRepo domain.QuizRepository,
	attemptRepo domain.AttemptRepository,
	quizzes QuizService,
	validator *validation.Validator,
	responseCache *ResponseCache,
	cfg *config.Config,
) AttemptService {
	return &attemptService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		quizzes:     quizzes,
		validator:   validator,
		cache:       responseCache,
		cfg:         cfg,
	}
}

// Submit grades the answers against the current questions of the quiz and
// stores the attempt. The quiz is read from the store, never from the cache.
func (s *attemptService) Submit(ctx context.Context, req dto.SubmitRequest) (*dto.SubmitResponse, error) {
	if errs := s.validator.ValidateSubmitRequest(req); len(errs) > 0 {
		return nil, errs
	}

	quiz, err := s.quizRepo.GetQuizByID(ctx, req.QuizID)
	if err != nil {
		return nil, s.storeError("failed to load quiz for grading", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(req.QuizID)
	}

	result := domain.Grade(quiz.Questions, req.Answers)
	attempt := domain.NewAttempt(quiz, result)
	if err := s.attemptRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, s.storeError("failed to store attempt", err)
	}

	logger.Get().Info("Attempt graded",
		zap.String("attemptID", attempt.ID),
		zap.String("quizID", quiz.ID),
		zap.Int("score", result.Score),
		zap.Int("total", result.TotalQuestions))

	return &dto.SubmitResponse{
		AttemptID: attempt.ID,
		Score:     result.Score,
		Total:     result.TotalQuestions,
	}, nil
}

// GetAttempt returns a stored result. The graded content never changes, so it
// is cached; quiz availability is rechecked while the quiz is believed to exist.
func (s *attemptService) GetAttempt(ctx context.Context, id string) (*dto.AttemptResponse, error) {
	var resp dto.AttemptResponse
	err := s.cache.Fetch(ctx, cache.AttemptResultKey(id), s.cfg.Redis.ResultTTL, &resp, func(ctx context.Context) (interface{}, error) {
		attempt, err := s.attemptRepo.GetAttemptByID(ctx, id)
		if err != nil {
			return nil, s.storeError("failed to load attempt", err)
		}
		if attempt == nil {
			return nil, domain.NewAttemptNotFoundError(id)
		}
		return dto.NewAttemptResponse(attempt), nil
	})
	if err != nil {
		return nil, err
	}

	if resp.QuizAvailable {
		available, err := s.quizExists(ctx, resp.QuizID)
		if err != nil {
			return nil, err
		}
		resp.QuizAvailable = available
		resp.Quiz.Available = available
	}
	return &resp, nil
}

func (s *attemptService) quizExists(ctx context.Context, quizID string) (bool, error) {
	_, err := s.quizzes.GetPublicQuiz(ctx, quizID)
	if err == nil {
		return true, nil
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == domain.CodeQuizNotFound {
		return false, nil
	}
	return false, err
}

func (s *attemptService) storeError(msg string, err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	logger.Get().Error(msg, zap.Error(err))
	return domain.NewInternalError(msg, err)
}
