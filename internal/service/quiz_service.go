package service

import (
	"context"
	"database/sql"
	"errors"

	"quizdeck/internal/cache"
	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"
	"quizdeck/internal/validation"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz authoring and reading.
type QuizService interface {
	CreateQuiz(ctx context.Context, payload dto.QuizPayload) (*dto.QuizResponse, error)
	ReplaceQuiz(ctx context.Context, id string, payload dto.QuizPayload) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, id string) error
	GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	GetPublicQuiz(ctx context.Context, id string) (*dto.PublicQuizResponse, error)
	ListQuizzes(ctx context.Context) ([]dto.QuizSummaryResponse, error)
	ExportQuiz(ctx context.Context, id string) (*dto.QuizPayload, error)
	ImportQuiz(ctx context.Context, data []byte) (*dto.QuizResponse, error)
}

type quizService struct {
	repo      domain.QuizRepository
	txManager domain.TransactionManager
	validator *validation.Validator
	cache     *ResponseCache
	cfg       *config.Config
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	repo domain.QuizRepository,
	txManager domain.TransactionManager,
	validator *validation.Validator,
	responseCache *ResponseCache,
	cfg *config.Config,
) QuizService {
	return &quizService{
		repo:      repo,
		txManager: txManager,
		validator: validator,
		cache:     responseCache,
		cfg:       cfg,
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, payload dto.QuizPayload) (*dto.QuizResponse, error) {
	draft, err := s.validator.ValidateQuizPayload(payload)
	if err != nil {
		return nil, err
	}

	quiz := domain.NewQuiz(draft)
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.InsertQuiz(txCtx, quiz); err != nil {
			return err
		}
		return s.repo.InsertQuestions(txCtx, quiz.ID, quiz.Questions)
	})
	if err != nil {
		return nil, s.storeError("failed to create quiz", err)
	}

	logger.Get().Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.Int("questions", len(quiz.Questions)))
	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

// ReplaceQuiz overwrites the header and the whole question set of an existing
// quiz in one transaction. Concurrent replaces resolve as last write wins.
func (s *quizService) ReplaceQuiz(ctx context.Context, id string, payload dto.QuizPayload) (*dto.QuizResponse, error) {
	draft, err := s.validator.ValidateQuizPayload(payload)
	if err != nil {
		return nil, err
	}

	quiz := domain.NewQuiz(draft)
	quiz.ID = id
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetQuizByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.NewQuizNotFoundError(id)
		}
		quiz.CreatedAt = existing.CreatedAt

		if err := s.repo.UpdateQuiz(txCtx, quiz); err != nil {
			return err
		}
		if err := s.repo.DeleteQuestions(txCtx, id); err != nil {
			return err
		}
		return s.repo.InsertQuestions(txCtx, id, quiz.Questions)
	})
	if err != nil {
		return nil, s.quizError(id, "failed to replace quiz", err)
	}

	s.cache.Invalidate(ctx, cache.PublicQuizKey(id))
	logger.Get().Info("Quiz replaced",
		zap.String("quizID", id),
		zap.Int("questions", len(quiz.Questions)))
	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

// DeleteQuiz removes the quiz and its questions. Attempts on it are kept.
func (s *quizService) DeleteQuiz(ctx context.Context, id string) error {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.DeleteQuiz(txCtx, id)
	})
	if err != nil {
		return s.quizError(id, "failed to delete quiz", err)
	}

	s.cache.Invalidate(ctx, cache.PublicQuizKey(id))
	logger.Get().Info("Quiz deleted", zap.String("quizID", id))
	return nil
}

func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	quiz, err := s.loadQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

// GetPublicQuiz returns the player view, served from the response cache when possible.
func (s *quizService) GetPublicQuiz(ctx context.Context, id string) (*dto.PublicQuizResponse, error) {
	var resp dto.PublicQuizResponse
	err := s.cache.Fetch(ctx, cache.PublicQuizKey(id), s.cfg.Redis.QuizTTL, &resp, func(ctx context.Context) (interface{}, error) {
		quiz, err := s.loadQuiz(ctx, id)
		if err != nil {
			return nil, err
		}
		return dto.NewPublicQuizResponse(quiz), nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *quizService) ListQuizzes(ctx context.Context) ([]dto.QuizSummaryResponse, error) {
	summaries, err := s.repo.ListQuizSummaries(ctx)
	if err != nil {
		return nil, s.storeError("failed to list quizzes", err)
	}
	return dto.NewQuizSummaryResponses(summaries), nil
}

func (s *quizService) ExportQuiz(ctx context.Context, id string) (*dto.QuizPayload, error) {
	quiz, err := s.loadQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := dto.NewQuizPayload(quiz)
	return &doc, nil
}

// ImportQuiz decodes an exported document and creates it as a new quiz with
// the same validation as CreateQuiz.
func (s *quizService) ImportQuiz(ctx context.Context, data []byte) (*dto.QuizResponse, error) {
	payload, err := validation.DecodeQuizDocument(data)
	if err != nil {
		logger.Get().Info("Rejected quiz import", zap.Error(err))
		return nil, err
	}
	return s.CreateQuiz(ctx, payload)
}

func (s *quizService) loadQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, s.storeError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	return quiz, nil
}

func (s *quizService) quizError(id, msg string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewQuizNotFoundError(id)
	}
	return s.storeError(msg, err)
}

// storeError passes domain errors through and wraps anything else as internal.
func (s *quizService) storeError(msg string, err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	logger.Get().Error(msg, zap.Error(err))
	return domain.NewInternalError(msg, err)
}
