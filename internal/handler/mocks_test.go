package handler_test

import (
	"context"
	"errors"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
)

// --- Manual Mocks ---

// MockAuthService also serves as the token validator for protected routes.
type MockAuthService struct {
	LoginFunc          func(ctx context.Context, username, password string) (*dto.LoginResponse, error)
	ValidateJWTFunc    func(ctx context.Context, tokenString string) (*domain.AdminSession, error)
	ChangePasswordFunc func(ctx context.Context, session *domain.AdminSession, currentPassword, newPassword string) error
	UpsertAdminFunc    func(ctx context.Context, username, password string) (bool, error)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	panic("MockAuthService.LoginFunc not implemented")
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*domain.AdminSession, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	if tokenString == testToken {
		return &domain.AdminSession{Username: "admin"}, nil
	}
	return nil, errors.New("invalid token")
}

func (m *MockAuthService) ChangePassword(ctx context.Context, session *domain.AdminSession, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, session, currentPassword, newPassword)
	}
	panic("MockAuthService.ChangePasswordFunc not implemented")
}

func (m *MockAuthService) UpsertAdmin(ctx context.Context, username, password string) (bool, error) {
	if m.UpsertAdminFunc != nil {
		return m.UpsertAdminFunc(ctx, username, password)
	}
	panic("MockAuthService.UpsertAdminFunc not implemented")
}

// MockQuizService
type MockQuizService struct {
	CreateQuizFunc    func(ctx context.Context, payload dto.QuizPayload) (*dto.QuizResponse, error)
	ReplaceQuizFunc   func(ctx context.Context, id string, payload dto.QuizPayload) (*dto.QuizResponse, error)
	DeleteQuizFunc    func(ctx context.Context, id string) error
	GetQuizFunc       func(ctx context.Context, id string) (*dto.QuizResponse, error)
	GetPublicQuizFunc func(ctx context.Context, id string) (*dto.PublicQuizResponse, error)
	ListQuizzesFunc   func(ctx context.Context) ([]dto.QuizSummaryResponse, error)
	ExportQuizFunc    func(ctx context.Context, id string) (*dto.QuizPayload, error)
	ImportQuizFunc    func(ctx context.Context, data []byte) (*dto.QuizResponse, error)
}

func (m *MockQuizService) CreateQuiz(ctx context.Context, payload dto.QuizPayload) (*dto.QuizResponse, error) {
	if m.CreateQuizFunc != nil {
		return m.CreateQuizFunc(ctx, payload)
	}
	panic("MockQuizService.CreateQuizFunc not implemented")
}

func (m *MockQuizService) ReplaceQuiz(ctx context.Context, id string, payload dto.QuizPayload) (*dto.QuizResponse, error) {
	if m.ReplaceQuizFunc != nil {
		return m.ReplaceQuizFunc(ctx, id, payload)
	}
	panic("MockQuizService.ReplaceQuizFunc not implemented")
}

func (m *MockQuizService) DeleteQuiz(ctx context.Context, id string) error {
	if m.DeleteQuizFunc != nil {
		return m.DeleteQuizFunc(ctx, id)
	}
	panic("MockQuizService.DeleteQuizFunc not implemented")
}

func (m *MockQuizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, id)
	}
	panic("MockQuizService.GetQuizFunc not implemented")
}

func (m *MockQuizService) GetPublicQuiz(ctx context.Context, id string) (*dto.PublicQuizResponse, error) {
	if m.GetPublicQuizFunc != nil {
		return m.GetPublicQuizFunc(ctx, id)
	}
	panic("MockQuizService.GetPublicQuizFunc not implemented")
}

func (m *MockQuizService) ListQuizzes(ctx context.Context) ([]dto.QuizSummaryResponse, error) {
	if m.ListQuizzesFunc != nil {
		return m.ListQuizzesFunc(ctx)
	}
	panic("MockQuizService.ListQuizzesFunc not implemented")
}

func (m *MockQuizService) ExportQuiz(ctx context.Context, id string) (*dto.QuizPayload, error) {
	if m.ExportQuizFunc != nil {
		return m.ExportQuizFunc(ctx, id)
	}
	panic("MockQuizService.ExportQuizFunc not implemented")
}

func (m *MockQuizService) ImportQuiz(ctx context.Context, data []byte) (*dto.QuizResponse, error) {
	if m.ImportQuizFunc != nil {
		return m.ImportQuizFunc(ctx, data)
	}
	panic("MockQuizService.ImportQuizFunc not implemented")
}

// MockAttemptService
type MockAttemptService struct {
	SubmitFunc     func(ctx context.Context, req dto.SubmitRequest) (*dto.SubmitResponse, error)
	GetAttemptFunc func(ctx context.Context, id string) (*dto.AttemptResponse, error)
}

func (m *MockAttemptService) Submit(ctx context.Context, req dto.SubmitRequest) (*dto.SubmitResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	panic("MockAttemptService.SubmitFunc not implemented")
}

func (m *MockAttemptService) GetAttempt(ctx context.Context, id string) (*dto.AttemptResponse, error) {
	if m.GetAttemptFunc != nil {
		return m.GetAttemptFunc(ctx, id)
	}
	panic("MockAttemptService.GetAttemptFunc not implemented")
}

// MockPinger
type MockPinger struct {
	Err error
}

func (m *MockPinger) PingContext(ctx context.Context) error {
	return m.Err
}

// MockCache only answers Ping.
type MockCache struct {
	PingErr error
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	return "", domain.ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return nil
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.PingErr
}
