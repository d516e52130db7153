package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, c *Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*Client), args.Int(1), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, c *Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Client) bool {
		return c.ID == "client-1" &&
			c.FullName == "Ayşe Yılmaz" &&
			c.Email != nil && *c.Email == "ayse@example.com" &&
			c.Phone == nil
	})).Return(nil)

	c, err := svc.Create(context.Background(), CreateRequest{
		ID:       " client-1 ",
		FullName: "  Ayşe Yılmaz ",
		Email:    " Ayse@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", c.FullName)
	repo.AssertExpectations(t)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(new(MockRepository))

	_, err := svc.Create(context.Background(), CreateRequest{FullName: "Ayşe"})
	assert.ErrorIs(t, err, ErrIDRequired)

	_, err = svc.Create(context.Background(), CreateRequest{ID: "client-1", FullName: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(ErrEmailAlreadyUsed)

	_, err := svc.Create(context.Background(), CreateRequest{ID: "client-2", FullName: "Can", Email: "ayse@example.com"})
	require.ErrorIs(t, err, ErrEmailAlreadyUsed)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestUpdate(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "client-1").Return(&Client{
		ID:       "client-1",
		FullName: "Ayşe",
		Email:    strPtr("ayse@example.com"),
		Phone:    strPtr("+90 555 000 00 00"),
	}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	c, err := svc.Update(ctx, "client-1", UpdateRequest{
		FullName: strPtr("Ayşe Yılmaz"),
		Phone:    strPtr(""),
		Notes:    strPtr("allergic to red ink"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", c.FullName)
	assert.Equal(t, "ayse@example.com", *c.Email, "untouched")
	assert.Nil(t, c.Phone, "cleared")
	assert.Equal(t, "allergic to red ink", c.Notes)

	_, err = svc.Update(ctx, "client-1", UpdateRequest{FullName: strPtr(" ")})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestStorageErrors(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").Return(nil, ErrNotFound)
	repo.On("List", ctx, mock.Anything).Return(nil, 0, errors.New("connection reset"))
	repo.On("Delete", ctx, "client-1").Return(errors.New("connection reset"))

	_, err := svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.List(ctx, Filter{Keyword: " ayse "})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, apperror.IsRetryable(err))

	err = svc.Delete(ctx, "client-1")
	assert.ErrorIs(t, err, ErrUnavailable)

	repo.AssertCalled(t, "List", ctx, Filter{Keyword: "ayse"})
}
