package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockContactRepository implements ContactRepository for testing
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) LoadAll(ctx context.Context) ([]ContactRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ContactRecord), args.Error(1)
}

func (m *MockContactRepository) Append(ctx context.Context, record ContactRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func TestContactService_Submit_ExpandsOneRecordPerEmail(t *testing.T) {
	repo := &MockContactRepository{}
	svc := NewContactService(repo)
	ctx := context.Background()

	repo.On("Append", ctx, ContactRecord{
		UserID: "owner@x.com", Email: "a@x.com", Project: "P1", Tags: "dev, qa", Teams: "core",
	}).Return(nil).Once()
	repo.On("Append", ctx, ContactRecord{
		UserID: "owner@x.com", Email: "b@x.com", Project: "P1", Tags: "dev, qa", Teams: "core",
	}).Return(nil).Once()

	n, err := svc.Submit(ctx, "owner@x.com", ContactForm{
		Emails:  "a@x.com, b@x.com",
		Project: " P1 ",
		Tags:    "dev, qa",
		Teams:   "core",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	repo.AssertExpectations(t)
}

func TestContactService_Submit_RejectsWholeSubmissionOnInvalidEmail(t *testing.T) {
	repo := &MockContactRepository{}
	svc := NewContactService(repo)

	n, err := svc.Submit(context.Background(), "owner@x.com", ContactForm{
		Emails: "a@x.com, bad",
	})

	assert.Equal(t, 0, n)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	var invalidErr *InvalidEmailsError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, []string{"bad"}, invalidErr.Addresses)

	// Nothing was appended: the valid subset is rejected too.
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestContactService_Submit_EmptyInputIsDistinctError(t *testing.T) {
	repo := &MockContactRepository{}
	svc := NewContactService(repo)

	_, err := svc.Submit(context.Background(), "owner@x.com", ContactForm{Emails: " , "})
	assert.ErrorIs(t, err, ErrNoRecipients)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestContactService_Submit_StoreFailurePropagates(t *testing.T) {
	repo := &MockContactRepository{}
	svc := NewContactService(repo)
	ctx := context.Background()

	repo.On("Append", ctx, mock.Anything).Return(errors.New("quota exceeded"))

	n, err := svc.Submit(ctx, "owner@x.com", ContactForm{Emails: "a@x.com"})
	assert.Equal(t, 0, n)
	assert.Error(t, err)
}

func TestContactService_ListForUser(t *testing.T) {
	repo := &MockContactRepository{}
	svc := NewContactService(repo)
	ctx := context.Background()

	all := []ContactRecord{
		{UserID: "owner@x.com", Email: "a@x.com"},
		{UserID: "other@x.com", Email: "b@x.com"},
		{UserID: "Owner@x.com", Email: "c@x.com"}, // case-sensitive mismatch
	}
	repo.On("LoadAll", ctx).Return(all, nil)

	records, err := svc.ListForUser(ctx, "owner@x.com")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a@x.com", records[0].Email)
}

func TestContactService_ListForUser_StoreError(t *testing.T) {
	repo := &MockContactRepository{}
	svc := NewContactService(repo)
	ctx := context.Background()

	repo.On("LoadAll", ctx).Return(nil, ErrStoreUnavailable)

	_, err := svc.ListForUser(ctx, "owner@x.com")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
