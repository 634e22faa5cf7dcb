package services_test

import (
	"context"

	"donation-api/internal/models"
	"donation-api/internal/repositories"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) GetActiveByID(ctx context.Context, id uint) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) user(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateEmail(ctx context.Context, id uint, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateWithCampaigns(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockCampaignRepository is a mock implementation of repositories.CampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	return m.campaign(m.Called(ctx, id))
}

func (m *MockCampaignRepository) GetActiveWithDonations(ctx context.Context, id uint) (*models.Campaign, error) {
	return m.campaign(m.Called(ctx, id))
}

func (m *MockCampaignRepository) campaign(args mock.Arguments) (*models.Campaign, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListActive(ctx context.Context, query repositories.CampaignQuery) ([]models.Campaign, int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.Campaign), args.Get(1).(int64), args.Error(2)
}

func (m *MockCampaignRepository) ListActiveByCreator(ctx context.Context, creatorID uint) ([]models.Campaign, error) {
	args := m.Called(ctx, creatorID)
	return args.Get(0).([]models.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListAll(ctx context.Context) ([]models.Campaign, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) UpdateOwned(ctx context.Context, id, ownerID uint, changes repositories.CampaignChanges) error {
	args := m.Called(ctx, id, ownerID, changes)
	return args.Error(0)
}

func (m *MockCampaignRepository) DeactivateOwned(ctx context.Context, id, ownerID uint) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockCampaignRepository) Deactivate(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDonationRepository is a mock implementation of repositories.DonationRepository
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) CreateAndIncrement(ctx context.Context, donation *models.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(eventType string, payload map[string]interface{}) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

// MockImageStore is a mock implementation of services.ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	args := m.Called(ctx, key, data)
	return args.String(0), args.Error(1)
}

func mustHash(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hashed)
}
