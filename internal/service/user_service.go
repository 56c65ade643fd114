package service

import (
	"context"
	"strings"

	"github.com/ratna-shop/internal/cache"
	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"

	"gorm.io/gorm"
)

// UserService handles back-office customer account management and the
// customer's own profile and address book.
type UserService struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	identityRepo repository.UserIdentityRepository
	addressRepo  repository.AddressRepository
}

// NewUserService creates the user service.
func NewUserService(db *gorm.DB, userRepo repository.UserRepository, identityRepo repository.UserIdentityRepository, addressRepo repository.AddressRepository) *UserService {
	return &UserService{
		db:           db,
		userRepo:     userRepo,
		identityRepo: identityRepo,
		addressRepo:  addressRepo,
	}
}

// GetByID returns a user account.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List returns the back-office user page.
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// UpdateStatus changes a user's account status; blocking also revokes
// every outstanding session token.
func (s *UserService) UpdateStatus(id uint, status string) (*models.User, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case constants.UserStatusActive, constants.UserStatusInactive, constants.UserStatusBlocked:
	default:
		return nil, ErrUserStatusInvalid
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	if status != constants.UserStatusActive {
		if err := s.userRepo.BumpTokenVersion(id); err != nil {
			return nil, err
		}
	}
	_ = cache.DelUserAuthState(context.Background(), id)

	user.Status = status
	return user, nil
}

// UpdateProfile updates the customer's own display name and phone.
func (s *UserService) UpdateProfile(id uint, displayName, phone string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if phone = strings.TrimSpace(phone); phone != "" {
		normalized, err := NormalizePhone(phone)
		if err != nil {
			return nil, err
		}
		user.Phone = normalized
	}
	user.DisplayName = strings.TrimSpace(displayName)

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListIdentities returns the user's linked OAuth identities.
func (s *UserService) ListIdentities(userID uint) ([]models.UserIdentity, error) {
	return s.identityRepo.ListByUserID(userID)
}

// Delete removes a user account together with its identity links.
func (s *UserService) Delete(id uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.identityRepo.WithTx(tx).DeleteByUserID(id); err != nil {
			return err
		}
		return s.userRepo.WithTx(tx).Delete(id)
	})
	if err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), id)
	return nil
}

// AddressInput is the create/update payload for an address.
type AddressInput struct {
	RecipientName  string
	RecipientPhone string
	AddressLine1   string
	AddressLine2   string
	City           string
	State          string
	Pincode        string
	Country        string
	IsDefault      bool
}

// ListAddresses returns a user's address book, default first.
func (s *UserService) ListAddresses(userID uint) ([]models.Address, error) {
	return s.addressRepo.ListByUserID(userID)
}

// CreateAddress adds an address to the user's book.
func (s *UserService) CreateAddress(userID uint, input AddressInput) (*models.Address, error) {
	address := buildAddress(userID, input)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		addressRepo := s.addressRepo.WithTx(tx)
		if input.IsDefault {
			if err := addressRepo.ClearDefault(userID); err != nil {
				return err
			}
		}
		return addressRepo.Create(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// UpdateAddress rewrites an address, scoped to the owner.
func (s *UserService) UpdateAddress(userID, addressID uint, input AddressInput) (*models.Address, error) {
	address, err := s.addressRepo.GetByID(addressID)
	if err != nil {
		return nil, err
	}
	if address == nil || address.UserID != userID {
		return nil, ErrAddressNotFound
	}

	updated := buildAddress(userID, input)
	updated.ID = address.ID
	updated.CreatedAt = address.CreatedAt
	err = s.db.Transaction(func(tx *gorm.DB) error {
		addressRepo := s.addressRepo.WithTx(tx)
		if input.IsDefault && !address.IsDefault {
			if err := addressRepo.ClearDefault(userID); err != nil {
				return err
			}
		}
		return addressRepo.Update(updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAddress removes an address, scoped to the owner.
func (s *UserService) DeleteAddress(userID, addressID uint) error {
	address, err := s.addressRepo.GetByID(addressID)
	if err != nil {
		return err
	}
	if address == nil || address.UserID != userID {
		return ErrAddressNotFound
	}
	return s.addressRepo.Delete(addressID)
}

func buildAddress(userID uint, input AddressInput) *models.Address {
	country := strings.TrimSpace(input.Country)
	if country == "" {
		country = "India"
	}
	return &models.Address{
		UserID:         userID,
		RecipientName:  strings.TrimSpace(input.RecipientName),
		RecipientPhone: strings.TrimSpace(input.RecipientPhone),
		AddressLine1:   strings.TrimSpace(input.AddressLine1),
		AddressLine2:   strings.TrimSpace(input.AddressLine2),
		City:           strings.TrimSpace(input.City),
		State:          strings.TrimSpace(input.State),
		Pincode:        strings.TrimSpace(input.Pincode),
		Country:        country,
		IsDefault:      input.IsDefault,
	}
}
