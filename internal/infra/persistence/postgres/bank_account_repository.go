package postgres

import (
	"context"

	"lbank/internal/domain/entity"
	domainerrors "lbank/internal/domain/errors"
	"lbank/internal/domain/repository"
	"lbank/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bankAccountRepository implements the domain.BankAccountRepository interface.
// Records are append-only; the interface exposes no update or delete path.
type bankAccountRepository struct {
	db *gorm.DB
}

// NewBankAccountRepository is the constructor for bankAccountRepository.
func NewBankAccountRepository(db *gorm.DB) repository.BankAccountRepository {
	return &bankAccountRepository{db: db}
}

// Create persists a new bank account record. A duplicate (user, item, account)
// combination surfaces as ErrDuplicateBankAccount from the store's uniqueness
// constraint.
func (repo *bankAccountRepository) Create(ctx context.Context, account *entity.BankAccount) error {
	accountM := fromBankAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateBankAccount
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrWriteFailed.WrapMessage("invalid user reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrWriteFailed.WrapMessage("missing required bank account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create bank account")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt

	return nil
}

// FindByID retrieves a single bank account record by its unique ID.
func (repo *bankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BankAccount, error) {
	var accountM model.BankAccountModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBankAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find bank account by id")
	}

	return toBankAccountDomain(&accountM), nil
}

// FindByUserID retrieves all bank account records owned by a user, newest first.
func (repo *bankAccountRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BankAccount, error) {
	var accountModels []model.BankAccountModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&accountModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list bank accounts by user id")
	}

	accounts := make([]*entity.BankAccount, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, toBankAccountDomain(&accountModels[i]))
	}

	return accounts, nil
}

// --- Mapper Functions ---

// toBankAccountDomain converts a GORM BankAccountModel to a domain BankAccount entity.
func toBankAccountDomain(data *model.BankAccountModel) *entity.BankAccount {
	if data == nil {
		return nil
	}

	return &entity.BankAccount{
		ID:               data.ID,
		UserID:           data.UserID,
		ItemID:           data.ItemID,
		AccountID:        data.AccountID,
		AccessToken:      data.AccessToken,
		FundingSourceURL: data.FundingSourceURL,
		ShareID:          data.ShareID,
		CreatedAt:        data.CreatedAt,
	}
}

// fromBankAccountDomain converts a domain BankAccount entity to a GORM BankAccountModel.
func fromBankAccountDomain(data *entity.BankAccount) *model.BankAccountModel {
	if data == nil {
		return nil
	}

	return &model.BankAccountModel{
		ID:               data.ID,
		UserID:           data.UserID,
		ItemID:           data.ItemID,
		AccountID:        data.AccountID,
		AccessToken:      data.AccessToken,
		FundingSourceURL: data.FundingSourceURL,
		ShareID:          data.ShareID,
	}
}
