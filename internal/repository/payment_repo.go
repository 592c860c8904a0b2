package repository

import (
	"gorm.io/gorm"

	"vpnsub/internal/models"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Preload("Subscription").Preload("Subscription.User").
		First(&payment, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}
