package models

import (
	"time"

	"github.com/gymtrack/backend/internal/domain/debt"
	"github.com/gymtrack/backend/internal/domain/membership"
	"github.com/gymtrack/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// MembershipModel is the persistence model for the Membership domain entity.
type MembershipModel struct {
	BaseModel
	MemberID   uint              `gorm:"not null;index"`
	PlanID     uint              `gorm:"not null;index"`
	StartDate  time.Time         `gorm:"not null"`
	EndDate    time.Time         `gorm:"not null;index"`
	MonthsPaid int               `gorm:"not null;default:1"`
	AmountPaid decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0"`
	Status     membership.Status `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (MembershipModel) TableName() string {
	return "memberships"
}

// ToDomain converts the persistence model to a domain Membership entity.
func (m *MembershipModel) ToDomain() *membership.Membership {
	return &membership.Membership{
		BaseEntity: m.BaseModel.ToDomain(),
		MemberID:   m.MemberID,
		PlanID:     m.PlanID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		MonthsPaid: m.MonthsPaid,
		AmountPaid: m.AmountPaid,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Membership entity.
func (m *MembershipModel) FromDomain(e *membership.Membership) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.PlanID = e.PlanID
	m.StartDate = e.StartDate
	m.EndDate = e.EndDate
	m.MonthsPaid = e.MonthsPaid
	m.AmountPaid = e.AmountPaid
	m.Status = e.Status
}

// PaymentModel is the persistence model for the Payment domain entity.
type PaymentModel struct {
	BaseModel
	MemberID      uint            `gorm:"not null;index"`
	MembershipID  *uint           `gorm:"index"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Method        payment.Method  `gorm:"type:varchar(20);not null;default:'cash'"`
	Concept       string          `gorm:"type:varchar(255);not null;index"`
	Period        string          `gorm:"type:varchar(7)"`
	ReceiptNumber string          `gorm:"type:varchar(50)"`
	Notes         string          `gorm:"type:text"`
	PaidAt        time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *payment.Payment {
	return &payment.Payment{
		BaseEntity:    m.BaseModel.ToDomain(),
		MemberID:      m.MemberID,
		MembershipID:  m.MembershipID,
		Amount:        m.Amount,
		Method:        m.Method,
		Concept:       m.Concept,
		Period:        m.Period,
		ReceiptNumber: m.ReceiptNumber,
		Notes:         m.Notes,
		PaidAt:        m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(e *payment.Payment) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.MembershipID = e.MembershipID
	m.Amount = e.Amount
	m.Method = e.Method
	m.Concept = e.Concept
	m.Period = e.Period
	m.ReceiptNumber = e.ReceiptNumber
	m.Notes = e.Notes
	m.PaidAt = e.PaidAt
}

// DebtModel is the persistence model for the Debt domain entity.
type DebtModel struct {
	BaseModel
	MemberID      uint            `gorm:"not null;index"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PendingAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Concept       string          `gorm:"type:varchar(255);not null"`
	DueDate       time.Time       `gorm:"not null;index"`
	Status        debt.Status     `gorm:"type:varchar(20);not null;default:'pending';index"`
}

// TableName returns the table name for GORM
func (DebtModel) TableName() string {
	return "debts"
}

// ToDomain converts the persistence model to a domain Debt entity.
func (m *DebtModel) ToDomain() *debt.Debt {
	return &debt.Debt{
		BaseEntity:    m.BaseModel.ToDomain(),
		MemberID:      m.MemberID,
		TotalAmount:   m.TotalAmount,
		PaidAmount:    m.PaidAmount,
		PendingAmount: m.PendingAmount,
		Concept:       m.Concept,
		DueDate:       m.DueDate,
		Status:        m.Status,
	}
}

// FromDomain populates the persistence model from a domain Debt entity.
func (m *DebtModel) FromDomain(e *debt.Debt) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.TotalAmount = e.TotalAmount
	m.PaidAmount = e.PaidAmount
	m.PendingAmount = e.PendingAmount
	m.Concept = e.Concept
	m.DueDate = e.DueDate
	m.Status = e.Status
}
