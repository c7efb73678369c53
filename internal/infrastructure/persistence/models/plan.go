package models

import (
	"github.com/gymtrack/backend/internal/domain/plan"
	"github.com/shopspring/decimal"
)

// PlanModel is the persistence model for the Plan domain entity.
type PlanModel struct {
	BaseModel
	Name           string          `gorm:"type:varchar(100);not null"`
	Description    string          `gorm:"type:text"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DurationMonths int             `gorm:"not null;default:1"`
	Benefits       string          `gorm:"type:text"`
	Active         bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}

// ToDomain converts the persistence model to a domain Plan entity.
func (m *PlanModel) ToDomain() *plan.Plan {
	return &plan.Plan{
		BaseEntity:     m.BaseModel.ToDomain(),
		Name:           m.Name,
		Description:    m.Description,
		Price:          m.Price,
		DurationMonths: m.DurationMonths,
		Benefits:       m.Benefits,
		Active:         m.Active,
	}
}

// FromDomain populates the persistence model from a domain Plan entity.
func (m *PlanModel) FromDomain(e *plan.Plan) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Name = e.Name
	m.Description = e.Description
	m.Price = e.Price
	m.DurationMonths = e.DurationMonths
	m.Benefits = e.Benefits
	m.Active = e.Active
}
