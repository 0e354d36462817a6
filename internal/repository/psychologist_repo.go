package repository

import (
	"context"
	"errors"
	"time"

	"psycenter/internal/domain"

	"gorm.io/gorm"
)

type PsychologistRepository struct {
	db *gorm.DB
}

func NewPsychologistRepository(db *gorm.DB) *PsychologistRepository {
	return &PsychologistRepository{db: db}
}

type psychologistModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	NameRu           string    `gorm:"column:name_ru"`
	NameKz           string    `gorm:"column:name_kz"`
	SpecializationRu string    `gorm:"column:specialization_ru"`
	SpecializationKz string    `gorm:"column:specialization_kz"`
	Email            string    `gorm:"column:email"`
	PhotoURL         string    `gorm:"column:photo_url"`
	Active           bool      `gorm:"column:active;default:true"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (psychologistModel) TableName() string { return "psychologists" }

func toDomainPsychologist(m psychologistModel) *domain.Psychologist {
	return &domain.Psychologist{
		ID:               m.ID,
		NameRu:           m.NameRu,
		NameKz:           m.NameKz,
		SpecializationRu: m.SpecializationRu,
		SpecializationKz: m.SpecializationKz,
		Email:            m.Email,
		PhotoURL:         m.PhotoURL,
		Active:           m.Active,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *PsychologistRepository) Create(ctx context.Context, p *domain.Psychologist) error {
	m := psychologistModel{
		NameRu:           p.NameRu,
		NameKz:           p.NameKz,
		SpecializationRu: p.SpecializationRu,
		SpecializationKz: p.SpecializationKz,
		Email:            p.Email,
		PhotoURL:         p.PhotoURL,
		Active:           p.Active,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPsychologist(m)
	return nil
}

func (r *PsychologistRepository) GetByID(ctx context.Context, id int64) (*domain.Psychologist, error) {
	var m psychologistModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainPsychologist(m), nil
}

func (r *PsychologistRepository) ListActive(ctx context.Context) ([]domain.Psychologist, error) {
	var rows []psychologistModel
	tx := r.db.WithContext(ctx).Where("active = ?", true).Order("id ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Psychologist, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPsychologist(m))
	}
	return out, nil
}
