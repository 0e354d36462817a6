package domain

import "time"

// Psychologist — специалист центра. Имя и специализация хранятся
// на двух языках, русский вариант считается основным.
type Psychologist struct {
	ID               int64
	NameRu           string
	NameKz           string
	SpecializationRu string
	SpecializationKz string
	Email            string
	PhotoURL         string
	Active           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns the name used in notifications and API responses.
func (p *Psychologist) DisplayName() string {
	if p.NameRu != "" {
		return p.NameRu
	}
	return p.NameKz
}
