package dto

import (
	"strings"

	"careconnect_web/internal/models"
)

type ElderProfileForm struct {
	ID               string `form:"id"`
	FirstName        string `form:"firstName" validate:"required,max=50"`
	LastName         string `form:"lastName" validate:"required,max=50"`
	Phone            string `form:"phone" validate:"max=30"`
	Address          string `form:"address" validate:"max=200"`
	City             string `form:"city" validate:"required,max=100"`
	State            string `form:"state" validate:"required,max=50"`
	EmergencyContact string `form:"emergencyContact" validate:"max=100"`
	EmergencyPhone   string `form:"emergencyPhone" validate:"max=30"`
}

func (f *ElderProfileForm) Normalize() {
	for _, s := range []*string{&f.FirstName, &f.LastName, &f.Phone, &f.Address, &f.City, &f.State, &f.EmergencyContact, &f.EmergencyPhone} {
		*s = strings.TrimSpace(*s)
	}
}

func (f ElderProfileForm) ToProfile() models.ElderProfile {
	return models.ElderProfile{
		ID:               f.ID,
		FirstName:        f.FirstName,
		LastName:         f.LastName,
		Phone:            f.Phone,
		Address:          f.Address,
		City:             f.City,
		State:            f.State,
		EmergencyContact: f.EmergencyContact,
		EmergencyPhone:   f.EmergencyPhone,
	}
}

// ElderProfileFormFrom prefills the form from a stored profile.
func ElderProfileFormFrom(p models.ElderProfile) ElderProfileForm {
	return ElderProfileForm{
		ID:               p.ID,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Phone:            p.Phone,
		Address:          p.Address,
		City:             p.City,
		State:            p.State,
		EmergencyContact: p.EmergencyContact,
		EmergencyPhone:   p.EmergencyPhone,
	}
}

type CaregiverProfileForm struct {
	ID                string   `form:"id"`
	FirstName         string   `form:"firstName" validate:"required,max=50"`
	LastName          string   `form:"lastName" validate:"required,max=50"`
	Phone             string   `form:"phone" validate:"max=30"`
	Bio               string   `form:"bio" validate:"required,max=2000"`
	YearsOfExperience int      `form:"yearsOfExperience" validate:"gte=0,max=80"`
	HourlyRate        float64  `form:"hourlyRate" validate:"gte=0"`
	AvailableFrom     string   `form:"availableFrom" validate:"required,is-hhmm"`
	AvailableTo       string   `form:"availableTo" validate:"required,is-hhmm"`
	City              string   `form:"city" validate:"required,max=100"`
	State             string   `form:"state" validate:"required,max=50"`
	Skills            []string `form:"skills" validate:"dive,is-skill"`
}

func (f *CaregiverProfileForm) Normalize() {
	for _, s := range []*string{&f.FirstName, &f.LastName, &f.Phone, &f.Bio, &f.City, &f.State} {
		*s = strings.TrimSpace(*s)
	}
}

func (f CaregiverProfileForm) ToProfile() models.CaregiverProfile {
	skills := f.Skills
	if skills == nil {
		skills = []string{}
	}
	return models.CaregiverProfile{
		ID:                f.ID,
		FirstName:         f.FirstName,
		LastName:          f.LastName,
		Phone:             f.Phone,
		Bio:               f.Bio,
		YearsOfExperience: f.YearsOfExperience,
		HourlyRate:        models.Decimal(f.HourlyRate),
		AvailableFrom:     f.AvailableFrom,
		AvailableTo:       f.AvailableTo,
		City:              f.City,
		State:             f.State,
		Skills:            skills,
	}
}

func CaregiverProfileFormFrom(p models.CaregiverProfile) CaregiverProfileForm {
	return CaregiverProfileForm{
		ID:                p.ID,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Phone:             p.Phone,
		Bio:               p.Bio,
		YearsOfExperience: p.YearsOfExperience,
		HourlyRate:        p.HourlyRate.Float64(),
		AvailableFrom:     trimSeconds(p.AvailableFrom),
		AvailableTo:       trimSeconds(p.AvailableTo),
		City:              p.City,
		State:             p.State,
		Skills:            p.Skills,
	}
}

// HasSkill is used by the template to check the skill boxes.
func (f CaregiverProfileForm) HasSkill(skill string) bool {
	for _, s := range f.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// trimSeconds turns "09:00:00" into "09:00" for <input type="time">.
func trimSeconds(clock string) string {
	if len(clock) == len("15:04:05") && strings.Count(clock, ":") == 2 {
		return clock[:5]
	}
	return clock
}
