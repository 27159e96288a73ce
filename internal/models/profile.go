package models

type ElderProfile struct {
	ID               string `json:"id,omitempty"`
	UserID           string `json:"userId,omitempty"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	City             string `json:"city"`
	State            string `json:"state"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
	EmergencyPhone   string `json:"emergencyPhone,omitempty"`
}

type CaregiverProfile struct {
	ID                string   `json:"id,omitempty"`
	UserID            string   `json:"userId,omitempty"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Bio               string   `json:"bio"`
	YearsOfExperience int      `json:"yearsOfExperience"`
	HourlyRate        Decimal  `json:"hourlyRate"`
	AvailableFrom     string   `json:"availableFrom"`
	AvailableTo       string   `json:"availableTo"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	Skills            []string `json:"skills"`
	Phone             string   `json:"phone,omitempty"`
	Verified          bool     `json:"verified,omitempty"`
}

func (p CaregiverProfile) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
