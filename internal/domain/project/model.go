package project

import "time"

// Project is the root of a schedule hierarchy. Its date range is derived
// from its macro stages and never written directly.
type Project struct {
	ID                       string     `json:"id"`
	Name                     string     `json:"name"`
	Scope                    string     `json:"scope,omitempty"`
	Status                   string     `json:"status,omitempty"`
	GithubLink               string     `json:"github_link,omitempty"`
	Coordinator              string     `json:"coordinator,omitempty"`
	AutomationSupport        string     `json:"automation_support,omitempty"`
	RequestingAgency         string     `json:"requesting_agency,omitempty"`
	InternalDepartment       string     `json:"internal_department,omitempty"`
	SponsoringManager        string     `json:"sponsoring_manager,omitempty"`
	SponsoringManagerContact string     `json:"sponsoring_manager_contact,omitempty"`
	TechnicalManager         string     `json:"technical_manager,omitempty"`
	TechnicalManagerContact  string     `json:"technical_manager_contact,omitempty"`
	StartDate                *time.Time `json:"start_date,omitempty"`
	EndDate                  *time.Time `json:"end_date,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
}

// Summary is a lightweight representation for listing
type Summary struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Status          string     `json:"status,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	MacroStageCount int        `json:"macrostage_count"`
	CreatedAt       time.Time  `json:"created_at"`
}
