package resume

// Document is the canonical, template-agnostic resume snapshot handed to the
// renderers. It is stored as JSONB in the database and sent as-is over the
// render API; renderers never mutate it.
type Document struct {
	PersonalInfo   PersonalInfo    `json:"personal_info"`
	Summary        string          `json:"summary"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []string        `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
}

// PersonalInfo holds the contact header. Every field is optional; FullName
// falls back to a placeholder during Normalize.
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Experience is one employment entry. Dates use the "YYYY-MM" form; when
// Current is set the end date is ignored and rendered as "Present".
type Experience struct {
	ID          string `json:"id"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is one degree entry.
type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa"`
}

// Project is one portfolio project entry.
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
}

// Certification is one certificate entry.
type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}
