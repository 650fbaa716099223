package store

import "time"

// Portfolio is the singleton resume document. Nested ids are caller-supplied
// strings; the store does not enforce their uniqueness.
type Portfolio struct {
	Password           string          `json:"password"`
	StudentDetails     StudentDetails  `json:"studentDetails"`
	TypingTexts        []string        `json:"typingTexts"`
	Summary            string          `json:"summary"`
	Academics          []Academic      `json:"academics"`
	Skills             SkillSet        `json:"skills"`
	Certifications     []Certification `json:"certifications"`
	InternshipProjects []Project       `json:"internshipProjects"`
	PersonalProjects   []Project       `json:"personalProjects"`
	Internships        []Internship    `json:"internships"`
	CreatedAt          time.Time       `json:"createdAt,omitzero"`
	UpdatedAt          time.Time       `json:"updatedAt,omitzero"`
}

type StudentDetails struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	GitHub       string `json:"github"`
	ProfileImage string `json:"profileImage"`
}

type Academic struct {
	ID             string `json:"id"`
	Degree         string `json:"degree"`
	Institute      string `json:"institute"`
	GraduationDate string `json:"graduationDate"`
}

type SkillSet struct {
	Technical []string `json:"technical"`
	Interests []string `json:"interests"`
	Soft      []string `json:"soft"`
}

type Certification struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Link         string `json:"link"`
	CredentialID string `json:"credentialId"`
	Badge        string `json:"badge"`
}

type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	LiveDemo    string   `json:"liveDemo"`
	Repository  string   `json:"repository"`
	TechStack   []string `json:"techStack,omitempty"`
}

type Internship struct {
	ID       string   `json:"id"`
	Company  string   `json:"company"`
	Role     string   `json:"role"`
	Duration string   `json:"duration"`
	Bullets  []string `json:"bullets"`
}

// Visitor is one email-capture event. Rows are never mutated or deleted.
type Visitor struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DateVisited time.Time `json:"dateVisited"`
}
