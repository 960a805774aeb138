package backend

import (
	"net/url"
	"strconv"
	"time"
)

// Pagination is the paging block returned by list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListParams filters a list endpoint. Zero values are omitted from the query.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Status string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	return q
}

type ContactSubmission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Language  string    `json:"language,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ContactList struct {
	Contacts   []Contact  `json:"contacts"`
	Pagination Pagination `json:"pagination"`
}

type VolunteerApplication struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Area         string `json:"area"`
	Availability string `json:"availability"`
	Message      string `json:"message,omitempty"`
	Language     string `json:"language,omitempty"`
}

type Volunteer struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Area         string     `json:"area"`
	Availability string     `json:"availability"`
	Message      string     `json:"message,omitempty"`
	Status       string     `json:"status"`
	ReviewNotes  string     `json:"reviewNotes,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// VolunteerReview moves an application to approved or rejected.
type VolunteerReview struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

type VolunteerList struct {
	Volunteers []Volunteer `json:"volunteers"`
	Pagination Pagination  `json:"pagination"`
}

type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// UserUpdate is a partial update; nil fields are left unchanged.
type UserUpdate struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type UserList struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the result of a successful login.
type Session struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Settings holds the site-wide details editable from the admin area.
type Settings struct {
	SiteName    string            `json:"siteName"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Address     string            `json:"address"`
	Logo        string            `json:"logo,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
}

// ImageUpload is one file sent as multipart/form-data.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
	Folder      string
}

type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type DashboardStats struct {
	TotalContacts     int         `json:"totalContacts"`
	NewContacts       int         `json:"newContacts"`
	TotalVolunteers   int         `json:"totalVolunteers"`
	PendingVolunteers int         `json:"pendingVolunteers"`
	TotalUsers        int         `json:"totalUsers"`
	RecentContacts    []Contact   `json:"recentContacts,omitempty"`
	RecentVolunteers  []Volunteer `json:"recentVolunteers,omitempty"`
}
