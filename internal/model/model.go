package model

// Address is a postal address attached to a site or a contact.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Contact is a person reachable for a site.
type Contact struct {
	ID          string   `json:"id" validate:"required"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email" validate:"omitempty,email"`
	PhoneNumber string   `json:"phoneNumber"`
	JobTitle    string   `json:"jobTitle"`
	Address     *Address `json:"address,omitempty"`
}

// MainContactRole is the contact role shown as the site's primary contact.
const MainContactRole = "main"

// Site is a physical location belonging to a client.
// Contacts are keyed by an arbitrary role label such as "main".
type Site struct {
	ID        string             `json:"id" validate:"required"`
	ClientID  string             `json:"clientId"`
	Title     string             `json:"title"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
	Contacts  map[string]Contact `json:"contacts,omitempty" validate:"dive"`
	Address   *Address           `json:"address,omitempty"`
	Images    []string           `json:"images"`
	Tags      []string           `json:"tags"`
}

// Client owns sites.
type Client struct {
	ID        string   `json:"id" validate:"required"`
	GivenName string   `json:"givenName"`
	Logo      string   `json:"logo"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Tags      []string `json:"tags"`
}

// User is the user of the current session.
type User struct {
	ID        string `json:"id" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Username  string `json:"username"`
	GivenName string `json:"givenName"`
	Locale    string `json:"locale"`
	Avatar    string `json:"avatar"`
}

// Option is a select entry derived from a client.
type Option struct {
	Title string `json:"title"`
	Value string `json:"value"`
}
