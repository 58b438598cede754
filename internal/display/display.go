// Package display formats site fields for the presentation layer.
package display

import "github.com/bassista/go_sitedesk/internal/model"

// NoAvatar is returned by Avatar when a site has no images.
const NoAvatar = "/"

// Address returns "street, city" or "" when the site has no address.
func Address(site model.Site) string {
	if site.Address == nil {
		return ""
	}
	return site.Address.Street + ", " + site.Address.City
}

// Contact returns the full name of the site's main contact, or "".
func Contact(site model.Site) string {
	c, ok := site.Contacts[model.MainContactRole]
	if !ok {
		return ""
	}
	return c.FirstName + " " + c.LastName
}

// Avatar returns the first image URL, or NoAvatar.
func Avatar(site model.Site) string {
	if len(site.Images) == 0 {
		return NoAvatar
	}
	return site.Images[0]
}

// SiteCard is the list-row view of a site.
type SiteCard struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Address string   `json:"address"`
	Contact string   `json:"contact"`
	Avatar  string   `json:"avatar"`
	Tags    []string `json:"tags"`
}

// Card bundles the projections of a site.
func Card(site model.Site) SiteCard {
	return SiteCard{
		ID:      site.ID,
		Title:   site.Title,
		Address: Address(site),
		Contact: Contact(site),
		Avatar:  Avatar(site),
		Tags:    site.Tags,
	}
}
