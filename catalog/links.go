package catalog

import "rentai/models"

var navLinks = []models.Link{
	{Name: "Explore", Href: "/explore"},
	{Name: "Neighborhoods", Href: "/neighborhoods"},
	{Name: "Property Types", Href: "/properties"},
	{Name: "Saved Homes", Href: "/saved"},
}

var footerSections = []models.LinkSection{
	{Title: "For Renters", Links: []models.Link{
		{Name: "Search Homes", Href: "/search"},
		{Name: "Neighborhoods", Href: "/neighborhoods"},
		{Name: "AI Search Guide", Href: "/guide"},
		{Name: "Saved Homes", Href: "/saved"},
	}},
	{Title: "For Property Owners", Links: []models.Link{
		{Name: "List Your Property", Href: "/list"},
		{Name: "Landlord Dashboard", Href: "/dashboard"},
		{Name: "Property Management", Href: "/management"},
		{Name: "Success Stories", Href: "/stories"},
	}},
	{Title: "Company", Links: []models.Link{
		{Name: "About Us", Href: "/about"},
		{Name: "Careers", Href: "/careers"},
		{Name: "Press", Href: "/press"},
		{Name: "Contact", Href: "/contact"},
	}},
	{Title: "Resources", Links: []models.Link{
		{Name: "Help Center", Href: "/help"},
		{Name: "Privacy Policy", Href: "/privacy"},
		{Name: "Terms of Service", Href: "/terms"},
		{Name: "Blog", Href: "/blog"},
	}},
}

// NavLinks returns the top navigation entries.
func NavLinks() []models.Link { return append([]models.Link(nil), navLinks...) }

// FooterSections returns the footer link table.
func FooterSections() []models.LinkSection {
	out := make([]models.LinkSection, len(footerSections))
	for i, s := range footerSections {
		s.Links = append([]models.Link(nil), s.Links...)
		out[i] = s
	}
	return out
}
