// Package knowledge holds the static business knowledge the chatbot answers
// from: the company profile, the curated product corpus, and a keyword-based
// topic lookup over it.
package knowledge

import "strings"

// BusinessProfile describes the company the chatbot answers for.
type BusinessProfile struct {
	Company     string   `json:"company"`
	Tagline     string   `json:"tagline"`
	Location    string   `json:"location"`
	Established string   `json:"established"`
	GSTNumber   string   `json:"gst_number"`
	Website     string   `json:"website"`
	Rating      string   `json:"rating"`
	Contact     string   `json:"contact"`
	Brands      []string `json:"brands"`
	Products    []string `json:"products"`
	Services    []string `json:"services"`
}

// DefaultProfile returns the Plywood Studio business profile.
func DefaultProfile() BusinessProfile {
	return BusinessProfile{
		Company:     "Plywood Studio",
		Tagline:     "Premium plywood, doors and laminate solutions since 2022",
		Location:    "5-5-983, 5-5-982/1, Goshamahal, Hyderabad-500012, Telangana, India",
		Established: "2022",
		GSTNumber:   "36ABCFP0708R1ZW",
		Website:     "www.indiamart.com/plywoodstudio",
		Rating:      "5.0 stars on IndiaMART",
		Contact:     "Available via IndiaMART platform",
		Brands:      []string{"Centuryply", "Sainik", "Greenply"},
		Products:    []string{"Wooden Plywood", "Wooden Doors", "Laminate Sheets", "Door Hardware"},
		Services: []string{
			"Wholesale trading of plywood and doors",
			"Wide range of branded plywood (Centuryply, Sainik, Greenply)",
			"Custom door solutions",
			"Laminate sheet supply",
			"Door hardware and locks",
			"GST compliant billing",
			"IndiaMART verified supplier",
		},
	}
}

// Summary renders the profile as a short paragraph for prompt injection.
func (p BusinessProfile) Summary() string {
	return p.Company + ", " + p.Tagline + ". Located at " + p.Location +
		". Brands carried: " + strings.Join(p.Brands, ", ") +
		". Products: " + strings.Join(p.Products, ", ") + ". " + p.Rating + "."
}

// Persona is the system role given to generative backends.
const Persona = "You are a knowledgeable assistant for Plywood Studio, a premium plywood, " +
	"doors, and laminate supplier in Hyderabad. Provide accurate, helpful, and detailed " +
	"information about products, specifications, and services."

// ContactFooter is appended to knowledge-base answers so customers know how
// to follow up on pricing and availability.
const ContactFooter = "For specific specifications, current stock, and pricing, contact us " +
	"via IndiaMART (www.indiamart.com/plywoodstudio) or visit our Goshamahal, Hyderabad showroom."
