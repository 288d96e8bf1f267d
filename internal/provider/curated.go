package provider

import (
	"context"
	"strings"

	"github.com/plywoodstudio/faqbot/internal/knowledge"
)

// Curated is the terminal fallback. It picks a canned reply by topic and
// never fails, so every allowed question gets an answer even with no
// model, no search key, and no corpus match.
type Curated struct {
	buckets []bucket
}

type bucket struct {
	name     string
	keywords []string
	response string
}

func NewCurated() *Curated {
	p := knowledge.DefaultProfile()
	return &Curated{
		buckets: []bucket{
			{
				name:     "pricing",
				keywords: []string{"price", "cost", "rate", "quote", "quotation", "how much"},
				response: "Our wholesale pricing depends on brand, grade, and quantity. " +
					"For current rates on Centuryply, Sainik, and Greenply products, " +
					"please contact us via IndiaMART (" + p.Website + ") or visit our " +
					"Goshamahal showroom. Bulk orders get the best rates.",
			},
			{
				name:     "location",
				keywords: []string{"location", "address", "where", "visit", "showroom", "contact", "reach"},
				response: "You can find us at " + p.Location + ". We are available via " +
					"IndiaMART at " + p.Website + ". Walk-ins are welcome during business hours.",
			},
			{
				name:     "brands",
				keywords: []string{"brand", "centuryply", "sainik", "greenply", "which company"},
				response: "We are authorized wholesale dealers for " + strings.Join(p.Brands, ", ") +
					". Our range covers plywood in MR, BWP, and marine grades, flush and panel " +
					"doors, and decorative laminates. Ask about any specific product for details.",
			},
			{
				name:     "products",
				keywords: []string{"plywood", "door", "laminate", "sunmica", "hardware", "lock"},
				response: "Plywood Studio stocks " + strings.Join(p.Products, ", ") +
					" from " + strings.Join(p.Brands, ", ") + ". Tell us the application " +
					"(furniture, kitchen, outdoor) and we can suggest the right grade and thickness.",
			},
		},
	}
}

func (c *Curated) Name() string { return "curated" }

func (c *Curated) Eligible(question string) bool { return true }

func (c *Curated) Answer(ctx context.Context, question string) (string, error) {
	lower := strings.ToLower(question)
	for _, b := range c.buckets {
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				return b.response, nil
			}
		}
	}

	p := knowledge.DefaultProfile()
	return "Thanks for reaching out to " + p.Company + "! We supply branded plywood, " +
		"doors, laminates, and door hardware wholesale from Hyderabad. Could you share " +
		"a bit more about what you are looking for? You can also browse our catalog at " +
		p.Website + ".", nil
}
