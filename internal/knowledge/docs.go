package knowledge

// Doc is a single curated knowledge entry. The corpus seeds the retrieval
// store and backs the topic lookup provider.
type Doc struct {
	ID       string
	Type     string // plywood, brand, door, laminate, technical, business
	Title    string
	Keywords []string // lookup triggers, matched as substrings of the question
	Content  string
}

// Corpus returns the full curated document set.
func Corpus() []Doc {
	docs := make([]Doc, 0, len(productDocs)+1)
	docs = append(docs, productDocs...)
	docs = append(docs, businessDoc())
	return docs
}

var productDocs = []Doc{
	{
		ID:       "plywood-marine",
		Type:     "plywood",
		Title:    "Marine Plywood",
		Keywords: []string{"marine"},
		Content: `Marine plywood is the highest grade of plywood, made with waterproof adhesive (BWP - Boiling Water Proof). It is designed to withstand moisture, humidity, and wet conditions.

Key features: BWP grade adhesive, no voids or gaps in the core layers, high resistance to moisture and humidity, termite and borer resistant, durable construction with a longer lifespan, smooth uniform surface.

Applications: outdoor furniture, boat building, kitchen cabinets, bathrooms, coastal areas.

Available at Plywood Studio: Sainik MR Plywood, Centuryply Marine Grade.

Difference from regular plywood: marine plywood uses BWP glue versus MR (Moisture Resistant) or commercial grade glue, has no core gaps, and is made with better quality veneers.`,
	},
	{
		ID:       "plywood-mr",
		Type:     "plywood",
		Title:    "MR (Moisture Resistant) Plywood",
		Keywords: []string{"mr plywood", "moisture resistant"},
		Content: `MR (Moisture Resistant) Plywood is made with phenolic adhesive, offering better moisture resistance than commercial plywood.

Key features: phenolic resin adhesive, moderate moisture resistance, good strength and durability, affordable for most applications.

Applications: home furniture, bedroom furniture, living room furniture, interior applications.

Available at Plywood Studio: Sainik MR Plywood, Centuryply Bond 710.`,
	},
	{
		ID:       "plywood-bwp",
		Type:     "plywood",
		Title:    "BWP (Boiling Water Proof) Plywood",
		Keywords: []string{"bwp", "boiling water"},
		Content: `BWP (Boiling Water Proof) Plywood uses phenol formaldehyde adhesive for maximum water resistance.

Key features: phenol formaldehyde adhesive, excellent water resistance, can withstand the boiling water test, premium quality veneers.

Applications: kitchens, bathrooms, outdoor furniture, high moisture areas.

Available at Plywood Studio: Centuryply Club Prime, premium marine grade plywood.`,
	},
	{
		ID:       "plywood-commercial",
		Type:     "plywood",
		Title:    "Commercial Plywood",
		Keywords: []string{"commercial"},
		Content: `Commercial plywood is the most economical grade, suitable for interior applications where moisture exposure is minimal.

Key features: urea formaldehyde adhesive, cost-effective, good for dry indoor use, thickness options from 4mm to 25mm.

Applications: indoor furniture, partitions, false ceilings, interior paneling.

Available at Plywood Studio: Centuryply and Greenply commercial grades.`,
	},
	{
		ID:       "brand-centuryply",
		Type:     "brand",
		Title:    "Centuryply",
		Keywords: []string{"centuryply", "century ply", "club prime", "bond 710"},
		Content: `Centuryply is one of India's most trusted and largest plywood brands, known for innovation and quality. Established in 1986, Centuryply pioneered the concept of branded plywood in India.

Products we carry: Club Prime (premium BWP grade plywood with ViroKill anti-viral and anti-bacterial technology), Bond 710 (MR grade plywood with excellent bonding strength, 7-layer construction for 10mm thickness), Sainik 710 (BWP grade with enhanced moisture resistance).

Unique features: ViroKill technology, 6X nail holding strength, borer and termite proof, zero emission. Warranty varies by product, typically 5-25 years.`,
	},
	{
		ID:       "brand-sainik",
		Type:     "brand",
		Title:    "Sainik",
		Keywords: []string{"sainik"},
		Content: `Sainik is a premium plywood brand known for marine-grade quality and durability, specializing in MR and BWP grade plywood with excellent moisture resistance.

Products we carry: Sainik MR Plywood (moisture resistant grade suitable for all indoor applications), Sainik BWP (boiling water proof grade for high moisture areas).

Unique features: 7-ply construction for 6mm, no core gaps, uniform thickness, smooth surface. Long-term warranty against manufacturing defects.`,
	},
	{
		ID:       "brand-greenply",
		Type:     "brand",
		Title:    "Greenply",
		Keywords: []string{"greenply"},
		Content: `Greenply is a leading plywood brand in India, known for eco-friendly products and a focus on environmental sustainability.

Products we carry: Greenply Plywood (various grades including MR and BWP), Greenply Flush Doors (engineered wooden doors with plywood facing), Greenply Laminates (decorative laminates for surfaces).

Unique features: E0 grade (low emission), termite resistant, borer proof. Product-specific warranties available.`,
	},
	{
		ID:       "door-flush",
		Type:     "door",
		Title:    "Flush Doors",
		Keywords: []string{"flush door", "flush"},
		Content: `Flush doors have a smooth, flat surface made with plywood sheets on a wooden frame. Construction: solid wood frame with plywood facing on both sides, hollow or solid core.

Advantages: smooth finish, easy to paint, cost-effective, lightweight with a hollow core.

Applications: interior doors, bedroom doors, bathroom doors.

Sizes: standard 7ft x 3ft, 7ft x 3.5ft, 8ft x 3ft, 8ft x 4ft; custom sizes available. Brands: Greenply Flush Doors.`,
	},
	{
		ID:       "door-panel",
		Type:     "door",
		Title:    "Panel Doors",
		Keywords: []string{"panel door", "panel"},
		Content: `Panel doors have raised or recessed panels set within a frame, offering a traditional aesthetic. Construction: solid wood frame with decorative panels.

Advantages: traditional look, elegant design, durable, various panel configurations.

Applications: main doors, bedroom doors, study room doors. Finishes: natural wood, polish finish, painted.`,
	},
	{
		ID:       "door-laminate",
		Type:     "door",
		Title:    "Laminate Doors",
		Keywords: []string{"laminate door"},
		Content: `Laminate doors carry a decorative laminate finish on a plywood base.

Advantages: attractive finish, scratch resistant, easy to maintain, variety of designs.

Applications: modern interiors, commercial spaces, contemporary homes. Finishes: wood grain, solid colors, textured.`,
	},
	{
		ID:       "laminate-sheets",
		Type:     "laminate",
		Title:    "Decorative Laminates",
		Keywords: []string{"laminate", "sunmica"},
		Content: `Decorative laminates are thin sheets bonded to plywood or particleboard for aesthetic appeal.

Types: Sunmica (popular brand name, 0.8mm, 1mm, 1.5mm thicknesses), wood grain patterns, solid colors (white, black, cream), and matt, glossy, or textured finishes.

Applications: furniture surfaces, kitchen cabinets, wardrobes, tables, wall paneling. Thickness options: 0.8mm, 1mm, 1.5mm (thicker sheets for horizontal surfaces). Brands include Greenply laminates.`,
	},
	{
		ID:       "technical-specs",
		Type:     "technical",
		Title:    "Plywood Thickness and Grades",
		Keywords: []string{"thickness", "grade", "grades", "specification"},
		Content: `Common plywood sizes: 4mm, 6mm, 9mm, 12mm, 15mm, 18mm, 25mm.

Applications by thickness: 4mm backing panels and false ceilings; 6mm cabinet backs and drawer bottoms; 9mm furniture shutters and partitions; 12mm standard furniture and shelves; 15-18mm heavy duty furniture and countertops; 25mm industrial and heavy load bearing.

Plywood grades: BWP (Boiling Water Proof, highest grade, phenol formaldehyde glue), BWR (Boiling Water Resistant, phenolic glue), MR (Moisture Resistant, indoor use), Commercial (interior grade, minimal moisture resistance).`,
	},
	{
		ID:       "hardware-locks",
		Type:     "hardware",
		Title:    "Door Hardware",
		Keywords: []string{"hardware", "lock", "locks", "rim lock"},
		Content: `Plywood Studio offers door hardware including Quba Vault Main Door Rim Locks, security locks, and other quality door accessories to complement our door range.`,
	},
}

func businessDoc() Doc {
	p := DefaultProfile()
	return Doc{
		ID:       "business-info",
		Type:     "business",
		Title:    "Plywood Studio - Business Information",
		Keywords: []string{"location", "address", "contact", "about", "established", "gst"},
		Content: p.Company + " is a partnership firm established in " + p.Established +
			", located at " + p.Location + ". GST registered (" + p.GSTNumber +
			") wholesale trader with 5-25 Cr annual turnover and up to 10 employees, " +
			"rated " + p.Rating + ". Authorized dealer for Centuryply, Sainik, and Greenply. " +
			"Contact through " + p.Website + " or visit the Goshamahal showroom.",
	}
}
