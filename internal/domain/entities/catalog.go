package entities

// ServiceCategories is the static catalog of trades a job request may be posted under.
var ServiceCategories = map[string][]string{
	"plumbing":     {"leak-repair", "bathroom-installation", "boiler", "drainage", "radiators"},
	"electrical":   {"rewiring", "fuse-box", "lighting", "sockets", "ev-charger"},
	"carpentry":    {"doors", "flooring", "kitchen-fitting", "decking", "furniture"},
	"roofing":      {"repair", "new-roof", "gutters", "chimney", "flat-roof"},
	"painting":     {"interior", "exterior", "wallpaper"},
	"plastering":   {"skimming", "rendering", "patching"},
	"tiling":       {"bathroom", "kitchen", "floor"},
	"landscaping":  {"fencing", "paving", "turfing", "garden-design"},
	"building":     {"extension", "loft-conversion", "renovation", "brickwork"},
	"heating":      {"boiler-service", "underfloor", "heat-pump"},
	"handyman":     {"assembly", "odd-jobs"},
	"cleaning":     {"end-of-tenancy", "after-builders"},
	"locksmith":    {"lock-change", "lockout"},
	"architecture": {"planning", "drawings"},
}

// ValidCategory reports whether category exists in the catalog.
func ValidCategory(category string) bool {
	_, ok := ServiceCategories[category]
	return ok
}

// ValidSubcategory reports whether subcategory belongs to category. An empty subcategory is valid.
func ValidSubcategory(category, subcategory string) bool {
	if subcategory == "" {
		return true
	}
	for _, s := range ServiceCategories[category] {
		if s == subcategory {
			return true
		}
	}
	return false
}
