package laboratory

// Category is one of the fixed subject tags a laboratory is filed under.
type Category string

const (
	CategoryPhysics       Category = "physics"
	CategoryChemistry     Category = "chemistry"
	CategoryBiology       Category = "biology"
	CategoryComputer      Category = "computer"
	CategoryEngineering   Category = "engineering"
	CategoryMathematics   Category = "mathematics"
	CategoryElectronics   Category = "electronics"
	CategoryMaterials     Category = "materials"
	CategoryEnvironmental Category = "environmental"
	CategoryMedical       Category = "medical"
	CategoryOther         Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryPhysics,
	CategoryChemistry,
	CategoryBiology,
	CategoryComputer,
	CategoryEngineering,
	CategoryMathematics,
	CategoryElectronics,
	CategoryMaterials,
	CategoryEnvironmental,
	CategoryMedical,
	CategoryOther,
}

var categoryNames = map[Category]string{
	CategoryPhysics:       "Physics",
	CategoryChemistry:     "Chemistry",
	CategoryBiology:       "Biology",
	CategoryComputer:      "Computer Science",
	CategoryEngineering:   "Engineering",
	CategoryMathematics:   "Mathematics",
	CategoryElectronics:   "Electronics",
	CategoryMaterials:     "Materials Science",
	CategoryEnvironmental: "Environmental Science",
	CategoryMedical:       "Medical Science",
	CategoryOther:         "Other",
}

// Icon identifiers and colors are shared with the web frontend, which renders
// them as Font Awesome classes and CSS hex colors. Unknown categories fall
// back to the "other" pair.
var categoryIcons = map[Category]string{
	CategoryPhysics:       "fas fa-atom",
	CategoryChemistry:     "fas fa-flask",
	CategoryBiology:       "fas fa-dna",
	CategoryComputer:      "fas fa-desktop",
	CategoryEngineering:   "fas fa-cogs",
	CategoryMathematics:   "fas fa-calculator",
	CategoryElectronics:   "fas fa-microchip",
	CategoryMaterials:     "fas fa-cube",
	CategoryEnvironmental: "fas fa-leaf",
	CategoryMedical:       "fas fa-heartbeat",
	CategoryOther:         "fas fa-microscope",
}

var categoryColors = map[Category]string{
	CategoryPhysics:       "#6f42c1",
	CategoryChemistry:     "#fd7e14",
	CategoryBiology:       "#198754",
	CategoryComputer:      "#0d6efd",
	CategoryEngineering:   "#dc3545",
	CategoryMathematics:   "#20c997",
	CategoryElectronics:   "#ffc107",
	CategoryMaterials:     "#6c757d",
	CategoryEnvironmental: "#28a745",
	CategoryMedical:       "#e83e8c",
	CategoryOther:         "#495057",
}

const (
	defaultIcon  = "fas fa-microscope"
	defaultColor = "#495057"
)

// Valid reports whether c is one of the fixed category codes.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryOther]
}

// Icon returns the frontend icon identifier for the category.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return defaultIcon
}

// Color returns the HTML color code for the category.
func (c Category) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return defaultColor
}
