package laboratory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		require.True(t, c.Valid(), "category %q", c)
	}
	require.False(t, Category("astrology").Valid())
	require.False(t, Category("").Valid())
	require.False(t, Category("Physics").Valid(), "codes are lowercase")
}

func TestCategoryPresentation(t *testing.T) {
	tests := []struct {
		category Category
		name     string
		icon     string
		color    string
	}{
		{CategoryPhysics, "Physics", "fas fa-atom", "#6f42c1"},
		{CategoryChemistry, "Chemistry", "fas fa-flask", "#fd7e14"},
		{CategoryBiology, "Biology", "fas fa-dna", "#198754"},
		{CategoryComputer, "Computer Science", "fas fa-desktop", "#0d6efd"},
		{CategoryEngineering, "Engineering", "fas fa-cogs", "#dc3545"},
		{CategoryMathematics, "Mathematics", "fas fa-calculator", "#20c997"},
		{CategoryElectronics, "Electronics", "fas fa-microchip", "#ffc107"},
		{CategoryMaterials, "Materials Science", "fas fa-cube", "#6c757d"},
		{CategoryEnvironmental, "Environmental Science", "fas fa-leaf", "#28a745"},
		{CategoryMedical, "Medical Science", "fas fa-heartbeat", "#e83e8c"},
		{CategoryOther, "Other", "fas fa-microscope", "#495057"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			require.Equal(t, tt.name, tt.category.DisplayName())
			require.Equal(t, tt.icon, tt.category.Icon())
			require.Equal(t, tt.color, tt.category.Color())
		})
	}
}

func TestUnknownCategoryFallsBack(t *testing.T) {
	c := Category("astrology")
	require.Equal(t, "Other", c.DisplayName())
	require.Equal(t, "fas fa-microscope", c.Icon())
	require.Equal(t, "#495057", c.Color())
}

func TestCategoriesCoverAllMaps(t *testing.T) {
	require.Len(t, Categories, len(categoryNames))
	for _, c := range Categories {
		require.Contains(t, categoryIcons, c)
		require.Contains(t, categoryColors, c)
	}
}
