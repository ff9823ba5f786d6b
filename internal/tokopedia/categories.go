package tokopedia

import "github.com/Shafnaa/scrapping-tokopedia-review/internal/models"

// FindCategory resolves a category id to its node, searching the tree
// depth-first so child categories are addressable too.
func FindCategory(categories []models.Category, id int) (models.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
		if found, ok := FindCategory(c.Children, id); ok {
			return found, ok
		}
	}
	return models.Category{}, false
}
