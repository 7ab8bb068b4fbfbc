package services

import "rentai/models"

// RemoveSaved returns a new list without the entry whose ID is id. The input
// is left untouched and an unknown id yields an equal copy.
func RemoveSaved(list []models.SavedListing, id string) []models.SavedListing {
	out := make([]models.SavedListing, 0, len(list))
	for _, s := range list {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
