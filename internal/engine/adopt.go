package engine

import (
	"strings"

	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/models"
)

// Adopt names the cat and picks its breed. Counters stay at their initial
// values. Whether adoption is still allowed is the session's concern.
func Adopt(data models.UserData, name string, breed models.Breed) (models.UserData, error) {
	if _, err := models.ParseBreed(string(breed)); err != nil {
		return data, ErrInvalidBreed
	}
	next := data.Clone()
	next.Cat.Name = catName(name)
	next.Cat.Breed = breed
	return next, nil
}

// RenameCat changes the cat's name. An empty name falls back to the default.
func RenameCat(data models.UserData, name string) models.UserData {
	next := data.Clone()
	next.Cat.Name = catName(name)
	return next
}

func catName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return constants.DefaultCatName
	}
	return name
}
