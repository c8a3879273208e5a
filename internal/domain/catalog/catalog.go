// Package catalog holds the fixed tag vocabularies offered by the filter and
// profile editing screens.
package catalog

var skills = []string{
	"Vocals", "Guitar", "Piano", "Drums", "Bass", "Violin", "Saxophone",
	"Music Production", "Audio Engineering", "Songwriting", "Mixing", "Mastering",
	"Video Editing", "Photography", "Content Creation", "Social Media Marketing",
	"Graphic Design", "Branding", "Marketing Strategy", "Analytics",
}

var genres = []string{
	"Pop", "Rock", "Hip Hop", "R&B", "Jazz", "Classical", "Electronic",
	"Country", "Folk", "Blues", "Reggae", "Latin", "Indie", "Alternative",
	"Funk", "Soul", "Experimental", "Lo-fi", "Ambient",
}

// Skills returns a copy of the skill vocabulary.
func Skills() []string {
	return append([]string(nil), skills...)
}

// Genres returns a copy of the genre vocabulary.
func Genres() []string {
	return append([]string(nil), genres...)
}

func IsSkill(s string) bool {
	return contains(skills, s)
}

func IsGenre(s string) bool {
	return contains(genres, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
