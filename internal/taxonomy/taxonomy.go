// Package taxonomy translates the dashboard's internal genre labels into
// each platform's own category identifiers.
//
// Taxonomy drift between the internal label set and a platform's categories
// is expected; Resolve always answers with the platform default rather than
// failing a submission over an unmapped genre.
package taxonomy

// PlatformTable is one platform's genre dictionary plus its default id.
type PlatformTable struct {
	Default string            `yaml:"default" json:"default"`
	Genres  map[string]string `yaml:"genres" json:"genres"`
}

// Table holds the per-platform category dictionaries.
type Table struct {
	platforms map[string]PlatformTable
}

// New builds a Table from per-platform mappings. Unknown platforms resolve to
// an empty id; callers register every platform they submit to.
func New(platforms map[string]PlatformTable) *Table {
	cp := make(map[string]PlatformTable, len(platforms))
	for name, pt := range platforms {
		genres := make(map[string]string, len(pt.Genres))
		for g, id := range pt.Genres {
			genres[g] = id
		}
		cp[name] = PlatformTable{Default: pt.Default, Genres: genres}
	}
	return &Table{platforms: cp}
}

// Default returns the built-in tables for the platforms this repo ships
// adapters for. Config may overlay or replace them entirely.
func Default() *Table {
	return New(map[string]PlatformTable{
		"eventbrite": {
			Default: "103", // Music
			Genres: map[string]string{
				"Live Music":    "103",
				"Comedy":        "104",
				"Theatre":       "105",
				"Film":          "104001",
				"Food & Drink":  "110",
				"Community":     "113",
				"Sports":        "108",
				"Arts & Crafts": "105",
			},
		},
		"cityspark": {
			Default: "music",
			Genres: map[string]string{
				"Live Music":    "music",
				"Comedy":        "comedy",
				"Theatre":       "theatre-performing-arts",
				"Film":          "movies-film",
				"Food & Drink":  "food-dining",
				"Community":     "community",
				"Sports":        "sports-recreation",
				"Arts & Crafts": "visual-arts",
			},
		},
		"localfeed": {
			Default: "other",
			Genres: map[string]string{
				"Live Music":   "live-music",
				"Comedy":       "comedy",
				"Theatre":      "stage",
				"Film":         "film",
				"Food & Drink": "food",
				"Community":    "community",
				"Sports":       "sports",
			},
		},
	})
}

// Resolve maps (platform, genre) to the platform's category id. It is total:
// an exact match wins, anything else (unknown genre, empty genre, unknown
// platform) falls back to the platform's default id.
func (t *Table) Resolve(platform, genre string) string {
	pt, ok := t.platforms[platform]
	if !ok {
		return ""
	}
	if id, ok := pt.Genres[genre]; ok {
		return id
	}
	return pt.Default
}

// Platforms lists the configured platform names.
func (t *Table) Platforms() []string {
	names := make([]string, 0, len(t.platforms))
	for name := range t.platforms {
		names = append(names, name)
	}
	return names
}

// Merge overlays other's platforms on top of t, returning a new Table.
// A platform present in other replaces t's table for that platform wholesale.
func (t *Table) Merge(other map[string]PlatformTable) *Table {
	merged := make(map[string]PlatformTable, len(t.platforms)+len(other))
	for name, pt := range t.platforms {
		merged[name] = pt
	}
	for name, pt := range other {
		merged[name] = pt
	}
	return New(merged)
}
