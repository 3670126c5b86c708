package ingest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

// CleanColumnName trims, lowercases and replaces spaces with underscores
func CleanColumnName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// AgeBucket classifies a rider age. Ages are truncated to an integer first.
// Anything outside the three lower ranges, including ages under 18, lands in "45+".
func AgeBucket(age *float64) string {
	if age == nil {
		return models.AgeGroupUnknown
	}
	a := int(*age)
	switch {
	case a >= 18 && a <= 24:
		return models.AgeGroup18To24
	case a >= 25 && a <= 34:
		return models.AgeGroup25To34
	case a >= 35 && a <= 44:
		return models.AgeGroup35To44
	default:
		return models.AgeGroup45Plus
	}
}

// Hotspot maps a lowercase address keyword to a canonical display name
type Hotspot struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Name    string `yaml:"name" json:"name"`
}

// DefaultHotspots is the built-in hotspot list in match priority order
var DefaultHotspots = []Hotspot{
	{Keyword: "moody center", Name: "Moody Center"},
	{Keyword: "coconut club", Name: "Coconut Club"},
	{Keyword: "buford", Name: "Buford's"},
	{Keyword: "the aquarium", Name: "The Aquarium on 6th"},
}

// Normalizer rewrites free-text addresses to canonical hotspot names
type Normalizer struct {
	hotspots []Hotspot
}

// NewNormalizer creates a normalizer. Keywords are matched in slice order;
// a nil or empty list falls back to DefaultHotspots.
func NewNormalizer(hotspots []Hotspot) *Normalizer {
	if len(hotspots) == 0 {
		hotspots = DefaultHotspots
	}
	list := make([]Hotspot, 0, len(hotspots))
	for _, h := range hotspots {
		kw := strings.ToLower(strings.TrimSpace(h.Keyword))
		if kw == "" {
			continue
		}
		list = append(list, Hotspot{Keyword: kw, Name: h.Name})
	}
	return &Normalizer{hotspots: list}
}

// Normalize returns the canonical name of the first hotspot keyword found in addr,
// or addr unchanged when none matches.
func (n *Normalizer) Normalize(addr string) string {
	a := strings.ToLower(addr)
	for _, h := range n.hotspots {
		if strings.Contains(a, h.Keyword) {
			return h.Name
		}
	}
	return addr
}

// Hotspots returns a copy of the hotspot list in priority order
func (n *Normalizer) Hotspots() []Hotspot {
	out := make([]Hotspot, len(n.hotspots))
	copy(out, n.hotspots)
	return out
}

// LoadHotspots reads an ordered hotspot list from a YAML file
func LoadHotspots(path string) ([]Hotspot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hotspots file: %w", err)
	}
	var hotspots []Hotspot
	if err := yaml.Unmarshal(b, &hotspots); err != nil {
		return nil, fmt.Errorf("parse hotspots file: %w", err)
	}
	return hotspots, nil
}
