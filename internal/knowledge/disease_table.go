package knowledge

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// GeneralPathologyKey is the table entry used when no crop-specific
// entry exists.
const GeneralPathologyKey = "general_pathology"

// LocalizedEntry is the translated variant of a disease entry for one
// language code.
type LocalizedEntry struct {
	DiseaseName    string   `yaml:"disease_name"`
	Description    string   `yaml:"description"`
	Symptoms       []string `yaml:"symptoms"`
	TreatmentSteps []string `yaml:"treatment_steps"`
	OrganicOptions []string `yaml:"organic_options"`
	PreventionTips []string `yaml:"prevention_tips"`
}

// DiseaseEntry is the structured diagnostic text for one disease key.
type DiseaseEntry struct {
	DiseaseName    string                    `yaml:"disease_name"`
	Description    string                    `yaml:"description"`
	Symptoms       []string                  `yaml:"symptoms"`
	TreatmentSteps []string                  `yaml:"treatment_steps"`
	OrganicOptions []string                  `yaml:"organic_options"`
	PreventionTips []string                  `yaml:"prevention_tips"`
	Localized      map[string]LocalizedEntry `yaml:"localized"`
}

// DiseaseTable holds disease entries keyed by "<crop>_disease", plus a
// secondary crop→key mapping for crops that share an entry.
type DiseaseTable struct {
	Entries  map[string]DiseaseEntry `yaml:"entries"`
	Mappings map[string]string       `yaml:"mappings"`
}

// DefaultDiseaseTable returns the embedded disease table.
func DefaultDiseaseTable() *DiseaseTable {
	data, err := embeddedTables.ReadFile("data/diseases.yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded disease table missing: %v", err))
	}
	table, err := parseDiseaseTable(data)
	if err != nil {
		panic(fmt.Sprintf("embedded disease table invalid: %v", err))
	}
	return table
}

// LoadDiseaseTable reads a disease table from a YAML file.
func LoadDiseaseTable(path string) (*DiseaseTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read disease table %s: %w", path, err)
	}
	return parseDiseaseTable(data)
}

func parseDiseaseTable(data []byte) (*DiseaseTable, error) {
	var table DiseaseTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse disease table: %w", err)
	}
	if _, ok := table.Entries[GeneralPathologyKey]; !ok {
		return nil, fmt.Errorf("disease table missing %q entry", GeneralPathologyKey)
	}
	return &table, nil
}

// Resolve looks up the entry for a crop: direct "<crop>_disease" key
// first, then the secondary mapping, then the general fallback. The
// returned key tells the caller which entry was used.
func (t *DiseaseTable) Resolve(crop string) (DiseaseEntry, string) {
	key := strings.ToLower(crop) + "_disease"
	if entry, ok := t.Entries[key]; ok {
		return entry, key
	}
	if mapped, ok := t.Mappings[strings.ToLower(crop)]; ok {
		if entry, found := t.Entries[mapped]; found {
			return entry, mapped
		}
	}
	return t.Entries[GeneralPathologyKey], GeneralPathologyKey
}
