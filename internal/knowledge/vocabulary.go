// Package knowledge holds the static read-only tables the pipeline is
// configured with: the classifier label vocabulary and the disease-info
// table. Both are loaded once at startup and are safe for concurrent
// reads.
package knowledge

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/vocabulary.yaml data/diseases.yaml
var embeddedTables embed.FS

// KeywordCrop associates a label-text keyword with a crop name. The
// keyword list is ordered; the first keyword found in a label wins.
type KeywordCrop struct {
	Keyword string `yaml:"keyword"`
	Crop    string `yaml:"crop"`
}

// Vocabulary maps classifier label indices and label-text keywords to
// agricultural crop names. General-purpose classifier vocabularies
// rarely contain fine-grained agricultural classes, so the index map
// also covers classes commonly confused with crops (a mushroom label
// often really depicts a diseased tuber).
type Vocabulary struct {
	IndexCrops map[int]string `yaml:"index_crops"`
	Keywords   []KeywordCrop  `yaml:"keywords"`
}

// DefaultVocabulary returns the embedded vocabulary.
func DefaultVocabulary() *Vocabulary {
	data, err := embeddedTables.ReadFile("data/vocabulary.yaml")
	if err != nil {
		// The embed is part of the binary; failure here is a build defect.
		panic(fmt.Sprintf("embedded vocabulary missing: %v", err))
	}
	vocab, err := parseVocabulary(data)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary invalid: %v", err))
	}
	return vocab
}

// LoadVocabulary reads a vocabulary from a YAML file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary %s: %w", path, err)
	}
	return parseVocabulary(data)
}

func parseVocabulary(data []byte) (*Vocabulary, error) {
	var vocab Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	if len(vocab.IndexCrops) == 0 && len(vocab.Keywords) == 0 {
		return nil, fmt.Errorf("vocabulary has no index map and no keywords")
	}
	return &vocab, nil
}

// CropForIndex returns the crop mapped to a classifier label index.
func (v *Vocabulary) CropForIndex(index int) (string, bool) {
	crop, ok := v.IndexCrops[index]
	return crop, ok
}

// CropForLabel scans the ordered keyword list against a lowercased
// label text and returns the first matching crop.
func (v *Vocabulary) CropForLabel(label string) (string, bool) {
	label = strings.ToLower(label)
	for _, kw := range v.Keywords {
		if strings.Contains(label, kw.Keyword) {
			return kw.Crop, true
		}
	}
	return "", false
}
