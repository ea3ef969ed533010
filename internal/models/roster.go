package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadRoster reads a customer roster from a JSON file and validates every
// record before handing it to the engine.
func LoadRoster(filePath string) ([]Customer, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}

	var customers []Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, fmt.Errorf("parsing roster file %s: %w", filePath, err)
	}

	for i := range customers {
		if customers[i].BehaviorTags == nil {
			customers[i].BehaviorTags = NewBehaviorTagSet()
		}
		if err := customers[i].Validate(); err != nil {
			return nil, fmt.Errorf("roster record %d: %w", i, err)
		}
	}

	return customers, nil
}
