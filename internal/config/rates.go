package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"feecalc/internal/models"
)

// LoadRateTable reads the rate table named by RATE_TABLE_PATH. Entries in
// the file override the built-in defaults; without the variable the defaults
// are used unchanged.
func LoadRateTable() (models.RateTable, error) {
	path := GetEnv("RATE_TABLE_PATH", "")
	if path == "" {
		return models.DefaultRateTable(), nil
	}
	return ReadRateTable(path)
}

// rateTableFile captures the parts of an overlay that plain decoding would
// not merge: map entries replace the default entry wholesale.
type rateTableFile struct {
	Version            string                                       `json:"version"`
	Cards              map[models.CardSubtype]json.RawMessage       `json:"cards"`
	StablecoinGateways map[models.StablecoinGateway]json.RawMessage `json:"stablecoinGateways"`
}

// ReadRateTable overlays the JSON document at path onto the default table.
// Fields the file leaves out keep their default, including fields of a
// single card or gateway entry. The file must name its own version so that
// reports cached under the default pricing are not reused.
func ReadRateTable(path string) (models.RateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.RateTable{}, fmt.Errorf("read rate table: %w", err)
	}

	var file rateTableFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return models.RateTable{}, fmt.Errorf("parse rate table %s: %w", path, err)
	}
	defaults := models.DefaultRateTable()
	if file.Version == "" || file.Version == defaults.Version {
		return models.RateTable{}, fmt.Errorf("rate table %s: version must be set and differ from %q", path, defaults.Version)
	}

	table := defaults.Clone()
	if err := json.Unmarshal(raw, &table); err != nil {
		return models.RateTable{}, fmt.Errorf("parse rate table %s: %w", path, err)
	}

	for subtype, entry := range file.Cards {
		rate := defaults.Cards[subtype]
		if err := json.Unmarshal(entry, &rate); err != nil {
			return models.RateTable{}, fmt.Errorf("parse rate table %s: cards.%s: %w", path, subtype, err)
		}
		table.Cards[subtype] = rate
	}
	for gateway, entry := range file.StablecoinGateways {
		rate := defaults.StablecoinGateways[gateway]
		if err := json.Unmarshal(entry, &rate); err != nil {
			return models.RateTable{}, fmt.Errorf("parse rate table %s: stablecoinGateways.%s: %w", path, gateway, err)
		}
		table.StablecoinGateways[gateway] = rate
	}

	log.Printf("loaded rate table %s from %s", table.Version, path)
	return table, nil
}
