package menu

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// ValidateRecord checks the structural rules of a single record.
func ValidateRecord(r Record) error {
	return validate.Struct(r)
}

// FilterValid drops records that fail validation. Bad slot data from the
// NLU backend is logged and skipped, never surfaced to the user.
func FilterValid(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if err := ValidateRecord(r); err != nil {
			log.Warn().Err(err).Str("menu_id", string(r.ID)).Msg("dropping invalid menu record")
			continue
		}
		out = append(out, r)
	}
	return out
}
