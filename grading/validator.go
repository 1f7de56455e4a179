package grading

import (
	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/nonsonwune/markbook/models"
)

// RequiredWeightTotal is the only weight sum a valid course may have.
const RequiredWeightTotal = 100

// ValidateWeights flags every course whose test weights add up to exactly
// RequiredWeightTotal and returns the ids of the courses left invalid. It
// must run before any mark is applied: course records copy the flag when
// they are created and are not updated afterwards.
func ValidateWeights(catalog *models.Catalog, logger gokitlog.Logger) []string {
	if logger == nil {
		logger = gokitlog.NewNopLogger()
	}

	var invalid []string
	for _, def := range catalog.Courses() {
		total := def.WeightTotal()
		def.ValidWeights = total == RequiredWeightTotal
		if !def.ValidWeights {
			invalid = append(invalid, def.ID)
			level.Info(logger).Log("msg", "invalid course weights", "course", def.ID, "total", total)
		}
	}
	return invalid
}
