package golden_test

import (
	"testing"

	"classcify/internal/golden"
)

func TestFixtures(t *testing.T) {
	golden.Run(t, "../../testdata/cases")
}
