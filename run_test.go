package ddexmap_test

import (
	"testing"
	"time"

	"github.com/musictechlab/ddexmap"
	"github.com/stretchr/testify/assert"
)

func TestRun_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts run with candidates", func(t *testing.T) {
		t.Parallel()

		r := &ddexmap.Run{
			StartedAt:  time.Now(),
			Candidates: []*ddexmap.Candidate{{Tag: "ISRC", URL: "https://ern.ddex.net/isrc", Score: 330}},
		}
		assert.NoError(t, r.Validate())
	})

	t.Run("requires start time", func(t *testing.T) {
		t.Parallel()

		err := (&ddexmap.Run{}).Validate()
		assert.Equal(t, ddexmap.EINVALID, ddexmap.ErrorCode(err))
	})

	t.Run("requires candidate URL", func(t *testing.T) {
		t.Parallel()

		r := &ddexmap.Run{
			StartedAt:  time.Now(),
			Candidates: []*ddexmap.Candidate{{Tag: "ISRC"}},
		}
		err := r.Validate()
		assert.Equal(t, ddexmap.EINVALID, ddexmap.ErrorCode(err))
		assert.Contains(t, ddexmap.ErrorMessage(err), "ISRC")
	})
}
