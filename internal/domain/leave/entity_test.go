package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysCount(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"five days", date(2025, 1, 10), date(2025, 1, 14), 5},
		{"single day", date(2025, 3, 3), date(2025, 3, 3), 1},
		{"across month boundary", date(2025, 1, 30), date(2025, 2, 2), 4},
		{"across a year", date(2024, 12, 30), date(2025, 1, 2), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysCount(tt.start, tt.end))
		})
	}
}

// Timezone offsets on the inputs must not skew the inclusive count.
func TestDaysCountNormalizesTimezones(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	start := time.Date(2025, 2, 1, 23, 30, 0, 0, jakarta)
	end := time.Date(2025, 2, 7, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, DaysCount(start, end))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
}

func TestSubmitRequestValidate(t *testing.T) {
	valid := SubmitRequest{
		LeaveType: "vacation",
		StartDate: "2025-02-01",
		EndDate:   "2025-02-07",
		Reason:    "trip",
	}
	assert.NoError(t, valid.Validate())

	inverted := valid
	inverted.StartDate, inverted.EndDate = inverted.EndDate, inverted.StartDate
	err := inverted.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "end_date")

	bad := SubmitRequest{LeaveType: "holiday", StartDate: "01-02-2025", EndDate: "2025-02-07"}
	err = bad.Validate()
	require.ErrorAs(t, err, &errs)
	m := errs.ToMap()
	assert.Contains(t, m, "leave_type")
	assert.Contains(t, m, "start_date")
	assert.Contains(t, m, "reason")
}

func TestUpdateRequestValidate(t *testing.T) {
	assert.NoError(t, UpdateRequest{}.Validate())

	badType := "weekend"
	err := UpdateRequest{LeaveType: &badType}.Validate()
	require.Error(t, err)

	empty := "   "
	err = UpdateRequest{Reason: &empty}.Validate()
	require.Error(t, err)
}
