package donation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_DonationStatus_IsValid(t *testing.T) {
	for _, s := range GetAllDonationStatuses() {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, DonationStatus("Lost").IsValid())
	assert.False(t, DonationStatus("").IsValid())
}

func Test_DonationStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusDeclined.IsTerminal())
	assert.True(t, StatusDelivered.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.False(t, StatusPickedUp.IsTerminal())
	assert.False(t, StatusTransit.IsTerminal())
}

func Test_DonationStatus_Predecessor(t *testing.T) {
	cases := map[DonationStatus]DonationStatus{
		StatusAccepted:  StatusPending,
		StatusDeclined:  StatusPending,
		StatusPickedUp:  StatusAccepted,
		StatusTransit:   StatusPickedUp,
		StatusDelivered: StatusTransit,
	}
	for status, want := range cases {
		got, ok := status.Predecessor()
		assert.True(t, ok, status.String())
		assert.Equal(t, want, got)
	}

	_, ok := StatusPending.Predecessor()
	assert.False(t, ok)
}

func Test_Tracking_Append(t *testing.T) {
	first := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)

	tr := Tracking{}
	tr.Append(TrackingEntry{Location: "MG Road, Pune", Status: "In Transit", Timestamp: first})
	tr.Append(TrackingEntry{Location: "FC Road, Pune", Status: "In Transit", Timestamp: second})

	assert.Len(t, tr.Entries, 2)
	assert.Equal(t, "FC Road, Pune", tr.Entries[1].Location)
	assert.Equal(t, second, tr.LastUpdate)
}
