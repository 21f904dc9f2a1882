package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumecms/plume-be/internal/models"
)

// fakeEventService records prune calls without a database.
type fakeEventService struct {
	pruned []time.Time
}

func (f *fakeEventService) CreateEvent(eventType, level, message string, userID *string) error {
	return nil
}

func (f *fakeEventService) GetRecentEvents(limit int) ([]models.Event, error) {
	return nil, nil
}

func (f *fakeEventService) PruneOlderThan(cutoff time.Time) (int64, error) {
	f.pruned = append(f.pruned, cutoff)
	return 1, nil
}

func TestNewJanitorRejectsBadCronExpression(t *testing.T) {
	_, err := NewJanitor(&fakeEventService{}, "every now and then", 30)
	assert.Error(t, err)
}

func TestJanitorPruneUsesRetentionWindow(t *testing.T) {
	fake := &fakeEventService{}
	j, err := NewJanitor(fake, "0 3 * * *", 30)
	require.NoError(t, err)

	j.prune()

	require.Len(t, fake.pruned, 1)
	want := time.Now().Add(-30 * 24 * time.Hour)
	assert.WithinDuration(t, want, fake.pruned[0], time.Minute)
}

func TestJanitorStops(t *testing.T) {
	j, err := NewJanitor(&fakeEventService{}, "0 3 * * *", 30)
	require.NoError(t, err)

	stopped := make(chan struct{})
	go func() {
		j.Run()
		close(stopped)
	}()

	j.Stop()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}
}
