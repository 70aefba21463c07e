package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/cea/infra/breakers"
)

func fixedClock(h, m, s int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 3, 14, h, m, s, 0, time.Local)
	}
}

func TestLog_RecordAndListInOrder(t *testing.T) {
	l := NewLog(WithClock(fixedClock(9, 5, 7)))

	first := l.Record("business", "waste", "how to rob a bank")
	l.Record("government", "energy", "hack the grid")

	assert.Equal(t, "09:05:07", first.Time)

	got := l.List()
	require.Len(t, got, 2)
	assert.Equal(t, "waste", got[0].Sector)
	assert.Equal(t, "energy", got[1].Sector)
	assert.Equal(t, 2, l.Len())
}

func TestLog_ListReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Record("business", "waste", "steal")

	got := l.List()
	got[0].Problem = "changed"

	assert.Equal(t, "steal", l.List()[0].Problem)
}

func TestLog_EmptyListIsNotNil(t *testing.T) {
	got := NewLog().List()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAlertJSONFields(t *testing.T) {
	raw, err := json.Marshal(Alert{Time: "10:00:00", UserType: "citizen", Sector: "waste", Problem: "bomb"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"time":"10:00:00","userType":"citizen","sector":"waste","problem":"bomb"}`, string(raw))
}

func TestLog_Subscribe(t *testing.T) {
	l := NewLog()
	ch, cancel := l.Subscribe(4)

	l.Record("business", "waste", "rob")

	select {
	case a := <-ch:
		assert.Equal(t, "rob", a.Problem)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive alert")
	}

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)

	// recording after cancel must not panic on the closed channel
	l.Record("business", "waste", "rob again")
	assert.Equal(t, 2, l.Len())
}

func TestLog_SlowSubscriberDoesNotBlock(t *testing.T) {
	l := NewLog()
	_, cancel := l.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			l.Record("business", "waste", fmt.Sprintf("fraud %d", i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full subscriber")
	}
	assert.Equal(t, 10, l.Len())
}

func TestRedisForwarder_Publishes(t *testing.T) {
	db, mock := redismock.NewClientMock()
	f := NewRedisForwarder(db, "cea:alerts", breakers.New(breakers.Settings{Name: "test"}))

	alert := Alert{Time: "12:00:00", UserType: "business", Sector: "waste", Problem: "how to rob a bank"}
	payload, err := json.Marshal(alert)
	require.NoError(t, err)

	mock.ExpectPublish("cea:alerts", string(payload)).SetVal(1)

	require.NoError(t, f.Forward(context.Background(), alert))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisForwarder_BreakerOpensAfterFailures(t *testing.T) {
	db, mock := redismock.NewClientMock()
	br := breakers.New(breakers.Settings{Name: "test", ConsecutiveFailures: 2, OpenTimeout: time.Minute})
	f := NewRedisForwarder(db, "cea:alerts", br)

	alert := Alert{Time: "12:00:00", UserType: "business", Sector: "waste", Problem: "kill"}
	payload, err := json.Marshal(alert)
	require.NoError(t, err)

	down := errors.New("connection refused")
	mock.ExpectPublish("cea:alerts", string(payload)).SetErr(down)
	mock.ExpectPublish("cea:alerts", string(payload)).SetErr(down)

	assert.ErrorIs(t, f.Forward(context.Background(), alert), down)
	assert.ErrorIs(t, f.Forward(context.Background(), alert), down)
	assert.Equal(t, "open", br.State())

	err = f.Forward(context.Background(), alert)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNopForwarder(t *testing.T) {
	assert.NoError(t, NopForwarder{}.Forward(context.Background(), Alert{}))
}
