package httpx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factsuniv/Pk4/internal/domain/model"
)

func dialJobs(t *testing.T, env *routerEnv, query string) *websocket.Conn {
	t.Helper()

	url := strings.Replace(env.server.URL, "http://", "ws://", 1) + "/ws/jobs" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestJobsStream(t *testing.T) {
	env := newRouterEnv(t)
	conn := dialJobs(t, env, "")

	var frame jobsMessage
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "jobs", frame.Type)
	assert.Empty(t, frame.Jobs)

	// A mutation through the store must reach the open socket.
	_, err := env.jobs.CreateJob(context.Background(), &model.CreateJobRequest{
		CustomerID:          "cust-1",
		CustomerName:        "John Davis",
		CustomerPhone:       "(214) 555-0132",
		BusinessID:          "topgolf-the-colony",
		BusinessName:        "TopGolf - The Colony",
		BusinessAddress:     "5151 TX-121, The Colony, TX 75056",
		BusinessCoordinates: model.Coordinates{Lat: 33.0884, Lng: -96.8969},
		ParkingPreference:   model.PreferenceBestAvailable,
		PreferenceLabel:     "Best spot available",
		CustomerPrice:       18,
		ParkerPay:           8,
		Tip:                 2,
	})
	require.NoError(t, err)

	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "jobs", frame.Type)
	require.Len(t, frame.Jobs, 1)
	assert.Equal(t, model.JobStatusPending, frame.Jobs[0].Status)
}

func TestCustomerStream(t *testing.T) {
	env := newRouterEnv(t)
	conn := dialJobs(t, env, "?customerId=cust-1")

	var frame customerMessage
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "customerJob", frame.Type)
	assert.Nil(t, frame.Job)

	job := env.createJob(t, "cust-1")

	require.NoError(t, conn.ReadJSON(&frame))
	require.NotNil(t, frame.Job)
	assert.Equal(t, job.ID, frame.Job.ID)
}
