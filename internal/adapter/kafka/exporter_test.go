package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sejal-1604/MGNREGA/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	var data domain.DistrictData
	data.ID = "17_1711"
	data.Name = "Damoh"
	data.DataSource = domain.SourceLive
	data.TotalJobCards = 237032
	data.FetchedAt = time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC)

	msg, err := serializeToMessage(data)
	require.NoError(t, err)

	assert.Equal(t, []byte("17_1711"), msg.Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "Damoh", decoded["name"])
	assert.Equal(t, float64(237032), decoded["totalJobCards"])

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "live", headers["data_source"])
	assert.Equal(t, "2024-01-15T06:30:00Z", headers["fetched_at"])
}
