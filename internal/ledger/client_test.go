package ledger

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Guardian/internal/scoring"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSetScoreSendsContractGrade(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/setScore", r.URL.Path)
		assert.Equal(t, "Bearer relay-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]string{"txId": "tx-1"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, Options{Token: "relay-token", ContractIndex: 7})
	receipt, err := c.SetScore(context.Background(), "proj-1", 85, scoring.GradeGreen)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", receipt.TxID)
	assert.Equal(t, float64(7), got["contractIndex"])
	assert.Equal(t, "proj-1", got["projectId"])
	assert.Equal(t, float64(85), got["score"])
	assert.Equal(t, float64(2), got["grade"])
}

func TestSetScoreRetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"txId": "tx-2"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, Options{RetryCount: 2})
	receipt, err := c.SetScore(context.Background(), "proj-2", 40, scoring.GradeRed)
	require.NoError(t, err)
	assert.Equal(t, "tx-2", receipt.TxID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestSetScoreClientErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bad token"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, Options{RetryCount: 2})
	_, err := c.SetScore(context.Background(), "proj-3", 70, scoring.GradeYellow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

// alignedScoreOutput lays out a found score the way the contract struct sits
// in memory, with padding after grade and after accessTier.
func alignedScoreOutput() []byte {
	out := make([]byte, getScoreAlignedSize)
	out[0] = 1
	out[1] = 72
	out[2] = 1
	binary.LittleEndian.PutUint32(out[4:8], 1700000000)
	binary.LittleEndian.PutUint16(out[8:10], 50)
	binary.LittleEndian.PutUint16(out[10:12], 200)
	binary.LittleEndian.PutUint16(out[12:14], 400)
	out[14] = 1
	return out
}

func packedScoreOutput() []byte {
	out := make([]byte, getScorePackedSize)
	out[0] = 1
	out[1] = 72
	out[2] = 1
	binary.LittleEndian.PutUint32(out[3:7], 1700000000)
	binary.LittleEndian.PutUint16(out[7:9], 50)
	binary.LittleEndian.PutUint16(out[9:11], 200)
	binary.LittleEndian.PutUint16(out[11:13], 400)
	out[13] = 1
	return out
}

func assertYellowScore(t *testing.T, s *OnChainScore) {
	t.Helper()
	assert.True(t, s.Decoded)
	assert.True(t, s.Found)
	assert.Equal(t, 72, s.Score)
	assert.Equal(t, "Yellow", s.Grade)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), s.Timestamp)
	assert.Equal(t, int64(50000), s.CapMin)
	assert.Equal(t, int64(200000), s.CapMax)
	assert.Equal(t, 400, s.FeeTierBps)
	assert.Equal(t, "mid-tier", s.AccessTier)
}

func TestGetScoreDecodesContractOutput(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(alignedScoreOutput())

	var req map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/querySmartContract", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, map[string]string{"responseData": encoded})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, Options{ContractIndex: 1})
	s, err := c.GetScore(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, float64(inputTypeGetScore), req["inputType"])
	assert.Equal(t, float64(3), req["inputSize"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("abc")), req["requestData"])

	assert.Equal(t, encoded, s.Raw, "raw keeps the relay's base64 text")
	assertYellowScore(t, s)
}

func TestDecodeScorePackedLayout(t *testing.T) {
	data := packedScoreOutput()
	s := decodeScore(base64.StdEncoding.EncodeToString(data), data)
	assertYellowScore(t, s)
}

func TestGetScoreNonTextPayloadRoundTripsRaw(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte{0xff, 0x00, 0xfe})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"responseData": encoded})
	}))
	defer srv.Close()

	s, err := NewHTTPClient(srv.URL, Options{}).GetScore(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, s.Decoded)
	assert.Equal(t, encoded, s.Raw)

	body, err := json.Marshal(s)
	require.NoError(t, err)
	var back OnChainScore
	require.NoError(t, json.Unmarshal(body, &back))
	decoded, err := base64.StdEncoding.DecodeString(back.Raw)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0x00, 0xfe}, decoded)
}

func TestDecodeScoreShortPayloadStaysRaw(t *testing.T) {
	s := decodeScore("bm90LWEtc3RydWN0", []byte("not-a-struct"))
	assert.False(t, s.Decoded)
	assert.Equal(t, "bm90LWEtc3RydWN0", s.Raw)
}

func TestDecodeScoreNotFound(t *testing.T) {
	for _, size := range []int{getScorePackedSize, getScoreAlignedSize} {
		s := decodeScore("", make([]byte, size))
		assert.True(t, s.Decoded, "size %d", size)
		assert.False(t, s.Found, "size %d", size)
		assert.Zero(t, s.Score, "size %d", size)
	}
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/status", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"lastProcessedTick": map[string]int{"tickNumber": 123, "epoch": 9},
		})
	}))
	defer srv.Close()

	st, err := NewHTTPClient(srv.URL, Options{}).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(123), st.LastProcessedTick.TickNumber)
	assert.Equal(t, 9, st.LastProcessedTick.Epoch)
}
