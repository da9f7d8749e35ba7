package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arithma_tech/entity"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()

	r.OperationAccepted(entity.Compress, entity.ModeText)
	r.OperationAccepted(entity.Compress, entity.ModeText)
	r.OperationAccepted(entity.Decompress, entity.ModeFile)
	r.ValidationRejected(entity.Compress, entity.EmptyInput)
	r.HistoryWriteFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.accepted.WithLabelValues("Compress", "Text")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.accepted.WithLabelValues("Decompress", "File")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejected.WithLabelValues("Compress", "empty_input")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.historyFailure))

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}
