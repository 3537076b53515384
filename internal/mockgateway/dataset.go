package mockgateway

import (
	"math/rand"
	"regexp"
	"strconv"

	"github.com/apache/arrow/go/v10/arrow"
	"github.com/apache/arrow/go/v10/arrow/array"
	"github.com/apache/arrow/go/v10/arrow/memory"
	"github.com/google/uuid"
)

// Schema served for every synthetic dataset.
var Schema = arrow.NewSchema([]arrow.Field{
	{Name: "id", Type: arrow.PrimitiveTypes.Int64},
	{Name: "key", Type: arrow.BinaryTypes.String},
	{Name: "value", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// Approximate wire size of one row: int64 + uuid string + float64.
const approxRowBytes = 8 + 36 + 8

// DefaultRows is served when a dataset name carries no size suffix and the
// request has no row count override.
const DefaultRows = 10000

const chunkRows = 1024

var sizeSuffixPattern = regexp.MustCompile(`_(\d+)(kb|mb|gb)$`)

// RowsForDataset derives the row count for a named dataset. Size-suffixed
// names such as dataset_10mb select a target payload size; anything else gets
// DefaultRows. An explicit override from the request descriptor wins.
func RowsForDataset(dataset string, override int) int64 {
	if override > 0 {
		return int64(override)
	}
	if m := sizeSuffixPattern.FindStringSubmatch(dataset); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		var targetBytes int64
		switch m[2] {
		case "kb":
			targetBytes = n << 10
		case "mb":
			targetBytes = n << 20
		case "gb":
			targetBytes = n << 30
		}
		rows := targetBytes / approxRowBytes
		if rows < 1 {
			rows = 1
		}
		return rows
	}
	return DefaultRows
}

// generateChunk builds one record batch of n synthetic rows starting at
// offset. The caller takes ownership and must release the record.
func generateChunk(mem memory.Allocator, offset int64, n int64) arrow.Record {
	b := array.NewRecordBuilder(mem, Schema)
	defer b.Release()

	ids := b.Field(0).(*array.Int64Builder)
	keys := b.Field(1).(*array.StringBuilder)
	values := b.Field(2).(*array.Float64Builder)
	for i := int64(0); i < n; i++ {
		ids.Append(offset + i)
		keys.Append(uuid.NewString())
		values.Append(rand.Float64())
	}
	return b.NewRecord()
}
