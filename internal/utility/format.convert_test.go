package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestP2Int64 kiểm tra chuyển đổi chuỗi sang int64 với fallback về 0
func TestP2Int64(t *testing.T) {
	assert.Equal(t, int64(42), P2Int64("42"), "Chuỗi số hợp lệ phải parse đúng")
	assert.Equal(t, int64(-7), P2Int64("-7"), "Số âm phải parse đúng")
	assert.Equal(t, int64(0), P2Int64(""), "Chuỗi rỗng phải trả về 0")
	assert.Equal(t, int64(0), P2Int64("abc"), "Chuỗi không phải số phải trả về 0")
	assert.Equal(t, int64(0), P2Int64("3.14"), "Số thập phân phải trả về 0")
}

// TestString2ObjectID kiểm tra chuyển đổi chuỗi hex sang ObjectID
func TestString2ObjectID(t *testing.T) {
	original := primitive.NewObjectID()

	converted := String2ObjectID(original.Hex())
	assert.Equal(t, original, converted, "Hex hợp lệ phải convert về đúng ObjectID")

	invalid := String2ObjectID("khong-hop-le")
	assert.Equal(t, primitive.NilObjectID, invalid, "Hex không hợp lệ phải trả về NilObjectID")

	empty := String2ObjectID("")
	assert.Equal(t, primitive.NilObjectID, empty, "Chuỗi rỗng phải trả về NilObjectID")
}

// TestStringArray2ObjectIDArray kiểm tra chuyển đổi mảng chuỗi sang mảng ObjectID
func TestStringArray2ObjectIDArray(t *testing.T) {
	id1 := primitive.NewObjectID()
	id2 := primitive.NewObjectID()

	result := StringArray2ObjectIDArray([]string{id1.Hex(), id2.Hex()})
	require.Len(t, result, 2, "Mảng kết quả phải có đúng 2 phần tử")
	assert.Equal(t, id1, result[0])
	assert.Equal(t, id2, result[1])

	empty := StringArray2ObjectIDArray(nil)
	assert.Empty(t, empty, "Mảng nil phải trả về mảng rỗng")
}

// TestConvertStruct kiểm tra chuyển đổi struct qua JSON
func TestConvertStruct(t *testing.T) {
	type source struct {
		Name  string `json:"name"`
		Count int64  `json:"count"`
	}
	type target struct {
		Name  string `json:"name"`
		Count int64  `json:"count"`
		Extra string `json:"extra"`
	}

	src := source{Name: "thong-bao", Count: 5}
	var dst target

	result, err := ConvertStruct(src, &dst)
	require.NoError(t, err, "Chuyển đổi struct hợp lệ không được trả về lỗi")
	require.NotNil(t, result)
	assert.Equal(t, "thong-bao", dst.Name, "Trường trùng tên phải được copy")
	assert.Equal(t, int64(5), dst.Count)
	assert.Equal(t, "", dst.Extra, "Trường không có trong source phải giữ zero value")
}
