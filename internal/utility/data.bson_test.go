package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToMap kiểm tra chuyển đổi struct sang map qua bson
func TestToMap(t *testing.T) {
	type sample struct {
		Seen         bool   `bson:"seen"`
		LastSeenDate int64  `bson:"lastSeenDate"`
		Status       string `bson:"status,omitempty"`
	}

	t.Run("DayDuTruong", func(t *testing.T) {
		result, err := ToMap(sample{Seen: true, LastSeenDate: 1700000000000, Status: "sent"})
		require.NoError(t, err, "Chuyển đổi struct hợp lệ không được trả về lỗi")

		assert.Equal(t, true, result["seen"], "Trường seen phải được giữ nguyên")
		assert.Equal(t, int64(1700000000000), result["lastSeenDate"])
		assert.Equal(t, "sent", result["status"])
	})

	t.Run("OmitemptyLoaiBoTruongRong", func(t *testing.T) {
		result, err := ToMap(sample{Seen: false})
		require.NoError(t, err)

		_, hasStatus := result["status"]
		assert.False(t, hasStatus, "Trường omitempty rỗng không được xuất hiện trong map")
		assert.Equal(t, false, result["seen"], "Trường không omitempty phải xuất hiện dù là zero value")
	})
}

// TestCustomBsonSet kiểm tra tạo truy vấn $set từ struct
func TestCustomBsonSet(t *testing.T) {
	customBson := &CustomBson{}

	type seenUpdate struct {
		Seen bool `bson:"seen"`
	}

	result, err := customBson.Set(seenUpdate{Seen: true})
	require.NoError(t, err, "Tạo truy vấn $set không được trả về lỗi")

	setDoc, ok := result["$set"].(map[string]interface{})
	require.True(t, ok, "Kết quả phải chứa key $set dạng map")
	assert.Equal(t, true, setDoc["seen"], "Giá trị trong $set phải khớp với struct đầu vào")
}

// TestCustomBsonUnset kiểm tra tạo truy vấn $unset từ struct
func TestCustomBsonUnset(t *testing.T) {
	customBson := &CustomBson{}

	type fieldRemoval struct {
		ErrorText string `bson:"errorText"`
	}

	result, err := customBson.Unset(fieldRemoval{ErrorText: ""})
	require.NoError(t, err)

	_, ok := result["$unset"].(map[string]interface{})
	assert.True(t, ok, "Kết quả phải chứa key $unset dạng map")
}
