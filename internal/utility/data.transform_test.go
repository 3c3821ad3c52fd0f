package utility

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestParseTransformTag kiểm tra parse tag transform với các format khác nhau
func TestParseTransformTag(t *testing.T) {
	t.Run("TagRong", func(t *testing.T) {
		config, err := ParseTransformTag("")
		require.NoError(t, err, "Tag rỗng không được trả về lỗi")
		assert.Equal(t, "", config.Type, "Tag rỗng phải có Type rỗng")
		assert.False(t, config.Optional, "Tag rỗng không được là optional")
	})

	t.Run("ChiCoType", func(t *testing.T) {
		config, err := ParseTransformTag("str_objectid")
		require.NoError(t, err)
		assert.Equal(t, "str_objectid", config.Type, "Type phải được parse đúng")
	})

	t.Run("TypeVaOptional", func(t *testing.T) {
		config, err := ParseTransformTag("str_objectid_ptr,optional")
		require.NoError(t, err)
		assert.Equal(t, "str_objectid_ptr", config.Type)
		assert.True(t, config.Optional, "Flag optional phải được parse")
	})

	t.Run("TypeVaRequired", func(t *testing.T) {
		config, err := ParseTransformTag("str_objectid,required")
		require.NoError(t, err)
		assert.True(t, config.Required, "Flag required phải được parse")
	})

	t.Run("TypeVaFormat", func(t *testing.T) {
		config, err := ParseTransformTag("str_time,format=2006-01-02")
		require.NoError(t, err)
		assert.Equal(t, "str_time", config.Type)
		assert.Equal(t, "2006-01-02", config.Format, "Format phải được override")
	})

	t.Run("FormatMacDinh", func(t *testing.T) {
		config, err := ParseTransformTag("str_time")
		require.NoError(t, err)
		assert.Equal(t, "2006-01-02T15:04:05", config.Format, "Format mặc định phải được giữ nguyên")
	})

	t.Run("DefaultVaMap", func(t *testing.T) {
		config, err := ParseTransformTag("str_int64,default=30,map=Days")
		require.NoError(t, err)
		assert.Equal(t, "30", config.Default, "Default phải được parse")
		assert.Equal(t, "Days", config.MapTo, "MapTo phải được parse")
	})
}

// TestTransformFieldValue kiểm tra transform giá trị từ DTO sang Model
func TestTransformFieldValue(t *testing.T) {
	objIDType := reflect.TypeOf(primitive.ObjectID{})
	hexID := primitive.NewObjectID().Hex()

	t.Run("StrObjectID", func(t *testing.T) {
		config, _ := ParseTransformTag("str_objectid")
		result, err := TransformFieldValue(hexID, config, objIDType)
		require.NoError(t, err, "Hex hợp lệ phải convert được")

		objID, ok := result.(primitive.ObjectID)
		require.True(t, ok, "Kết quả phải là primitive.ObjectID")
		assert.Equal(t, hexID, objID.Hex(), "ObjectID phải khớp với hex đầu vào")
	})

	t.Run("StrObjectIDKhongHopLe", func(t *testing.T) {
		config, _ := ParseTransformTag("str_objectid")
		_, err := TransformFieldValue("khong-phai-hex", config, objIDType)
		assert.Error(t, err, "Hex không hợp lệ phải trả về lỗi")
	})

	t.Run("StrObjectIDPtr", func(t *testing.T) {
		config, _ := ParseTransformTag("str_objectid_ptr,optional")
		result, err := TransformFieldValue(hexID, config, reflect.TypeOf(&primitive.ObjectID{}))
		require.NoError(t, err)

		ptr, ok := result.(*primitive.ObjectID)
		require.True(t, ok, "Kết quả phải là *primitive.ObjectID")
		require.NotNil(t, ptr)
		assert.Equal(t, hexID, ptr.Hex())
	})

	t.Run("StrObjectIDPtrRong", func(t *testing.T) {
		config, _ := ParseTransformTag("str_objectid_ptr,optional")
		result, err := TransformFieldValue("", config, reflect.TypeOf(&primitive.ObjectID{}))
		require.NoError(t, err, "Chuỗi rỗng với optional không được trả về lỗi")
		assert.Nil(t, result, "Chuỗi rỗng với optional phải trả về nil")
	})

	t.Run("OptionalVoiNil", func(t *testing.T) {
		config, _ := ParseTransformTag("str_objectid,optional")
		result, err := TransformFieldValue(nil, config, objIDType)
		require.NoError(t, err, "Nil với optional không được trả về lỗi")
		assert.Nil(t, result)
	})

	t.Run("RequiredVoiNil", func(t *testing.T) {
		config, _ := ParseTransformTag("str_objectid,required")
		_, err := TransformFieldValue(nil, config, objIDType)
		assert.Error(t, err, "Nil với required phải trả về lỗi")
	})

	t.Run("RequiredVoiChuoiRong", func(t *testing.T) {
		config, _ := ParseTransformTag("str_objectid,required")
		_, err := TransformFieldValue("", config, objIDType)
		assert.Error(t, err, "Chuỗi rỗng với required phải trả về lỗi")
	})

	t.Run("DefaultKhiNil", func(t *testing.T) {
		config, _ := ParseTransformTag("str_int64,default=30")
		result, err := TransformFieldValue(nil, config, reflect.TypeOf(int64(0)))
		require.NoError(t, err)
		assert.Equal(t, int64(30), result, "Giá trị default phải được áp dụng khi nil")
	})

	t.Run("StrTime", func(t *testing.T) {
		config, _ := ParseTransformTag("str_time,format=2006-01-02")
		result, err := TransformFieldValue("2024-06-15", config, reflect.TypeOf(int64(0)))
		require.NoError(t, err)

		ts, ok := result.(int64)
		require.True(t, ok, "Kết quả phải là int64 timestamp")
		assert.Greater(t, ts, int64(0), "Timestamp phải lớn hơn 0")
	})

	t.Run("StrBool", func(t *testing.T) {
		config, _ := ParseTransformTag("str_bool")
		result, err := TransformFieldValue("true", config, reflect.TypeOf(false))
		require.NoError(t, err)
		assert.Equal(t, true, result, "Chuỗi 'true' phải convert thành bool true")
	})

	t.Run("KhongCoTransformType", func(t *testing.T) {
		config, _ := ParseTransformTag("")
		result, err := TransformFieldValue("giu-nguyen", config, reflect.TypeOf(""))
		require.NoError(t, err)
		assert.Equal(t, "giu-nguyen", result, "Không có type thì phải giữ nguyên giá trị")
	})
}
