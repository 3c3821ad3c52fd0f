package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoError_Nil(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil))
}

func TestConvertMongoError_GiuNguyenNotFound(t *testing.T) {
	// ErrNotFound không được convert để tầng trên còn xử lý 404
	err := ConvertMongoError(ErrNotFound)
	assert.Equal(t, ErrNotFound, err)

	wrapped := fmt.Errorf("tầng ngoài: %w", ErrNotFound)
	err = ConvertMongoError(wrapped)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestConvertMongoError_CommandError(t *testing.T) {
	cases := []struct {
		code     int32
		expected error
	}{
		{150, ErrMongoConnection},
		{250, ErrMongoAuth},
		{350, ErrMongoQuery},
		{450, ErrMongoWrite},
		{11000, ErrMongoSystem},
	}
	for _, tc := range cases {
		err := ConvertMongoError(mongo.CommandError{Code: tc.code, Message: "test"})
		assert.Equal(t, tc.expected, err, "mã lỗi %d phải map đúng", tc.code)
	}
}

func TestConvertMongoError_NoDocuments(t *testing.T) {
	// ErrNoDocuments của driver là "không tìm thấy", không phải lỗi hệ thống
	err := ConvertMongoError(mongo.ErrNoDocuments)
	assert.Equal(t, ErrNotFound, err)

	wrapped := fmt.Errorf("đọc lại document: %w", mongo.ErrNoDocuments)
	err = ConvertMongoError(wrapped)
	assert.Equal(t, ErrNotFound, err)
}

func TestConvertMongoError_KhongNhanDien(t *testing.T) {
	err := ConvertMongoError(errors.New("lỗi lạ"))
	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrCodeDatabase.Code, appErr.Code.Code)
	assert.Equal(t, StatusInternalServerError, appErr.StatusCode)
}

func TestErrorIs_SoSanhTheoCodeVaMessage(t *testing.T) {
	err1 := NewError(ErrCodeValidationInput, "Dữ liệu sai", StatusBadRequest, nil)
	err2 := NewError(ErrCodeValidationInput, "Dữ liệu sai", StatusBadRequest, "chi tiết khác")
	assert.True(t, errors.Is(err1, err2), "hai lỗi cùng code và message phải Is nhau")

	err3 := NewError(ErrCodeValidationFormat, "Dữ liệu sai", StatusBadRequest, nil)
	assert.False(t, errors.Is(err1, err3), "khác code thì không Is")
}

func TestNewError_StatusCode(t *testing.T) {
	err := NewError(ErrCodeBusinessOperation, "Xung đột", StatusConflict, nil)
	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, StatusConflict, appErr.StatusCode)
	assert.Equal(t, "Xung đột", appErr.Error())
}
