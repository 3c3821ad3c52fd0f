package utility

import (
	"encoding/json"
	"fmt"
)

// MapToJSON chuyển đổi map thành chuỗi JSON
// @params - map cần chuyển đổi
// @returns - chuỗi JSON và lỗi nếu có
func MapToJSON(m map[string]interface{}) (string, error) {
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("lỗi khi chuyển đổi map thành JSON: %v", err)
	}
	return string(jsonBytes), nil
}

// JSONToMap chuyển đổi chuỗi JSON thành map
// @params - chuỗi JSON cần chuyển đổi
// @returns - map và lỗi nếu có
func JSONToMap(jsonStr string) (map[string]interface{}, error) {
	var result map[string]interface{}
	err := json.Unmarshal([]byte(jsonStr), &result)
	if err != nil {
		return nil, fmt.Errorf("lỗi khi chuyển đổi JSON thành map: %v", err)
	}
	return result, nil
}
