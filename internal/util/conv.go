package util

import (
	"strconv"
)

// ParseID 将路径参数转换为正整数ID
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
