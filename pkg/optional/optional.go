// Package optional 提供 partial update 使用的欄位型別.
// Field 的零值即為 Unset, 只有 JSON 中出現的 key 才會變成 Set.
package optional

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Field Unset 或 Set(value)
type Field[T any] struct {
	value T
	set   bool
}

// Set 建立已設定的欄位
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Unset 建立未設定的欄位
func Unset[T any]() Field[T] {
	return Field[T]{}
}

// IsSet 是否有設定值
func (f Field[T]) IsSet() bool {
	return f.set
}

// Get 取值與是否設定
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// OrElse 未設定時回傳 fallback
func (f Field[T]) OrElse(fallback T) T {
	if f.set {
		return f.value
	}
	return fallback
}

// UnmarshalJSON key 存在即為 Set.
// null 對指標型別代表 Set(nil) 清空; 對非指標型別視為 Unset.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		if reflect.TypeOf(&zero).Elem().Kind() == reflect.Pointer {
			*f = Set(zero)
		} else {
			*f = Unset[T]()
		}
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Set(v)
	return nil
}

// MarshalJSON Unset 輸出 null
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
