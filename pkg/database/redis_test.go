package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLSeconds(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want int
	}{
		{"不足一秒仍有效", 300 * time.Millisecond, 1},
		{"整秒", 60 * time.Second, 60},
		{"進位", 59*time.Second + time.Millisecond, 60},
		{"已過期", 0, 0},
		{"沒有期限", -1, 0},
		{"key 不存在", -2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ttlSeconds(tt.ttl))
		})
	}
}
