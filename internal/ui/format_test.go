package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{-5, "0 Bytes"},
		{1, "1 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1587, "1.55 KB"},
		{1048576, "1 MB"},
		{5242880, "5 MB"},
		{1073741824, "1 GB"},
		{1610612736, "1.5 GB"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatFileSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 14, 5, 0, 0, time.UTC)
	require.Equal(t, "Mar 7, 2024, 2:05 PM", FormatDateTime(ts))
}
