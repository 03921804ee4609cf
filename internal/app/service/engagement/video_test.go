package engagement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantID  string
		wantErr bool
	}{
		{name: "plain", url: "https://www.tiktok.com/@creator/video/7301234567890123456", wantID: "7301234567890123456"},
		{name: "no www", url: "https://tiktok.com/@creator/video/123456", wantID: "123456"},
		{name: "handle with dots and dashes", url: "https://www.tiktok.com/@some.user-name/video/42", wantID: "42"},
		{name: "query string", url: "https://www.tiktok.com/@creator/video/99?is_copy_url=1&lang=en", wantID: "99"},
		{name: "http rejected", url: "http://www.tiktok.com/@creator/video/123", wantErr: true},
		{name: "wrong host", url: "https://www.youtube.com/watch?v=abc", wantErr: true},
		{name: "missing handle", url: "https://www.tiktok.com/video/123", wantErr: true},
		{name: "non numeric id", url: "https://www.tiktok.com/@creator/video/abc", wantErr: true},
		{name: "trailing path", url: "https://www.tiktok.com/@creator/video/123/extra", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseVideoURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidVideoURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
