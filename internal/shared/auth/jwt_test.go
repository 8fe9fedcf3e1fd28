package auth

import (
	"testing"
	"time"

	"github.com/Ltizzi/PZTools/internal/server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{ID: 42, Username: "survivor"}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "survivor", claims.Username)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewJWTService("right-secret", time.Hour).GenerateToken(testUser())
	require.NoError(t, err)

	_, err = NewJWTService("wrong-secret", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_MalformedToken(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "标准Bearer头", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "小写bearer", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "缺少令牌", header: "Bearer ", wantErr: true},
		{name: "错误前缀", header: "Basic abc", wantErr: true},
		{name: "只有令牌", header: "abc.def.ghi", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
