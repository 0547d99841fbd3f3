package middleware

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestValidateMessageContent(t *testing.T) {
	require.Error(t, ValidateMessageContent(""))
	require.Error(t, ValidateMessageContent("   \n\t"))
	require.Error(t, ValidateMessageContent(strings.Repeat("a", 100001)))
	require.Error(t, ValidateMessageContent("bad \xff utf8"))
	require.NoError(t, ValidateMessageContent("my PC crashed"))
}

func TestValidateConversationID(t *testing.T) {
	require.Error(t, ValidateConversationID(""))
	require.Error(t, ValidateConversationID("not-a-uuid"))
	require.NoError(t, ValidateConversationID(uuid.Must(uuid.NewV7()).String()))
}

func TestValidateErrorCode(t *testing.T) {
	require.NoError(t, ValidateErrorCode(""))
	require.NoError(t, ValidateErrorCode("0x0000007B"))
	require.Error(t, ValidateErrorCode(strings.Repeat("x", 65)))
	require.Error(t, ValidateErrorCode("bad \xff utf8"))
}
