package jobschema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyOp_TopLevelReplace(t *testing.T) {
	job := Job{Gist: "old"}
	require.NoError(t, ApplyOp(&job, "replace", "/gist", "new"))
	require.Equal(t, "new", job.Gist)
}

func TestApplyOp_Remove(t *testing.T) {
	job := Job{Error: "boom"}
	require.NoError(t, ApplyOp(&job, "remove", "/error", nil))
	require.Equal(t, "", job.Error)
}

func TestApplyOp_NestedBotClientData(t *testing.T) {
	job := Job{}
	require.NoError(t, ApplyOp(&job, "add", "/bot_client_data/hello/world", float64(1)))

	m, ok := job.BotClientData.(map[string]interface{})
	require.True(t, ok)
	hello, ok := m["hello"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, float64(1), hello["world"])
}

func TestApplyOp_UnknownAttribute(t *testing.T) {
	job := Job{}
	err := ApplyOp(&job, "add", "/potrzebie", "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "potrzebie")
}

func TestApplyOp_CannotTraverseScalarAttribute(t *testing.T) {
	job := Job{}
	err := ApplyOp(&job, "add", "/gist/nested", "x")
	require.Error(t, err)
}
