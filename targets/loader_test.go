package targets_test

import (
	"os"
	"testing"
	"time"

	"github.com/marcelsud/webhook-scheduler/targets"
	"github.com/marcelsud/webhook-scheduler/webhook"
	"github.com/marcelsud/webhook-scheduler/webhook/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTargets(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "targets-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

func defaults() (webhook.Target, webhook.Target) {
	return webhook.NewTarget(webhook.PrimaryTarget, "https://env.example.com", "GET", 30, ""),
		webhook.NewTarget(webhook.SecondaryTarget, "", "GET", 30, "")
}

func TestLoader_Load(t *testing.T) {
	t.Run("success - both targets", func(t *testing.T) {
		secret, err := signature.GenerateSecret(32)
		require.NoError(t, err)

		path := writeTargets(t, `
primary:
  url: "https://n8n.example.com/webhook/ai-news"
  method: "post"
  timeout_seconds: 45
  signing_secret: "`+secret.String()+`"
secondary:
  url: "https://n8n.example.com/webhook/weixin"
`)
		loader := targets.NewLoader(defaults())
		require.NoError(t, loader.Load(path))

		primary := loader.Primary()
		assert.Equal(t, webhook.PrimaryTarget, primary.Name)
		assert.Equal(t, "https://n8n.example.com/webhook/ai-news", primary.URL)
		assert.Equal(t, webhook.POST, primary.Method)
		assert.Equal(t, 45*time.Second, primary.Timeout)
		assert.Equal(t, secret.String(), primary.SigningSecret)

		secondary := loader.Secondary()
		assert.Equal(t, webhook.GET, secondary.Method)
		assert.Equal(t, 30*time.Second, secondary.Timeout)
		assert.True(t, secondary.Configured())

		assert.Len(t, loader.List(), 2)
	})

	t.Run("success - missing section keeps the seeded target", func(t *testing.T) {
		path := writeTargets(t, `
secondary:
  url: "https://n8n.example.com/webhook/weixin"
`)
		loader := targets.NewLoader(defaults())
		require.NoError(t, loader.Load(path))

		assert.Equal(t, "https://env.example.com", loader.Primary().URL)
	})

	t.Run("error - file not found", func(t *testing.T) {
		loader := targets.NewLoader(defaults())
		err := loader.Load("nonexistent.yaml")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading targets file")
	})

	t.Run("error - invalid YAML", func(t *testing.T) {
		loader := targets.NewLoader(defaults())
		err := loader.Load(writeTargets(t, `invalid yaml content: [[[`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing targets YAML")
	})

	t.Run("error - unsupported method leaves targets untouched", func(t *testing.T) {
		path := writeTargets(t, `
primary:
  url: "https://example.com"
  method: "PUT"
`)
		loader := targets.NewLoader(defaults())
		err := loader.Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported method")
		assert.Equal(t, "https://env.example.com", loader.Primary().URL)
	})

	t.Run("error - invalid signing secret", func(t *testing.T) {
		path := writeTargets(t, `
secondary:
  url: "https://example.com"
  signing_secret: "secret"
`)
		loader := targets.NewLoader(defaults())
		err := loader.Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid signing_secret")
	})

	t.Run("error - negative timeout", func(t *testing.T) {
		path := writeTargets(t, `
primary:
  url: "https://example.com"
  timeout_seconds: -1
`)
		err := targets.NewLoader(defaults()).Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout_seconds cannot be negative")
	})
}
