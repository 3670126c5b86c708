package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Trip ID,Booking User ID,Pick Up Latitude,Pick Up Longitude,Drop Off Latitude,Drop Off Longitude,Pick Up Address,Drop Off Address,Trip Date and Time,Total Passengers,Age
1,u1,30.26,-97.74,30.27,-97.75,1 Main St,Sixth Street Austin,9/6/2024 20:10,3,22
2,u2,30.26,-97.74,30.27,-97.75,1 Main St,Sixth Street Austin,9/6/2024 20:40,8,31
3,u3,30.26,-97.74,30.28,-97.76,2 Oak St,Rainey Street Austin,9/7/2024 21:05,2,
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	data := filepath.Join(dir, "rides.csv")
	require.NoError(t, os.WriteFile(data, []byte(sampleCSV), 0o644))
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("data_path: "+data+"\nllm_provider: none\n"), 0o644))
	return cfg
}

func TestPredictCommand(t *testing.T) {
	cfg := writeConfig(t)

	cmd := NewPredictCmd().Command()
	cmd.PersistentFlags().String("config", cfg, "")
	cmd.PersistentFlags().Bool("verbose", false, "")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"friday", "8pm"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "2", strings.TrimSpace(out.String()))
}

func TestPredictCommandMissingDay(t *testing.T) {
	cfg := writeConfig(t)

	cmd := NewPredictCmd().Command()
	cmd.PersistentFlags().String("config", cfg, "")
	cmd.PersistentFlags().Bool("verbose", false, "")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"monday", "8pm"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No data for monday.", strings.TrimSpace(out.String()))
}

func TestPredictCommandRequiresText(t *testing.T) {
	cmd := NewPredictCmd().Command()
	cmd.SetArgs([]string{})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	assert.Error(t, cmd.Execute())
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, newLogger(false))
	assert.True(t, newLogger(true).Enabled(t.Context(), -4))
	assert.False(t, newLogger(false).Enabled(t.Context(), -4))
}
