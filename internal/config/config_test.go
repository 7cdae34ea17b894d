package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/slotlist/internal/config"
	"github.com/calvinalkan/slotlist/pkg/slotlist"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// isolatedEnv points HOME and XDG_CONFIG_HOME into a temp dir so the real
// user config never leaks into tests.
func isolatedEnv(t *testing.T) map[string]string {
	t.Helper()

	home := t.TempDir()

	return map[string]string{
		"HOME":            home,
		"XDG_CONFIG_HOME": filepath.Join(home, "xdg"),
	}
}

func intPtr(v int) *int { return &v }

func Test_Load_Returns_Defaults_When_No_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env := isolatedEnv(t)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: env})
	require.NoError(t, err)

	assert.Equal(t, slotlist.DefaultHoleThreshold, cfg.HoleThreshold)
	assert.Equal(t, 0, cfg.Capacity)
	assert.Equal(t, config.DefaultPrompt, cfg.Prompt)
	assert.Equal(t, filepath.Join(env["HOME"], ".sloty_history"), cfg.HistoryFileAbs)
	assert.Equal(t, dir, cfg.EffectiveCwd)
	assert.Empty(t, cfg.Sources.Global)
	assert.Empty(t, cfg.Sources.Project)
}

func Test_Load_Reads_Project_File_With_Comments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)

	writeFile(t, path, `{
		// compact aggressively
		"hole_threshold": 4,
		"capacity": 64,
		"history_file": "hist",
	}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: isolatedEnv(t)})
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.HoleThreshold)
	assert.Equal(t, 64, cfg.Capacity)
	assert.Equal(t, filepath.Join(dir, "hist"), cfg.HistoryFileAbs)
	assert.Equal(t, path, cfg.Sources.Project)
}

func Test_Load_Keeps_Explicit_Zero_Threshold(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.ConfigFileName), `{"hole_threshold": 0, "history_file": ""}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: isolatedEnv(t)})
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.HoleThreshold, "0 disables compaction and must not fall back to the default")
	assert.Empty(t, cfg.HistoryFileAbs, "empty history_file disables history")
}

func Test_Load_Applies_Precedence_Global_Project_Explicit_Flags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env := isolatedEnv(t)

	writeFile(t, filepath.Join(env["XDG_CONFIG_HOME"], "sloty", "config.json"), `{"hole_threshold": 1, "capacity": 1, "prompt": "g> "}`)
	writeFile(t, filepath.Join(dir, "custom.json"), `{"capacity": 2}`)

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: dir,
		ConfigPath:      "custom.json",
		Env:             env,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.HoleThreshold, "from global")
	assert.Equal(t, 2, cfg.Capacity, "explicit file wins over global")
	assert.Equal(t, "g> ", cfg.Prompt)
	assert.Equal(t, filepath.Join(dir, "custom.json"), cfg.Sources.Project)
	assert.NotEmpty(t, cfg.Sources.Global)

	cfg, err = config.Load(config.LoadInput{
		WorkDirOverride:   dir,
		ConfigPath:        "custom.json",
		ThresholdOverride: intPtr(9),
		CapacityOverride:  intPtr(3),
		NoHistory:         true,
		Env:               env,
	})
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.HoleThreshold, "flag wins")
	assert.Equal(t, 3, cfg.Capacity, "flag wins")
	assert.Empty(t, cfg.HistoryFileAbs)
}

func Test_Load_Falls_Back_To_Home_Config_When_XDG_Unset(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "sloty", "config.json"), `{"hole_threshold": 7}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: t.TempDir(), Env: map[string]string{"HOME": home}})
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.HoleThreshold)
}

func Test_Load_Returns_Error_When_Config_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		want    error
	}{
		{name: "BrokenJSON", content: `{"hole_threshold": `, want: config.ErrConfigInvalid},
		{name: "WrongType", content: `{"hole_threshold": "many"}`, want: config.ErrConfigInvalid},
		{name: "NegativeThreshold", content: `{"hole_threshold": -1}`, want: config.ErrNegativeThreshold},
		{name: "NegativeCapacity", content: `{"capacity": -5}`, want: config.ErrNegativeCapacity},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, config.ConfigFileName), testCase.content)

			_, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: isolatedEnv(t)})
			require.ErrorIs(t, err, testCase.want)
		})
	}
}

func Test_Load_Returns_Error_When_Explicit_Config_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.Load(config.LoadInput{
		WorkDirOverride: t.TempDir(),
		ConfigPath:      "nope.json",
		Env:             isolatedEnv(t),
	})
	require.ErrorIs(t, err, config.ErrConfigFileNotFound)
}

func Test_Load_Returns_Error_When_Threshold_Flag_Negative(t *testing.T) {
	t.Parallel()

	_, err := config.Load(config.LoadInput{
		WorkDirOverride:   t.TempDir(),
		ThresholdOverride: intPtr(-2),
		Env:               isolatedEnv(t),
	})
	require.ErrorIs(t, err, config.ErrNegativeThreshold)
}

func Test_ListOptions_Mirror_Config(t *testing.T) {
	t.Parallel()

	cfg := config.Config{HoleThreshold: 3, Capacity: 10}

	assert.Equal(t, slotlist.Options{HoleThreshold: 3, Capacity: 10}, cfg.ListOptions())
}

func Test_Format_Omits_Resolved_Fields(t *testing.T) {
	t.Parallel()

	out, err := config.Format(config.Config{HoleThreshold: 2, EffectiveCwd: "/x"})
	require.NoError(t, err)

	assert.Contains(t, out, `"hole_threshold": 2`)
	assert.NotContains(t, out, "/x")
}

func Test_Format_Keeps_Prompt_Readable_When_It_Has_Markup_Characters(t *testing.T) {
	t.Parallel()

	out, err := config.Format(config.Config{Prompt: "sloty> "})
	require.NoError(t, err)

	assert.Contains(t, out, `"prompt": "sloty> "`)
	assert.False(t, strings.HasSuffix(out, "\n"))
}
