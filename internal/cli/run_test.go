package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/slotlist/internal/cli"
)

func Test_Invalid_Global_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("", "--invalid-flag", "ls")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout, ""; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "unknown flag")
	cli.AssertContains(t, stderr, "--invalid-flag")
	cli.AssertContains(t, stderr, "Usage: sloty")
	cli.AssertContains(t, stderr, "--cwd")
	cli.AssertContains(t, stderr, "--threshold")
}

func Test_Help_Flag_Prints_Usage_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("", "--help")

	cli.AssertContains(t, stdout, "sloty - slot list playground")
	cli.AssertContains(t, stdout, "--no-history")
	cli.AssertContains(t, stdout, "add <value>...")
	cli.AssertContains(t, stdout, "filter <substr>")
	cli.AssertContains(t, stdout, "exit")
}

func Test_Bare_Command_Reads_Nothing_When_Stdin_Is_Nil(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	dir := t.TempDir()
	env := map[string]string{"HOME": dir}

	exitCode := cli.Run(nil, &stdout, &stderr, []string{"sloty", "-C", dir}, env, nil)

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout.String()+stderr.String(), ""; got != want {
		t.Errorf("output=%q, want=%q", got, want)
	}
}

func Test_Single_Command_Runs_When_Given_As_Args(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	if got, want := c.MustRun("add ignored", "len"), "0"; got != want {
		t.Errorf("len=%q, want=%q", got, want)
	}

	if got, want := c.MustRun("", "add", "A", "B"), "0\n1"; got != want {
		t.Errorf("add=%q, want=%q", got, want)
	}
}

func Test_Script_Continues_After_Error_When_Line_Fails(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("get 9\nadd x\nlen\n")

	assert.Equal(t, 1, exitCode)
	assert.Equal(t, []string{"0", "1"}, cli.Lines(stdout))
	cli.AssertContains(t, stderr, "position out of range")
}

func Test_Script_Skips_Comments_And_Blank_Lines_When_Present(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("# setup\n\n   \nadd A\n  # trailing\nlen\n")

	assert.Equal(t, []string{"0", "1"}, cli.Lines(stdout))
}

func Test_Script_Stops_When_Exit_Is_Read(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("add A\nexit\nadd B\n")

	assert.Equal(t, []string{"0"}, cli.Lines(stdout))
}

func Test_Unknown_Command_Fails_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("frobnicate\n")

	cli.AssertContains(t, stderr, "unknown command: frobnicate")
	cli.AssertContains(t, stderr, "try 'help'")
}

func Test_Threshold_Flag_Overrides_Config_When_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".sloty.json", `{
		// project default
		"hole_threshold": 3,
	}`)

	assert.Equal(t, "3", c.MustRun("", "threshold"))
	assert.Equal(t, "7", c.MustRun("", "-t", "7", "threshold"))
	assert.Equal(t, "0", c.MustRun("", "--threshold=0", "threshold"))
}

func Test_Negative_Threshold_Flag_Fails_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("", "--threshold=-1", "len")

	cli.AssertContains(t, stderr, "hole_threshold cannot be negative")
}

func Test_Capacity_Flag_Sizes_List_When_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	assert.Equal(t, "32", c.MustRun("", "--capacity", "32", "cap"))
}

func Test_Missing_Explicit_Config_Fails_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("", "-c", "nope.json", "len")

	cli.AssertContains(t, stderr, "config file not found")
}

func Test_Print_Config_Defaults_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("", "print-config")

	cli.AssertContains(t, stdout, `"hole_threshold": 256`)
	cli.AssertContains(t, stdout, `"prompt": "sloty> "`)
	cli.AssertContains(t, stdout, filepath.Join(c.Env["HOME"], ".sloty_history"))
	cli.AssertContains(t, stdout, "(defaults only)")
}

func Test_Print_Config_Reports_Sources_When_Files_Loaded(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	global := c.WriteFile(filepath.Join("home", ".config", "sloty", "config.json"), `{"capacity": 16}`)
	project := c.WriteFile(".sloty.json", `{"hole_threshold": 4, "history_file": ""}`)

	stdout := c.MustRun("", "print-config")

	cli.AssertContains(t, stdout, `"hole_threshold": 4`)
	cli.AssertContains(t, stdout, `"capacity": 16`)
	cli.AssertContains(t, stdout, `"history_file": ""`)
	cli.AssertContains(t, stdout, "global_config="+global)
	cli.AssertContains(t, stdout, "project_config="+project)
	cli.AssertNotContains(t, stdout, "(defaults only)")
}

func Test_Print_Config_Uses_Explicit_File_When_Config_Flag_Given(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".sloty.json", `{"hole_threshold": 4}`)
	custom := c.WriteFile("custom.json", `{"hole_threshold": 9}`)

	stdout := c.MustRun("", "--config=custom.json", "print-config")

	cli.AssertContains(t, stdout, `"hole_threshold": 9`)
	cli.AssertContains(t, stdout, "project_config="+custom)
}

func Test_Invalid_Config_Fails_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".sloty.json", `{"hole_threshold": "many"}`)

	_, stderr, exitCode := c.Run("", "len")

	require.Equal(t, 1, exitCode)
	cli.AssertContains(t, stderr, "invalid config file")
}
