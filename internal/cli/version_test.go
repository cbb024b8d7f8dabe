package cli

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withVersion(t *testing.T, v, c, d string) {
	t.Helper()
	oldV, oldC, oldD := version, commit, date
	SetVersionInfo(v, c, d)
	t.Cleanup(func() { SetVersionInfo(oldV, oldC, oldD) })
}

func TestPrintVersion(t *testing.T) {
	withVersion(t, "1.2.3", "abc1234", "2026-03-01")

	var buf bytes.Buffer
	printVersion(&buf, false)

	assert.Equal(t, "skadimon v1.2.3\n"+
		"commit: abc1234\n"+
		"built: 2026-03-01\n"+
		"go: "+runtime.Version()+"\n"+
		"os/arch: "+runtime.GOOS+"/"+runtime.GOARCH+"\n", buf.String())
}

func TestPrintVersion_Short(t *testing.T) {
	withVersion(t, "1.2.3", "abc1234", "2026-03-01")

	var buf bytes.Buffer
	printVersion(&buf, true)
	assert.Equal(t, "1.2.3\n", buf.String())
}

func TestPrintVersion_Dev(t *testing.T) {
	withVersion(t, "dev", "none", "unknown")

	var buf bytes.Buffer
	printVersion(&buf, false)
	assert.Contains(t, buf.String(), "skadimon dev\n")
	assert.Equal(t, "dev", GetVersion())
}

func TestFormatVersion(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"dev", "dev"},
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVersion(tt.in), tt.in)
	}
}

func TestVersionCommand_ShortFlag(t *testing.T) {
	flag := versionCmd.Flags().Lookup("short")
	if assert.NotNil(t, flag) {
		assert.Equal(t, "false", flag.DefValue)
	}
}
