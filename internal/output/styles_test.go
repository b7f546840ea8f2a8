package output

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantFG  lipgloss.TerminalColor
		wantDim bool
	}{
		{name: "added returns green", status: StatusAdded, wantFG: ColorGreen},
		{name: "changed returns yellow", status: StatusChanged, wantFG: ColorYellow},
		{name: "removed returns red", status: StatusRemoved, wantFG: ColorRed},
		{name: "unchanged returns faint", status: StatusUnchanged, wantDim: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			if tt.wantDim {
				assert.True(t, style.GetFaint())
				return
			}
			assert.Equal(t, tt.wantFG, style.GetForeground())
		})
	}
}

func TestStatusStyle_Unknown(t *testing.T) {
	style := StatusStyle("bogus")
	assert.False(t, style.GetFaint())
	assert.False(t, style.GetBold())
}

func TestFormatTypeLine(t *testing.T) {
	line := FormatTypeLine("geometry_msgs/Twist", StatusChanged)
	assert.Contains(t, line, "t:")
	assert.Contains(t, line, "geometry_msgs/Twist")
	assert.Contains(t, line, StatusChanged)
}

func TestFormatTypeLine_LongNameKeepsSeparation(t *testing.T) {
	long := "very_long_package_name_msgs/AnExtremelyLongMessageTypeName"
	line := FormatTypeLine(long, StatusAdded)
	assert.Contains(t, line, long)
	assert.Contains(t, line, StatusAdded)
}

func TestFormatCheckmark(t *testing.T) {
	out := FormatCheckmark("wrote std_msgs.js")
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "wrote std_msgs.js")
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1 type", FormatCount(1, "type"))
	assert.Equal(t, "3 types", FormatCount(3, "type"))
	assert.Equal(t, "0 types", FormatCount(0, "type"))
}
