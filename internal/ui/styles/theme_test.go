// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTheme_ForcedModes(t *testing.T) {
	tests := []struct {
		mode string
		dark bool
	}{
		{"dark", true},
		{"DARK", true},
		{"light", false},
	}

	for _, tc := range tests {
		theme := NewTheme(tc.mode)
		if theme.IsDark != tc.dark {
			t.Errorf("NewTheme(%q).IsDark = %v, want %v", tc.mode, theme.IsDark, tc.dark)
		}
		if lipgloss.HasDarkBackground() != tc.dark {
			t.Errorf("NewTheme(%q) did not force the lipgloss background", tc.mode)
		}
	}
}

func TestTheme_RoleColors(t *testing.T) {
	theme := NewTheme("dark")

	if got := theme.UserLabel.GetForeground(); got != Yellow {
		t.Errorf("UserLabel foreground = %v, want Yellow", got)
	}
	if got := theme.AssistantLabel.GetForeground(); got != Green {
		t.Errorf("AssistantLabel foreground = %v, want Green", got)
	}
	if got := theme.Transcript.GetBorderTopForeground(); got != Cyan {
		t.Errorf("Transcript border = %v, want Cyan", got)
	}
}

func TestTheme_LabelKeepsText(t *testing.T) {
	theme := NewTheme("dark")

	if out := theme.Label(true, "> QUERY:"); !strings.Contains(out, "> QUERY:") {
		t.Errorf("Label(user) = %q", out)
	}
	if out := theme.Label(false, "> JUPITER.DB:"); !strings.Contains(out, "> JUPITER.DB:") {
		t.Errorf("Label(assistant) = %q", out)
	}
}

func TestTheme_DisabledInputIsDistinct(t *testing.T) {
	theme := NewTheme("dark")
	if theme.InputBox.GetBorderTopForeground() == theme.InputBoxDisabled.GetBorderTopForeground() {
		t.Error("disabled input should not share the active border color")
	}
}

func TestAdaptiveColors_HaveBothVariants(t *testing.T) {
	for name, c := range map[string]lipgloss.AdaptiveColor{
		"Cyan": Cyan, "Yellow": Yellow, "Green": Green, "Rose": Rose, "Amber": Amber,
	} {
		if c.Light == "" || c.Dark == "" {
			t.Errorf("%s is missing a variant: %+v", name, c)
		}
	}
}
