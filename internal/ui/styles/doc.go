// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the moonchat TUI.

The look is a retro database terminal: cyan frame and title, yellow user
queries, green database answers. All colors use Lip Gloss AdaptiveColor so the
same theme reads on light terminals.

# Color System (colors.go)

	Cyan     - Frame borders, title, send button
	Yellow   - User queries ("> QUERY:")
	Green    - Database answers ("> JUPITER.DB:") and input text
	Rose     - Failed exchanges
	Amber    - Warnings and unknown service status

# Theme System (theme.go)

NewTheme takes the configured mode. "dark" and "light" force the background;
"auto" asks the terminal through termenv.

	theme := styles.NewTheme(cfg.UI.Theme)
	fmt.Println(theme.UserLabel.Render("> QUERY:"))
*/
package styles
