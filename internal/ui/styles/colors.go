// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
// Dark values reproduce the green-on-black terminal look.

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Cyan - Frame borders, title, send button
var Cyan = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}

// CyanDeep - Focused frame, status backgrounds
var CyanDeep = lipgloss.AdaptiveColor{Light: "#155E75", Dark: "#0891B2"}

// Yellow - User queries
var Yellow = lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#FACC15"}

// Green - Database answers and input text
var Green = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"}

// GreenDim - Context badges, secondary answer text
var GreenDim = lipgloss.AdaptiveColor{Light: "#166534", Dark: "#15803D"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Failed exchanges, offline status
var Rose = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#FB7185"}

// Amber - Unknown status, warnings
var Amber = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}

// =============================================================================
// SURFACE AND TEXT
// =============================================================================

// Surface - Transcript background
var Surface = lipgloss.AdaptiveColor{Light: "#F9FAFB", Dark: "#111827"}

// SurfaceDim - Input background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}

// TextMuted - Hints, timestamps, placeholders
var TextMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}
