// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/moonchat/internal/submit"
)

// AnswerMsg delivers the outcome of an in-flight submission.
type AnswerMsg struct {
	Result submit.Result
}

// HealthStatusMsg reports the service pre-flight result.
type HealthStatusMsg struct {
	Healthy bool
	Error   error
}

// ExportedMsg reports a finished transcript export.
type ExportedMsg struct {
	Path  string
	Error error
}
