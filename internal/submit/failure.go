// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package submit

import "github.com/jeranaias/moonchat/internal/answer"

// DefaultFailureMessage is shown when the exchange fails without a usable detail.
const DefaultFailureMessage = "ERROR: Connection to Jupiter database failed. Please retry."

// FailureText renders err as the content of the synthetic assistant message.
// A service failure with a server-supplied detail shows that detail; anything
// else shows fallback.
func FailureText(err error, fallback string) string {
	if fallback == "" {
		fallback = DefaultFailureMessage
	}
	if detail, ok := answer.ServiceDetail(err); ok {
		return "ERROR: " + detail
	}
	return fallback
}

func failureKind(err error) string {
	switch {
	case answer.IsService(err):
		return answer.KindService.String()
	case answer.IsNetwork(err):
		return answer.KindNetwork.String()
	default:
		return answer.KindUnknown.String()
	}
}
