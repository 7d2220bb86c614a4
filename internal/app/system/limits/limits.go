// internal/app/system/limits/limits.go
package limits

// Request size limits for the JSON API.
const (
	// MaxJSONBody is the default cap on a decoded request body.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxGenerationBody caps the proposal, report and donor-match payloads.
	MaxGenerationBody = 64 << 10 // 64 KB

	// MaxChatMessage caps a single websocket chat frame.
	MaxChatMessage = 16 << 10 // 16 KB
)
