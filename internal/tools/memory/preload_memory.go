package memory

import (
	"time"

	"google.golang.org/adk/tool"

	"atlas/internal/metrics"
	"atlas/internal/tools/shared"
	"atlas/pkg/errors"
)

// NewPreloadMemoryTool loads the most recent memories for the active
// session so the model can call it once at turn start before deciding
// anything else. No query needed; ordering is importance then recency.
func NewPreloadMemoryTool(deps shared.Deps) (tool.Tool, error) {
	return shared.NewToolBuilder(
		"preload_memory",
		"Load recent session memory. Call before answering when prior context may matter. Args: limit (optional).",
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			if !deps.HasMemory() {
				return nil, errors.Wrap(errors.ErrUnavailable, "memory service not configured")
			}

			limit := shared.IntArg(args, "limit", 10)

			sessionID := resolveSessionID(ctx, args)
			if sessionID == "" {
				return nil, errors.Wrap(errors.ErrInvalidInput, "no session in scope")
			}

			// Empty query forces the recency path
			results, err := deps.Memory.Recall(ctx, sessionID, "", limit)
			metrics.RecordMemoryOperation("recall", err)
			if err != nil {
				return nil, err
			}

			if len(results) == 0 {
				return shared.OK(map[string]interface{}{
					"count":    0,
					"memories": "No prior context for this session.",
				}), nil
			}

			formatted, err := deps.Templates.Render("tools/preload_memory", templateData(results, ""))
			if err != nil {
				return nil, errors.Wrap(err, "render preload_memory template")
			}

			return shared.OK(map[string]interface{}{
				"count":    len(results),
				"memories": formatted,
			}), nil
		},
		deps,
	).
		WithTimeout(10 * time.Second).
		WithRetry(2, 500*time.Millisecond).
		WithMetrics().
		Build()
}
