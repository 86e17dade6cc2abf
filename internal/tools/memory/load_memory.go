package memory

import (
	"time"

	"github.com/dustin/go-humanize"
	"google.golang.org/adk/tool"

	memorydomain "atlas/internal/domain/memory"
	"atlas/internal/metrics"
	"atlas/internal/tools/shared"
	"atlas/pkg/errors"
)

// NewLoadMemoryTool searches past conversation memory for the active
// session. Semantic search when embeddings are available, recency
// ordering otherwise.
func NewLoadMemoryTool(deps shared.Deps) (tool.Tool, error) {
	return shared.NewToolBuilder(
		"load_memory",
		"Search past conversation memory. Args: query (text describing what to look for), limit (optional).",
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			if !deps.HasMemory() {
				return nil, errors.Wrap(errors.ErrUnavailable, "memory service not configured")
			}

			query, ok := shared.StringArg(args, "query")
			if !ok {
				return nil, errors.Wrap(errors.ErrInvalidInput, "query is required")
			}
			limit := shared.IntArg(args, "limit", 5)

			sessionID := resolveSessionID(ctx, args)
			if sessionID == "" {
				return nil, errors.Wrap(errors.ErrInvalidInput, "no session in scope")
			}

			results, err := deps.Memory.Recall(ctx, sessionID, query, limit)
			metrics.RecordMemoryOperation("recall", err)
			if err != nil {
				return nil, err
			}

			formatted, err := deps.Templates.Render("tools/load_memory", templateData(results, query))
			if err != nil {
				return nil, errors.Wrap(err, "render load_memory template")
			}

			return shared.OK(map[string]interface{}{
				"count":    len(results),
				"memories": formatted,
			}), nil
		},
		deps,
	).
		WithTimeout(15 * time.Second). // embedding generation included
		WithRetry(2, 500*time.Millisecond).
		WithMetrics().
		Build()
}

func resolveSessionID(ctx tool.Context, args map[string]interface{}) string {
	if id, ok := shared.StringArg(args, "session_id"); ok {
		return id
	}
	if meta, ok := shared.MetadataFromContext(ctx); ok {
		return meta.SessionID
	}
	return ""
}

func templateData(memories []*memorydomain.Memory, query string) map[string]interface{} {
	formatted := make([]map[string]interface{}, 0, len(memories))
	for _, m := range memories {
		formatted = append(formatted, map[string]interface{}{
			"type":        string(m.Type),
			"content":     m.Content,
			"importance":  m.Importance,
			"created_at":  m.CreatedAt.Format("2006-01-02 15:04 MST"),
			"created_ago": humanize.Time(m.CreatedAt),
		})
	}

	return map[string]interface{}{
		"Memories":    formatted,
		"ResultCount": len(memories),
		"Query":       query,
	}
}
