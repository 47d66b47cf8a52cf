package patterns

import "time"

// DefaultTimeout is the per-request timeout for collaborator HTTP calls.
const DefaultTimeout = 3 * time.Second

// SlowServiceTimeout covers collaborators that are allowed to be slow,
// such as the notification send.
const SlowServiceTimeout = 10 * time.Second
