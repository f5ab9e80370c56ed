package enum

// ── Order lifecycle (pending is the only non-terminal state) ──

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// TableWalkIn is the sentinel table label for orders placed without a table context.
const TableWalkIn = "Walk-in"

// CategoryOther is the default menu category when none is given.
const CategoryOther = "Other"

// ── Cart grouping modes ──

const (
	// GroupModeSubmission keys carts by the submission id written at checkout.
	GroupModeSubmission = "submission"
	// GroupModeWindow is the legacy fallback keying carts by table + 5-minute bucket.
	GroupModeWindow = "window"
)

// ── Export date ranges, computed as [now − window, now] ──

const (
	ExportRangeAll     = "all"
	ExportRangeDaily   = "daily"
	ExportRangeWeekly  = "weekly"
	ExportRangeMonthly = "monthly"
)

// ── Store backends ──

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
	BackendAuto   = "auto"
)
