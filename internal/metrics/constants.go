package metrics

// Metric names
const (
	MetricNameItemsGenerated      = "arpg_items_generated_total"
	MetricNameInventoryOperations = "arpg_inventory_operations_total"
	MetricNameWorldPickups        = "arpg_world_pickups"
	MetricNamePickupsRemoved      = "arpg_pickups_removed_total"
)

// Help text
const (
	HelpTextItemsGenerated      = "Total number of items generated, by rarity"
	HelpTextInventoryOperations = "Total number of inventory operations, by operation and result"
	HelpTextWorldPickups        = "Current number of item pickups placed in the world"
	HelpTextPickupsRemoved      = "Total number of world pickups removed, by reason"
)

// Labels
const (
	LabelRarity = "rarity"
	LabelOp     = "op"
	LabelResult = "result"
	LabelReason = "reason"
)

// Label values
const (
	ResultOK   = "ok"
	ResultFail = "fail"

	ReasonClaimed    = "claimed"
	ReasonExpired    = "expired"
	ReasonSessionEnd = "session_end"
)
