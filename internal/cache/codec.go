package cache

import (
	"encoding/json"
	"log/slog"

	"github.com/peakline/relcache/config"
)

// envelope is the marker wrapper for values whose serialized form exceeds the
// configured threshold. Not real compression: the value is held as its JSON
// string and decoded back on read. The `__compressed` name is part of the
// persisted format.
type envelope struct {
	Compressed bool   `json:"__compressed"`
	Data       string `json:"data"`
}

func encodeValue(cfg *config.CompressionCfg, logger *slog.Logger, value any) any {
	if !cfg.Enabled() {
		return value
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache value is not serializable, storing as is", "error", err)
		return value
	}
	if len(data) <= cfg.ThresholdBytes {
		return value
	}
	return &envelope{Compressed: true, Data: string(data)}
}

// decodeValue unwraps the envelope in both of its runtime shapes: the struct
// produced by encodeValue and the generic map it becomes after a snapshot
// reload. A decode failure returns the still-wrapped value rather than
// dropping an otherwise valid hit.
func decodeValue(logger *slog.Logger, value any) any {
	switch v := value.(type) {
	case *envelope:
		var out any
		if err := json.Unmarshal([]byte(v.Data), &out); err != nil {
			logger.Warn("cache envelope decode failed, returning wrapped value", "error", err)
			return v
		}
		return out
	case map[string]any:
		if marked, ok := v["__compressed"].(bool); !ok || !marked {
			return v
		}
		data, ok := v["data"].(string)
		if !ok {
			logger.Warn("cache envelope carries no data string, returning wrapped value")
			return v
		}
		var out any
		if err := json.Unmarshal([]byte(data), &out); err != nil {
			logger.Warn("cache envelope decode failed, returning wrapped value", "error", err)
			return v
		}
		return out
	default:
		return value
	}
}
