package ai

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Result formats
const (
	FormatJSON = "json" // the model answered with the requested object
	FormatText = "text" // raw model text, lists empty
)

var emptyList = json.RawMessage("[]")

// Analysis is the advisor answer. Section contents are whatever the model produced.
type Analysis struct {
	Format           string          `json:"format"`
	SpendingAnalysis json.RawMessage `json:"spending_analysis"`
	Anomalies        json.RawMessage `json:"anomalies"`
	Recommendations  json.RawMessage `json:"recommendations"`
	Alerts           json.RawMessage `json:"alerts"`
}

// ParseAnalysis strips markdown fences from raw and decodes it. Text that is
// not a JSON object comes back as a FormatText analysis carrying raw.
func ParseAnalysis(raw string) Analysis {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "```", ""))

	var a Analysis
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil || !strings.HasPrefix(cleaned, "{") {
		return textAnalysis(raw)
	}
	a.Format = FormatJSON
	if missing(a.SpendingAnalysis) {
		a.SpendingAnalysis = json.RawMessage(`""`)
	}
	for _, list := range []*json.RawMessage{&a.Anomalies, &a.Recommendations, &a.Alerts} {
		if missing(*list) {
			*list = emptyList
		}
	}
	return a
}

func textAnalysis(raw string) Analysis {
	text, _ := json.Marshal(raw) // string marshalling cannot fail
	return Analysis{
		Format:           FormatText,
		SpendingAnalysis: text,
		Anomalies:        emptyList,
		Recommendations:  emptyList,
		Alerts:           emptyList,
	}
}

func missing(m json.RawMessage) bool {
	return len(m) == 0 || bytes.Equal(m, []byte("null"))
}
