package driver

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/turbomaze/raptor-lang/pkg/interpreter"
)

// StatsJSON renders stats the way the run command prints them.
func StatsJSON(stats *interpreter.Stats) ([]byte, error) {
	return json.MarshalIndent(stats.Map(), "", "  ")
}

// QueryStats runs a jq query over the JSON form of stats and returns one
// line per result. String results are returned bare, everything else as
// compact JSON.
func QueryStats(stats *interpreter.Stats, query string) ([]string, error) {
	q, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("stats query %q: %w", query, err)
	}

	// decode through JSON so every number is a float64 gojq understands
	data, err := json.Marshal(stats.Map())
	if err != nil {
		return nil, err
	}
	var input map[string]any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, err
	}

	var out []string
	iter := q.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("stats query %q: %w", query, err)
		}
		if s, isString := v.(string); isString {
			out = append(out, s)
			continue
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out = append(out, string(encoded))
	}
	return out, nil
}
