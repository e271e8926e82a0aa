package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format renders a value the way program output shows it.
func Format(v Value) string {
	switch val := v.(type) {
	case nil:
		return "none"
	case NumberValue:
		return formatNumber(val.Val)
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case *ListValue:
		parts := make([]string, len(val.Elements))
		for idx, el := range val.Elements {
			parts[idx] = Format(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *FunctionValue:
		return fmt.Sprintf("<function %s/%d>", val.Name(), len(val.Parameters))
	case BuiltInValue:
		return fmt.Sprintf("<builtIn %s>", val.Name)
	case NoValue:
		return "none"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

func formatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
