package graph

import "fmt"

// WarningKind classifies a recovered input anomaly.
type WarningKind int

const (
	WarnDuplicateNode WarningKind = iota
	WarnEmptyID
	WarnUnknownNode
	WarnInvalidWeight
	WarnDuplicateEdge
	WarnInvalidHint
)

var warningKindNames = map[WarningKind]string{
	WarnDuplicateNode: "duplicate_node",
	WarnEmptyID:       "empty_id",
	WarnUnknownNode:   "unknown_node",
	WarnInvalidWeight: "invalid_weight",
	WarnDuplicateEdge: "duplicate_edge",
	WarnInvalidHint:   "invalid_hint",
}

func (k WarningKind) String() string {
	if name, ok := warningKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("warning(%d)", int(k))
}

// Warning records one input anomaly the builder recovered from.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string { return w.Message }

func warnf(kind WarningKind, format string, args ...any) Warning {
	return Warning{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Messages flattens warnings to their display strings.
func Messages(ws []Warning) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Message
	}
	return out
}
