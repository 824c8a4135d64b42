package availability

import (
	"fmt"
	"sort"
)

// ShortageWarning builds a human-readable message when the requested quantity
// of an inventory type exceeds what is free during the window. Returns an
// empty string when the request fits. It never fails: a negative free count
// is reported as zero available.
func ShortageWarning(displayName string, requested, free int, info *Info) string {
	if requested <= free {
		return ""
	}

	available := free
	if available < 0 {
		available = 0
	}

	msg := fmt.Sprintf("Not enough %s: requested %d, only %d available", displayName, requested, available)
	if info != nil && !info.WorstAt.IsZero() {
		msg += fmt.Sprintf(" (peak usage at %s)", info.WorstAt.Format("15:04"))
	}
	return msg
}

// Warnings collects shortage messages for every requested inventory type.
// names maps type id to display name; ids missing from names fall back to the id.
func Warnings(info *Info, requested map[string]int, names map[string]string) []string {
	if info == nil || len(requested) == 0 {
		return nil
	}

	typeIDs := make([]string, 0, len(requested))
	for typeID := range requested {
		typeIDs = append(typeIDs, typeID)
	}
	sort.Strings(typeIDs)

	var out []string
	for _, typeID := range typeIDs {
		qty := requested[typeID]
		if qty <= 0 {
			continue
		}
		name, ok := names[typeID]
		if !ok {
			name = typeID
		}
		if msg := ShortageWarning(name, qty, info.Free[typeID], info); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}
