package gazetteer

import (
	"fmt"

	"address-normalizer/internal/models"
)

// MalformedRecordError reports a gazetteer record that cannot be placed in the index.
type MalformedRecordError struct {
	Index  int
	Entry  models.GazetteerEntry
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("gazetteer: malformed record #%d (prefecture=%q municipality=%q): %s",
		e.Index, e.Entry.Prefecture, e.Entry.Municipality, e.Reason)
}
